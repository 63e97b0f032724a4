package config

import (
	"path/filepath"
	"testing"

	"sshsel/internal/model"
)

func linesOf(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{Text: t, Source: "config"}
	}
	return lines
}

func TestBuildHostTable_SingleBlockWithDescription(t *testing.T) {
	table := BuildHostTable(linesOf(
		"Host web1",
		"  HostName 10.0.0.5",
		"  User alice",
		"#_desc Prod box",
	))
	if len(table) != 1 {
		t.Fatalf("expected 1 record, got %d", len(table))
	}
	want := model.HostRecord{Alias: "web1", HostName: "10.0.0.5", User: "alice", Description: "Prod box"}
	if table[0] != want {
		t.Fatalf("want %+v, got %+v", want, table[0])
	}
}

func TestBuildHostTable_WildcardOnlyBlockExcluded(t *testing.T) {
	table := BuildHostTable(linesOf("Host *", "  HostName *"))
	if len(table) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestBuildHostTable_FirstConcreteAliasWins(t *testing.T) {
	table := BuildHostTable(linesOf(
		"Host db-* db-primary db-standby",
		"  HostName db.internal",
	))
	if len(table) != 1 || table[0].Alias != "db-primary" {
		t.Fatalf("expected alias db-primary, got %+v", table)
	}
}

func TestBuildHostTable_MissingHostNameDiscarded(t *testing.T) {
	table := BuildHostTable(linesOf("Host ghost", "  User nobody"))
	if len(table) != 0 {
		t.Fatalf("expected ghost discarded, got %+v", table)
	}
}

func TestBuildHostTable_FinalBlockFlushedAtEOF(t *testing.T) {
	table := BuildHostTable(linesOf("Host tail", "  HostName tail.internal"))
	if len(table) != 1 || table[0].Alias != "tail" {
		t.Fatalf("expected tail flushed at end of stream, got %+v", table)
	}
}

func TestBuildHostTable_DedupAndSort(t *testing.T) {
	stream := linesOf(
		"Host zeta",
		"  HostName z.internal",
		"Host alpha",
		"  HostName a.internal",
		"Host zeta",
		"  HostName z.internal",
	)
	table := BuildHostTable(stream)
	if len(table) != 2 {
		t.Fatalf("expected duplicate collapsed to 2 records, got %d", len(table))
	}
	if table[0].Alias != "alpha" || table[1].Alias != "zeta" {
		t.Fatalf("expected sorted [alpha zeta], got %+v", table)
	}

	again := BuildHostTable(stream)
	if len(again) != len(table) || again[0] != table[0] || again[1] != table[1] {
		t.Fatalf("builder not idempotent: %+v vs %+v", table, again)
	}
}

func TestBuildHostTable_HiddenMarkerExcludes(t *testing.T) {
	table := BuildHostTable(linesOf(
		"Host secret",
		"#_hidden true",
		"  HostName secret.internal",
		"Host visible",
		"  HostName visible.internal",
	))
	if len(table) != 1 || table[0].Alias != "visible" {
		t.Fatalf("expected only visible host, got %+v", table)
	}
}

func TestBuildHostTable_DirectiveKeywordsCaseInsensitive(t *testing.T) {
	table := BuildHostTable(linesOf(
		"host mixed",
		"  hostname mixed.internal",
		"  USER root",
		"#_Desc Mixed case",
	))
	want := model.HostRecord{Alias: "mixed", HostName: "mixed.internal", User: "root", Description: "Mixed case"}
	if len(table) != 1 || table[0] != want {
		t.Fatalf("want %+v, got %+v", want, table)
	}
}

func TestBuildHostTable_UnknownDirectivesIgnored(t *testing.T) {
	table := BuildHostTable(linesOf(
		"Host api",
		"  HostName api.internal",
		"  ProxyJump bastion",
		"  IdentityFile ~/.ssh/id_api",
		"BadLineWithoutValue",
	))
	if len(table) != 1 || table[0].Alias != "api" {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestLoadHosts_EndToEnd(t *testing.T) {
	d := t.TempDir()
	root := filepath.Join(d, "config")
	writeFile(t, root, "Host web1\n  HostName 10.0.0.5\n  User alice\n#_desc Prod box\nInclude conf.d/*.conf\n")
	writeFile(t, filepath.Join(d, "conf.d", "db.conf"), "Host db\n  HostName 10.1.1.1\n")

	hosts, warnings := LoadHosts(root)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(hosts) != 2 || hosts[0].Alias != "db" || hosts[1].Alias != "web1" {
		t.Fatalf("unexpected hosts: %+v", hosts)
	}
	if hosts[1].Description != "Prod box" {
		t.Fatalf("description lost: %+v", hosts[1])
	}
}

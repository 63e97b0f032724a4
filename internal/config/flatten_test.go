package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestFlatten_NoIncludesIsIdentity(t *testing.T) {
	d := t.TempDir()
	path := filepath.Join(d, "config")
	writeFile(t, path, "Host web1\n  HostName 10.0.0.5\n  User alice\n")

	res := Flatten(path)
	got := lineTexts(res.Lines)
	want := []string{"Host web1", "  HostName 10.0.0.5", "  User alice"}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFlatten_MissingRootIsEmpty(t *testing.T) {
	res := Flatten(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(res.Lines) != 0 {
		t.Fatalf("expected empty stream, got %v", lineTexts(res.Lines))
	}
}

func TestFlatten_IncludeTransparency(t *testing.T) {
	d := t.TempDir()
	root := filepath.Join(d, "config")
	writeFile(t, root, "Host api\nInclude extra.conf\nHost tail\n")
	writeFile(t, filepath.Join(d, "extra.conf"), "Host db\n  HostName 10.1.1.1\n")

	got := lineTexts(Flatten(root).Lines)
	want := []string{"Host api", "Host db", "  HostName 10.1.1.1", "Host tail"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFlatten_GlobIncludesSortedOrder(t *testing.T) {
	d := t.TempDir()
	root := filepath.Join(d, "config")
	writeFile(t, root, "Host before\nInclude conf.d/*.conf\nHost after\n")
	// Written out of order on purpose; flattening must sort matches.
	writeFile(t, filepath.Join(d, "conf.d", "20-c.conf"), "Host c\n")
	writeFile(t, filepath.Join(d, "conf.d", "10-b.conf"), "Host b\n")

	got := lineTexts(Flatten(root).Lines)
	want := []string{"Host before", "Host b", "Host c", "Host after"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFlatten_UnmatchedIncludeIsSilentNoOp(t *testing.T) {
	d := t.TempDir()
	root := filepath.Join(d, "config")
	writeFile(t, root, "Host only\nInclude missing/*.conf\n")

	res := Flatten(root)
	if len(res.Lines) != 1 || res.Lines[0].Text != "Host only" {
		t.Fatalf("unexpected stream: %v", lineTexts(res.Lines))
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the unmatched include pattern")
	}
}

func TestFlatten_RelativeIncludeResolvesAgainstIncludingFile(t *testing.T) {
	d := t.TempDir()
	root := filepath.Join(d, "config")
	writeFile(t, root, "Include sub/mid.conf\n")
	// mid.conf includes leaf.conf relative to sub/, not relative to root.
	writeFile(t, filepath.Join(d, "sub", "mid.conf"), "Host mid\nInclude leaf.conf\n")
	writeFile(t, filepath.Join(d, "sub", "leaf.conf"), "Host leaf\n")

	got := lineTexts(Flatten(root).Lines)
	want := []string{"Host mid", "Host leaf"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFlatten_EnvExpansionInPattern(t *testing.T) {
	d := t.TempDir()
	t.Setenv("SSHSEL_TEST_CONFDIR", d)
	root := filepath.Join(d, "config")
	writeFile(t, root, "Include $SSHSEL_TEST_CONFDIR/extra.conf\n")
	writeFile(t, filepath.Join(d, "extra.conf"), "Host env-host\n")

	got := lineTexts(Flatten(root).Lines)
	if len(got) != 1 || got[0] != "Host env-host" {
		t.Fatalf("unexpected stream: %v", got)
	}
}

func TestFlatten_IncludeCycleTerminates(t *testing.T) {
	d := t.TempDir()
	root := filepath.Join(d, "config")
	writeFile(t, root, "Host root\nInclude sub.conf\n")
	writeFile(t, filepath.Join(d, "sub.conf"), "Host sub\nInclude config\n")

	res := Flatten(root)
	got := lineTexts(res.Lines)
	want := []string{"Host root", "Host sub"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a cycle warning")
	}
}

func TestFlatten_MultiplePatternsOnOneLine(t *testing.T) {
	d := t.TempDir()
	root := filepath.Join(d, "config")
	writeFile(t, root, "Include a.conf b.conf\n")
	writeFile(t, filepath.Join(d, "a.conf"), "Host a\n")
	writeFile(t, filepath.Join(d, "b.conf"), "Host b\n")

	got := lineTexts(Flatten(root).Lines)
	if len(got) != 2 || got[0] != "Host a" || got[1] != "Host b" {
		t.Fatalf("unexpected stream: %v", got)
	}
}

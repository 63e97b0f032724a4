package config

import (
	"sort"
	"strings"

	"sshsel/internal/model"
)

// descMarker tags a comment line as a human-readable host description, e.g.
// "#_desc Prod box". Matched case-insensitively; the original configs in the
// wild carry both #_desc and #_Desc spellings.
const descMarker = "#_desc"

// hiddenMarker excludes the current block from the selectable table, e.g.
// "#_hidden true".
const hiddenMarker = "#_hidden"

// hostBlock accumulates one Host stanza while folding over the line stream.
// It is threaded through the fold explicitly so the pass has no ambient state.
type hostBlock struct {
	active      bool
	alias       string
	hostname    string
	user        string
	description string
	hidden      bool
}

func (b hostBlock) record() (model.HostRecord, bool) {
	if !b.active || b.hidden {
		return model.HostRecord{}, false
	}
	if b.alias == "" || model.HasWildcard(b.alias) || b.hostname == "" {
		return model.HostRecord{}, false
	}
	return model.HostRecord{
		Alias:       b.alias,
		HostName:    b.hostname,
		User:        b.user,
		Description: b.description,
	}, true
}

// BuildHostTable extracts the deduplicated, sorted host table from a
// flattened line stream. A block contributes a record only when its alias is
// concrete (first non-wildcard Host token) and a HostName was seen; everything
// else is skipped without complaint.
func BuildHostTable(lines []Line) []model.HostRecord {
	var (
		records []model.HostRecord
		current hostBlock
	)

	flush := func() {
		if rec, ok := current.record(); ok {
			records = append(records, rec)
		}
	}

	for _, line := range lines {
		fields := strings.Fields(line.Text)
		if len(fields) == 0 {
			continue
		}
		switch {
		case strings.EqualFold(fields[0], "host"):
			flush()
			current = hostBlock{active: true, alias: firstConcreteAlias(fields[1:])}
		case strings.EqualFold(fields[0], "hostname") && len(fields) > 1:
			current.hostname = fields[1]
		case strings.EqualFold(fields[0], "user") && len(fields) > 1:
			current.user = fields[1]
		case strings.EqualFold(fields[0], descMarker):
			current.description = strings.Join(fields[1:], " ")
		case strings.EqualFold(fields[0], hiddenMarker) && len(fields) > 1:
			current.hidden = isTruthy(fields[1])
		}
	}
	flush()

	return dedupeSorted(records)
}

// firstConcreteAlias picks the first Host token without wildcard characters.
// A stanza may declare several patterns; only one concrete alias is kept.
func firstConcreteAlias(patterns []string) string {
	for _, p := range patterns {
		if p != "" && !model.HasWildcard(p) {
			return p
		}
	}
	return ""
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// dedupeSorted drops exact duplicate records and sorts the remainder
// lexicographically for deterministic presentation.
func dedupeSorted(records []model.HostRecord) []model.HostRecord {
	seen := make(map[model.HostRecord]struct{}, len(records))
	out := records[:0]
	for _, rec := range records {
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// LoadHosts is the common entry point: flatten the config rooted at path and
// build its host table in one step.
func LoadHosts(path string) ([]model.HostRecord, []string) {
	res := Flatten(path)
	return BuildHostTable(res.Lines), res.Warnings
}

// LoadDefaultHosts loads the table from ~/.ssh/config.
func LoadDefaultHosts() ([]model.HostRecord, []string, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, nil, err
	}
	hosts, warnings := LoadHosts(path)
	return hosts, warnings, nil
}

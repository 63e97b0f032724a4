package model

import "strings"

// HostRecord is a normalized, connectable host extracted from ssh config.
// Alias is always non-empty and wildcard-free; HostName is always non-empty.
// Records violating either invariant are discarded before they reach callers.
type HostRecord struct {
	Alias       string `json:"alias"`
	HostName    string `json:"host_name"`
	User        string `json:"user,omitempty"`
	Description string `json:"description,omitempty"`
}

// Less orders records lexicographically by alias, hostname, user, description
// for deterministic table presentation.
func (h HostRecord) Less(other HostRecord) bool {
	if h.Alias != other.Alias {
		return h.Alias < other.Alias
	}
	if h.HostName != other.HostName {
		return h.HostName < other.HostName
	}
	if h.User != other.User {
		return h.User < other.User
	}
	return h.Description < other.Description
}

// SubmissionMode says what the shell widget should do with a selected alias.
type SubmissionMode string

const (
	// ModeConfirm rewrites the command line and executes it immediately.
	ModeConfirm SubmissionMode = "confirm"
	// ModeStage rewrites the command line and leaves it for editing.
	ModeStage SubmissionMode = "stage"
)

// Selection is the outcome of one interactive pick. Produced at most once per
// invocation; absent entirely when the user cancels or no hosts exist.
type Selection struct {
	Mode  SubmissionMode `json:"mode"`
	Alias string         `json:"alias"`
}

// HasWildcard reports whether a Host pattern token contains a wildcard
// character and is therefore not a selectable alias.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

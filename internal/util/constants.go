// Package util provides common utility functions and constants used across
// the sshsel application. This package is intentionally kept dependency-free
// (no imports from other internal/* packages) to serve as a shared foundation
// without introducing circular dependencies.
package util

const (
	// MaxIncludeDepth is the maximum nesting level for SSH config Include
	// directives. The visited-path set already stops straight cycles; this
	// bound additionally catches cycles that dodge it, e.g. symlink chains
	// that resolve to ever-different absolute paths. 16 levels is far beyond
	// any reasonable config hierarchy.
	// Used by: internal/config/flatten.go.
	MaxIncludeDepth = 16
)

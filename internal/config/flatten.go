// Package config reads the user's OpenSSH client configuration and turns it
// into the host table the selector presents. Parsing is deliberately
// forgiving: missing files and malformed lines contribute nothing rather than
// failing the invocation, matching how ssh itself shrugs at absent configs.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sshsel/internal/util"
)

// Line is one logical configuration line tagged with the file it came from.
// The source path is what makes relative Include resolution possible.
type Line struct {
	Text   string
	Source string
}

// FlattenResult is the ordered line stream after Include expansion, plus
// non-fatal observations (unmatched patterns, skipped cycles) for doctor.
type FlattenResult struct {
	Lines    []Line
	Warnings []string
}

// DefaultConfigPath returns ~/.ssh/config.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// Flatten resolves the Include tree rooted at path into one ordered line
// stream. Non-directive lines pass through verbatim; each Include line is
// replaced by the flattened contents of every file it matches, depth-first in
// sorted match order. An unreadable root yields an empty stream, not an error.
func Flatten(path string) FlattenResult {
	var res FlattenResult
	seen := map[string]bool{}
	flattenInto(path, seen, 0, &res)
	return res
}

func flattenInto(path string, seen map[string]bool, depth int, res *FlattenResult) {
	if depth > util.MaxIncludeDepth {
		res.Warnings = append(res.Warnings, "include depth exceeded at "+path)
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	canonical := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		canonical = resolved
	}
	if seen[canonical] {
		res.Warnings = append(res.Warnings, "include cycle skipped: "+canonical)
		return
	}
	seen[canonical] = true

	f, err := os.Open(abs)
	if err != nil {
		// Absent config means "no hosts", never a broken invocation.
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		patterns, ok := includePatterns(text)
		if !ok {
			res.Lines = append(res.Lines, Line{Text: text, Source: abs})
			continue
		}
		for _, pattern := range patterns {
			matches := expandIncludePattern(pattern, filepath.Dir(abs))
			if len(matches) == 0 {
				res.Warnings = append(res.Warnings, "include matched nothing: "+pattern)
				continue
			}
			for _, m := range matches {
				flattenInto(m, seen, depth+1, res)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		res.Warnings = append(res.Warnings, "scan "+abs+": "+err.Error())
	}
}

// includePatterns reports whether a line is an Include directive and, if so,
// returns its whitespace-separated path patterns. The keyword is matched
// case-insensitively at the start of the line.
func includePatterns(line string) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "include") {
		return nil, false
	}
	return fields[1:], true
}

// expandIncludePattern resolves one Include pattern against the directory of
// the including file: tilde and environment expansion first, then relative
// resolution, then glob matching. Matches come back in sorted order so
// conf.d/-style drop-in directories flatten deterministically.
func expandIncludePattern(pattern, baseDir string) []string {
	expanded := os.ExpandEnv(ExpandHome(pattern))
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(baseDir, expanded)
	}
	matches, err := filepath.Glob(expanded)
	if err != nil {
		return nil
	}
	var files []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// ExpandHome replaces a leading ~/ with the current user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

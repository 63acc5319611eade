// Package scale parses the density-suffix table ("@3x=3.0x") and resolves
// which suffix a file basename carries.
package scale

import (
	"fmt"
	"sort"
	"strings"
)

// Map is an ordered suffix -> directory table.
type Map struct {
	order []string          // insertion order of first appearance
	dirs  map[string]string // suffix -> directory name
	byLen []string          // lookup order: longest first, ties keep insertion order
}

// Parse reads newline-separated key=value lines. Lines without '=' are
// skipped and later duplicates overwrite earlier values. Parse never fails.
func Parse(text string) Map {
	m := Map{dirs: make(map[string]string)}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		m.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return m
}

// Set adds or overwrites one mapping. An overwritten suffix keeps its
// original position.
func (m *Map) Set(suffix, dir string) {
	if m.dirs == nil {
		m.dirs = make(map[string]string)
	}
	if _, ok := m.dirs[suffix]; !ok {
		m.order = append(m.order, suffix)
	}
	m.dirs[suffix] = dir

	m.byLen = append(m.byLen[:0], m.order...)
	sort.SliceStable(m.byLen, func(i, j int) bool {
		return len(m.byLen[i]) > len(m.byLen[j])
	})
}

// Len returns the number of suffixes.
func (m Map) Len() int { return len(m.order) }

// Suffixes returns the suffixes in insertion order.
func (m Map) Suffixes() []string {
	return append([]string(nil), m.order...)
}

// Dir returns the directory mapped to suffix.
func (m Map) Dir(suffix string) (string, bool) {
	d, ok := m.dirs[suffix]
	return d, ok
}

// MatchSuffix returns the longest known suffix that base ends with.
func (m Map) MatchSuffix(base string) (suffix, dir string, ok bool) {
	for _, s := range m.byLen {
		if strings.HasSuffix(base, s) {
			return s, m.dirs[s], true
		}
	}
	return "", "", false
}

// Strip removes the longest matching suffix from base. A base without a
// known suffix is returned unchanged.
func (m Map) Strip(base string) string {
	if s, _, ok := m.MatchSuffix(base); ok {
		return strings.TrimSuffix(base, s)
	}
	return base
}

// String renders the table back into its source form.
func (m Map) String() string {
	lines := make([]string, 0, len(m.order))
	for _, s := range m.order {
		lines = append(lines, s+"="+m.dirs[s])
	}
	return strings.Join(lines, "\n")
}

// Lint reports lines that Parse silently ignores or that produce an empty
// key. It does not change what Parse accepts.
func Lint(text string) []string {
	var warnings []string
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		switch {
		case !ok:
			warnings = append(warnings, fmt.Sprintf("scale mapping line %d %q has no '=' and is ignored", i+1, line))
		case strings.TrimSpace(key) == "":
			warnings = append(warnings, fmt.Sprintf("scale mapping line %d %q has an empty suffix and matches every file", i+1, line))
		case strings.TrimSpace(value) == "":
			warnings = append(warnings, fmt.Sprintf("scale mapping line %d %q has an empty directory", i+1, line))
		}
	}
	return warnings
}

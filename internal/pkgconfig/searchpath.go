package pkgconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// SearchPath is an ordered pkg-config search path. It is a value: Prepend
// returns a new SearchPath and never touches process environment state.
// The path only reaches pkg-config and the build generator through the
// environment of the subprocesses we spawn.
//
// Order is significant: the first directory containing a matching .pc
// file wins.
type SearchPath struct {
	entries []string
}

// FromEnviron seeds a SearchPath from the ambient PKG_CONFIG_PATH.
func FromEnviron() SearchPath {
	return Parse(os.Getenv("PKG_CONFIG_PATH"))
}

// Parse splits a PATH-style list into a SearchPath, dropping empty entries.
func Parse(s string) SearchPath {
	var entries []string
	for _, e := range strings.Split(s, string(filepath.ListSeparator)) {
		if e != "" {
			entries = append(entries, e)
		}
	}
	return SearchPath{entries: entries}
}

// Prepend returns a copy with dir as the new highest-priority entry.
// Existing entries keep their relative order after it.
func (p SearchPath) Prepend(dir string) SearchPath {
	entries := make([]string, 0, len(p.entries)+1)
	entries = append(entries, dir)
	entries = append(entries, p.entries...)
	return SearchPath{entries: entries}
}

// Entries returns the directories in priority order.
func (p SearchPath) Entries() []string {
	return p.entries
}

// String renders the list in PKG_CONFIG_PATH syntax.
func (p SearchPath) String() string {
	return strings.Join(p.entries, string(filepath.ListSeparator))
}

// Environ renders the list as a KEY=VALUE entry for a subprocess
// environment, or "" when the list is empty.
func (p SearchPath) Environ() string {
	if len(p.entries) == 0 {
		return ""
	}
	return "PKG_CONFIG_PATH=" + p.String()
}

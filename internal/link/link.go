// Package link turns a built artifact tree into the link directives the
// consuming build system needs: which libraries to link, how, and where
// to find them. Directives are the tool's only stdout output.
package link

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nemo157/libgit2-build/internal/platform"
)

// Kind is how a library should be linked.
type Kind int

const (
	Default Kind = iota
	Static
	Framework
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Framework:
		return "framework"
	default:
		return ""
	}
}

// Directive is one instruction to the consuming build system. Either
// Lib or Search is set, never both.
type Directive struct {
	Lib  string
	Kind Kind

	Search string
}

// String renders the directive in the line protocol read by the
// consuming build system.
func (d Directive) String() string {
	if d.Search != "" {
		return "git2build:link-search=native=" + d.Search
	}
	if k := d.Kind.String(); k != "" {
		return "git2build:link-lib=" + k + "=" + d.Lib
	}
	return "git2build:link-lib=" + d.Lib
}

func lib(name string, kind Kind) Directive { return Directive{Lib: name, Kind: kind} }
func search(dir string) Directive          { return Directive{Search: dir} }

// Emit produces the ordered directive set for the artifact tree at dst.
// Every directive corresponds to a library the configuration just built
// actually needs; nothing is emitted speculatively.
func Emit(dst string, facts platform.Facts) []Directive {
	libDir := filepath.Join(dst, "lib")

	// Windows needs a fixed set of system libraries for the HTTP, RPC,
	// COM and crypto transports; none of the unix-side detection below
	// applies there.
	if facts.Family == platform.Windows {
		return []Directive{
			lib("winhttp", Default),
			lib("rpcrt4", Default),
			lib("ole32", Default),
			lib("crypt32", Default),
			lib("git2", Static),
			search(libDir),
		}
	}

	var ds []Directive

	// The library may bundle its own HTTP parser or pick up the system
	// one; only the generated pkg-config metadata says which happened.
	if usesSystemHTTPParser(filepath.Join(libDir, "pkgconfig", "libgit2.pc")) {
		ds = append(ds, lib("http_parser", Default))
	}

	ds = append(ds, lib("git2", Static), search(libDir))

	if facts.Family == platform.Apple {
		ds = append(ds,
			lib("iconv", Default),
			lib("Security", Framework),
			lib("CoreFoundation", Framework),
		)
	}
	return ds
}

func usesSystemHTTPParser(pcFile string) bool {
	data, err := os.ReadFile(pcFile)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "-lhttp_parser")
}

// Write renders directives one per line.
func Write(w io.Writer, ds []Directive) error {
	for _, d := range ds {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return fmt.Errorf("emit directive: %w", err)
		}
	}
	return nil
}

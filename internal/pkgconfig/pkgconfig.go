// Package pkgconfig locates system libraries through pkg-config metadata.
//
// The build pipeline uses it two ways: extending the metadata search path
// so the generator can discover dependency libraries installed at
// non-standard roots, and as an escape hatch that resolves a pre-built
// system installation of the target library directly.
package pkgconfig

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/execabs"
)

// DefaultTool is the pkg-config binary queried unless overridden.
const DefaultTool = "pkg-config"

// Library is the link information pkg-config reports for one package.
type Library struct {
	Name       string
	Libs       []string // -l names, in reported order
	SearchDirs []string // -L directories, in reported order
}

// HasTool reports whether the pkg-config tool can be invoked at all.
// Absence is a normal condition on some platforms and only changes which
// heuristics the pipeline applies.
func HasTool(tool string) bool {
	if tool == "" {
		tool = DefaultTool
	}
	return execabs.Command(tool, "--version").Run() == nil
}

// FindLibrary asks pkg-config for the link flags of name, searching path
// first. It returns an error when the tool is missing or the package is
// unknown.
func FindLibrary(tool, name string, path SearchPath) (*Library, error) {
	if tool == "" {
		tool = DefaultTool
	}
	cmd := execabs.Command(tool, "--libs", name)
	cmd.Env = os.Environ()
	if e := path.Environ(); e != "" {
		cmd.Env = append(cmd.Env, e)
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s --libs %s: %w", tool, name, err)
	}
	lib := &Library{Name: name}
	for _, tok := range strings.Fields(string(out)) {
		switch {
		case strings.HasPrefix(tok, "-L"):
			lib.SearchDirs = append(lib.SearchDirs, tok[2:])
		case strings.HasPrefix(tok, "-l"):
			lib.Libs = append(lib.Libs, tok[2:])
		}
	}
	return lib, nil
}

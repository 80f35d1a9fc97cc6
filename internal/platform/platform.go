// Package platform classifies compiler triples into the small set of
// platform facts the build pipeline branches on. Classification happens
// once, up front; everything downstream switches on the result instead of
// re-testing triple substrings.
package platform

import "strings"

// Family is the target platform family.
type Family int

const (
	// Unix covers every target that is neither Windows nor Apple.
	Unix Family = iota
	Windows
	Apple
)

func (f Family) String() string {
	switch f {
	case Windows:
		return "windows"
	case Apple:
		return "apple"
	default:
		return "unix"
	}
}

// Facts holds the classified build platform.
type Facts struct {
	Target string
	Host   string

	Family Family
	// MSVC reports whether the target uses the MSVC toolchain rather
	// than a GNU-style one.
	MSVC bool
}

// Classify derives platform facts from the target and host triples.
func Classify(target, host string) Facts {
	return Facts{
		Target: target,
		Host:   host,
		Family: familyOf(target),
		MSVC:   strings.Contains(target, "msvc"),
	}
}

func familyOf(triple string) Family {
	switch {
	case strings.Contains(triple, "windows"):
		return Windows
	case strings.Contains(triple, "apple"):
		return Apple
	default:
		return Unix
	}
}

// CrossWindows reports whether we are building for Windows from a
// non-Windows host. That combination needs GNU binutils substitutes
// (dlltool) that the generator cannot find on its own.
func (f Facts) CrossWindows() bool {
	return f.Family == Windows && familyOf(f.Host) != Windows
}

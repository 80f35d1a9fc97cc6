// Package toolchain discovers C toolchain binaries needed when
// cross-compiling for Windows from another host.
package toolchain

import (
	"os"
	"path/filepath"
	"strings"
)

// Compiler returns the C compiler command for the target triple. An
// explicit cc override wins; otherwise the conventional triple-prefixed
// gcc name is used, matching how cross toolchains are installed.
func Compiler(target, cc string) string {
	if cc != "" {
		return cc
	}
	return target + "-gcc"
}

// Dlltool locates the dlltool variant that sits beside the discovered C
// compiler. It walks the PATH-style pathEnv for the compiler executable,
// substitutes "gcc" with "dlltool" in its file name, and reports the
// sibling path if such a binary exists.
//
// A miss is a normal outcome, not an error: the generator may carry its
// own default.
func Dlltool(compiler, pathEnv string) (string, bool) {
	exe, ok := lookPath(compiler, pathEnv)
	if !ok {
		return "", false
	}
	base := filepath.Base(exe)
	name := strings.ReplaceAll(base, "gcc", "dlltool")
	if name == base {
		return "", false
	}
	dlltool := filepath.Join(filepath.Dir(exe), name)
	if !isExecutable(dlltool) {
		return "", false
	}
	return dlltool, true
}

// lookPath finds the first executable named name in pathEnv. It takes the
// path list as an argument instead of consulting the process environment
// so callers stay in control of what is searched.
func lookPath(name string, pathEnv string) (string, bool) {
	if filepath.IsAbs(name) {
		if isExecutable(name) {
			return name, true
		}
		return "", false
	}
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, name)
		if isExecutable(p) {
			return p, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

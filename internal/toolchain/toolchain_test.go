package toolchain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestCompiler(t *testing.T) {
	if got := Compiler("x86_64-pc-windows-gnu", ""); got != "x86_64-pc-windows-gnu-gcc" {
		t.Errorf("Compiler = %q", got)
	}
	if got := Compiler("x86_64-pc-windows-gnu", "clang"); got != "clang" {
		t.Errorf("Compiler with override = %q, want clang", got)
	}
}

func TestDlltool(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "x86_64-w64-mingw32-gcc"))
	touch(t, filepath.Join(dir, "x86_64-w64-mingw32-dlltool"))
	pathEnv := strings.Join([]string{t.TempDir(), dir}, string(filepath.ListSeparator))

	got, ok := Dlltool("x86_64-w64-mingw32-gcc", pathEnv)
	if !ok {
		t.Fatal("Dlltool not found, want found")
	}
	want := filepath.Join(dir, "x86_64-w64-mingw32-dlltool")
	if got != want {
		t.Errorf("Dlltool = %q, want %q", got, want)
	}
}

func TestDlltoolMissingCompiler(t *testing.T) {
	if _, ok := Dlltool("no-such-gcc", t.TempDir()); ok {
		t.Error("Dlltool found a tool for a missing compiler")
	}
}

func TestDlltoolMissingSibling(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "i686-w64-mingw32-gcc"))

	if _, ok := Dlltool("i686-w64-mingw32-gcc", dir); ok {
		t.Error("Dlltool reported a sibling that does not exist")
	}
}

func TestDlltoolCompilerWithoutGCCInName(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "clang"))

	if _, ok := Dlltool("clang", dir); ok {
		t.Error("Dlltool derived a name from a compiler without gcc in it")
	}
}

func TestDlltoolAbsoluteCompilerPath(t *testing.T) {
	dir := t.TempDir()
	cc := filepath.Join(dir, "arm-gcc")
	touch(t, cc)
	touch(t, filepath.Join(dir, "arm-dlltool"))

	got, ok := Dlltool(cc, "")
	if !ok {
		t.Fatal("Dlltool not found for absolute compiler path")
	}
	if want := filepath.Join(dir, "arm-dlltool"); got != want {
		t.Errorf("Dlltool = %q, want %q", got, want)
	}
}

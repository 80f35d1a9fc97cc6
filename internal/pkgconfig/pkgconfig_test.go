package pkgconfig

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeStub writes an executable shell script and returns its path.
func writeStub(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs are not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHasTool(t *testing.T) {
	stub := writeStub(t, "pkg-config", "exit 0")
	if !HasTool(stub) {
		t.Errorf("HasTool(%q) = false, want true", stub)
	}

	missing := filepath.Join(t.TempDir(), "no-such-tool")
	if HasTool(missing) {
		t.Errorf("HasTool(%q) = true, want false", missing)
	}
}

func TestFindLibrary(t *testing.T) {
	stub := writeStub(t, "pkg-config",
		`echo "-L/usr/local/lib -L/opt/git2/lib -lgit2 -lssh2 -pthread"`)

	lib, err := FindLibrary(stub, "libgit2", SearchPath{})
	if err != nil {
		t.Fatalf("FindLibrary: %v", err)
	}
	if diff := cmp.Diff([]string{"git2", "ssh2"}, lib.Libs); diff != "" {
		t.Errorf("Libs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/usr/local/lib", "/opt/git2/lib"}, lib.SearchDirs); diff != "" {
		t.Errorf("SearchDirs mismatch (-want +got):\n%s", diff)
	}
}

func TestFindLibraryNotFound(t *testing.T) {
	stub := writeStub(t, "pkg-config", "exit 1")
	if _, err := FindLibrary(stub, "libgit2", SearchPath{}); err == nil {
		t.Error("FindLibrary succeeded for unknown package, want error")
	}
}

func TestFindLibrarySearchPathReachesTool(t *testing.T) {
	// The stub echoes the PKG_CONFIG_PATH it sees so we can assert the
	// threaded value arrived without any os.Setenv in between.
	out := filepath.Join(t.TempDir(), "seen")
	stub := writeStub(t, "pkg-config",
		`printf '%s' "$PKG_CONFIG_PATH" > `+out+`; echo "-lgit2"`)

	path := Parse("/pre").Prepend("/opt/dep/lib/pkgconfig")
	if _, err := FindLibrary(stub, "libgit2", path); err != nil {
		t.Fatalf("FindLibrary: %v", err)
	}
	seen, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(seen); got != path.String() {
		t.Errorf("tool saw PKG_CONFIG_PATH=%q, want %q", got, path.String())
	}
}

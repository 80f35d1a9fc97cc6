package pkgconfig

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrependKeepsExistingOrder(t *testing.T) {
	p := Parse(strings.Join([]string{"/a", "/b", "/c"}, string(filepath.ListSeparator)))
	p = p.Prepend("/new")

	want := []string{"/new", "/a", "/b", "/c"}
	if diff := cmp.Diff(want, p.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrependIsAValue(t *testing.T) {
	orig := Parse("/a")
	derived := orig.Prepend("/b").Prepend("/c")

	if got := orig.String(); got != "/a" {
		t.Errorf("original mutated: %q", got)
	}
	want := []string{"/c", "/b", "/a"}
	if diff := cmp.Diff(want, derived.Entries()); diff != "" {
		t.Errorf("derived entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDropsEmptyEntries(t *testing.T) {
	sep := string(filepath.ListSeparator)
	p := Parse(sep + "/a" + sep + sep + "/b" + sep)
	want := []string{"/a", "/b"}
	if diff := cmp.Diff(want, p.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnviron(t *testing.T) {
	t.Setenv("PKG_CONFIG_PATH", "/x"+string(filepath.ListSeparator)+"/y")
	p := FromEnviron()
	want := []string{"/x", "/y"}
	if diff := cmp.Diff(want, p.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnviron(t *testing.T) {
	if got := (SearchPath{}).Environ(); got != "" {
		t.Errorf("empty SearchPath Environ() = %q, want empty", got)
	}
	p := Parse("/a").Prepend("/b")
	want := "PKG_CONFIG_PATH=/b" + string(filepath.ListSeparator) + "/a"
	if got := p.Environ(); got != want {
		t.Errorf("Environ() = %q, want %q", got, want)
	}
}

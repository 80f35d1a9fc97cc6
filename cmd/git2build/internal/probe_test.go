package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestProbeRequiresTriples(t *testing.T) {
	t.Setenv("TARGET", "")
	t.Setenv("HOST", "")

	if err := runProbe(probeCmd, nil); err == nil {
		t.Error("probe succeeded without triples, want error")
	}
}

func TestProbeOutput(t *testing.T) {
	t.Setenv("TARGET", "x86_64-apple-darwin")
	t.Setenv("HOST", "x86_64-apple-darwin")

	var buf bytes.Buffer
	probeCmd.SetOut(&buf)
	defer probeCmd.SetOut(nil)

	if err := runProbe(probeCmd, nil); err != nil {
		t.Fatalf("runProbe: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"family:          apple",
		"msvc:            false",
		"cross-windows:   false",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("probe output missing %q:\n%s", want, out)
		}
	}
}

func TestProbeCrossWindowsSection(t *testing.T) {
	t.Setenv("TARGET", "x86_64-pc-windows-gnu")
	t.Setenv("HOST", "x86_64-unknown-linux-gnu")
	t.Setenv("CC", "")
	t.Setenv("PATH", t.TempDir())

	var buf bytes.Buffer
	probeCmd.SetOut(&buf)
	defer probeCmd.SetOut(nil)

	if err := runProbe(probeCmd, nil); err != nil {
		t.Fatalf("runProbe: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "cross-windows:   true") {
		t.Errorf("probe output missing cross-windows fact:\n%s", out)
	}
	if !strings.Contains(out, "c-compiler:      x86_64-pc-windows-gnu-gcc") {
		t.Errorf("probe output missing compiler fact:\n%s", out)
	}
	if !strings.Contains(out, "dlltool:         (not found") {
		t.Errorf("probe output missing dlltool miss:\n%s", out)
	}
}

// Package verify inspects generated build metadata to confirm that
// requested optional capabilities were actually compiled in. The checks
// exist because capability detection inside the generator is a
// heuristic: a library silently built without SSH would link fine and
// fail only at runtime.
package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrCapabilityMissing marks a capability that was requested but absent
// from the built artifact. Distinguished from plumbing failures because
// it is a correctness check.
var ErrCapabilityMissing = errors.New("capability missing from build")

// sshMarker is the define the generator writes into the compiler flags
// file when SSH support was detected and enabled.
const sshMarker = "-DGIT_SSH"

// SSH confirms the artifact tree at dst was compiled with SSH support,
// by checking the generator-produced compiler flags file.
func SSH(dst string) error {
	flags := filepath.Join(dst, "build", "CMakeFiles", "git2.dir", "flags.make")
	data, err := os.ReadFile(flags)
	if err != nil {
		return fmt.Errorf("read %s: %w", flags, err)
	}
	if !strings.Contains(string(data), sshMarker) {
		return fmt.Errorf("%w: libgit2 was built without libssh2, but the ssh feature was requested", ErrCapabilityMissing)
	}
	return nil
}

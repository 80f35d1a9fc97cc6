package cmake

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
	"golang.org/x/sys/execabs"
)

// minVersion is the oldest generator release the vendored library's own
// build files accept.
const minVersion = "v3.5"

// checkVersion gates on the generator version when it can be determined.
// An unparseable or unobtainable version is accepted: the gate is a
// better diagnostic than cmake's own late failure, not a hard guarantee.
func (c *Config) checkVersion() error {
	out, err := execabs.Command(c.binary, "--version").Output()
	if err != nil {
		return fmt.Errorf("%s --version: %w", c.binary, err)
	}
	v, ok := parseVersion(string(out))
	if !ok {
		return nil
	}
	if semver.Compare(v, minVersion) < 0 {
		return fmt.Errorf("cmake %s is too old, need %s or newer", strings.TrimPrefix(v, "v"), strings.TrimPrefix(minVersion, "v"))
	}
	return nil
}

// parseVersion extracts a semver from "cmake version X.Y.Z..." output.
func parseVersion(out string) (string, bool) {
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "cmake" || fields[1] != "version" {
		return "", false
	}
	// Strip vendor suffixes like "3.28.1-dirty".
	v, _, _ := strings.Cut(fields[2], "-")
	v = "v" + v
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}

// Package buildenv reads the build configuration contract from the
// process environment: capability flags, compiler triples, the output
// directory and per-dependency hints.
package buildenv

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingTriple marks an absent mandatory triple variable.
var ErrMissingTriple = errors.New("missing compiler triple")

// Injection controls the manual SSH flag injection heuristic.
type Injection int

const (
	// InjectAuto applies the built-in heuristic: inject when targeting
	// the Windows family or when no pkg-config tool is available.
	InjectAuto Injection = iota
	InjectAlways
	InjectNever
)

// ParseInjection parses an injection override value. The empty string
// means auto.
func ParseInjection(s string) (Injection, error) {
	switch s {
	case "", "auto":
		return InjectAuto, nil
	case "always":
		return InjectAlways, nil
	case "never":
		return InjectNever, nil
	}
	return InjectAuto, fmt.Errorf("invalid ssh injection mode %q (want auto, always or never)", s)
}

// Config is the seed configuration read from the environment. The
// pipeline treats it as read-only once assembled.
type Config struct {
	SSH   bool
	HTTPS bool

	Target string
	Host   string
	OutDir string

	// UsePkgConfig opts into the escape hatch: resolve a pre-built
	// system libgit2 via pkg-config instead of building from source.
	UsePkgConfig bool

	SSHInject Injection
	Generator string // cmake -G value, empty for the default
	BuildType string // CMAKE_BUILD_TYPE
	Jobs      string // parallel build jobs, empty for the generator default
	CC        string // C compiler override
}

// Dependency identifies one optional system library by logical name,
// with discovery hints taken from the environment.
type Dependency struct {
	Name    string // lowercase logical name: "ssh2", "openssl", "z"
	Root    string // installation root, "" when unknown
	Include string // include directory hint, "" when unknown
}

// Read extracts the configuration seed and the dependency list from the
// environment. Dependencies are returned for the enabled capability set:
// ssh2 when SSH is on, openssl when HTTPS is on, and zlib always.
func Read() (*Config, []Dependency, error) {
	cfg := &Config{
		SSH:          envSet("CARGO_FEATURE_SSH"),
		HTTPS:        envSet("CARGO_FEATURE_HTTPS"),
		Target:       os.Getenv("TARGET"),
		Host:         os.Getenv("HOST"),
		OutDir:       os.Getenv("OUT_DIR"),
		UsePkgConfig: envSet("LIBGIT2_SYS_USE_PKG_CONFIG"),
		Generator:    os.Getenv("CMAKE_GENERATOR"),
		Jobs:         os.Getenv("NUM_JOBS"),
		CC:           os.Getenv("CC"),
	}
	if cfg.Target == "" {
		return nil, nil, fmt.Errorf("%w: TARGET is not set", ErrMissingTriple)
	}
	if cfg.Host == "" {
		return nil, nil, fmt.Errorf("%w: HOST is not set", ErrMissingTriple)
	}
	if cfg.OutDir == "" {
		return nil, nil, errors.New("OUT_DIR is not set")
	}

	inject, err := ParseInjection(os.Getenv("GIT2_SSH_INJECT"))
	if err != nil {
		return nil, nil, fmt.Errorf("GIT2_SSH_INJECT: %w", err)
	}
	cfg.SSHInject = inject
	cfg.BuildType = buildType(os.Getenv("PROFILE"), os.Getenv("DEBUG"), os.Getenv("OPT_LEVEL"))

	var deps []Dependency
	if cfg.SSH {
		deps = append(deps, readDep("ssh2"))
	}
	if cfg.HTTPS {
		deps = append(deps, readDep("openssl"))
	}
	deps = append(deps, readDep("z"))
	return cfg, deps, nil
}

// Dep returns the dependency with the given logical name, if registered.
func Dep(deps []Dependency, name string) (Dependency, bool) {
	for _, d := range deps {
		if d.Name == name {
			return d, true
		}
	}
	return Dependency{}, false
}

func readDep(name string) Dependency {
	upper := strings.ToUpper(name)
	return Dependency{
		Name:    name,
		Root:    os.Getenv("DEP_" + upper + "_ROOT"),
		Include: os.Getenv("DEP_" + upper + "_INCLUDE"),
	}
}

// buildType maps the conventional PROFILE/DEBUG/OPT_LEVEL variables to a
// CMAKE_BUILD_TYPE. Release is the default; an explicit debug profile or
// an unoptimized debug build selects Debug.
func buildType(profile, debug, optLevel string) string {
	if profile == "debug" {
		return "Debug"
	}
	if profile == "" && debug == "true" && (optLevel == "" || optLevel == "0") {
		return "Debug"
	}
	return "Release"
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

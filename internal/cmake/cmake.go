// Package cmake drives the external CMake generator for a single
// configure-and-build run of the vendored library.
package cmake

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/execabs"
)

type defineValue struct {
	value    string
	typeName string
}

// Config accumulates the generator configuration. Once Build is called
// it must not be modified; the pipeline treats the result as frozen.
type Config struct {
	sourceDir  string
	outDir     string
	buildDir   string
	generator  string
	buildType  string
	defines    map[string]defineValue
	cflags     []string
	extraEnv   []string // KEY=VALUE entries appended to the inherited env
	jobs       string
	binary     string
	diagnostic io.Writer // generator output; never stdout
}

// New returns a Config building sourceDir into outDir. The generator's
// own build tree lives under outDir/build and the artifacts are
// installed into outDir itself.
func New(sourceDir, outDir string) *Config {
	return &Config{
		sourceDir:  sourceDir,
		outDir:     outDir,
		buildDir:   filepath.Join(outDir, "build"),
		defines:    make(map[string]defineValue),
		binary:     "cmake",
		diagnostic: os.Stderr,
	}
}

// Generator sets the CMake generator (e.g. "Ninja", "Unix Makefiles").
func (c *Config) Generator(name string) { c.generator = name }

// BuildType sets CMAKE_BUILD_TYPE (e.g. "Release", "Debug").
func (c *Config) BuildType(name string) { c.buildType = name }

// Jobs sets the parallel job count passed to cmake --build.
func (c *Config) Jobs(n string) { c.jobs = n }

// Binary overrides the cmake executable. Used by tests and callers that
// pin a specific generator installation.
func (c *Config) Binary(path string) { c.binary = path }

// Diagnostic redirects generator output. It defaults to stderr so that
// stdout stays reserved for link directives.
func (c *Config) Diagnostic(w io.Writer) { c.diagnostic = w }

// Define adds a -D<key>:STRING=<value> definition.
func (c *Config) Define(key, value string) {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *Config) DefineBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
}

// CFlag appends flags to the C compiler flag list.
func (c *Config) CFlag(flags ...string) {
	c.cflags = append(c.cflags, flags...)
}

// Env appends a KEY=VALUE entry to the subprocess environment. Later
// entries override inherited ones; the process environment itself is
// never mutated.
func (c *Config) Env(key, value string) {
	c.extraEnv = append(c.extraEnv, key+"="+value)
}

// OutDir returns the artifact root.
func (c *Config) OutDir() string { return c.outDir }

// Build resets the output directory, configures and builds the install
// target, and returns the artifact root. The reset guarantees no stale
// artifacts from a previous configuration survive into this run.
func (c *Config) Build() (string, error) {
	if err := os.RemoveAll(c.outDir); err != nil {
		return "", fmt.Errorf("reset %s: %w", c.outDir, err)
	}
	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", c.outDir, err)
	}

	if err := c.checkVersion(); err != nil {
		return "", err
	}

	args := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		args = append(args, "-G", c.generator)
	}
	c.Define("CMAKE_INSTALL_PREFIX", c.outDir)
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	if len(c.cflags) > 0 {
		c.Define("CMAKE_C_FLAGS", strings.Join(c.cflags, " "))
	}
	args = append(args, c.definesArgs()...)
	if err := c.run(args); err != nil {
		return "", err
	}

	buildArgs := []string{"--build", c.buildDir, "--target", "install"}
	if c.buildType != "" {
		buildArgs = append(buildArgs, "--config", c.buildType)
	}
	if c.jobs != "" {
		buildArgs = append(buildArgs, "--parallel", c.jobs)
	}
	if err := c.run(buildArgs); err != nil {
		return "", err
	}
	return c.outDir, nil
}

func (c *Config) run(args []string) error {
	cmd := execabs.Command(c.binary, args...)
	cmd.Stdout = c.diagnostic
	cmd.Stderr = c.diagnostic
	cmd.Env = append(os.Environ(), c.extraEnv...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", c.binary, strings.Join(args, " "), err)
	}
	return nil
}

func (c *Config) definesArgs() []string {
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}

// Package pipeline runs the build orchestration for the vendored
// libgit2 tree: register dependencies, adapt the configuration to the
// platform, drive the generator, verify capabilities and emit link
// directives. Execution is strictly linear; any failure aborts the run
// and is reported by the caller.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Nemo157/libgit2-build/internal/buildenv"
	"github.com/Nemo157/libgit2-build/internal/cmake"
	"github.com/Nemo157/libgit2-build/internal/link"
	"github.com/Nemo157/libgit2-build/internal/pkgconfig"
	"github.com/Nemo157/libgit2-build/internal/platform"
	"github.com/Nemo157/libgit2-build/internal/toolchain"
	"github.com/Nemo157/libgit2-build/internal/verify"
)

// Options configures one pipeline run.
type Options struct {
	Config *buildenv.Config
	Deps   []buildenv.Dependency

	// SourceDir is the vendored libgit2 source tree.
	SourceDir string

	// Output receives the link directives. Defaults to os.Stdout.
	Output io.Writer

	Logger zerolog.Logger

	// Tool overrides, used by tests.
	CMakeBin     string
	PkgConfigBin string
}

// Run executes the pipeline once. The returned error carries the full
// diagnostic; Run itself never terminates the process.
func Run(opts Options) error {
	cfg := opts.Config
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	log := opts.Logger

	// Dependency registrar: each dependency root contributes its
	// pkg-config directory, highest priority first. The result is a
	// value threaded into subprocess environments, never set globally.
	searchPath := pkgconfig.FromEnviron()
	for _, dep := range opts.Deps {
		if dep.Root == "" {
			continue
		}
		dir := filepath.Join(dep.Root, "lib", "pkgconfig")
		searchPath = searchPath.Prepend(dir)
		log.Debug().Str("dep", dep.Name).Str("dir", dir).Msg("registered dependency metadata path")
	}

	hasPkgConfig := pkgconfig.HasTool(opts.PkgConfigBin)
	log.Debug().Bool("pkg-config", hasPkgConfig).Msg("probed system tooling")

	// Escape hatch: a discoverable pre-built installation replaces the
	// whole source build when the caller opted in.
	if cfg.UsePkgConfig {
		if lib, err := pkgconfig.FindLibrary(opts.PkgConfigBin, "libgit2", searchPath); err == nil {
			log.Info().Msg("using system libgit2 via pkg-config")
			return link.Write(out, systemDirectives(lib))
		}
		log.Debug().Msg("no system libgit2 found, building from source")
	}

	facts := platform.Classify(cfg.Target, cfg.Host)
	log.Debug().
		Stringer("family", facts.Family).
		Bool("msvc", facts.MSVC).
		Msg("classified target platform")

	gen := cmake.New(opts.SourceDir, cfg.OutDir)
	if opts.CMakeBin != "" {
		gen.Binary(opts.CMakeBin)
	}
	if e := searchPath.String(); e != "" {
		gen.Env("PKG_CONFIG_PATH", e)
	}
	configure(gen, cfg, opts.Deps, facts, hasPkgConfig, log)

	dst, err := gen.Build()
	if err != nil {
		return fmt.Errorf("build libgit2: %w", err)
	}
	log.Info().Str("dst", dst).Msg("libgit2 built")

	// The manual SSH injection above is a heuristic, so confirm that
	// SSH support actually made it into the build. MSVC targets encode
	// their flags elsewhere and are exempt.
	if cfg.SSH && !facts.MSVC {
		if err := verify.SSH(dst); err != nil {
			return err
		}
		log.Debug().Msg("verified ssh capability")
	}

	return link.Write(out, link.Emit(dst, facts))
}

// configure translates the feature set and platform facts into the
// final generator configuration. Every optional capability ends up
// explicit: enabled through a registered dependency or forced off with
// a define, never left to the generator's own detection.
func configure(gen *cmake.Config, cfg *buildenv.Config, deps []buildenv.Dependency, facts platform.Facts, hasPkgConfig bool, log zerolog.Logger) {
	if cfg.Generator != "" {
		gen.Generator(cfg.Generator)
	}
	gen.BuildType(cfg.BuildType)
	if cfg.Jobs != "" {
		gen.Jobs(cfg.Jobs)
	}

	if facts.MSVC {
		// Whole-program optimization needs a matching linker flag we
		// never pass, so it has to be suppressed up front.
		gen.CFlag("/GL-")
		// The consuming build links a dynamic C runtime.
		gen.Define("STATIC_CRT", "OFF")
	}

	// The generator's own libssh2 detection fails on windows and
	// wherever pkg-config is unavailable; inject the flags by hand when
	// the heuristic (or its override) says so and a hint exists.
	if cfg.SSH && injectSSH(cfg.SSHInject, facts, hasPkgConfig) {
		if ssh2, ok := buildenv.Dep(deps, "ssh2"); ok && ssh2.Include != "" {
			if facts.MSVC {
				gen.CFlag("/I"+ssh2.Include, "/DGIT_SSH")
			} else {
				gen.CFlag("-I"+ssh2.Include, "-DGIT_SSH")
			}
			log.Debug().Str("include", ssh2.Include).Msg("manually injected ssh flags")
		}
	}

	// Cross-compiling for windows rarely has a plain dlltool on PATH;
	// point the generator at the toolchain's own variant when one sits
	// beside the C compiler. A miss is fine, the generator has its own
	// default.
	if facts.CrossWindows() {
		cc := toolchain.Compiler(cfg.Target, cfg.CC)
		if dlltool, ok := toolchain.Dlltool(cc, os.Getenv("PATH")); ok {
			gen.Define("DLLTOOL", dlltool)
			log.Debug().Str("dlltool", dlltool).Msg("substituted import-library tool")
		}
	}

	if !cfg.SSH {
		gen.Define("USE_SSH", "OFF")
	}
	if !cfg.HTTPS {
		gen.Define("USE_OPENSSL", "OFF")
	}

	gen.Define("BUILD_SHARED_LIBS", "OFF")
	gen.Define("BUILD_CLAR", "OFF")
	gen.Define("CURL", "OFF")
}

// injectSSH decides whether to bypass the generator's ssh detection.
func injectSSH(mode buildenv.Injection, facts platform.Facts, hasPkgConfig bool) bool {
	switch mode {
	case buildenv.InjectAlways:
		return true
	case buildenv.InjectNever:
		return false
	default:
		return facts.Family == platform.Windows || !hasPkgConfig
	}
}

// systemDirectives converts pkg-config link metadata for a pre-built
// installation into directives: search paths first, then libraries.
func systemDirectives(lib *pkgconfig.Library) []link.Directive {
	ds := make([]link.Directive, 0, len(lib.SearchDirs)+len(lib.Libs))
	for _, dir := range lib.SearchDirs {
		ds = append(ds, link.Directive{Search: dir})
	}
	for _, name := range lib.Libs {
		ds = append(ds, link.Directive{Lib: name})
	}
	return ds
}

package internal

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Nemo157/libgit2-build/internal/buildenv"
	"github.com/Nemo157/libgit2-build/internal/pipeline"
)

var (
	buildConfigFile string
	buildSourceDir  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure and build libgit2, then print link directives",
	Long: `Build reads the feature flags, triples and dependency hints from the
environment (and an optional override file), drives the CMake generator
over the vendored libgit2 tree, and prints link directives on stdout.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildConfigFile, "config", "c", "", "HCL override file for hints and heuristics")
	buildCmd.Flags().StringVarP(&buildSourceDir, "source", "s", "libgit2", "Path to the vendored libgit2 source tree")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	// A .env beside the invocation is a convenience for local runs; the
	// real contract is the inherited environment.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
		logger.Debug().Msg("loaded .env")
	}

	cfg, deps, err := buildenv.Read()
	if err != nil {
		return err
	}

	if buildConfigFile != "" {
		overrides, err := buildenv.LoadOverrides(buildConfigFile)
		if err != nil {
			return err
		}
		if err := buildenv.Apply(overrides, cfg, deps); err != nil {
			return fmt.Errorf("apply %s: %w", buildConfigFile, err)
		}
		logger.Debug().Str("file", buildConfigFile).Msg("applied overrides")
	}

	return pipeline.Run(pipeline.Options{
		Config:    cfg,
		Deps:      deps,
		SourceDir: buildSourceDir,
		Output:    os.Stdout,
		Logger:    logger,
	})
}

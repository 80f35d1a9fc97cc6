package internal

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

// logger writes diagnostics to stderr; stdout is reserved for the link
// directives consumed by the invoking build system.
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

var rootCmd = &cobra.Command{
	Use:   "git2build",
	Short: "git2build compiles the vendored libgit2 and emits link directives",
	Long: `git2build is a single-purpose build step: it configures and compiles
the vendored libgit2 source tree for the requested feature set and target
platform, verifies the requested capabilities were compiled in, and prints
the link directives the consuming build system needs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = logger.Level(level)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug diagnostics on stderr")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal().Err(err).Msg("build step failed")
	}
}

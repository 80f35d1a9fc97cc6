package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nemo157/libgit2-build/internal/pkgconfig"
	"github.com/Nemo157/libgit2-build/internal/platform"
	"github.com/Nemo157/libgit2-build/internal/toolchain"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print the detected platform and tooling facts",
	Long: `Probe classifies the TARGET/HOST triples and reports which external
tools the build pipeline would find, without building anything. It exists
for debugging misconfigured build environments.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	target := os.Getenv("TARGET")
	host := os.Getenv("HOST")
	if target == "" || host == "" {
		return fmt.Errorf("TARGET and HOST must be set")
	}

	facts := platform.Classify(target, host)
	fmt.Fprintf(out, "target:          %s\n", facts.Target)
	fmt.Fprintf(out, "host:            %s\n", facts.Host)
	fmt.Fprintf(out, "family:          %s\n", facts.Family)
	fmt.Fprintf(out, "msvc:            %v\n", facts.MSVC)
	fmt.Fprintf(out, "cross-windows:   %v\n", facts.CrossWindows())
	fmt.Fprintf(out, "pkg-config:      %v\n", pkgconfig.HasTool(""))

	if facts.CrossWindows() {
		cc := toolchain.Compiler(target, os.Getenv("CC"))
		fmt.Fprintf(out, "c-compiler:      %s\n", cc)
		if dlltool, ok := toolchain.Dlltool(cc, os.Getenv("PATH")); ok {
			fmt.Fprintf(out, "dlltool:         %s\n", dlltool)
		} else {
			fmt.Fprintf(out, "dlltool:         (not found, generator default applies)\n")
		}
	}
	return nil
}

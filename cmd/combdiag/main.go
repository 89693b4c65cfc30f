package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"combdiag/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "combdiag",
	Short: "Render captured parser-combinator failures",
	Long: `combdiag renders the annotated reports captured from failing
parser-combinator calls, either from saved replay files or from the
built-in demo parser.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupSession,
	PersistentPostRunE: teardownSession,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(literalCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off); defaults to combdiag.toml or auto")
	rootCmd.PersistentFlags().String("config", "", "path to combdiag.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command and exits with status 1 on error.
func main() {
	rootCmd.Version = version.Styled(false)
	err := rootCmd.Execute()
	_ = teardownSession(nil, nil) //nolint:errcheck // never fails
	if err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

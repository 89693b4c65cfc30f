package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"combdiag/internal/diag"
	"combdiag/internal/diagfmt"
	"combdiag/internal/driver"
	"combdiag/internal/version"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file.ctx>",
	Short: "Render one replay file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().String("format", "", "output format (pretty|json|sarif)")
	renderCmd.Flags().String("origin", "", "report this path instead of the recorded origin")
	renderCmd.Flags().String("source", "", "check the captured fragments against this source file")
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	origin, err := cmd.Flags().GetString("origin")
	if err != nil {
		return fmt.Errorf("failed to get origin flag: %w", err)
	}

	sourcePath, err := cmd.Flags().GetString("source")
	if err != nil {
		return fmt.Errorf("failed to get source flag: %w", err)
	}

	opts := driver.Options{Render: current.render, Origin: origin}
	res, err := driver.RenderFile(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if err := writeResults(cmd, []driver.Result{res}, format, false); err != nil {
		return err
	}
	if sourcePath == "" {
		return nil
	}
	mismatches, err := driver.VerifySource(res.Error, current.render.Selector, sourcePath)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s:%s\n", sourcePath, m)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%s: %d fragment(s) differ from %s", args[0], len(mismatches), sourcePath)
	}
	return nil
}

// writeResults prints pretty reports to stderr, like a compiler would, and
// machine-readable formats to stdout.
// With dedup, pretty output shows each failing call site once.
func writeResults(cmd *cobra.Command, results []driver.Result, format string, dedup bool) error {
	switch format {
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), driver.Reports(results), diagfmt.JSONOpts{IncludeSource: true})
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:    "combdiag",
			ToolVersion: version.Styled(false),
			RuleID:      current.render.Title,
		}
		return diagfmt.Sarif(cmd.OutOrStdout(), driver.Reports(results), meta)
	default:
		return writePretty(cmd.ErrOrStderr(), results, dedup)
	}
}

func writePretty(w io.Writer, results []driver.Result, dedup bool) error {
	var rep diag.Reporter = diag.WriterReporter{W: w, Opts: current.render}
	if dedup {
		rep = diag.NewDedupReporter(rep)
	}
	for _, res := range results {
		if res.LoadErr != nil {
			if _, err := fmt.Fprintf(w, "%s: %v\n", res.Path, res.LoadErr); err != nil {
				return err
			}
			continue
		}
		rep.Report(res.Error)
	}
	return nil
}

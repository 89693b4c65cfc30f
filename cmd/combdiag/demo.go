package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"combdiag/internal/demo"
	"combdiag/internal/diag"
	"combdiag/internal/replay"
	"combdiag/internal/trace"
)

var demoCmd = &cobra.Command{
	Use:   "demo [flags] <input>",
	Short: "Run the built-in instrumented parser on input",
	Long: `Parse input as "key=digits" with a built-in instrumented parser. On
failure the captured report is printed and the command exits non-zero;
--save stores it as a replay file.`,
	Args: cobra.ExactArgs(1),
	RunE: runDemo,
}

// errDemoFailed makes the process exit non-zero after a failure report, the
// way render and batch do.
var errDemoFailed = errors.New("input did not parse")

func init() {
	demoCmd.Flags().String("save", "", "write the failure to this replay file")
	demoCmd.Flags().String("message", "", "message to attach to the failure")
	demoCmd.Flags().Bool("source", false, "print the instrumented function and exit")
}

func runDemo(cmd *cobra.Command, args []string) error {
	showSource, err := cmd.Flags().GetBool("source")
	if err != nil {
		return fmt.Errorf("failed to get source flag: %w", err)
	}
	if showSource {
		_, err := fmt.Fprint(cmd.OutOrStdout(), demo.Source)
		return err
	}
	savePath, err := cmd.Flags().GetString("save")
	if err != nil {
		return fmt.Errorf("failed to get save flag: %w", err)
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("failed to get message flag: %w", err)
	}

	tr := trace.FromContext(cmd.Context())
	span := trace.Begin(tr, trace.ScopeDriver, "demo", 0).WithExtra("input", args[0])
	rest, kv, err := demo.ParseAssignment(args[0])
	if err == nil {
		span.End("ok")
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "key=%q value=%q rest=%q\n", kv.Key, kv.Value, rest)
		return err
	}

	e, ok := diag.FromError(err)
	if !ok {
		span.End("failed")
		return err
	}
	span.End("parse error")
	if message != "" {
		e.SetMessage(message)
	}
	if _, err := fmt.Fprint(cmd.ErrOrStderr(), e.Render(current.render)); err != nil {
		return err
	}
	if savePath != "" {
		if err := replay.WriteFile(savePath, e); err != nil {
			return fmt.Errorf("save %s: %w", savePath, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", savePath)
	}
	return errDemoFailed
}

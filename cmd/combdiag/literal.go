package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"combdiag/internal/driver"
	"combdiag/internal/replay"
)

var literalCmd = &cobra.Command{
	Use:   "literal [flags] <file.ctx>",
	Short: "Print a replay file as a Go expression",
	Long: `Print a Go expression that rebuilds the captured error, for embedding in
generated code. The file argument defaults to the recorded origin; pass
--file-expr to emit any expression instead, e.g. a constant.`,
	Args: cobra.ExactArgs(1),
	RunE: runLiteral,
}

func init() {
	literalCmd.Flags().String("file-expr", "", "Go expression emitted as the file argument")
}

func runLiteral(cmd *cobra.Command, args []string) error {
	fileExpr, err := cmd.Flags().GetString("file-expr")
	if err != nil {
		return fmt.Errorf("failed to get file-expr flag: %w", err)
	}
	e, err := driver.LoadFile(cmd.Context(), args[0], driver.Options{})
	if err != nil {
		return err
	}
	if fileExpr == "" {
		fileExpr = strconv.Quote(e.File())
	}
	if err := replay.Literal(cmd.OutOrStdout(), e, fileExpr); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout())
	return err
}

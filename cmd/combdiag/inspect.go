package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"combdiag/internal/driver"
	"combdiag/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.ctx>",
	Short: "List the fragments captured in a replay file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := driver.LoadFile(cmd.Context(), args[0], driver.Options{})
		if err != nil {
			return err
		}
		out := ui.Inspect(e, ui.InspectOpts{Color: current.color, Selector: current.render.Selector})
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"combdiag/internal/driver"
	"combdiag/internal/observ"
	"combdiag/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <directory>",
	Short: "Render every replay file in a directory",
	Long:  `Render every *.ctx file under a directory in parallel. Output follows sorted path order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().String("format", "", "output format (pretty|json|sarif)")
	batchCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	batchCmd.Flags().String("ui", "off", "show a progress view (auto|on|off)")
	batchCmd.Flags().Bool("summary", true, "print a one-line summary to stderr")
	batchCmd.Flags().Bool("timings", false, "print per-file timings to stderr")
	batchCmd.Flags().Bool("dedup", false, "show each failing call site once in pretty output")
}

// timingSink records the elapsed time of every finished file.
type timingSink struct {
	timer *observ.Timer
	next  driver.ProgressSink
}

func (s timingSink) OnEvent(ev driver.Event) {
	if ev.File != "" {
		switch ev.Status {
		case driver.StatusDone, driver.StatusPlaceholder, driver.StatusError:
			s.timer.Record(ev.File, ev.Elapsed, string(ev.Status))
		}
	}
	if s.next != nil {
		s.next.OnEvent(ev)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	showSummary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return fmt.Errorf("failed to get summary flag: %w", err)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	dedup, err := cmd.Flags().GetBool("dedup")
	if err != nil {
		return fmt.Errorf("failed to get dedup flag: %w", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	timer := observ.NewTimer()
	opts := driver.Options{Render: current.render, Jobs: jobs}
	if showTimings {
		opts.Progress = timingSink{timer: timer}
	}
	var results []driver.Result
	if shouldUseTUI(mode) {
		results, err = runBatchWithUI(cmd.Context(), dir, opts)
	} else {
		results, err = driver.RenderDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return err
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if err := writeResults(cmd, results, format, dedup); err != nil {
		return err
	}
	s := driver.Summarize(results)
	if showSummary {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s): %d rendered, %d placeholder(s), %d failed\n",
			s.Files, s.Rendered, s.Placeholders, s.Failed)
	}
	if s.Failed > 0 {
		return fmt.Errorf("%d replay file(s) could not be loaded", s.Failed)
	}
	return nil
}

type batchOutcome struct {
	results []driver.Result
	err     error
}

// runBatchWithUI renders dir while a Bubble Tea progress view consumes
// driver events.
func runBatchWithUI(ctx context.Context, dir string, opts driver.Options) ([]driver.Result, error) {
	files, err := driver.ListReplayFiles(dir)
	if err != nil {
		return nil, err
	}
	return renderWithView(ctx, dir, opts, func(events <-chan driver.Event) error {
		model := ui.NewProgressModel("rendering "+dir, files, events)
		_, err := tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()
		return err
	})
}

// renderWithView runs the batch in the background and hands its events to
// view. Events the view leaves unread are drained so the batch can finish.
func renderWithView(ctx context.Context, dir string, opts driver.Options, view func(<-chan driver.Event) error) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		o := opts
		var sink driver.ProgressSink = driver.ChannelSink{Ch: events}
		if ts, ok := opts.Progress.(timingSink); ok {
			ts.next = sink
			sink = ts
		}
		o.Progress = sink
		res, err := driver.RenderDir(ctx, dir, o)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	viewErr := view(events)
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if viewErr != nil {
		return outcome.results, viewErr
	}
	return outcome.results, outcome.err
}

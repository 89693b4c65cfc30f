// Package driver loads replay files and renders their reports.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"combdiag/internal/diag"
	"combdiag/internal/diagfmt"
	"combdiag/internal/replay"
	"combdiag/internal/trace"
)

// Options configures loading and rendering.
type Options struct {
	Render diag.RenderOpts
	// Origin replaces the recorded origin of every loaded error when set.
	Origin string
	// Jobs bounds RenderDir's parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Progress, when set, receives per-file events.
	Progress ProgressSink
}

// Result is the outcome for one replay file.
type Result struct {
	Path   string
	Error  *diag.Error // nil when LoadErr is set
	Report diagfmt.Report
	Text   string
	// LoadErr is set when the file could not be read or decoded.
	LoadErr error
}

// Placeholder reports whether the report could not be reconstructed.
func (r Result) Placeholder() bool {
	return r.LoadErr == nil && r.Report.IsPlaceholder()
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Files        int
	Rendered     int
	Placeholders int
	Failed       int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.LoadErr != nil:
			s.Failed++
		case r.Placeholder():
			s.Placeholders++
		default:
			s.Rendered++
		}
	}
	return s
}

// ListReplayFiles returns every replay file under dir in sorted order.
func ListReplayFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, replay.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile decodes one replay file.
func LoadFile(ctx context.Context, path string, opts Options) (*diag.Error, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "load", 0).WithExtra("path", path)
	e, err := replay.ReadFile(path, opts.Origin)
	if err != nil {
		span.End("failed")
		return nil, err
	}
	span.End("")
	return e, nil
}

// RenderFile loads and renders one replay file. Load failures are returned
// both as the error and in Result.LoadErr.
func RenderFile(ctx context.Context, path string, opts Options) (Result, error) {
	return renderFile(ctx, path, opts, 0)
}

func renderFile(ctx context.Context, path string, opts Options, parent uint64) (Result, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, "render", parent).WithExtra("path", path)

	start := time.Now()
	res := Result{Path: path}
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	e, err := replay.ReadFile(path, opts.Origin)
	if err != nil {
		res.LoadErr = err
		span.End("load failed")
		trace.Fault(tr, trace.ScopeFile, "load", err.Error(), span.ID())
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return res, err
	}

	emit(opts.Progress, Event{File: path, Stage: StageRender, Status: StatusWorking})
	res.Error = e
	res.Report = e.Report(opts.Render)
	res.Text = e.Render(opts.Render)
	status := StatusDone
	if diag.Enabled && res.Report.IsPlaceholder() {
		status = StatusPlaceholder
		trace.Fault(tr, trace.ScopeReport, "placeholder", res.Report.Title, span.ID())
	}
	span.End("")
	emit(opts.Progress, Event{File: path, Stage: StageRender, Status: status, Elapsed: time.Since(start)})
	return res, nil
}

// RenderDir renders every replay file under dir concurrently. Results are in
// sorted path order; per-file load failures are reported in Result.LoadErr
// and do not abort the batch.
func RenderDir(ctx context.Context, dir string, opts Options) ([]Result, error) {
	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, "batch", 0).WithExtra("dir", dir)

	files, err := ListReplayFiles(dir)
	if err != nil {
		root.End("list failed")
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(files) == 0 {
		root.End("empty")
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Each goroutine owns one index.
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], _ = renderFile(gctx, path, opts, root.ID()) //nolint:errcheck // kept in LoadErr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		root.End("cancelled")
		return nil, err
	}

	s := Summarize(results)
	emit(opts.Progress, Event{Stage: StageRender, Status: StatusDone})
	root.WithExtra("files", fmt.Sprint(s.Files)).
		WithExtra("placeholders", fmt.Sprint(s.Placeholders)).
		WithExtra("failed", fmt.Sprint(s.Failed)).
		End("")
	return results, nil
}

// Reports extracts the reports of successfully loaded results.
func Reports(results []Result) []diagfmt.Report {
	out := make([]diagfmt.Report, 0, len(results))
	for _, r := range results {
		if r.LoadErr == nil {
			out = append(out, r.Report)
		}
	}
	return out
}

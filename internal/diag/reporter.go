package diag

import (
	"io"
)

// Reporter receives failures from instrumented parsers.
type Reporter interface {
	Report(e *Error)
}

// NopReporter drops every report.
type NopReporter struct{}

func (NopReporter) Report(*Error) {}

// WriterReporter renders each Error to W, typically os.Stderr.
type WriterReporter struct {
	W    io.Writer
	Opts RenderOpts
}

func (r WriterReporter) Report(e *Error) {
	if !Enabled || r.W == nil || e == nil {
		return
	}
	// best effort: the sink is a terminal or log
	_, _ = io.WriteString(r.W, e.Render(r.Opts))
}

type dedupKey struct {
	file    string
	sigLine uint32
	line    uint32
	start   uint32
	msg     string
}

// DedupReporter forwards only the first report for each failing call site.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter wraps next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(e *Error) {
	if r == nil || e == nil {
		return
	}
	key := dedupKey{file: e.File(), msg: e.Message()}
	if fc := e.Context(); fc != nil {
		key.sigLine = fc.Signature.LineNumber
		if agg, err := e.CombineParserSources(nil); err == nil {
			key.line = agg.LineNumber
			key.start = agg.StartColumn.Value
		}
	}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(e)
	}
}

//go:build !nodiag

package diag

import (
	"errors"

	"combdiag/internal/capture"
	"combdiag/internal/diagfmt"
	"combdiag/internal/source"
)

// Enabled reports whether diagnostics were compiled in.
const Enabled = true

type debugInfo struct {
	context *capture.FunctionContext
	file    string
}

// Context returns the captured function context, or nil.
func (e *Error) Context() *capture.FunctionContext {
	return e.context
}

// SetContext stores a copy of fc. A context already present is never
// replaced; the return value reports whether fc was stored.
func (e *Error) SetContext(fc *capture.FunctionContext) bool {
	if e.context != nil || fc == nil {
		return false
	}
	e.context = fc.Clone()
	return true
}

// File returns the originating file path, or "".
func (e *Error) File() string {
	return e.file
}

// SetFile records the originating file path.
func (e *Error) SetFile(file string) *Error {
	e.file = file
	return e
}

// CombineParserSources merges the selected invocation's fragments.
func (e *Error) CombineParserSources(sel capture.Selector) (capture.Capture, error) {
	if sel == nil {
		sel = capture.FirstInvocation
	}
	return capture.CombineWith(e.context, sel)
}

// Clone returns a deep copy.
func (e *Error) Clone() *Error {
	if e == nil {
		return nil
	}
	out := *e
	out.context = e.context.Clone()
	return &out
}

// Report reduces the error to a two-snippet annotated report, or to a
// placeholder when the failing invocation cannot be reconstructed.
func (e *Error) Report(opts RenderOpts) diagfmt.Report {
	opts = opts.withDefaults()

	agg, err := e.CombineParserSources(opts.Selector)
	if err != nil {
		return placeholder(err)
	}

	origin := opts.UnknownOrigin
	if e.file != "" {
		origin = source.FormatPath(e.file, opts.PathMode.String(), opts.BaseDir)
	}

	// +1: the space after a synthesized assignment in a destructuring
	// binding is part of the text but not of the measured span.
	highlight := diagfmt.Annotation{
		Level: diagfmt.LevelError,
		Start: agg.StartColumn.Value,
		End:   agg.SpanLength.Value + 1,
		Label: opts.Label,
	}

	r := diagfmt.Report{
		Level: diagfmt.LevelError,
		Title: opts.Title,
		Snippets: []diagfmt.Snippet{
			{
				Source:    e.context.Signature.SourceText,
				Origin:    origin,
				LineStart: e.context.Signature.LineNumber,
			},
			{
				Source:      agg.SourceText,
				LineStart:   agg.LineNumber,
				Annotations: []diagfmt.Annotation{highlight},
			},
		},
	}
	if e.message != "" {
		r.Footers = append(r.Footers, diagfmt.Footer{Level: diagfmt.LevelNote, Text: e.message})
	}
	if e.input != "" {
		r.Footers = append(r.Footers, diagfmt.Footer{Level: diagfmt.LevelInfo, Text: e.input})
	}
	return r
}

// Render paints the report to a string.
func (e *Error) Render(opts RenderOpts) string {
	if e == nil {
		return ""
	}
	return diagfmt.Sprint(e.Report(opts), opts.Pretty)
}

func placeholder(err error) diagfmt.Report {
	title := PlaceholderCrossLine
	if errors.Is(err, capture.ErrNoInvocations) {
		title = PlaceholderNoInvocations
	}
	return diagfmt.Report{Level: diagfmt.LevelError, Title: title}
}

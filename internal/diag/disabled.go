//go:build nodiag

package diag

import (
	"combdiag/internal/capture"
	"combdiag/internal/diagfmt"
)

// Enabled reports whether diagnostics were compiled in.
const Enabled = false

type debugInfo struct{}

func (e *Error) Context() *capture.FunctionContext { return nil }

func (e *Error) SetContext(*capture.FunctionContext) bool { return false }

func (e *Error) File() string { return "" }

func (e *Error) SetFile(string) *Error { return e }

func (e *Error) CombineParserSources(capture.Selector) (capture.Capture, error) {
	return capture.Capture{}, capture.ErrNoInvocations
}

func (e *Error) Clone() *Error {
	if e == nil {
		return nil
	}
	out := *e
	return &out
}

func (e *Error) Report(RenderOpts) diagfmt.Report { return diagfmt.Report{} }

func (e *Error) Render(RenderOpts) string { return "" }

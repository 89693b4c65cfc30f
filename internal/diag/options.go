package diag

import (
	"combdiag/internal/capture"
	"combdiag/internal/diagfmt"
)

const (
	DefaultTitle  = "ContextError"
	DefaultLabel  = "error occurred here"
	UnknownOrigin = "unknown"

	PlaceholderNoInvocations = "unhandled case: no parser invocation captures available"
	PlaceholderCrossLine     = "unhandled case: parser invocation spans multiple source lines"
)

// RenderOpts configures how an Error is reduced to a report and painted.
type RenderOpts struct {
	Title         string
	Label         string
	UnknownOrigin string
	PathMode      diagfmt.PathMode
	BaseDir       string
	// Selector picks the invocation to annotate; nil means capture.FirstInvocation.
	Selector capture.Selector
	Pretty   diagfmt.PrettyOpts
}

// DefaultRenderOpts returns uncoloured options with the default labels.
func DefaultRenderOpts() RenderOpts {
	return RenderOpts{
		Title:         DefaultTitle,
		Label:         DefaultLabel,
		UnknownOrigin: UnknownOrigin,
		Selector:      capture.FirstInvocation,
	}
}

func (o RenderOpts) withDefaults() RenderOpts {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.UnknownOrigin == "" {
		o.UnknownOrigin = UnknownOrigin
	}
	if o.Selector == nil {
		o.Selector = capture.FirstInvocation
	}
	return o
}

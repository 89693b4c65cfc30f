package config

import (
	"combdiag/internal/capture"
	"combdiag/internal/diag"
	"combdiag/internal/diagfmt"
)

// RenderOpts converts the [render] table into diag options. color is the
// already-resolved colour decision, since "auto" depends on the terminal.
func (c Config) RenderOpts(color bool, baseDir string) diag.RenderOpts {
	opts := diag.DefaultRenderOpts()
	if c.Render.Title != "" {
		opts.Title = c.Render.Title
	}
	if c.Render.Label != "" {
		opts.Label = c.Render.Label
	}
	if c.Render.UnknownOrigin != "" {
		opts.UnknownOrigin = c.Render.UnknownOrigin
	}
	if mode, ok := diagfmt.ParsePathMode(c.Render.PathMode); ok {
		opts.PathMode = mode
	}
	if c.Render.Selector == "failed" {
		opts.Selector = capture.FailedInvocation
	}
	opts.BaseDir = baseDir
	opts.Pretty = diagfmt.PrettyOpts{Color: color, TabWidth: c.Render.TabWidth}
	return opts
}

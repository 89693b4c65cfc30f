package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"combdiag/internal/capture"
	"combdiag/internal/diag"
)

// InspectOpts configures Inspect.
type InspectOpts struct {
	Color    bool
	Selector capture.Selector // nil means capture.FirstInvocation
}

type inspectStyles struct {
	title   lipgloss.Style
	key     lipgloss.Style
	dim     lipgloss.Style
	warn    lipgloss.Style
	marker  lipgloss.Style
	section lipgloss.Style
	box     lipgloss.Style
}

func newInspectStyles(color bool) inspectStyles {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return inspectStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		key:     r.NewStyle().Foreground(lipgloss.Color("6")).Width(10),
		dim:     r.NewStyle().Foreground(lipgloss.Color("8")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		marker:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		section: r.NewStyle().Bold(true).Underline(true),
		box:     r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// Inspect lists every captured fragment of e inside a bordered box.
func Inspect(e *diag.Error, opts InspectOpts) string {
	st := newInspectStyles(opts.Color)
	var b strings.Builder

	b.WriteString(st.title.Render(diag.DefaultTitle))
	b.WriteString("\n")
	field(&b, st, "file", e.File())
	field(&b, st, "message", e.Message())
	field(&b, st, "input", e.Input())

	fc := e.Context()
	if fc == nil {
		b.WriteString("\n")
		b.WriteString(st.warn.Render("no diagnostic context captured"))
		return st.box.Render(b.String())
	}

	b.WriteString("\n")
	fragment(&b, st, "signature", fc.Signature)

	failed, hasFailed := fc.FailureIndex.Get()
	writeInvocations(&b, st, "invocations", fc.ParserContexts, failed, hasFailed)
	writeInvocations(&b, st, "nested", fc.NestedParserContexts, 0, false)

	if fc.ClosingTokens != nil {
		b.WriteString("\n")
		fragment(&b, st, "closing", *fc.ClosingTokens)
	}

	b.WriteString("\n")
	sel := opts.Selector
	if sel == nil {
		sel = capture.FirstInvocation
	}
	agg, err := capture.CombineWith(fc, sel)
	if err != nil {
		field(&b, st, "aggregate", st.warn.Render(err.Error()))
	} else {
		fragment(&b, st, "aggregate", agg)
		if start, ok := agg.StartColumn.Get(); ok {
			span, _ := agg.SpanLength.Get()
			marker := strings.Repeat(" ", int(start)) + strings.Repeat("^", max(int(span)+1-int(start), 1))
			field(&b, st, "", st.marker.Render(marker))
		}
	}
	return st.box.Render(strings.TrimRight(b.String(), "\n"))
}

func writeInvocations(b *strings.Builder, st inspectStyles, title string, invs []capture.Invocation, failed uint32, hasFailed bool) {
	if invs == nil {
		return
	}
	b.WriteString("\n")
	b.WriteString(st.section.Render(fmt.Sprintf("%s (%d)", title, len(invs))))
	b.WriteString("\n")
	for i, inv := range invs {
		head := fmt.Sprintf("#%d", i)
		if hasFailed && int(failed) == i {
			head += " " + st.warn.Render("failed")
		}
		b.WriteString(head)
		b.WriteString("\n")
		if inv.BindingPattern != nil {
			fragment(b, st, "  binding", *inv.BindingPattern)
		}
		fragment(b, st, "  ident", inv.Ident)
		fragment(b, st, "  pattern", inv.Pattern)
		for _, np := range inv.NestedParsers {
			fragment(b, st, "  parser", np)
		}
		fragment(b, st, "  input", inv.Input)
	}
}

func field(b *strings.Builder, st inspectStyles, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(st.key.Render(key))
	b.WriteString(value)
	b.WriteString("\n")
}

func fragment(b *strings.Builder, st inspectStyles, key string, c capture.Capture) {
	if c.Empty() && c.SourceText == "" {
		field(b, st, key, st.dim.Render("(empty)"))
		return
	}
	loc := fmt.Sprintf("L%d", c.LineNumber)
	if start, ok := c.StartColumn.Get(); ok {
		end, _ := c.EndColumn.Get()
		loc += fmt.Sprintf(" [%d,%d)", start, end)
	}
	field(b, st, key, st.dim.Render(loc)+" "+fmt.Sprintf("%q", c.SourceText))
}

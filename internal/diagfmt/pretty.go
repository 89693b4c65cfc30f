package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Pretty writes the report in a compiler-style layout:
//
//	error: <title>
//	  --> <origin>:<line>
//	   |
//	12 | <source line>
//	   |     ^^^^^ <label>
//	   = info: <footer>
//
// Colour is applied only when opts.Color is set.
func Pretty(w io.Writer, r Report, opts PrettyOpts) error {
	_, err := io.WriteString(w, Sprint(r, opts))
	return err
}

// Sprint renders the report to a string.
func Sprint(r Report, opts PrettyOpts) string {
	p := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}

	var b strings.Builder
	b.WriteString(p.level(r.Level).Sprint(r.Level.String()))
	b.WriteString(p.title.Sprint(": " + r.Title))
	b.WriteByte('\n')

	gutter := gutterWidth(r)
	for _, sn := range r.Snippets {
		writeSnippet(&b, sn, gutter, tab, p)
	}
	if len(r.Footers) > 0 && len(r.Snippets) > 0 {
		writeBlank(&b, gutter, p)
	}
	for _, f := range r.Footers {
		b.WriteString(strings.Repeat(" ", gutter+1))
		b.WriteString(p.gutter.Sprint("="))
		b.WriteString(" " + p.level(f.Level).Sprint(f.Level.String()) + ": " + f.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeSnippet(b *strings.Builder, sn Snippet, gutter, tab int, p palette) {
	if sn.Origin != "" {
		b.WriteString(strings.Repeat(" ", gutter))
		b.WriteString(p.gutter.Sprint("-->"))
		fmt.Fprintf(b, " %s:%d\n", sn.Origin, sn.LineStart)
	}
	writeBlank(b, gutter, p)

	lineOff := 0
	for i, line := range strings.Split(sn.Source, "\n") {
		num := strconv.FormatUint(uint64(sn.LineStart)+uint64(i), 10)
		b.WriteString(p.gutter.Sprint(strings.Repeat(" ", gutter-len(num)) + num + " |"))
		if line != "" {
			b.WriteString(" " + expandTabs(line, tab))
		}
		b.WriteByte('\n')

		for _, a := range sn.Annotations {
			start, end := int(a.Start)-lineOff, int(a.End)-lineOff
			if start < 0 || start > len(line) {
				continue
			}
			end = min(max(end, start), len(line))
			prefix := displayWidth(expandTabs(line[:start], tab))
			width := max(displayWidth(expandTabs(line[start:end], tab)), 1)

			mark := "-"
			if a.Level == LevelError {
				mark = "^"
			}
			b.WriteString(strings.Repeat(" ", gutter+1))
			b.WriteString(p.gutter.Sprint("|"))
			b.WriteString(" " + strings.Repeat(" ", prefix))
			b.WriteString(p.level(a.Level).Sprint(strings.Repeat(mark, width)))
			if a.Label != "" {
				b.WriteString(" " + p.level(a.Level).Sprint(a.Label))
			}
			b.WriteByte('\n')
		}
		lineOff += len(line) + 1
	}
}

func writeBlank(b *strings.Builder, gutter int, p palette) {
	b.WriteString(strings.Repeat(" ", gutter+1))
	b.WriteString(p.gutter.Sprint("|"))
	b.WriteByte('\n')
}

// gutterWidth is the width of the largest line number shown.
func gutterWidth(r Report) int {
	w := 1
	for _, sn := range r.Snippets {
		last := uint64(sn.LineStart) + uint64(strings.Count(sn.Source, "\n"))
		w = max(w, len(strconv.FormatUint(last, 10)))
	}
	return w
}

func expandTabs(s string, tab int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tab))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

type palette struct {
	title  *color.Color
	gutter *color.Color
	levels map[Level]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		title:  color.New(color.Bold),
		gutter: color.New(color.FgHiRed),
		levels: map[Level]*color.Color{
			LevelError:   color.New(color.FgRed, color.Bold),
			LevelWarning: color.New(color.FgYellow, color.Bold),
			LevelInfo:    color.New(color.FgBlue, color.Bold),
			LevelNote:    color.New(color.FgGreen, color.Bold),
			LevelHelp:    color.New(color.FgCyan, color.Bold),
		},
	}
	all := []*color.Color{p.title, p.gutter}
	for _, c := range p.levels {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) level(l Level) *color.Color {
	if c, ok := p.levels[l]; ok {
		return c
	}
	return p.title
}

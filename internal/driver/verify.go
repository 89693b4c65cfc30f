package driver

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"combdiag/internal/capture"
	"combdiag/internal/diag"
	"combdiag/internal/source"
)

// Mismatch is a captured fragment that no longer matches its source file.
type Mismatch struct {
	Fragment string // which part of the invocation
	Line     uint32
	Column   uint32
	Captured string
	Found    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%d:%d: %s captured as %q, source has %q", m.Line, m.Column+1, m.Fragment, m.Captured, m.Found)
}

// VerifySource checks the invocation sel picks from e against the file at
// path. Every non-empty fragment must appear at its recorded columns;
// surrounding whitespace is ignored since bindings are re-emitted with a
// trailing space. Errors without a context have nothing to check.
func VerifySource(e *diag.Error, sel capture.Selector, path string) ([]Mismatch, error) {
	fc := e.Context()
	if fc == nil {
		return nil, nil
	}
	if sel == nil {
		sel = capture.FirstInvocation
	}
	inv, ok := sel(fc)
	if !ok {
		return nil, nil
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	f := fs.Get(id)

	parts := []struct {
		name string
		c    *capture.Capture
	}{
		{"binding pattern", inv.BindingPattern},
		{"identifier", &inv.Ident},
		{"pattern", &inv.Pattern},
		{"input", &inv.Input},
	}
	var out []Mismatch
	for _, p := range parts {
		if p.c == nil || p.c.Empty() {
			continue
		}
		found := columns(f.GetLine(p.c.LineNumber), p.c.StartColumn.Value, p.c.EndColumn.Value)
		if strings.TrimSpace(found) != strings.TrimSpace(p.c.SourceText) {
			out = append(out, Mismatch{
				Fragment: p.name,
				Line:     p.c.LineNumber,
				Column:   p.c.StartColumn.Value,
				Captured: p.c.SourceText,
				Found:    found,
			})
		}
	}
	return out, nil
}

// columns returns line[start:end], clamped to the line.
func columns(line string, start, end uint32) string {
	n, err := safecast.Conv[uint32](len(line))
	if err != nil {
		return line
	}
	start = min(start, n)
	end = min(max(end, start), n)
	return line[start:end]
}

package source

import (
	"fmt"
)

// Span is the line/column extent of one captured fragment.
// End is exclusive.
type Span struct {
	Start Position
	End   Position
}

// At builds a single-line span.
func At(line, start, end uint32) Span {
	return Span{
		Start: Position{Line: line, Column: start},
		End:   Position{Line: line, Column: end},
	}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// SameLine reports whether the span starts and ends on one line.
func (s Span) SameLine() bool {
	return s.Start.Line == s.End.Line
}

// Len returns the column width of a single-line span, 0 otherwise.
func (s Span) Len() uint32 {
	if !s.SameLine() || s.End.Column < s.Start.Column {
		return 0
	}
	return s.End.Column - s.Start.Column
}

func (s Span) String() string {
	if s.SameLine() {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

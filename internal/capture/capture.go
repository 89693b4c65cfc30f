package capture

import (
	"errors"
	"fmt"
	"strings"

	"combdiag/internal/source"
)

// ErrSpanUnset is returned when a span length is requested from a capture
// whose start or end column was never set.
var ErrSpanUnset = errors.New("span length requested before both columns are set")

// Capture is a fragment of source text with its location.
type Capture struct {
	SourceText  string
	LineNumber  uint32
	StartColumn Optional
	EndColumn   Optional
	SpanLength  Optional
}

// New builds a capture from a fragment and its span.
func New(text string, span source.Span) Capture {
	var c Capture
	c.Build(text, span)
	return c
}

// Empty reports whether the capture was never built or merged into.
func (c *Capture) Empty() bool {
	return !c.StartColumn.Set
}

// Build fills the capture from a fragment. Only the first call with an empty
// SourceText has an effect; later calls are no-ops.
func (c *Capture) Build(text string, span source.Span) *Capture {
	if c.SourceText != "" {
		return c
	}
	c.SourceText = text
	c.LineNumber = span.Start.Line
	c.StartColumn = Some(span.Start.Column)
	c.EndColumn = Some(span.End.Column)
	return c
}

// SpanLen returns EndColumn - StartColumn.
func (c *Capture) SpanLen() (uint32, error) {
	start, ok := c.StartColumn.Get()
	if !ok {
		return 0, fmt.Errorf("start column: %w", ErrSpanUnset)
	}
	end, ok := c.EndColumn.Get()
	if !ok {
		return 0, fmt.Errorf("end column: %w", ErrSpanUnset)
	}
	if end < start {
		return 0, fmt.Errorf("end column %d before start column %d on line %d", end, start, c.LineNumber)
	}
	return end - start, nil
}

// MustSpanLen is SpanLen for callers that hold the capture contract.
// It panics when the contract was violated.
func (c *Capture) MustSpanLen() uint32 {
	n, err := c.SpanLen()
	if err != nil {
		panic(fmt.Errorf("capture %q at line %d: %w", c.SourceText, c.LineNumber, err))
	}
	return n
}

// Merge extends c with other when other lies on targetLine and reports
// whether it did. A fragment on any other line is skipped.
func (c *Capture) Merge(other Capture, targetLine uint32) bool {
	if other.LineNumber != targetLine {
		return false
	}
	length := other.MustSpanLen()

	if c.Empty() {
		pad := other.StartColumn.Value
		c.LineNumber = targetLine
		c.StartColumn = Some(pad)
		c.SourceText += strings.Repeat(" ", int(pad)) + other.SourceText
		c.SpanLength = Some(c.SpanLength.Value + pad + length)
	} else {
		// no padding for gaps between fragments
		c.SourceText += other.SourceText
		c.SpanLength = Some(c.SpanLength.Value + length)
	}
	c.EndColumn = other.EndColumn
	return true
}

// Span returns the capture's extent, or false if it is empty.
func (c *Capture) Span() (source.Span, bool) {
	if c.Empty() || !c.EndColumn.Set {
		return source.Span{}, false
	}
	return source.At(c.LineNumber, c.StartColumn.Value, c.EndColumn.Value), true
}

func (c Capture) String() string {
	return fmt.Sprintf("%d:%s-%s %q", c.LineNumber, c.StartColumn, c.EndColumn, c.SourceText)
}

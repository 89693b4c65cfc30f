package capture

import (
	"errors"
	"fmt"
)

// MaxColumn bounds the columns a capture may carry. The first merge pads
// the aggregate with StartColumn spaces, so the bound also caps that
// allocation.
const MaxColumn uint32 = 1 << 20

// ErrMalformed is returned by Validate for captures that could not have been
// produced by Build.
var ErrMalformed = errors.New("malformed capture")

// Validate checks the capture contract: a non-empty capture has both
// columns set, EndColumn >= StartColumn, and neither beyond MaxColumn.
func (c *Capture) Validate() error {
	if c.Empty() {
		return nil
	}
	start := c.StartColumn.Value
	end, ok := c.EndColumn.Get()
	switch {
	case !ok:
		return fmt.Errorf("%w: line %d: end column unset", ErrMalformed, c.LineNumber)
	case end < start:
		return fmt.Errorf("%w: line %d: end column %d before start column %d", ErrMalformed, c.LineNumber, end, start)
	case end > MaxColumn:
		return fmt.Errorf("%w: line %d: column %d beyond %d", ErrMalformed, c.LineNumber, end, MaxColumn)
	}
	return nil
}

// Validate checks every capture of the invocation.
func (inv *Invocation) Validate() error {
	if inv.BindingPattern != nil {
		if err := inv.BindingPattern.Validate(); err != nil {
			return fmt.Errorf("binding pattern: %w", err)
		}
	}
	named := []struct {
		name string
		c    *Capture
	}{
		{"identifier", &inv.Ident},
		{"pattern", &inv.Pattern},
		{"input", &inv.Input},
	}
	for _, n := range named {
		if err := n.c.Validate(); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
	}
	for i := range inv.NestedParsers {
		if err := inv.NestedParsers[i].Validate(); err != nil {
			return fmt.Errorf("nested parser %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks every capture reachable from fc. Contexts read from
// outside the process should be validated before they are combined, since
// Merge panics on malformed captures.
func (fc *FunctionContext) Validate() error {
	if fc == nil {
		return nil
	}
	if err := fc.Signature.Validate(); err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	for i := range fc.ParserContexts {
		if err := fc.ParserContexts[i].Validate(); err != nil {
			return fmt.Errorf("invocation %d: %w", i, err)
		}
	}
	for i := range fc.NestedParserContexts {
		if err := fc.NestedParserContexts[i].Validate(); err != nil {
			return fmt.Errorf("nested invocation %d: %w", i, err)
		}
	}
	if fc.ClosingTokens != nil {
		if err := fc.ClosingTokens.Validate(); err != nil {
			return fmt.Errorf("closing tokens: %w", err)
		}
	}
	return nil
}

package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInvocations means the context holds no invocation to combine.
	ErrNoInvocations = errors.New("no invocation captures available")
	// ErrCrossLine means an invocation's fragments span more than one line.
	ErrCrossLine = errors.New("invocation spans multiple source lines")
)

// Selector picks the invocation to report from a context.
type Selector func(fc *FunctionContext) (Invocation, bool)

// FirstInvocation selects the first recorded invocation.
func FirstInvocation(fc *FunctionContext) (Invocation, bool) {
	if fc == nil || len(fc.ParserContexts) == 0 {
		return Invocation{}, false
	}
	return fc.ParserContexts[0], true
}

// FailedInvocation selects the invocation at FailureIndex, falling back to
// the first one when the index is unset or out of range.
func FailedInvocation(fc *FunctionContext) (Invocation, bool) {
	if fc == nil || len(fc.ParserContexts) == 0 {
		return Invocation{}, false
	}
	if i, ok := fc.FailureIndex.Get(); ok && int(i) < len(fc.ParserContexts) {
		return fc.ParserContexts[i], true
	}
	return fc.ParserContexts[0], true
}

// Combine merges the first invocation of fc into one capture.
func Combine(fc *FunctionContext) (Capture, error) {
	return CombineWith(fc, FirstInvocation)
}

// CombineWith merges the invocation chosen by sel into one capture.
func CombineWith(fc *FunctionContext, sel Selector) (Capture, error) {
	inv, ok := sel(fc)
	if !ok {
		return Capture{}, ErrNoInvocations
	}
	return inv.Combine()
}

// Combine merges the binding pattern (if any), identifier, call expression
// and input, keyed to the identifier's line. When a fragment lies on another
// line the partial aggregate is returned with ErrCrossLine.
func (inv *Invocation) Combine() (Capture, error) {
	if inv.Ident.Empty() {
		return Capture{}, fmt.Errorf("%w: identifier not captured", ErrNoInvocations)
	}
	line := inv.Ident.LineNumber

	parts := make([]namedCapture, 0, 4)
	if inv.BindingPattern != nil {
		parts = append(parts, namedCapture{"binding pattern", inv.BindingPattern})
	}
	parts = append(parts,
		namedCapture{"identifier", &inv.Ident},
		namedCapture{"pattern", &inv.Pattern},
		namedCapture{"input", &inv.Input},
	)

	var agg Capture
	var skipped []string
	for _, p := range parts {
		if p.c.Empty() {
			continue
		}
		if !agg.Merge(*p.c, line) {
			skipped = append(skipped, fmt.Sprintf("%s on line %d", p.name, p.c.LineNumber))
		}
	}
	if len(skipped) > 0 {
		return agg, fmt.Errorf("%w: line %d, skipped %v", ErrCrossLine, line, skipped)
	}
	return agg, nil
}

type namedCapture struct {
	name string
	c    *Capture
}

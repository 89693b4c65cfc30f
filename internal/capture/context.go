package capture

import (
	"fmt"

	"fortio.org/safecast"
)

// FunctionContext aggregates what was captured for one instrumented function.
type FunctionContext struct {
	Signature            Capture
	ParserContexts       []Invocation
	FailureIndex         Optional
	NestedParserContexts []Invocation
	ClosingTokens        *Capture
}

// SetSignature stores the reformatted one-line signature and its line.
func (fc *FunctionContext) SetSignature(text string, line uint32) *FunctionContext {
	fc.Signature = Capture{SourceText: text, LineNumber: line}
	return fc
}

// AddParserContext appends an invocation in source order.
func (fc *FunctionContext) AddParserContext(inv Invocation) {
	fc.ParserContexts = append(fc.ParserContexts, inv)
}

// AddNestedParserContext appends an invocation found inside another one.
func (fc *FunctionContext) AddNestedParserContext(inv Invocation) {
	fc.NestedParserContexts = append(fc.NestedParserContexts, inv)
}

// SetFailureIndex marks which invocation in ParserContexts failed.
func (fc *FunctionContext) SetFailureIndex(i int) *FunctionContext {
	idx, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("failure index %d: %w", i, err))
	}
	fc.FailureIndex = Some(idx)
	return fc
}

func (fc *FunctionContext) SetClosingTokens(c Capture) *FunctionContext {
	fc.ClosingTokens = &c
	return fc
}

func (fc *FunctionContext) HasParserContexts() bool {
	return fc.ParserContexts != nil
}

func (fc *FunctionContext) HasNestedParserContexts() bool {
	return fc.NestedParserContexts != nil
}

// Clone returns a deep copy.
func (fc *FunctionContext) Clone() *FunctionContext {
	if fc == nil {
		return nil
	}
	out := *fc
	out.ParserContexts = cloneInvocations(fc.ParserContexts)
	out.NestedParserContexts = cloneInvocations(fc.NestedParserContexts)
	if fc.ClosingTokens != nil {
		ct := *fc.ClosingTokens
		out.ClosingTokens = &ct
	}
	return &out
}

//go:build !nodiag

package replay

import (
	"combdiag/internal/capture"
	"combdiag/internal/diag"
)

func frag(text string, line, start, end uint32) capture.Capture {
	return capture.Capture{
		SourceText:  text,
		LineNumber:  line,
		StartColumn: capture.Some(start),
		EndColumn:   capture.Some(end),
	}
}

func sampleContext() *capture.FunctionContext {
	fc := &capture.FunctionContext{}
	fc.SetSignature("func parseNumber(input string) (string, string, error) {", 3)

	binding := frag("rest, num, err := ", 4, 4, 21)
	var inv capture.Invocation
	inv.SetBindingPattern(binding)
	inv.SetIdent(frag("Digit1", 4, 22, 28))
	inv.SetPattern(frag("()", 4, 28, 30))
	inv.SetInput(frag("(input)", 4, 30, 37))
	inv.PushNestedParser(frag("Tag", 4, 40, 43))
	fc.AddParserContext(inv)

	var nested capture.Invocation
	nested.SetIdent(frag("Alpha1", 5, 4, 10))
	fc.AddNestedParserContext(nested)

	fc.SetFailureIndex(0)
	fc.SetClosingTokens(frag("}", 6, 0, 1))
	return fc
}

func sampleError() *diag.Error {
	return diag.Rebuild("expected digits", "abc", sampleContext(), "numbers.go")
}

package diag

import (
	"strings"
	"testing"

	"combdiag/internal/capture"
	"combdiag/internal/source"
)

const numbersSrc = `package numbers

func parseNumber(input string) (string, string, error) {
    rest, num, err := Digit1()(input)
    return rest, num, err
}
`

// numbersContext captures parseNumber the way an instrumenting collaborator would.
func numbersContext(t *testing.T) *capture.FunctionContext {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("numbers.go", []byte(numbersSrc))

	frag := func(text string, after int) (capture.Capture, int) {
		t.Helper()
		off := strings.Index(numbersSrc[after:], text)
		if off < 0 {
			t.Fatalf("fragment %q not found", text)
		}
		start := uint32(after + off)
		got, span, err := fs.Fragment(id, start, start+uint32(len(text)))
		if err != nil {
			t.Fatalf("Fragment(%q): %v", text, err)
		}
		return capture.New(got, span), after + off + len(text)
	}

	fc := &capture.FunctionContext{}
	fc.SetSignature("func parseNumber(input string) (string, string, error) {", 3)

	var inv capture.Invocation
	binding, pos := frag("rest, num, err :=", 0)
	binding.SourceText += " "
	inv.SetBindingPattern(binding)
	ident, pos := frag("Digit1", pos)
	inv.SetIdent(ident)
	pattern, pos := frag("()", pos)
	inv.SetPattern(pattern)
	input, pos := frag("(input)", pos)
	inv.SetInput(input)
	fc.AddParserContext(inv)

	closing, _ := frag("}", pos)
	fc.SetClosingTokens(closing)
	return fc
}

package replay

import (
	"fmt"
	"go/format"
	"io"
	"strconv"
	"strings"

	"combdiag/internal/capture"
	"combdiag/internal/diag"
)

// Literal writes a gofmt-formatted Go expression that rebuilds e when
// compiled in a file importing the diag and capture packages. fileExpr is
// emitted verbatim as the file argument, e.g. `"gen.go"` or a constant name.
func Literal(w io.Writer, e *diag.Error, fileExpr string) error {
	if fileExpr == "" {
		fileExpr = `""`
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diag.Rebuild(%s, %s, ", strconv.Quote(e.Message()), strconv.Quote(e.Input()))
	if fc := e.Context(); fc != nil {
		b.WriteString("&")
		writeContext(&b, fc)
	} else {
		b.WriteString("nil")
	}
	fmt.Fprintf(&b, ", %s)", fileExpr)

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return fmt.Errorf("replay: format literal: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// ContextLiteral writes the composite literal of fc alone.
func ContextLiteral(w io.Writer, fc *capture.FunctionContext) error {
	var b strings.Builder
	writeContext(&b, fc)
	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return fmt.Errorf("replay: format literal: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func writeContext(b *strings.Builder, fc *capture.FunctionContext) {
	b.WriteString("capture.FunctionContext{\n")
	b.WriteString("Signature: ")
	writeCapture(b, fc.Signature)
	b.WriteString(",\nParserContexts: ")
	writeInvocations(b, fc.ParserContexts)
	b.WriteString(",\nFailureIndex: ")
	writeOptional(b, fc.FailureIndex)
	b.WriteString(",\nNestedParserContexts: ")
	writeInvocations(b, fc.NestedParserContexts)
	b.WriteString(",\nClosingTokens: ")
	writeCapturePtr(b, fc.ClosingTokens)
	b.WriteString(",\n}")
}

func writeInvocations(b *strings.Builder, invs []capture.Invocation) {
	if invs == nil {
		b.WriteString("nil")
		return
	}
	b.WriteString("[]capture.Invocation{\n")
	for _, inv := range invs {
		b.WriteString("{\nBindingPattern: ")
		writeCapturePtr(b, inv.BindingPattern)
		b.WriteString(",\nIdent: ")
		writeCapture(b, inv.Ident)
		b.WriteString(",\nPattern: ")
		writeCapture(b, inv.Pattern)
		b.WriteString(",\nNestedParsers: ")
		writeCaptures(b, inv.NestedParsers)
		b.WriteString(",\nInput: ")
		writeCapture(b, inv.Input)
		b.WriteString(",\n},\n")
	}
	b.WriteString("}")
}

func writeCaptures(b *strings.Builder, cs []capture.Capture) {
	if cs == nil {
		b.WriteString("nil")
		return
	}
	b.WriteString("[]capture.Capture{\n")
	for _, c := range cs {
		writeCapture(b, c)
		b.WriteString(",\n")
	}
	b.WriteString("}")
}

func writeCapturePtr(b *strings.Builder, c *capture.Capture) {
	if c == nil {
		b.WriteString("nil")
		return
	}
	b.WriteString("&")
	writeCapture(b, *c)
}

func writeCapture(b *strings.Builder, c capture.Capture) {
	fmt.Fprintf(b, "capture.Capture{SourceText: %s, LineNumber: %d, StartColumn: ", strconv.Quote(c.SourceText), c.LineNumber)
	writeOptional(b, c.StartColumn)
	b.WriteString(", EndColumn: ")
	writeOptional(b, c.EndColumn)
	b.WriteString(", SpanLength: ")
	writeOptional(b, c.SpanLength)
	b.WriteString("}")
}

func writeOptional(b *strings.Builder, o capture.Optional) {
	if v, ok := o.Get(); ok {
		fmt.Fprintf(b, "capture.Some(%d)", v)
		return
	}
	b.WriteString("capture.None")
}

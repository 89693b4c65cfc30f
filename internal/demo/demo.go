// Package demo is a small instrumented parser used by `combdiag demo`.
//
// Source holds the function as a user would have written it; Context
// captures it the way an instrumenting collaborator would, and
// ParseAssignment runs the equivalent combinators with that context
// attached on failure.
package demo

import (
	"fmt"
	"strings"
	"sync"

	"fortio.org/safecast"

	"combdiag/internal/capture"
	"combdiag/internal/combinator"
	"combdiag/internal/diag"
	"combdiag/internal/source"
)

// File is the path reported as the origin of demo errors.
const File = "assign.go"

// Source is the instrumented function shown in reports.
const Source = `package assign

// parseAssignment reads "key=digits".
func parseAssignment(input string) (string, Assignment, error) {
    rest, kv, err := Pair(Alpha1(), Preceded(Char('='), Digit1()))(input)
    return rest, toAssignment(kv), err
}
`

// Assignment is the parsed result.
type Assignment struct {
	Key   string
	Value string
}

var captured = sync.OnceValues(captureContext)

// Context returns the captured diagnostic context of Source.
func Context() (*capture.FunctionContext, error) {
	fc, err := captured()
	if err != nil {
		return nil, err
	}
	return fc.Clone(), nil
}

// fragments locates successive substrings of Source.
type fragments struct {
	fs  *source.FileSet
	id  source.FileID
	pos int
}

func (f *fragments) next(text string) (capture.Capture, error) {
	off := strings.Index(Source[f.pos:], text)
	if off < 0 {
		return capture.Capture{}, fmt.Errorf("demo: fragment %q not found", text)
	}
	start, err := safecast.Conv[uint32](f.pos + off)
	if err != nil {
		return capture.Capture{}, err
	}
	end, err := safecast.Conv[uint32](f.pos + off + len(text))
	if err != nil {
		return capture.Capture{}, err
	}
	got, span, err := f.fs.Fragment(f.id, start, end)
	if err != nil {
		return capture.Capture{}, err
	}
	f.pos += off + len(text)
	return capture.New(got, span), nil
}

func captureContext() (*capture.FunctionContext, error) {
	fs := source.NewFileSet()
	f := &fragments{fs: fs, id: fs.AddVirtual(File, []byte(Source))}

	sig, err := f.next("func parseAssignment(input string) (string, Assignment, error) {")
	if err != nil {
		return nil, err
	}
	fc := &capture.FunctionContext{}
	fc.SetSignature(sig.SourceText, sig.LineNumber)

	var inv capture.Invocation
	binding, err := f.next("rest, kv, err :=")
	if err != nil {
		return nil, err
	}
	// Destructuring bindings are re-emitted with the space before the call.
	binding.SourceText += " "
	inv.SetBindingPattern(binding)

	ident, err := f.next("Pair")
	if err != nil {
		return nil, err
	}
	inv.SetIdent(ident)

	// Nested parsers are found inside the pattern, so scan them on a copy.
	nested := *f
	for _, name := range []string{"Alpha1", "Preceded", "Char", "Digit1"} {
		c, err := nested.next(name)
		if err != nil {
			return nil, err
		}
		inv.PushNestedParser(c)
	}

	pattern, err := f.next("(Alpha1(), Preceded(Char('='), Digit1()))")
	if err != nil {
		return nil, err
	}
	inv.SetPattern(pattern)

	input, err := f.next("(input)")
	if err != nil {
		return nil, err
	}
	inv.SetInput(input)
	fc.AddParserContext(inv)
	fc.SetFailureIndex(0)

	closing, err := f.next("}")
	if err != nil {
		return nil, err
	}
	fc.SetClosingTokens(closing)
	return fc, nil
}

// ParseAssignment parses "key=digits". On failure the returned error wraps
// a *diag.Error carrying the captured context.
// Disabled builds skip the capture entirely.
func ParseAssignment(input string) (string, Assignment, error) {
	var fc *capture.FunctionContext
	if diag.Enabled {
		var err error
		if fc, err = Context(); err != nil {
			return input, Assignment{}, err
		}
	}

	p := combinator.Pair(
		combinator.Alpha1[*diag.Error](),
		combinator.Preceded(combinator.Char[*diag.Error]('='), combinator.Digit1[*diag.Error]()),
	)
	rest, kv, err := combinator.MapErr(p, diag.Attach(fc, File, input))(input)
	if err != nil {
		return input, Assignment{}, err
	}
	return rest, Assignment{Key: kv.First, Value: kv.Second}, nil
}

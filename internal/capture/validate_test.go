package capture

import (
	"errors"
	"testing"
)

func TestCaptureValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Capture
		wantErr bool
	}{
		{"empty", Capture{}, false},
		{"built", frag("Pair", 3, 4, 8), false},
		{"zero width", frag("", 3, 4, 4), false},
		{"end before start", Capture{SourceText: "tag", LineNumber: 3, StartColumn: Some(9), EndColumn: Some(2)}, true},
		{"end unset", Capture{SourceText: "tag", LineNumber: 3, StartColumn: Some(9)}, true},
		{"huge columns", Capture{SourceText: "x", LineNumber: 1, StartColumn: Some(MaxColumn), EndColumn: Some(MaxColumn + 1)}, true},
		{"at bound", Capture{SourceText: "", LineNumber: 1, StartColumn: Some(MaxColumn), EndColumn: Some(MaxColumn)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformed) {
				t.Errorf("error %v does not wrap ErrMalformed", err)
			}
		})
	}
}

func TestFunctionContextValidate(t *testing.T) {
	bad := Capture{SourceText: "tag", LineNumber: 3, StartColumn: Some(9), EndColumn: Some(2)}
	valid := func() *FunctionContext {
		fc := &FunctionContext{}
		fc.SetSignature("fn f()", 1)
		var inv Invocation
		inv.SetIdent(frag("tag", 3, 4, 7))
		inv.SetPattern(frag("(x)", 3, 7, 10))
		inv.PushNestedParser(frag("x", 3, 8, 9))
		fc.AddParserContext(inv)
		return fc
	}

	tests := []struct {
		name    string
		corrupt func(fc *FunctionContext)
		wantErr bool
	}{
		{"valid", func(*FunctionContext) {}, false},
		{"ident", func(fc *FunctionContext) { fc.ParserContexts[0].Ident = bad }, true},
		{"binding", func(fc *FunctionContext) { fc.ParserContexts[0].SetBindingPattern(bad) }, true},
		{"nested parser", func(fc *FunctionContext) { fc.ParserContexts[0].NestedParsers[0] = bad }, true},
		{"nested invocation", func(fc *FunctionContext) { fc.AddNestedParserContext(Invocation{Input: bad}) }, true},
		{"closing tokens", func(fc *FunctionContext) { fc.SetClosingTokens(bad) }, true},
		{"signature", func(fc *FunctionContext) { fc.Signature = bad }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := valid()
			tt.corrupt(fc)
			err := fc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformed) {
				t.Errorf("error %v does not wrap ErrMalformed", err)
			}
		})
	}

	var nilContext *FunctionContext
	if err := nilContext.Validate(); err != nil {
		t.Errorf("nil context: %v", err)
	}
}

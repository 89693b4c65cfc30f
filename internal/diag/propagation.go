package diag

import (
	"errors"

	"combdiag/internal/capture"
	"combdiag/internal/combinator"
)

var _ combinator.ParseError[*Error] = (*Error)(nil)

// FromErrorKind discards the host classification and returns an empty Error.
func (*Error) FromErrorKind(string, combinator.ErrorKind) *Error {
	return New()
}

// Append keeps the earlier error untouched.
func (*Error) Append(_ string, _ combinator.ErrorKind, other *Error) *Error {
	return other
}

// FromChar discards the host classification and returns an empty Error.
func (*Error) FromChar(string, rune) *Error {
	return New()
}

// Attach returns an error mapper for combinator.MapErr that gives a failing
// parser's Error a copy of fc, the originating file and the input. An Error
// that already carries a context keeps it.
func Attach(fc *capture.FunctionContext, file, input string) func(error) error {
	return func(err error) error {
		pe, ok := combinator.AsErr[*Error](err)
		if !ok {
			return err
		}
		if pe.Inner == nil {
			pe.Inner = New()
		}
		if pe.Inner.SetContext(fc) {
			pe.Inner.SetFile(file)
		}
		if pe.Inner.Input() == "" {
			pe.Inner.SetInput(input)
		}
		return pe
	}
}

// FromError extracts an *Error from err, looking through parser errors.
func FromError(err error) (*Error, bool) {
	if pe, ok := combinator.AsErr[*Error](err); ok && pe.Inner != nil {
		return pe.Inner, true
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// Rebuild reconstructs an Error from its parts. Generated code uses it to
// re-embed a captured error at a new call site, passing that site's file.
func Rebuild(message, input string, fc *capture.FunctionContext, file string) *Error {
	e := New().SetMessage(message).SetInput(input)
	if e.SetContext(fc) {
		e.SetFile(file)
	}
	return e
}

package combinator

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrorKind classifies which parser produced a low-level error.
type ErrorKind uint8

const (
	KindTag ErrorKind = iota + 1
	KindChar
	KindDigit
	KindAlpha
	KindSpace
	KindAlt
	KindMany1
	KindEof
	KindVerify
)

func (k ErrorKind) String() string {
	switch k {
	case KindTag:
		return "Tag"
	case KindChar:
		return "Char"
	case KindDigit:
		return "Digit"
	case KindAlpha:
		return "Alpha"
	case KindSpace:
		return "Space"
	case KindAlt:
		return "Alt"
	case KindMany1:
		return "Many1"
	case KindEof:
		return "Eof"
	case KindVerify:
		return "Verify"
	}
	return "Unknown"
}

// ParseError is implemented by error payloads that parsers can build and
// compose. Methods are called on the zero value of E.
type ParseError[E any] interface {
	// FromErrorKind builds an error for input failing a parser of kind.
	FromErrorKind(input string, kind ErrorKind) E
	// Append combines an existing error with a parser that wrapped it.
	Append(input string, kind ErrorKind, other E) E
	// FromChar builds an error for input not starting with c.
	FromChar(input string, c rune) E
}

// Class tells callers whether another branch may be tried.
type Class uint8

const (
	// Backtrack lets alternatives be tried.
	Backtrack Class = iota
	// Failure stops alternatives.
	Failure
)

func (c Class) String() string {
	if c == Failure {
		return "failure"
	}
	return "error"
}

// Err is the error returned by every parser in this package.
type Err[E any] struct {
	Class Class
	Inner E
}

func (e *Err[E]) Error() string {
	if inner, ok := any(e.Inner).(error); ok && !isNil(e.Inner) {
		return fmt.Sprintf("parse %s: %s", e.Class, inner.Error())
	}
	return fmt.Sprintf("parse %s: %v", e.Class, e.Inner)
}

func (e *Err[E]) Unwrap() error {
	if inner, ok := any(e.Inner).(error); ok && !isNil(e.Inner) {
		return inner
	}
	return nil
}

func isNil[E any](v E) bool {
	if any(v) == nil {
		return true
	}
	rv := reflect.ValueOf(any(v))
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// AsErr extracts the parser error carried by err.
func AsErr[E any](err error) (*Err[E], bool) {
	var pe *Err[E]
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func backtrack[E ParseError[E]](input string, kind ErrorKind) error {
	var zero E
	return &Err[E]{Class: Backtrack, Inner: zero.FromErrorKind(input, kind)}
}

func backtrackChar[E ParseError[E]](input string, c rune) error {
	var zero E
	return &Err[E]{Class: Backtrack, Inner: zero.FromChar(input, c)}
}

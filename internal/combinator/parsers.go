package combinator

import (
	"strings"
	"unicode/utf8"
)

// Parser consumes a prefix of input and returns the remaining input.
type Parser[O any] func(input string) (rest string, out O, err error)

// Tuple holds the outputs of Pair.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Tag matches the literal t.
func Tag[E ParseError[E]](t string) Parser[string] {
	return func(input string) (string, string, error) {
		if !strings.HasPrefix(input, t) {
			return input, "", backtrack[E](input, KindTag)
		}
		return input[len(t):], t, nil
	}
}

// Char matches the rune c.
func Char[E ParseError[E]](c rune) Parser[rune] {
	return func(input string) (string, rune, error) {
		r, size := utf8.DecodeRuneInString(input)
		if size == 0 || r != c {
			return input, 0, backtrackChar[E](input, c)
		}
		return input[size:], r, nil
	}
}

// Digit1 matches one or more ASCII digits.
func Digit1[E ParseError[E]]() Parser[string] {
	return takeWhile1[E](KindDigit, func(b byte) bool { return b >= '0' && b <= '9' })
}

// Alpha1 matches one or more ASCII letters.
func Alpha1[E ParseError[E]]() Parser[string] {
	return takeWhile1[E](KindAlpha, func(b byte) bool {
		return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	})
}

// Space0 matches zero or more spaces and tabs.
func Space0[E ParseError[E]]() Parser[string] {
	return func(input string) (string, string, error) {
		n := 0
		for n < len(input) && (input[n] == ' ' || input[n] == '\t') {
			n++
		}
		return input[n:], input[:n], nil
	}
}

// Eof succeeds only on empty input.
func Eof[E ParseError[E]]() Parser[string] {
	return func(input string) (string, string, error) {
		if input != "" {
			return input, "", backtrack[E](input, KindEof)
		}
		return input, "", nil
	}
}

func takeWhile1[E ParseError[E]](kind ErrorKind, pred func(byte) bool) Parser[string] {
	return func(input string) (string, string, error) {
		n := 0
		for n < len(input) && pred(input[n]) {
			n++
		}
		if n == 0 {
			return input, "", backtrack[E](input, kind)
		}
		return input[n:], input[:n], nil
	}
}

// Pair runs a then b.
func Pair[A, B any](a Parser[A], b Parser[B]) Parser[Tuple[A, B]] {
	return func(input string) (string, Tuple[A, B], error) {
		rest, first, err := a(input)
		if err != nil {
			return input, Tuple[A, B]{}, err
		}
		rest, second, err := b(rest)
		if err != nil {
			return input, Tuple[A, B]{}, err
		}
		return rest, Tuple[A, B]{First: first, Second: second}, nil
	}
}

// Preceded runs prefix then p, keeping p's output.
func Preceded[A, O any](prefix Parser[A], p Parser[O]) Parser[O] {
	return func(input string) (string, O, error) {
		rest, _, err := prefix(input)
		if err != nil {
			var zero O
			return input, zero, err
		}
		return p(rest)
	}
}

// Map transforms a parser's output.
func Map[A, O any](p Parser[A], f func(A) O) Parser[O] {
	return func(input string) (string, O, error) {
		rest, a, err := p(input)
		if err != nil {
			var zero O
			return input, zero, err
		}
		return rest, f(a), nil
	}
}

// Alt tries each parser in order until one succeeds. A Failure error stops the
// search. When every branch backtracks, the last branch's error is appended
// with KindAlt.
func Alt[O any, E ParseError[E]](ps ...Parser[O]) Parser[O] {
	return func(input string) (string, O, error) {
		var zero O
		var last *Err[E]
		for _, p := range ps {
			rest, out, err := p(input)
			if err == nil {
				return rest, out, nil
			}
			pe, ok := AsErr[E](err)
			if !ok || pe.Class == Failure {
				return input, zero, err
			}
			last = pe
		}
		if last == nil {
			return input, zero, backtrack[E](input, KindAlt)
		}
		var e E
		return input, zero, &Err[E]{Class: Backtrack, Inner: e.Append(input, KindAlt, last.Inner)}
	}
}

// Cut turns a backtracking error from p into one that stops alternatives.
func Cut[O, E any](p Parser[O]) Parser[O] {
	return func(input string) (string, O, error) {
		rest, out, err := p(input)
		if pe, ok := AsErr[E](err); ok {
			return rest, out, &Err[E]{Class: Failure, Inner: pe.Inner}
		}
		return rest, out, err
	}
}

// MapErr runs p and passes any error through f. Instrumented call sites use
// it to attach their captured context to a failure.
func MapErr[O any](p Parser[O], f func(error) error) Parser[O] {
	return func(input string) (string, O, error) {
		rest, out, err := p(input)
		if err != nil {
			return rest, out, f(err)
		}
		return rest, out, nil
	}
}

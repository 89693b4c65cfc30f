package combinator

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type testErr struct {
	input string
	kinds []ErrorKind
	char  rune
}

func (*testErr) FromErrorKind(input string, kind ErrorKind) *testErr {
	return &testErr{input: input, kinds: []ErrorKind{kind}}
}

func (*testErr) Append(_ string, kind ErrorKind, other *testErr) *testErr {
	other.kinds = append(other.kinds, kind)
	return other
}

func (*testErr) FromChar(input string, c rune) *testErr {
	return &testErr{input: input, char: c}
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name     string
		p        Parser[string]
		input    string
		wantRest string
		wantOut  string
		wantKind ErrorKind
	}{
		{"tag ok", Tag[*testErr]("fn"), "fn main", " main", "fn", 0},
		{"tag miss", Tag[*testErr]("fn"), "func", "func", "", KindTag},
		{"digit1 ok", Digit1[*testErr](), "123abc", "abc", "123", 0},
		{"digit1 miss", Digit1[*testErr](), "abc", "abc", "", KindDigit},
		{"alpha1 ok", Alpha1[*testErr](), "abc1", "1", "abc", 0},
		{"alpha1 miss", Alpha1[*testErr](), "1", "1", "", KindAlpha},
		{"space0 empty", Space0[*testErr](), "x", "x", "", 0},
		{"space0", Space0[*testErr](), " \tx", "x", " \t", 0},
		{"eof ok", Eof[*testErr](), "", "", "", 0},
		{"eof miss", Eof[*testErr](), "x", "x", "", KindEof},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, out, err := tt.p(tt.input)
			if rest != tt.wantRest || out != tt.wantOut {
				t.Errorf("got (%q, %q), want (%q, %q)", rest, out, tt.wantRest, tt.wantOut)
			}
			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			pe, ok := AsErr[*testErr](err)
			if !ok {
				t.Fatalf("expected *Err, got %v", err)
			}
			if pe.Class != Backtrack || !reflect.DeepEqual(pe.Inner.kinds, []ErrorKind{tt.wantKind}) {
				t.Errorf("error = %v %v", pe.Class, pe.Inner.kinds)
			}
		})
	}
}

func TestChar(t *testing.T) {
	rest, r, err := Char[*testErr]('λ')("λx")
	if err != nil || r != 'λ' || rest != "x" {
		t.Fatalf("Char = %q %q %v", rest, r, err)
	}
	_, _, err = Char[*testErr]('(')("x")
	pe, ok := AsErr[*testErr](err)
	if !ok || pe.Inner.char != '(' || pe.Inner.input != "x" {
		t.Fatalf("Char miss error = %v", err)
	}
}

func TestPairPrecededMap(t *testing.T) {
	kv := Pair(Alpha1[*testErr](), Preceded(Char[*testErr]('='), Digit1[*testErr]()))
	rest, out, err := kv("x=42;")
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if rest != ";" || out.First != "x" || out.Second != "42" {
		t.Errorf("Pair = %q %+v", rest, out)
	}

	rest, _, err = kv("x=;")
	if err == nil || rest != "x=;" {
		t.Errorf("failed Pair must not consume input: %q %v", rest, err)
	}

	length := Map(Alpha1[*testErr](), func(s string) int { return len(s) })
	if _, n, _ := length("abc"); n != 3 {
		t.Errorf("Map = %d", n)
	}
}

func TestAltAppendsKind(t *testing.T) {
	p := Alt[string, *testErr](Tag[*testErr]("let"), Digit1[*testErr]())
	if _, out, err := p("42"); err != nil || out != "42" {
		t.Fatalf("Alt second branch = %q %v", out, err)
	}

	_, _, err := p("x")
	pe, ok := AsErr[*testErr](err)
	if !ok {
		t.Fatalf("expected *Err, got %v", err)
	}
	if want := []ErrorKind{KindDigit, KindAlt}; !reflect.DeepEqual(pe.Inner.kinds, want) {
		t.Errorf("kinds = %v, want %v", pe.Inner.kinds, want)
	}
}

func TestCutStopsAlt(t *testing.T) {
	p := Alt[string, *testErr](Cut[string, *testErr](Tag[*testErr]("let")), Digit1[*testErr]())
	_, _, err := p("42")
	pe, ok := AsErr[*testErr](err)
	if !ok || pe.Class != Failure {
		t.Fatalf("expected Failure error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "parse failure") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMapErr(t *testing.T) {
	sentinel := errors.New("mapped")
	p := MapErr(Tag[*testErr]("a"), func(err error) error { return sentinel })
	if _, _, err := p("b"); !errors.Is(err, sentinel) {
		t.Errorf("MapErr = %v", err)
	}
	if _, out, err := p("a"); err != nil || out != "a" {
		t.Errorf("MapErr on success = %q %v", out, err)
	}
}

func TestErrorKindString(t *testing.T) {
	if KindTag.String() != "Tag" || ErrorKind(200).String() != "Unknown" {
		t.Error("unexpected ErrorKind names")
	}
}

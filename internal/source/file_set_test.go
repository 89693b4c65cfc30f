package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("parser.go", []byte("hello world"), 0)
	id2 := fs.Add("parser.go", []byte("hello universe"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", id1, id2)
	}
	if string(fs.Get(id1).Content) != "hello world" {
		t.Errorf("old version lost: %q", fs.Get(id1).Content)
	}
	if string(fs.Get(id2).Content) != "hello universe" {
		t.Errorf("new version = %q", fs.Get(id2).Content)
	}
	if fs.Get(FileID(42)) != nil {
		t.Error("Get on unknown id must return nil")
	}
}

func TestFragmentPositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.go", []byte("ab\ncd\n\nef"))

	tests := []struct {
		start, end uint32
		text       string
		want       Span
	}{
		{0, 2, "ab", At(1, 0, 2)},
		{3, 5, "cd", At(2, 0, 2)},
		{6, 6, "", At(3, 0, 0)},
		{8, 9, "f", At(4, 1, 2)},
		{1, 4, "b\nc", Span{Start: Position{Line: 1, Column: 1}, End: Position{Line: 2, Column: 1}}},
	}
	for _, tt := range tests {
		text, span, err := fs.Fragment(id, tt.start, tt.end)
		if err != nil {
			t.Fatalf("Fragment(%d, %d): %v", tt.start, tt.end, err)
		}
		if text != tt.text || span != tt.want {
			t.Errorf("Fragment(%d, %d) = %q %v, want %q %v", tt.start, tt.end, text, span, tt.text, tt.want)
		}
	}
}

func TestFragment(t *testing.T) {
	src := "func parse(input string) {\n    rest, err := tag(\"x\")(input)\n}\n"
	fs := NewFileSet()
	id := fs.AddVirtual("parse.go", []byte(src))

	start := uint32(27 + 4)
	text, span, err := fs.Fragment(id, start, start+4)
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if text != "rest" {
		t.Errorf("text = %q, want %q", text, "rest")
	}
	if span != At(2, 4, 8) {
		t.Errorf("span = %v, want %v", span, At(2, 4, 8))
	}

	if _, _, err := fs.Fragment(id, 10, 9999); !errors.Is(err, ErrFragmentRange) {
		t.Errorf("expected ErrFragmentRange, got %v", err)
	}
	if _, _, err := fs.Fragment(FileID(7), 0, 1); !errors.Is(err, ErrFragmentRange) {
		t.Errorf("expected ErrFragmentRange for unknown file, got %v", err)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.go", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	for n, want := range map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""} {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.go")
	// BOM + CRLF + decomposed "é"
	content := []byte("\xEF\xBB\xBFa\r\ne\u0301\r\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got, want := string(f.Content), "a\n\u00e9\n"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	for _, flag := range []FileFlags{FileHadBOM, FileNormalizedCRLF, FileNormalizedNFC} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %d not set", flag)
		}
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.go", []byte("\xEF\xBB\xBFx := 1\r\ny := \"e\u0301\"\r\n"))
	f := fs.Get(id)
	if got, want := string(f.Content), "x := 1\ny := \"\u00e9\"\n"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	for _, flag := range []FileFlags{FileVirtual, FileHadBOM, FileNormalizedCRLF, FileNormalizedNFC} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %d not set", flag)
		}
	}
	if got := f.GetLine(2); got != "y := \"\u00e9\"" {
		t.Errorf("GetLine(2) = %q", got)
	}

	plain := fs.Get(fs.AddVirtual("plain.go", []byte("a\n")))
	if plain.Flags != FileVirtual {
		t.Errorf("plain flags = %d, want FileVirtual only", plain.Flags)
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.go")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

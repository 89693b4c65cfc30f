package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"combdiag/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	files := []string{"a.ctx", "b.ctx"}
	m := NewProgressModel("batch", files, nil).(*progressModel)

	m.Update(eventMsg(driver.Event{File: "a.ctx", Stage: driver.StageRender, Status: driver.StatusWorking}))
	if got := m.items[0].status; got != "rendering" {
		t.Fatalf("status = %q, want rendering", got)
	}
	if f := m.fraction(); f != 0.35 {
		t.Fatalf("fraction = %v, want 0.35", f)
	}

	m.Update(eventMsg(driver.Event{File: "a.ctx", Stage: driver.StageRender, Status: driver.StatusPlaceholder}))
	m.Update(eventMsg(driver.Event{File: "b.ctx", Stage: driver.StageLoad, Status: driver.StatusError}))
	m.Update(eventMsg(driver.Event{File: "unknown.ctx", Status: driver.StatusDone}))
	if f := m.fraction(); f != 1 {
		t.Fatalf("fraction = %v, want 1", f)
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("doneMsg should quit")
	}

	view := m.View()
	for _, want := range []string{"done: batch", "placeholder", "error", "a.ctx", "b.ctx"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.ctx", 20, "short.ctx"},
		{"a/very/long/path.ctx", 10, "a/very/..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

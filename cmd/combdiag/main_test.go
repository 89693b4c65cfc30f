//go:build !nodiag

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"combdiag/internal/demo"
	"combdiag/internal/driver"
)

// resetFlags restores every flag to its default; cobra keeps flag state
// between Execute calls on the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	cfg := filepath.Join(t.TempDir(), "combdiag.toml")
	if err := os.WriteFile(cfg, []byte("[render]\ncolor = \"off\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := rootCmd.Execute()
	_ = teardownSession(nil, nil) //nolint:errcheck
	return stdout.String(), stderr.String(), err
}

func saveDemoFailure(t *testing.T, dir, name, input string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if _, _, err := execute(t, "demo", "--save", path, input); !errors.Is(err, errDemoFailed) {
		t.Fatalf("demo --save %q: err = %v, want errDemoFailed", input, err)
	}
	return path
}

func TestDemo(t *testing.T) {
	stdout, _, err := execute(t, "demo", "width=80")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `key="width" value="80"`) {
		t.Errorf("stdout = %q", stdout)
	}

	path := filepath.Join(t.TempDir(), "fail.ctx")
	_, stderr, err := execute(t, "demo", "--save", path, "--message", "expected key=digits", "=80")
	if !errors.Is(err, errDemoFailed) {
		t.Fatalf("err = %v, want errDemoFailed", err)
	}
	for _, want := range []string{"error: ContextError", "--> assign.go:4", "note: expected key=digits", "info: =80", "saved " + path} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("replay file not written: %v", err)
	}
}

func TestRenderFormats(t *testing.T) {
	path := saveDemoFailure(t, t.TempDir(), "a.ctx", "=1")

	_, stderr, err := execute(t, "render", "--origin", "elsewhere.go", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "--> elsewhere.go:4") {
		t.Errorf("origin override missing:\n%s", stderr)
	}

	stdout, _, err := execute(t, "render", "--format", "json", path)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil || out.Count != 1 {
		t.Fatalf("json output (%v): %s", err, stdout)
	}

	if _, _, err := execute(t, "render", "--format", "xml", path); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestRenderChecksSource(t *testing.T) {
	dir := t.TempDir()
	path := saveDemoFailure(t, dir, "a.ctx", "=1")

	src := filepath.Join(dir, "assign.go")
	if err := os.WriteFile(src, []byte(demo.Source), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, stderr, err := execute(t, "render", "--source", src, path); err != nil {
		t.Fatalf("matching source: %v\n%s", err, stderr)
	}

	edited := strings.Replace(demo.Source, "Pair(", "Both(", 1)
	if err := os.WriteFile(src, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := execute(t, "render", "--source", src, path)
	if err == nil {
		t.Fatal("expected an error for an edited source file")
	}
	if !strings.Contains(stderr, "warning: "+src+":5:22: identifier captured as \"Pair\"") {
		t.Errorf("warning missing:\n%s", stderr)
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	saveDemoFailure(t, dir, "a.ctx", "=1")
	saveDemoFailure(t, dir, "b.ctx", "k:1")

	stdout, stderr, err := execute(t, "batch", "--format", "sarif", "--jobs", "2", "--timings", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"version": "2.1.0"`) {
		t.Errorf("not a SARIF log:\n%s", stdout)
	}
	if !strings.Contains(stderr, "2 file(s): 2 rendered, 0 placeholder(s), 0 failed") {
		t.Errorf("summary missing:\n%s", stderr)
	}
	if !strings.Contains(stderr, "timings:") || !strings.Contains(stderr, "// done") {
		t.Errorf("timings missing:\n%s", stderr)
	}

	if err := os.WriteFile(filepath.Join(dir, "c.ctx"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "batch", dir); err == nil {
		t.Fatal("expected failure when a replay file is corrupt")
	}
}

func TestRenderWithViewDrainsEvents(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(saveDemoFailure(t, dir, "seed.ctx", "=1"))
	if err != nil {
		t.Fatal(err)
	}
	// Far more events than the channel buffers.
	const files = 120
	for i := range files - 1 {
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("f%03d.ctx", i)), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	quit := errors.New("view closed")
	done := make(chan struct{})
	var results []driver.Result
	var runErr error
	go func() {
		defer close(done)
		results, runErr = renderWithView(context.Background(), dir, driver.Options{Render: current.render},
			func(<-chan driver.Event) error { return quit })
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("batch stalled after the view returned early")
	}
	if !errors.Is(runErr, quit) {
		t.Errorf("err = %v, want view error", runErr)
	}
	if len(results) != files {
		t.Errorf("got %d results, want %d", len(results), files)
	}
}

func TestBatchDedup(t *testing.T) {
	dir := t.TempDir()
	saveDemoFailure(t, dir, "a.ctx", "=1")
	saveDemoFailure(t, dir, "b.ctx", "=2")

	_, stderr, err := execute(t, "batch", dir)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(stderr, "error: ContextError"); n != 2 {
		t.Fatalf("without dedup got %d reports:\n%s", n, stderr)
	}

	_, stderr, err = execute(t, "batch", "--dedup", dir)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(stderr, "error: ContextError"); n != 1 {
		t.Fatalf("with dedup got %d reports:\n%s", n, stderr)
	}
}

func TestLiteralAndInspect(t *testing.T) {
	path := saveDemoFailure(t, t.TempDir(), "a.ctx", "=1")

	stdout, _, err := execute(t, "literal", "--file-expr", "SourceFile", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "diag.Rebuild(") || !strings.Contains(stdout, "SourceFile)") {
		t.Errorf("literal output:\n%s", stdout)
	}

	stdout, _, err = execute(t, "inspect", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"invocations (1)", `"Pair"`, "assign.go"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if payload.Tool != "combdiag" || !payload.Diagnostics {
		t.Errorf("payload = %+v", payload)
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	if _, _, err := execute(t, "--cpu-profile", cpu, "--mem-profile", mem, "version"); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{cpu, mem} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("profile not written: %v", err)
		}
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		mode    string
		tty     bool
		want    bool
		wantErr bool
	}{
		{"on", false, true, false},
		{"off", true, false, false},
		{"auto", true, true, false},
		{"", false, false, false},
		{"sometimes", false, false, true},
	}
	for _, tt := range tests {
		got, err := resolveColor(tt.mode, tt.tty)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolveColor(%q, %v) = %v, %v", tt.mode, tt.tty, got, err)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
}

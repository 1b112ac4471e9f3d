package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetOutputFilename(t *testing.T) {
	tests := []struct {
		trace, output, ext, want string
	}{
		{"timers.json", "", ".html", "timers.html"},
		{"/tmp/run/timers.json", "", ".svg", "timers.svg"},
		{"timers", "", ".html", "timers.html"},
		{"timers.json", "out/chart.html", ".html", "out/chart.html"},
	}
	for _, tt := range tests {
		if got := getOutputFilename(tt.trace, tt.output, tt.ext); got != tt.want {
			t.Errorf("getOutputFilename(%q, %q, %q) = %q, want %q", tt.trace, tt.output, tt.ext, got, tt.want)
		}
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		format, output, want string
		wantErr              bool
	}{
		{"", "", "html", false},
		{"", "chart.SVG", "svg", false},
		{"", "chart.html", "html", false},
		{"SVG", "chart.html", "svg", false},
		{"png", "", "", true},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.format, tt.output)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("outputFormat(%q, %q) = %q, %v; want %q (error %v)", tt.format, tt.output, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestTraceArgument(t *testing.T) {
	if got := traceArgument("a.json", []string{"b.json"}); got != "a.json" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := traceArgument("", []string{"b.json"}); got != "b.json" {
		t.Errorf("positional argument ignored, got %q", got)
	}
	if got := traceArgument("", nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func writeTraceFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested.json")
	if err := os.WriteFile(path, []byte(nestedTrace), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	debugMode = false
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	trace := writeTraceFile(t)
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "chart.svg")
	if _, err := runCommand(t, "render", trace, "--output", svgPath); err != nil {
		t.Fatalf("render svg: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") || strings.Count(string(data), `class="moment"`) != 3 {
		t.Errorf("unexpected SVG output:\n%s", data)
	}

	htmlPath := filepath.Join(dir, "chart.html")
	if _, err := runCommand(t, "render", "--trace", trace, "--output", htmlPath); err != nil {
		t.Fatalf("render html: %v", err)
	}
	data, err = os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<title>nested.json</title>") || !strings.Contains(string(data), `data-moment-id="2"`) {
		t.Errorf("unexpected HTML output:\n%s", data)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	if _, err := runCommand(t, "render"); err == nil || !strings.Contains(err.Error(), "trace file is required") {
		t.Errorf("render without a trace: %v", err)
	}
	trace := writeTraceFile(t)
	if _, err := runCommand(t, "render", trace, "--format", "png"); err == nil {
		t.Error("render accepted an unknown format")
	}
	if _, err := runCommand(t, "render", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("render accepted a missing trace")
	}
}

func TestListCommand(t *testing.T) {
	trace := writeTraceFile(t)

	out, err := runCommand(t, "list", trace)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := "[Timer log] A (100 mcs.)\n[Timer log] B (10 mcs.)\n[Timer log] C (10 mcs.)\n"
	if out != want {
		t.Errorf("list output =\n%s\nwant\n%s", out, want)
	}

	out, err = runCommand(t, "list", trace, "--min-duration", "50000")
	if err != nil {
		t.Fatalf("list --min-duration: %v", err)
	}
	if out != "[Timer log] A (100 mcs.)\n" {
		t.Errorf("list --min-duration =\n%s", out)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/pdftitle/internal/pdftest"
)

func titledPDF(t *testing.T, titles ...string) string {
	t.Helper()
	var pages []pdftest.Page
	for i, title := range titles {
		pages = append(pages, pdftest.Page{Content: fmt.Sprintf(
			"BT /F1 %d Tf 72 700 Td (%s) Tj /F1 9 Tf 0 -30 Td (body) Tj ET", 20+i*4, title)})
	}
	return pdftest.WriteFile(t, pdftest.Document(pages...))
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunText(t *testing.T) {
	path := titledPDF(t, "A Title")

	code, stdout, stderr := runCLI(t, "-env", "", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "A Title\n" {
		t.Errorf("stdout = %q, want %q", stdout, "A Title\n")
	}
}

func TestRunMultipleFiles(t *testing.T) {
	first := titledPDF(t, "First")
	second := titledPDF(t, "Second")
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	code, stdout, stderr := runCLI(t, "-env", "", first, missing, second)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	want := first + ": First\n" + second + ": Second\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "unable to extract title") {
		t.Errorf("expected failure to be logged, got %q", stderr)
	}
}

func TestRunPages(t *testing.T) {
	path := titledPDF(t, "Cover", "Inner", "Appendix")

	tests := []struct {
		args []string
		want string
	}{
		{nil, "Inner\n"},
		{[]string{"-pages", "1"}, "Cover\n"},
		{[]string{"-pages", "0"}, "Appendix\n"},
		{[]string{"-pages", "0", "-workers", "3"}, "Appendix\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			args := append([]string{"-env", ""}, tt.args...)
			code, stdout, stderr := runCLI(t, append(args, path)...)
			if code != 0 {
				t.Fatalf("exit code %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRunJSON(t *testing.T) {
	path := titledPDF(t, "Json Title")
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	code, stdout, _ := runCLI(t, "-env", "", "-format", "json", path, missing)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	var results []result
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Path != path || results[0].Title != "Json Title" || results[0].Error != "" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Error == "" {
		t.Errorf("expected an error for the missing file: %+v", results[1])
	}
}

func TestRunHTML(t *testing.T) {
	path := titledPDF(t, "Fish & Chips <2nd edition>")

	code, stdout, stderr := runCLI(t, "-env", "", "-format", "html", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>PDF titles</title>",
		`<dd class="title">Fish &amp; Chips &lt;2nd edition&gt;</dd>`,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunFilename(t *testing.T) {
	path := titledPDF(t, "Input/Output: a survey.")

	code, stdout, stderr := runCLI(t, "-env", "", "-filename", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "InputOutput a survey\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunConfigPrecedence(t *testing.T) {
	path := titledPDF(t, "Cover", "Inner")

	dir := t.TempDir()
	configFile := filepath.Join(dir, "pdftitle.yaml")
	if err := os.WriteFile(configFile, []byte("format: json\npages: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// The file selects JSON and one page.
	code, stdout, _ := runCLI(t, "-env", "", "-config", configFile, path)
	if code != 0 || !strings.Contains(stdout, `"title": "Cover"`) {
		t.Errorf("config file not applied: code %d, stdout %q", code, stdout)
	}

	// The environment overrides the file.
	t.Setenv("PDFTITLE_PAGES", "2")
	code, stdout, _ = runCLI(t, "-env", "", "-config", configFile, path)
	if code != 0 || !strings.Contains(stdout, `"title": "Inner"`) {
		t.Errorf("environment not applied: code %d, stdout %q", code, stdout)
	}

	// Flags override both.
	code, stdout, _ = runCLI(t, "-env", "", "-config", configFile, "-format", "text", "-pages", "1", path)
	if code != 0 || stdout != "Cover\n" {
		t.Errorf("flags not applied: code %d, stdout %q", code, stdout)
	}
}

func TestRunUsageErrors(t *testing.T) {
	path := titledPDF(t, "x")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no files", []string{"-env", ""}, 2},
		{"help", []string{"-h"}, 0},
		{"unknown flag", []string{"-bogus", path}, 2},
		{"bad format", []string{"-env", "", "-format", "xml", path}, 2},
		{"bad workers", []string{"-env", "", "-workers", "0", path}, 2},
		{"missing config", []string{"-env", "", "-config", filepath.Join(t.TempDir(), "nope.yaml"), path}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.args...)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

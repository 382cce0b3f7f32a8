package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		expect  Format
		wantErr bool
	}{
		{name: "text", input: "resume.txt", expect: FormatText},
		{name: "markdown upper case", input: "CV.MD", expect: FormatText},
		{name: "no extension", input: "resume", expect: FormatText},
		{name: "stdin", input: StdinName, expect: FormatText},
		{name: "pdf", input: "dir/resume.pdf", expect: FormatPDF},
		{name: "html", input: "posting.html", expect: FormatHTML},
		{name: "htm", input: "posting.HTM", expect: FormatHTML},
		{name: "docx", input: "resume.docx", wantErr: true},
		{name: "image", input: "resume.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DetectFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestReadText(t *testing.T) {
	t.Parallel()

	doc, err := Read(strings.NewReader("\uFEFFJane Doe\r\nEngineer\xff\r\n"), "resume.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Jane Doe\nEngineer\uFFFD\n" {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
	if doc.Format != FormatText || doc.Name != "resume.txt" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Chars() != 19 {
		t.Fatalf("expected 19 chars, got %d", doc.Chars())
	}
}

func TestReadHTML(t *testing.T) {
	t.Parallel()

	page := `<html><body><h1>Backend Engineer</h1><p>We use <b>Go</b> and Kafka.</p><ul><li>Postgres</li><li>Docker</li></ul></body></html>`
	doc, err := Read(strings.NewReader(page), "posting.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Format != FormatHTML {
		t.Fatalf("expected html format, got %s", doc.Format)
	}
	for _, want := range []string{"Backend Engineer", "Kafka", "Postgres", "Docker"} {
		if !strings.Contains(doc.Text, want) {
			t.Fatalf("expected %q in %q", want, doc.Text)
		}
	}
	if strings.Contains(doc.Text, "<") {
		t.Fatalf("expected markup to be removed, got %q", doc.Text)
	}

	if _, err := Read(strings.NewReader("<html><body> </body></html>"), "empty.html"); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument for a page without text, got %v", err)
	}
}

func TestReadEmpty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "  \n\t \r\n"} {
		_, err := Read(strings.NewReader(input), "resume.txt")
		if !errors.Is(err, ErrEmptyDocument) {
			t.Fatalf("expected ErrEmptyDocument for %q, got %v", input, err)
		}
	}
}

func TestReadInvalidPDF(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader("definitely not a pdf"), "resume.pdf")
	if err == nil {
		t.Fatalf("expected error for invalid pdf")
	}
	if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected a decoding error, got %v", err)
	}
	if !strings.Contains(err.Error(), "resume.pdf") {
		t.Fatalf("expected file name in error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.md")
	if err := os.WriteFile(path, []byte("# Jane Doe\nSkills: Go"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "# Jane Doe\nSkills: Go" {
		t.Fatalf("unexpected text: %q", doc.Text)
	}

	if _, err := Load(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}

	// Unsupported formats are rejected before the file is opened.
	if _, err := Load(filepath.Join(dir, "missing.docx")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

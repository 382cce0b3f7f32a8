// Package document turns résumé and job description files into plain text.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
)

// StdinName is the path that makes Load read from standard input.
const StdinName = "-"

var (
	// ErrUnsupportedFormat is returned for files that cannot be turned into text.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEmptyDocument is returned when a document holds no text besides whitespace.
	ErrEmptyDocument = errors.New("document is empty")
)

// Format identifies how a document is decoded.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// Document is a loaded document.
type Document struct {
	Name   string
	Format Format
	Text   string
}

// Chars returns the number of characters in the document text.
func (d *Document) Chars() int {
	return utf8.RuneCountInString(d.Text)
}

// DetectFormat picks the decoder from the file extension. Files without an
// extension and standard input are read as text.
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case "", ".txt", ".md", ".text":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load reads the document at path. The path "-" reads standard input.
func Load(path string) (*Document, error) {
	if path == StdinName {
		return Read(os.Stdin, path)
	}

	if _, err := DetectFormat(path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, path)
}

// Read decodes a document from r. The name is only used to detect the format
// and in error messages.
func Read(r io.Reader, name string) (*Document, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
		if err != nil {
			return nil, fmt.Errorf("read %s: pdf: %w", name, err)
		}
	case FormatHTML:
		// Saved job postings keep their list structure as markdown bullets.
		text, err = htmltomarkdown.ConvertString(string(data))
		if err != nil {
			return nil, fmt.Errorf("read %s: html: %w", name, err)
		}
	default:
		text = string(data)
	}

	text = normalize(text)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("read %s: %w", name, ErrEmptyDocument)
	}

	return &Document{Name: name, Format: format, Text: text}, nil
}

// normalize replaces invalid UTF-8 and converts Windows line endings.
func normalize(text string) string {
	text = strings.ToValidUTF8(text, string(utf8.RuneError))
	text = strings.TrimPrefix(text, "\uFEFF")
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

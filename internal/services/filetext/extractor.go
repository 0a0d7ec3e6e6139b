// Package filetext turns an uploaded file into plain text for translation.
//
// Plain text and Markdown pass through, subtitle files are reduced to their
// caption lines, and PDFs go through the ledongthuc/pdf library, which is pure
// Go so the fake backend stays a single binary.
package filetext

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/Shimizu-Technology/ytt-client/internal/services/transcript"
)

// ErrUnsupportedFormat is returned for file extensions we cannot read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrEmpty is returned when a file yields no text.
var ErrEmpty = errors.New("file contains no text")

// Result holds the output from an extraction.
type Result struct {
	Text      string
	Format    string // extension without the dot
	PageCount int    // PDFs only
	WordCount int
}

// Extract picks a reader by file extension.
func Extract(filename string, data []byte) (*Result, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var (
		text  string
		pages int
		err   error
	)
	switch ext {
	case "txt", "md":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%s is not valid UTF-8", filename)
		}
		text = strings.TrimSpace(string(data))
	case "srt", "vtt":
		text = transcript.RawTranscript(transcript.ParseCaptionLines(string(data)))
	case "pdf":
		text, pages, err = extractPDF(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, filename)
	}
	return &Result{
		Text:      text,
		Format:    ext,
		PageCount: pages,
		WordCount: len(strings.Fields(text)),
	}, nil
}

// extractPDF reads every page's plain text, separating pages with a blank line.
func extractPDF(data []byte) (string, int, error) {
	if !looksLikePDF(data) {
		return "", 0, errors.New("file does not look like a PDF")
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := r.NumPage()
	parts := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Image-only pages have no text; skip them rather than fail the upload.
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), pageCount, nil
}

// looksLikePDF checks the magic bytes.
func looksLikePDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

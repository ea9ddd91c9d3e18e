package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the largest resume file accepted
const MaxUploadBytes = 16 << 20

// Supported formats
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatTXT  = "txt"
	FormatHTML = "html"
	FormatHTM  = "htm"
	FormatMD   = "md"
	FormatURL  = "url"
)

var allowedExtensions = map[string]bool{
	FormatPDF:  true,
	FormatDOCX: true,
	FormatTXT:  true,
	FormatHTML: true,
	FormatHTM:  true,
	FormatMD:   true,
}

// UnsupportedFormatError is returned for files whose extension is not accepted
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Filename)
}

// AllowedFile reports whether the file name has an accepted extension
func AllowedFile(filename string) bool {
	return allowedExtensions[extension(filename)]
}

// AllowedExtensions lists the accepted extensions in a stable order
func AllowedExtensions() []string {
	return []string{FormatPDF, FormatDOCX, FormatTXT, FormatHTML, FormatHTM, FormatMD}
}

func extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// ExtractDocument extracts and cleans the text of an uploaded file
func ExtractDocument(ctx context.Context, filename string, data []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("file %s is %d bytes, limit is %d", filename, len(data), MaxUploadBytes)
	}

	format := extension(filename)
	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatTXT, FormatMD:
		text = string(data)
	case FormatHTML, FormatHTM:
		text, err = extractHTML(string(data))
	default:
		return nil, &UnsupportedFormatError{Filename: filename}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", filename, err)
	}

	return NewDocument(filename, format, data, CleanText(text)), nil
}

// Extract returns the cleaned text of an uploaded file, or "" when it cannot be read.
// Failures are logged, never returned.
func Extract(ctx context.Context, filename string, data []byte) string {
	doc, err := ExtractDocument(ctx, filename, data)
	if err != nil {
		slog.Warn("text extraction failed", slog.String("file", filename), slog.Any("error", err))
		return ""
	}
	slog.Debug("text extracted",
		slog.String("file", filename),
		slog.String("format", doc.Format),
		slog.Int("chars", len(doc.Text)),
		slog.String("hash", doc.Hash))
	return doc.Text
}

// ExtractFile reads a file from disk and returns its cleaned text, or "" on failure
func ExtractFile(ctx context.Context, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read resume file", slog.String("path", path), slog.Any("error", err))
		return ""
	}
	return Extract(ctx, filepath.Base(path), data)
}

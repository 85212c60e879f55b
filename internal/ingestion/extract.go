package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileBytes bounds the size of a resume file read from disk.
const MaxFileBytes = 2 << 20

// Extractor turns a document on disk into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// ExtractionError is returned when a document cannot be turned into text.
type ExtractionError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Reason, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ErrUnsupportedFormat is wrapped by ExtractionError for file types without an extractor.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FileExtractor reads plain text and markdown files. PDF and Word documents
// are recognised but not converted.
type FileExtractor struct{}

var textExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
}

var binaryExtensions = map[string]string{
	".pdf":  "PDF",
	".doc":  "Word",
	".docx": "Word",
	".rtf":  "RTF",
}

// IsSupported reports whether path has an extension FileExtractor can read.
func IsSupported(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}

// ExtractText returns the text of the file at path as stored. Normalization is
// left to the generative path; the heuristic scorer reads text unmodified.
func (FileExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := binaryExtensions[ext]; ok {
		return "", &ExtractionError{
			Path:   path,
			Reason: kind + " extraction is not available; paste the text or save as .txt",
			Cause:  ErrUnsupportedFormat,
		}
	}
	if !textExtensions[ext] {
		return "", &ExtractionError{Path: path, Reason: fmt.Sprintf("file type %q", ext), Cause: ErrUnsupportedFormat}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &ExtractionError{Path: path, Reason: "file not found", Cause: err}
		}
		return "", &ExtractionError{Path: path, Reason: "failed to stat file", Cause: err}
	}
	if info.Size() > MaxFileBytes {
		return "", &ExtractionError{Path: path, Reason: fmt.Sprintf("file exceeds %d bytes", MaxFileBytes)}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Reason: "failed to read file", Cause: err}
	}
	if !utf8.Valid(content) {
		return "", &ExtractionError{Path: path, Reason: "file is not valid UTF-8 text"}
	}
	return string(content), nil
}

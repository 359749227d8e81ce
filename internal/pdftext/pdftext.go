// Package pdftext converts resume PDFs into the line-oriented plain text the
// resume parser reads.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParseError is returned when a PDF cannot be read or holds no text.
type PDFParseError struct {
	Message string
	Cause   error
}

func (e *PDFParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse PDF: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse PDF: %s", e.Message)
}

func (e *PDFParseError) Unwrap() error {
	return e.Cause
}

var horizontalSpace = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)

// ExtractText reads every page of the PDF in r and returns its text, one
// visual row per line, top to bottom.
func ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", &PDFParseError{Message: fmt.Sprintf("malformed document: %v", rec)}
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", &PDFParseError{Message: "failed to open document", Cause: err}
	}

	var lines []string
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", &PDFParseError{Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		for _, row := range rows {
			var sb strings.Builder
			for _, t := range row.Content {
				sb.WriteString(t.S)
			}
			if line := normalizeLine(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) == 0 {
		return "", &PDFParseError{Message: "no extractable text"}
	}
	return strings.Join(lines, "\n"), nil
}

// ExtractBytes is ExtractText over an in-memory document.
func ExtractBytes(data []byte) (string, error) {
	return ExtractText(bytes.NewReader(data), int64(len(data)))
}

// ExtractFile opens path and extracts its text.
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &PDFParseError{Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", &PDFParseError{Message: "failed to stat file", Cause: err}
	}
	return ExtractText(f, info.Size())
}

// IsPDF reports whether data starts with the PDF magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func normalizeLine(s string) string {
	return strings.TrimSpace(horizontalSpace.ReplaceAllString(s, " "))
}

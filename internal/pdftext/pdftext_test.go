package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a single-page PDF with one text row per line, computing
// the cross-reference offsets as it goes.
func buildPDF(lines ...string) []byte {
	var content strings.Builder
	y := 700
	for _, line := range lines {
		fmt.Fprintf(&content, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", y, line)
		y -= 20
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractBytes(t *testing.T) {
	data := buildPDF("Jane   Doe", "EXPERIENCE")

	text, err := ExtractBytes(data)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines, "Jane Doe")
	assert.Contains(t, lines, "EXPERIENCE")
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, buildPDF("SKILLS"), 0o600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SKILLS", text)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not a pdf", data: []byte("Jane Doe\nEXPERIENCE")},
		{name: "no text", data: buildPDF()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractBytes(tt.data)
			require.Error(t, err)

			var pdfErr *PDFParseError
			assert.True(t, errors.As(err, &pdfErr))
		})
	}
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))

	var pdfErr *PDFParseError
	require.True(t, errors.As(err, &pdfErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF(buildPDF("x")))
	assert.False(t, IsPDF([]byte("plain text")))
}

func TestPDFParseError(t *testing.T) {
	err := &PDFParseError{Message: "failed to open document", Cause: errors.New("bad header")}
	assert.Equal(t, "failed to parse PDF: failed to open document: bad header", err.Error())
	assert.Equal(t, "failed to parse PDF: no extractable text", (&PDFParseError{Message: "no extractable text"}).Error())
}

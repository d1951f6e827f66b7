package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsc.io/pdf"

	"github.com/tsawler/golden/model"
)

// writePDF builds a single-page PDF with a regular and a bold Helvetica font
// (F1, F2) and the given content stream, and returns its path.
func writePDF(t *testing.T, content string) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	font := func(name string) string {
		widths := strings.TrimSpace(strings.Repeat("500 ", 95))
		return "<< /Type /Font /Subtype /Type1 /BaseFont /" + name +
			" /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>"
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj("<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>")
	obj("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 5 0 R /F2 6 0 R >> >> /Contents 4 0 R >>")
	obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	obj(font("Helvetica"))
	obj(font("Helvetica-Bold"))

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestExtractPDF(t *testing.T) {
	path := writePDF(t, strings.Join([]string{
		"BT /F2 12 Tf 72 680 Td (Bold heading) Tj ET",
		"BT /F1 12 Tf 72 720 Td (Hello World) Tj ET",
		"BT /F1 12 Tf 72 700 Td (Second line) Tj ET",
	}, "\n"))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, PDF, doc.Format)
	require.Equal(t, 1, doc.PageCount())

	page := doc.Pages[0]
	assert.Equal(t, 0, page.PageIndex)
	assert.Equal(t, 612.0, page.Width)
	assert.Equal(t, 792.0, page.Height)

	require.Len(t, page.Fragments, 3)
	assert.Equal(t, []string{"Hello World", "Second line", "Bold heading"}, texts(page.Fragments))

	first := page.Fragments[0]
	assert.Equal(t, 0, first.ReadingOrder)
	assert.Equal(t, "Helvetica", first.FontName)
	assert.InDelta(t, 12.0, first.FontSize, 1e-9)
	assert.InDelta(t, 72.0, first.BBox.Left, 1e-6)
	assert.InDelta(t, 792-720-0.8*12, first.BBox.Top, 1e-6)
	assert.True(t, first.BBox.IsValid())
	assert.Less(t, first.BBox.Top, page.Fragments[1].BBox.Top)

	bold := page.Fragments[2]
	assert.Equal(t, "Helvetica-Bold", bold.FontName)
	assert.True(t, bold.FontFlags.Has(model.FlagBold))
}

func TestExtractPDFNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nnot really"), 0o644))

	_, err := ExtractPDF(path)
	assert.Error(t, err)
}

func TestMergeGlyphs(t *testing.T) {
	glyph := func(s string, x float64) pdf.Text {
		return pdf.Text{Font: "Helvetica", FontSize: 10, X: x, Y: 700, W: 5, S: s}
	}

	glyphs := []pdf.Text{
		glyph("A", 10), glyph("B", 15), // adjacent
		glyph("C", 23), // small gap, gets a space
		glyph("D", 100), // far away, new run
		{Font: "Helvetica-Bold", FontSize: 10, X: 105, Y: 700, W: 5, S: "E"}, // font change
		{Font: "Helvetica", FontSize: 10, X: 10, Y: 680, W: 5, S: "F"},      // next line
	}

	runs := mergeGlyphs(glyphs)
	got := make([]string, len(runs))
	for i, r := range runs {
		got[i] = r.text
	}
	assert.Equal(t, []string{"AB C", "D", "E", "F"}, got)
	assert.Equal(t, 28.0, runs[0].right)
}

func TestFontNameHelpers(t *testing.T) {
	assert.Equal(t, "Helvetica", baseFontName("ABCDEF+Helvetica"))
	assert.Equal(t, "A+B", baseFontName("A+B"))

	tests := []struct {
		name string
		want model.FontFlags
	}{
		{"Helvetica", 0},
		{"Helvetica-BoldOblique", model.FlagBold | model.FlagItalic},
		{"Courier", model.FlagMonospace},
		{"Arial-Black", model.FlagBold},
		{"TimesNewRoman-Italic", model.FlagItalic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, flagsFromFontName(tt.name), tt.name)
	}
}

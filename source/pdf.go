package source

import (
	"fmt"
	"math"
	"os"
	"strings"

	"rsc.io/pdf"

	"github.com/tsawler/golden/model"
)

// Glyph metrics relative to font size, used to turn a baseline into a box
const (
	ascent  = 0.8
	descent = 0.2

	// Horizontal gap, in font sizes, above which a space is inserted
	spaceGap = 0.15
	// Horizontal gap, in font sizes, above which a new fragment starts
	breakGap = 1.0
)

// ExtractPDF reads a PDF and returns one PageFragments per page. Glyphs
// sharing a font, size and baseline are merged into fragments, boxes use a
// top-left origin, and reading order is assigned top to bottom.
func ExtractPDF(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc := &Document{Format: PDF}
	for i := 1; i <= r.NumPage(); i++ {
		page, err := extractPage(r.Page(i), i-1)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i-1, err)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

// extractPage converts one page. The pdf package panics on malformed
// content streams, so that is turned into an error here.
func extractPage(p pdf.Page, index int) (page model.PageFragments, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content: %v", r)
		}
	}()

	page = model.PageFragments{PageIndex: index}
	if p.V.IsNull() {
		return page, nil
	}

	box := mediaBox(p.V)
	page.Width, page.Height = box.Width(), box.Height()

	runs := mergeGlyphs(p.Content().Text)
	frags := make([]model.TextFragment, 0, len(runs))
	for _, run := range runs {
		if strings.TrimSpace(run.text) == "" {
			continue
		}
		frags = append(frags, run.fragment(index, box))
	}
	page.Fragments = AssignReadingOrder(frags, DefaultLineConfig())
	return page, nil
}

// mediaBox finds the page's MediaBox, which may be inherited from a parent
// page tree node. US Letter is assumed when none is present.
func mediaBox(v pdf.Value) model.BBox {
	for node := v; !node.IsNull(); node = node.Key("Parent") {
		mb := node.Key("MediaBox")
		if mb.Len() == 4 {
			return model.NewBBox(mb.Index(0).Float64(), mb.Index(1).Float64(), mb.Index(2).Float64(), mb.Index(3).Float64())
		}
	}
	return model.NewBBox(0, 0, 612, 792)
}

// glyphRun is a sequence of glyphs on one baseline in one font
type glyphRun struct {
	font  string
	size  float64
	x, y  float64
	right float64
	text  string
}

func (g glyphRun) fragment(index int, media model.BBox) model.TextFragment {
	// PDF space has its origin at the bottom left
	top := media.Bottom - g.y - ascent*g.size
	bottom := media.Bottom - g.y + descent*g.size
	name := baseFontName(g.font)
	return model.TextFragment{
		PageIndex: index,
		Text:      strings.TrimSpace(g.text),
		BBox:      model.NewBBox(g.x-media.Left, top, g.right-media.Left, bottom),
		FontName:  name,
		FontSize:  g.size,
		FontFlags: flagsFromFontName(name),
	}
}

// mergeGlyphs joins consecutive glyphs into runs
func mergeGlyphs(glyphs []pdf.Text) []glyphRun {
	var runs []glyphRun
	for _, t := range glyphs {
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			gap := t.X - last.right
			sameLine := last.font == t.Font &&
				math.Abs(last.size-t.FontSize) < 0.01 &&
				math.Abs(last.y-t.Y) < 0.5
			if sameLine && gap > -t.FontSize*spaceGap && gap < t.FontSize*breakGap {
				if gap > t.FontSize*spaceGap && !strings.HasSuffix(last.text, " ") && t.S != " " {
					last.text += " "
				}
				last.text += t.S
				last.right = math.Max(last.right, t.X+t.W)
				continue
			}
		}
		runs = append(runs, glyphRun{
			font:  t.Font,
			size:  t.FontSize,
			x:     t.X,
			y:     t.Y,
			right: t.X + t.W,
			text:  t.S,
		})
	}
	return runs
}

// baseFontName drops a subset prefix such as "ABCDEF+"
func baseFontName(name string) string {
	if i := strings.IndexByte(name, '+'); i == 6 {
		return name[i+1:]
	}
	return name
}

func flagsFromFontName(name string) model.FontFlags {
	lower := strings.ToLower(name)
	var f model.FontFlags
	if strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy") {
		f |= model.FlagBold
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		f |= model.FlagItalic
	}
	if strings.Contains(lower, "mono") || strings.Contains(lower, "courier") {
		f |= model.FlagMonospace
	}
	return f
}

package model

import (
	"math"
	"sort"
	"strings"
)

// FontFlags is a bit-set of style attributes carried by a fragment
type FontFlags uint8

const (
	FlagBold FontFlags = 1 << iota
	FlagItalic
	FlagUnderline
	FlagMonospace
	FlagSuperscript
)

var flagNames = []struct {
	flag FontFlags
	name string
}{
	{FlagBold, "bold"},
	{FlagItalic, "italic"},
	{FlagUnderline, "underline"},
	{FlagMonospace, "monospace"},
	{FlagSuperscript, "superscript"},
}

// Has reports whether all bits of f2 are set
func (f FontFlags) Has(f2 FontFlags) bool {
	return f&f2 == f2
}

// Names returns the set flags in a stable order
func (f FontFlags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// String returns the flags joined with "|", or "regular" when none are set
func (f FontFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "regular"
	}
	return strings.Join(names, "|")
}

// ParseFontFlags builds a flag set from names. Unknown names are ignored.
func ParseFontFlags(names ...string) FontFlags {
	var f FontFlags
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		for _, fn := range flagNames {
			if fn.name == n {
				f |= fn.flag
			}
		}
	}
	return f
}

// TextFragment is one visually contiguous run of text on a page
type TextFragment struct {
	PageIndex    int       // 0-based page index
	Text         string    // Literal extracted text, not trimmed
	BBox         BBox      // Position in page space
	FontName     string    // Font name, empty when unknown
	FontSize     float64   // Font size in points, 0 when unknown
	FontFlags    FontFlags // Bold/italic/etc.
	ReadingOrder int       // Position in natural reading order, unique per page
	IsVariable   bool      // Expected to vary between documents; never compared
}

// SameStyle reports whether two fragments share style metadata.
// Font names are compared only when both are known, sizes only when both are
// positive and then within sizeTolerance.
func (f TextFragment) SameStyle(other TextFragment, sizeTolerance float64) bool {
	if f.FontFlags != other.FontFlags {
		return false
	}
	if f.FontName != "" && other.FontName != "" && f.FontName != other.FontName {
		return false
	}
	if f.FontSize > 0 && other.FontSize > 0 && math.Abs(f.FontSize-other.FontSize) > sizeTolerance {
		return false
	}
	return true
}

// PageFragments holds the ordered fragments of one page plus its dimensions
type PageFragments struct {
	PageIndex int
	Width     float64 // Page width, 0 when unknown
	Height    float64 // Page height, 0 when unknown
	Fragments []TextFragment
}

// PageBox returns the full page rectangle
func (p PageFragments) PageBox() BBox {
	return BBox{Right: p.Width, Bottom: p.Height}
}

// HasDimensions reports whether the page size is known
func (p PageFragments) HasDimensions() bool {
	return p.Width > 0 && p.Height > 0
}

// Comparable returns the non-variable fragments in reading order
func (p PageFragments) Comparable() []TextFragment {
	out := make([]TextFragment, 0, len(p.Fragments))
	for _, f := range p.Fragments {
		if !f.IsVariable {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReadingOrder < out[j].ReadingOrder
	})
	return out
}

// Text joins the literal text of all non-variable fragments in reading order
func (p PageFragments) Text() string {
	frags := p.Comparable()
	parts := make([]string, 0, len(frags))
	for _, f := range frags {
		if t := strings.TrimSpace(f.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// SortByReadingOrder returns a copy of fragments sorted by ReadingOrder.
// The input is left untouched.
func SortByReadingOrder(fragments []TextFragment) []TextFragment {
	out := make([]TextFragment, len(fragments))
	copy(out, fragments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReadingOrder < out[j].ReadingOrder
	})
	return out
}

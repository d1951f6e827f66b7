package model

import (
	"errors"
	"fmt"
)

// MatchKind describes how a fragment was aligned
type MatchKind int

const (
	Matched MatchKind = iota // Both sides present
	Missing                  // Golden fragment with no target counterpart
	Extra                    // Target fragment with no golden counterpart
)

// String returns a string representation of the match kind
func (k MatchKind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Missing:
		return "missing"
	case Extra:
		return "extra"
	default:
		return "unknown"
	}
}

// FragmentMatch pairs a golden fragment with zero or one target fragment,
// or records a target fragment that has no golden counterpart.
type FragmentMatch struct {
	Golden *TextFragment
	Target *TextFragment
	Kind   MatchKind
}

// Validate checks the side/kind invariant of the match
func (m FragmentMatch) Validate() error {
	switch m.Kind {
	case Matched:
		if m.Golden == nil || m.Target == nil {
			return errors.New("matched pair requires both fragments")
		}
	case Missing:
		if m.Golden == nil || m.Target != nil {
			return errors.New("missing match requires only a golden fragment")
		}
	case Extra:
		if m.Target == nil || m.Golden != nil {
			return errors.New("extra match requires only a target fragment")
		}
	default:
		return fmt.Errorf("unknown match kind %d", m.Kind)
	}
	return nil
}

// DiffKind classifies a reported difference
type DiffKind int

const (
	MissingText DiffKind = iota
	ExtraText
	TextChanged
	LayoutShifted
	StyleChanged
)

// DiffKinds lists every kind in reporting order
var DiffKinds = []DiffKind{MissingText, ExtraText, TextChanged, LayoutShifted, StyleChanged}

// String returns the stable name of the kind
func (k DiffKind) String() string {
	switch k {
	case MissingText:
		return "missing_text"
	case ExtraText:
		return "extra_text"
	case TextChanged:
		return "text_changed"
	case LayoutShifted:
		return "layout_shifted"
	case StyleChanged:
		return "style_changed"
	default:
		return "unknown"
	}
}

// Label returns a short human-readable label
func (k DiffKind) Label() string {
	switch k {
	case MissingText:
		return "Missing"
	case ExtraText:
		return "Extra"
	case TextChanged:
		return "Text"
	case LayoutShifted:
		return "Layout"
	case StyleChanged:
		return "Style"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k DiffKind) MarshalText() ([]byte, error) {
	s := k.String()
	if s == "unknown" {
		return nil, fmt.Errorf("unknown diff kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *DiffKind) UnmarshalText(b []byte) error {
	for _, kind := range DiffKinds {
		if kind.String() == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown diff kind %q", string(b))
}

// PageDiff is one classified difference on a page
type PageDiff struct {
	Kind         DiffKind `json:"kind"`
	PageIndex    int      `json:"page"`
	GoldenBox    *BBox    `json:"golden_box,omitempty"`
	TargetBox    *BBox    `json:"target_box,omitempty"`
	GoldenText   *string  `json:"golden_text,omitempty"`
	TargetText   *string  `json:"target_text,omitempty"`
	Severity     float64  `json:"severity"`
	Similarity   float64  `json:"similarity,omitempty"`
	Displacement float64  `json:"displacement,omitempty"`
	Detail       string   `json:"detail,omitempty"`
	PageLevel    bool     `json:"page_level,omitempty"`
}

// Box returns the target box when present, otherwise the golden box
func (d PageDiff) Box() (BBox, bool) {
	if d.TargetBox != nil {
		return *d.TargetBox, true
	}
	if d.GoldenBox != nil {
		return *d.GoldenBox, true
	}
	return BBox{}, false
}

// Texts returns the golden and target text, empty when absent
func (d PageDiff) Texts() (golden, target string) {
	if d.GoldenText != nil {
		golden = *d.GoldenText
	}
	if d.TargetText != nil {
		target = *d.TargetText
	}
	return golden, target
}

package classify

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/golden/model"
)

// Classify decides whether a match is a reportable difference.
// It returns false when the match needs no report.
//
// Matched pairs are checked in order: identical (no diff), text similarity
// below threshold (TextChanged), center displacement beyond tolerance
// (LayoutShifted), then style (StyleChanged). Missing and Extra matches always
// produce MissingText and ExtraText with severity 1.
func Classify(m model.FragmentMatch, cfg Config) (model.PageDiff, bool) {
	switch m.Kind {
	case model.Missing:
		if m.Golden == nil {
			return model.PageDiff{}, false
		}
		return sideDiff(model.MissingText, m.Golden, "removed"), true
	case model.Extra:
		if m.Target == nil {
			return model.PageDiff{}, false
		}
		return sideDiff(model.ExtraText, m.Target, "added"), true
	case model.Matched:
		if m.Golden == nil || m.Target == nil {
			return model.PageDiff{}, false
		}
		return classifyPair(*m.Golden, *m.Target, cfg)
	default:
		return model.PageDiff{}, false
	}
}

// sideDiff builds a diff for a fragment present on one side only
func sideDiff(kind model.DiffKind, f *model.TextFragment, verb string) model.PageDiff {
	box := f.BBox
	text := f.Text
	d := model.PageDiff{
		Kind:      kind,
		PageIndex: f.PageIndex,
		Severity:  1.0,
		Detail:    fmt.Sprintf("%s: '%s'", verb, strings.TrimSpace(text)),
	}
	if kind == model.MissingText {
		d.GoldenBox, d.GoldenText = &box, &text
	} else {
		d.TargetBox, d.TargetText = &box, &text
	}
	return d
}

func classifyPair(g, t model.TextFragment, cfg Config) (model.PageDiff, bool) {
	displacement := g.BBox.CenterDisplacement(t.BBox)
	sameStyle := cfg.IgnoreStyle || g.SameStyle(t, cfg.FontSizeTolerance)

	if g.Text == t.Text && displacement <= cfg.PositionTolerance && sameStyle {
		return model.PageDiff{}, false
	}

	d := pairDiff(g, t)
	d.Displacement = displacement
	d.Similarity = Similarity(g.Text, t.Text)

	switch {
	case d.Similarity < cfg.TextSimilarityThreshold:
		d.Kind = model.TextChanged
		d.Severity = clamp(1 - d.Similarity)
		d.Detail = fmt.Sprintf("'%s' -> '%s'", strings.TrimSpace(g.Text), strings.TrimSpace(t.Text))
	case displacement > cfg.PositionTolerance:
		d.Kind = model.LayoutShifted
		d.Severity = layoutSeverity(displacement, cfg.PositionTolerance)
		gc, tc := g.BBox.Center(), t.BBox.Center()
		d.Detail = fmt.Sprintf("position delta (%.1f, %.1f)", tc.X-gc.X, tc.Y-gc.Y)
	case !sameStyle:
		d.Kind = model.StyleChanged
		d.Severity = cfg.StyleSeverity
		d.Detail = fmt.Sprintf("style %s -> %s", styleString(g), styleString(t))
	default:
		// Case or whitespace only
		return model.PageDiff{}, false
	}
	return d, true
}

func pairDiff(g, t model.TextFragment) model.PageDiff {
	gBox, tBox := g.BBox, t.BBox
	gText, tText := g.Text, t.Text
	return model.PageDiff{
		PageIndex:  g.PageIndex,
		GoldenBox:  &gBox,
		TargetBox:  &tBox,
		GoldenText: &gText,
		TargetText: &tText,
	}
}

// layoutSeverity scales displacement so ten tolerances saturate at 1
func layoutSeverity(displacement, tolerance float64) float64 {
	if tolerance <= 0 {
		return 1
	}
	return clamp(displacement / (10 * tolerance))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func styleString(f model.TextFragment) string {
	name := f.FontName
	if name == "" {
		name = "?"
	}
	return fmt.Sprintf("%s %.1f %s", name, f.FontSize, f.FontFlags)
}

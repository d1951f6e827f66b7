package mask

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/golden/model"
)

// ErrInvalidMaskLength is returned when a mask does not have exactly one
// entry per fragment.
var ErrInvalidMaskLength = errors.New("invalid mask length")

// Detector tags fragments that are expected to vary between documents.
// Implementations may use heuristics or a remote model; callers only see the
// resulting mask.
type Detector interface {
	// Name identifies the detector in logs and errors
	Name() string

	// Detect returns one entry per fragment of page, true meaning variable
	Detect(ctx context.Context, page model.PageFragments) ([]bool, error)
}

// ApplyMask returns a copy of fragments with IsVariable set from mask.
// mask[i] corresponds to fragments[i]. The input slice is not modified.
func ApplyMask(fragments []model.TextFragment, mask []bool) ([]model.TextFragment, error) {
	if len(mask) != len(fragments) {
		return nil, fmt.Errorf("%w: %d entries for %d fragments", ErrInvalidMaskLength, len(mask), len(fragments))
	}

	out := make([]model.TextFragment, len(fragments))
	for i, f := range fragments {
		f.IsVariable = mask[i]
		out[i] = f
	}
	return out, nil
}

// ApplyScores is the confidence variant of ApplyMask: a fragment is variable
// when its score is at least threshold.
func ApplyScores(fragments []model.TextFragment, scores []float64, threshold float64) ([]model.TextFragment, error) {
	if len(scores) != len(fragments) {
		return nil, fmt.Errorf("%w: %d scores for %d fragments", ErrInvalidMaskLength, len(scores), len(fragments))
	}

	m := make([]bool, len(scores))
	for i, s := range scores {
		m[i] = s >= threshold
	}
	return ApplyMask(fragments, m)
}

// ApplyPage applies a mask to a single page, returning a new page value
func ApplyPage(page model.PageFragments, mask []bool) (model.PageFragments, error) {
	frags, err := ApplyMask(page.Fragments, mask)
	if err != nil {
		return model.PageFragments{}, fmt.Errorf("page %d: %w", page.PageIndex, err)
	}
	page.Fragments = frags
	return page, nil
}

// ApplyDetector runs d over every page and applies the resulting masks.
// The returned pages are new values; the input is left untouched.
func ApplyDetector(ctx context.Context, d Detector, pages []model.PageFragments) ([]model.PageFragments, error) {
	out := make([]model.PageFragments, len(pages))
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, err := d.Detect(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("detector %q, page %d: %w", d.Name(), page.PageIndex, err)
		}

		masked, err := ApplyPage(page, m)
		if err != nil {
			return nil, fmt.Errorf("detector %q: %w", d.Name(), err)
		}
		out[i] = masked
	}
	return out, nil
}

// anyDetector flags a fragment when any of its detectors does
type anyDetector struct {
	detectors []Detector
}

// Any combines detectors so a fragment is variable when at least one
// detector flags it.
func Any(detectors ...Detector) Detector {
	return &anyDetector{detectors: detectors}
}

func (a *anyDetector) Name() string {
	return "any"
}

func (a *anyDetector) Detect(ctx context.Context, page model.PageFragments) ([]bool, error) {
	out := make([]bool, len(page.Fragments))
	for _, d := range a.detectors {
		m, err := d.Detect(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("detector %q: %w", d.Name(), err)
		}
		if len(m) != len(out) {
			return nil, fmt.Errorf("detector %q: %w: %d entries for %d fragments", d.Name(), ErrInvalidMaskLength, len(m), len(out))
		}
		for i, v := range m {
			out[i] = out[i] || v
		}
	}
	return out, nil
}

// Static returns a detector that always yields the given per-page masks.
// Pages without an entry get an all-false mask.
func Static(masks map[int][]bool) Detector {
	return staticDetector(masks)
}

type staticDetector map[int][]bool

func (s staticDetector) Name() string {
	return "static"
}

func (s staticDetector) Detect(_ context.Context, page model.PageFragments) ([]bool, error) {
	if m, ok := s[page.PageIndex]; ok {
		return m, nil
	}
	return make([]bool, len(page.Fragments)), nil
}

package golden

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/golden/align"
	"github.com/tsawler/golden/classify"
	"github.com/tsawler/golden/mask"
	"github.com/tsawler/golden/model"
)

// comparePage compares one page. Either side may be nil when the page exists
// in only one document.
func (c *Comparator) comparePage(ctx context.Context, index int, g, t *model.PageFragments) (model.PageResult, []model.Warning, error) {
	pr := model.NewPageResult(index)
	pr.GoldenPresent = g != nil
	pr.TargetPresent = t != nil
	log := c.logger.WithField("page", index)

	switch {
	case g == nil && t == nil:
		return pr, nil, nil
	case g == nil:
		only, err := c.detect(ctx, *t)
		if err != nil {
			return pr, nil, err
		}
		pr.Add(unpairedPage(model.ExtraText, only))
		log.Debug("page only in target")
		return pr, nil, nil
	case t == nil:
		only, err := c.detect(ctx, *g)
		if err != nil {
			return pr, nil, err
		}
		pr.Add(unpairedPage(model.MissingText, only))
		log.Debug("page only in golden")
		return pr, nil, nil
	}

	goldenPage, err := c.detect(ctx, *g)
	if err != nil {
		return pr, nil, err
	}
	targetPage, err := c.detect(ctx, *t)
	if err != nil {
		return pr, nil, err
	}

	var warnings []model.Warning
	goldenOK, goldenBad, w := partition("golden", goldenPage, log)
	warnings = append(warnings, w...)
	targetOK, targetBad, w := partition("target", targetPage, log)
	warnings = append(warnings, w...)

	matches := align.AlignWith(goldenOK, targetOK, c.options.alignment)
	for i := range goldenBad {
		matches = append(matches, model.FragmentMatch{Golden: &goldenBad[i], Kind: model.Missing})
	}
	for i := range targetBad {
		matches = append(matches, model.FragmentMatch{Target: &targetBad[i], Kind: model.Extra})
	}

	classifyMatches(&pr, matches, c.options.config)

	log.WithFields(logrus.Fields{
		"matches": pr.Matches,
		"diffs":   len(pr.Diffs),
	}).Debug("page compared")

	return pr, warnings, nil
}

// classifyMatches classifies every match of a page into pr
func classifyMatches(pr *model.PageResult, matches []model.FragmentMatch, cfg classify.Config) {
	for _, m := range matches {
		if m.Kind == model.Matched {
			pr.Matches++
		}
		if d, ok := classify.Classify(m, cfg); ok {
			d.PageIndex = pr.PageIndex
			pr.Add(d)
		}
	}
}

// detect runs the configured detectors over a page, keeping fragments
// that were already flagged variable.
func (c *Comparator) detect(ctx context.Context, page model.PageFragments) (model.PageFragments, error) {
	if len(c.options.detectors) == 0 {
		return page, nil
	}
	if err := ctx.Err(); err != nil {
		return page, err
	}

	d := mask.Any(c.options.detectors...)
	flags, err := d.Detect(ctx, page)
	if err != nil {
		return page, fmt.Errorf("detector %q: %w", d.Name(), err)
	}
	for i, f := range page.Fragments {
		flags[i] = flags[i] || f.IsVariable
	}
	return mask.ApplyPage(page, flags)
}

// partition splits the comparable fragments of a page into those with a
// usable box and those without. Variable fragments are dropped.
func partition(side string, page model.PageFragments, log logrus.FieldLogger) (ok, bad []model.TextFragment, warnings []model.Warning) {
	for _, f := range page.Fragments {
		if f.IsVariable {
			continue
		}
		f.PageIndex = page.PageIndex

		err := f.BBox.Validate()
		if err == nil && page.HasDimensions() && !f.BBox.Intersects(page.PageBox()) {
			err = fmt.Errorf("%w: %s outside page %gx%g", model.ErrMalformedBoundingBox, f.BBox, page.Width, page.Height)
		}
		if err != nil {
			log.WithFields(logrus.Fields{
				"side":          side,
				"reading_order": f.ReadingOrder,
			}).Warn(err.Error())
			warnings = append(warnings, model.Warning{
				Page:    page.PageIndex,
				Code:    model.WarnMalformedBox,
				Message: fmt.Sprintf("%s fragment %d excluded from alignment: %v", side, f.ReadingOrder, err),
			})
			bad = append(bad, f)
			continue
		}
		ok = append(ok, f)
	}
	return ok, bad, warnings
}

// unpairedPage reports a whole page present in only one document
func unpairedPage(kind model.DiffKind, page model.PageFragments) model.PageDiff {
	box := pageBox(page)
	text := page.Text()
	d := model.PageDiff{
		Kind:      kind,
		PageIndex: page.PageIndex,
		Severity:  1.0,
		PageLevel: true,
	}
	if kind == model.MissingText {
		d.GoldenBox, d.GoldenText = &box, &text
		d.Detail = fmt.Sprintf("page %d missing from target", page.PageIndex)
	} else {
		d.TargetBox, d.TargetText = &box, &text
		d.Detail = fmt.Sprintf("page %d not in golden", page.PageIndex)
	}
	return d
}

// pageBox returns the page rectangle, or the union of the fragment boxes
// when the page size is unknown
func pageBox(page model.PageFragments) model.BBox {
	if page.HasDimensions() {
		return page.PageBox()
	}
	var box model.BBox
	first := true
	for _, f := range page.Fragments {
		if !f.BBox.IsValid() {
			continue
		}
		if first {
			box, first = f.BBox, false
			continue
		}
		box = box.Union(f.BBox)
	}
	return box
}

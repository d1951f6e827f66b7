package golden

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/golden/classify"
	"github.com/tsawler/golden/mask"
	"github.com/tsawler/golden/model"
)

// Comparator provides a fluent interface for comparing two documents.
// Each configuration method returns a new Comparator instance, making it
// safe for concurrent use and allowing method chaining.
type Comparator struct {
	// Inputs
	golden []model.PageFragments
	target []model.PageFragments

	// Configuration
	options CompareOptions
	logger  logrus.FieldLogger

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Comparator with a deep copy of options.
func (c *Comparator) clone() *Comparator {
	return &Comparator{
		golden:  c.golden,
		target:  c.target,
		options: c.options.clone(),
		logger:  c.logger,
		err:     c.err,
	}
}

// ============================================================================
// Fluent Configuration Methods
// ============================================================================

// PageRange restricts the comparison to pages start through end inclusive
// (0-based). The range must exist in both documents unless
// IncludeUnpairedPages is set, in which case it must exist in at least one.
//
// Example:
//
//	result, err := golden.Compare(g, t).PageRange(0, 2).Run(ctx)
func (c *Comparator) PageRange(start, end int) *Comparator {
	newCmp := c.clone()
	newCmp.options.pageRange = &Range{Start: start, End: end}
	return newCmp
}

// WithConfig replaces every classification threshold at once.
func (c *Comparator) WithConfig(cfg classify.Config) *Comparator {
	newCmp := c.clone()
	newCmp.options.config = cfg
	return newCmp
}

// PositionTolerance sets the largest center displacement, in page units,
// that still counts as the same position.
//
// Example:
//
//	result, err := golden.Compare(g, t).PositionTolerance(5).Run(ctx)
func (c *Comparator) PositionTolerance(px float64) *Comparator {
	newCmp := c.clone()
	newCmp.options.config.PositionTolerance = px
	return newCmp
}

// TextSimilarityThreshold sets the similarity below which paired text is
// reported as changed.
func (c *Comparator) TextSimilarityThreshold(ratio float64) *Comparator {
	newCmp := c.clone()
	newCmp.options.config.TextSimilarityThreshold = ratio
	return newCmp
}

// IgnoreStyle suppresses font name, size and flag differences.
//
// Example:
//
//	result, err := golden.Compare(g, t).IgnoreStyle().Run(ctx)
func (c *Comparator) IgnoreStyle() *Comparator {
	newCmp := c.clone()
	newCmp.options.config.IgnoreStyle = true
	return newCmp
}

// IncludeUnpairedPages widens the default range to every page of the longer
// document. A page present on one side only is reported as a single
// page-level missing or extra diff.
func (c *Comparator) IncludeUnpairedPages() *Comparator {
	newCmp := c.clone()
	newCmp.options.includeUnpaired = true
	return newCmp
}

// StrictAlignment disables gap pairing, so every fragment outside the longest
// common subsequence is reported as missing or extra instead of changed.
func (c *Comparator) StrictAlignment() *Comparator {
	newCmp := c.clone()
	newCmp.options.alignment.PairGaps = false
	return newCmp
}

// Workers sets how many pages are compared concurrently. Values below 1
// mean sequential.
func (c *Comparator) Workers(n int) *Comparator {
	newCmp := c.clone()
	if n < 1 {
		n = 1
	}
	newCmp.options.workers = n
	return newCmp
}

// Logger sets the logger used for per-page diagnostics.
func (c *Comparator) Logger(l logrus.FieldLogger) *Comparator {
	newCmp := c.clone()
	if l != nil {
		newCmp.logger = l
	}
	return newCmp
}

// WithDetector adds a variable-content detector. Its mask is combined with
// the fragments' existing IsVariable flags on both documents.
//
// Example:
//
//	h, _ := mask.NewHeuristic()
//	result, err := golden.Compare(g, t).WithDetector(h).Run(ctx)
func (c *Comparator) WithDetector(d mask.Detector) *Comparator {
	newCmp := c.clone()
	if d == nil {
		newCmp.err = fmt.Errorf("nil detector")
		return newCmp
	}
	newCmp.options.detectors = append(newCmp.options.detectors, d)
	return newCmp
}

// ============================================================================
// Terminal Operations
// ============================================================================

// pageSlot is owned by exactly one worker
type pageSlot struct {
	done     bool
	result   model.PageResult
	warnings []model.Warning
}

// Run compares the selected pages and returns the result.
//
// Pages are compared concurrently; the result lists them in ascending order
// regardless of completion order. If ctx is cancelled the returned result
// holds the pages finished so far, is marked Incomplete, and is returned
// together with the context's error.
//
// Example:
//
//	result, err := golden.Compare(g, t).Run(ctx)
//	if result.HasDifferences() {
//	    fmt.Println(result.Status())
//	}
func (c *Comparator) Run(ctx context.Context) (*model.ComparisonResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	if err := c.options.config.Validate(); err != nil {
		return nil, err
	}

	goldenPages, err := indexPages("golden", c.golden)
	if err != nil {
		return nil, err
	}
	targetPages, err := indexPages("target", c.target)
	if err != nil {
		return nil, err
	}

	start, end, err := c.resolveRange()
	if err != nil {
		return nil, err
	}

	result := model.NewComparisonResult(start, end, len(c.golden), len(c.target))
	if len(c.golden) != len(c.target) && !c.options.includeUnpaired {
		w := model.Warning{
			Page:    -1,
			Code:    model.WarnPageCountDiffers,
			Message: fmt.Sprintf("golden has %d pages, target has %d; only shared pages compared", len(c.golden), len(c.target)),
		}
		c.logger.Warn(w.Message)
		result.Warnings = append(result.Warnings, w)
	}
	if end < start {
		return result, nil
	}

	slots := make([]pageSlot, end-start+1)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.options.workers)
	for i := range slots {
		if ctx.Err() != nil {
			break
		}
		index := start + i
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return nil
			}
			pr, warnings, err := c.comparePage(egCtx, index, goldenPages[index], targetPages[index])
			if err != nil {
				return fmt.Errorf("page %d: %w", index, err)
			}
			slots[i] = pageSlot{done: true, result: pr, warnings: warnings}
			return nil
		})
	}
	err = eg.Wait()

	for _, s := range slots {
		if !s.done {
			continue
		}
		result.AddPage(s.result)
		result.Warnings = append(result.Warnings, s.warnings...)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.Incomplete = true
		c.logger.WithField("pages_done", len(result.Pages)).Warn("comparison cancelled")
		if err != nil && !errors.Is(err, ctxErr) {
			return result, errors.Join(ctxErr, err)
		}
		return result, ctxErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ============================================================================
// Internal Helpers
// ============================================================================

// resolveRange returns the inclusive page range to compare. An empty range
// is returned as end < start.
func (c *Comparator) resolveRange() (int, int, error) {
	nG, nT := len(c.golden), len(c.target)
	limit := min(nG, nT)
	if c.options.includeUnpaired {
		limit = max(nG, nT)
	}

	r := c.options.pageRange
	if r == nil {
		return 0, limit - 1, nil
	}
	if r.Start < 0 || r.End < r.Start || r.End >= limit {
		return 0, 0, &PageRangeError{
			Start:       r.Start,
			End:         r.End,
			GoldenPages: nG,
			TargetPages: nT,
		}
	}
	return r.Start, r.End, nil
}

// indexPages maps each page to its index. Indices must be unique and within
// [0, len(pages)), so a valid document has every index present.
func indexPages(side string, pages []model.PageFragments) (map[int]*model.PageFragments, error) {
	byIndex := make(map[int]*model.PageFragments, len(pages))
	for i := range pages {
		p := &pages[i]
		if p.PageIndex < 0 || p.PageIndex >= len(pages) {
			return nil, fmt.Errorf("%s: %w: %d of %d pages", side, ErrInvalidPageIndex, p.PageIndex, len(pages))
		}
		if _, dup := byIndex[p.PageIndex]; dup {
			return nil, fmt.Errorf("%s: %w: %d", side, ErrDuplicatePage, p.PageIndex)
		}
		byIndex[p.PageIndex] = p
	}
	return byIndex, nil
}

// Package golden compares a target document against a golden (reference)
// document and reports classified differences per page.
//
// Both documents are given as extracted text fragments, one
// [model.PageFragments] per page. Fragments of each page are aligned by
// normalized text (longest common subsequence over reading order) and every
// alignment outcome is classified as missing, extra, changed, shifted or
// restyled text.
//
// Basic usage:
//
//	result, err := golden.Compare(goldenPages, targetPages).Run(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Status(), result.Totals)
//
// With options:
//
//	result, err := golden.Compare(goldenPages, targetPages).
//	    PageRange(0, 3).
//	    IgnoreStyle().
//	    PositionTolerance(4).
//	    Workers(4).
//	    Run(ctx)
//
// Fragments flagged IsVariable (dates, names, policy numbers) never take part
// in alignment. Use WithDetector to flag them from a [mask.Detector].
package golden

import (
	"context"

	"github.com/tsawler/golden/classify"
	"github.com/tsawler/golden/logging"
	"github.com/tsawler/golden/model"
)

// Compare returns a Comparator for golden and target with default options.
// Nothing is compared until Run is called.
//
// Example:
//
//	result, err := golden.Compare(goldenPages, targetPages).Run(ctx)
func Compare(golden, target []model.PageFragments) *Comparator {
	return &Comparator{
		golden:  golden,
		target:  target,
		options: defaultOptions(),
		logger:  logging.Discard(),
	}
}

// CompareDocuments compares two documents with an explicit configuration.
// A nil rng selects the default range (pages present in both documents).
//
// Example:
//
//	result, err := golden.CompareDocuments(ctx, g, t, &golden.Range{Start: 0, End: 1}, classify.DefaultConfig())
func CompareDocuments(ctx context.Context, golden, target []model.PageFragments, rng *Range, cfg classify.Config) (*model.ComparisonResult, error) {
	c := Compare(golden, target).WithConfig(cfg)
	if rng != nil {
		c = c.PageRange(rng.Start, rng.End)
	}
	return c.Run(ctx)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in tests and
// example code.
//
// Example:
//
//	result := golden.Must(golden.Compare(g, t).Run(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRun runs the comparison and panics on error.
//
// Example:
//
//	result := golden.Compare(g, t).MustRun(ctx)
func (c *Comparator) MustRun(ctx context.Context) *model.ComparisonResult {
	return Must(c.Run(ctx))
}

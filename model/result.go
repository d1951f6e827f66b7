package model

import (
	"fmt"
	"strings"
)

// Warning codes
const (
	WarnMalformedBox     = "malformed_box"
	WarnPageCountDiffers = "page_count_differs"
)

// Warning is a non-fatal issue found during comparison
type Warning struct {
	Page    int    `json:"page"` // -1 for document-level warnings
	Code    string `json:"code"`
	Message string `json:"message"`
}

// String formats the warning for display
func (w Warning) String() string {
	if w.Page < 0 {
		return fmt.Sprintf("[%s] %s", w.Code, w.Message)
	}
	return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
}

// FormatWarnings joins warnings one per line
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// PageResult holds the classified differences of one page
type PageResult struct {
	PageIndex     int              `json:"page"`
	Diffs         []PageDiff       `json:"diffs"`
	Counts        map[DiffKind]int `json:"counts"`
	Matches       int              `json:"matches"`
	GoldenPresent bool             `json:"golden_present"`
	TargetPresent bool             `json:"target_present"`
}

// NewPageResult creates an empty result for a page
func NewPageResult(pageIndex int) PageResult {
	return PageResult{
		PageIndex: pageIndex,
		Diffs:     make([]PageDiff, 0),
		Counts:    make(map[DiffKind]int),
	}
}

// Add appends a diff and updates the counts
func (p *PageResult) Add(d PageDiff) {
	p.Diffs = append(p.Diffs, d)
	p.Counts[d.Kind]++
}

// HasDifferences reports whether the page has any diff
func (p PageResult) HasDifferences() bool {
	return len(p.Diffs) > 0
}

// ComparisonResult is the document-level outcome of a comparison run
type ComparisonResult struct {
	Pages           []PageResult     `json:"pages"`
	Totals          map[DiffKind]int `json:"totals"`
	GoldenPageCount int              `json:"golden_page_count"`
	TargetPageCount int              `json:"target_page_count"`
	StartPage       int              `json:"start_page"`
	EndPage         int              `json:"end_page"`
	Incomplete      bool             `json:"incomplete,omitempty"`
	Warnings        []Warning        `json:"warnings,omitempty"`
}

// NewComparisonResult creates an empty result covering [start, end]
func NewComparisonResult(start, end, goldenPages, targetPages int) *ComparisonResult {
	return &ComparisonResult{
		Pages:           make([]PageResult, 0),
		Totals:          make(map[DiffKind]int),
		GoldenPageCount: goldenPages,
		TargetPageCount: targetPages,
		StartPage:       start,
		EndPage:         end,
	}
}

// AddPage appends a page result and folds its counts into the totals.
// Pages must be added in ascending order.
func (r *ComparisonResult) AddPage(p PageResult) {
	r.Pages = append(r.Pages, p)
	for kind, n := range p.Counts {
		r.Totals[kind] += n
	}
}

// HasDifferences reports whether any page has a diff
func (r *ComparisonResult) HasDifferences() bool {
	for _, p := range r.Pages {
		if p.HasDifferences() {
			return true
		}
	}
	return false
}

// Status returns "incomplete", "fail" or "pass"
func (r *ComparisonResult) Status() string {
	switch {
	case r.Incomplete:
		return "incomplete"
	case r.HasDifferences():
		return "fail"
	default:
		return "pass"
	}
}

// Diffs returns every diff in page order
func (r *ComparisonResult) Diffs() []PageDiff {
	var out []PageDiff
	for _, p := range r.Pages {
		out = append(out, p.Diffs...)
	}
	return out
}

// DiffCount returns the total number of diffs
func (r *ComparisonResult) DiffCount() int {
	n := 0
	for _, c := range r.Totals {
		n += c
	}
	return n
}

// MaxSeverity returns the highest severity of any diff, 0 when clean
func (r *ComparisonResult) MaxSeverity() float64 {
	max := 0.0
	for _, p := range r.Pages {
		for _, d := range p.Diffs {
			if d.Severity > max {
				max = d.Severity
			}
		}
	}
	return max
}

// Page returns the result for a page index, if it was compared
func (r *ComparisonResult) Page(index int) (PageResult, bool) {
	for _, p := range r.Pages {
		if p.PageIndex == index {
			return p, true
		}
	}
	return PageResult{}, false
}

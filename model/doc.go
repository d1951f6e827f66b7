// Package model provides the value types shared by every stage of a
// golden-document comparison.
//
// All types are plain values constructed fresh for each comparison run.
// Nothing in this package holds state across runs.
//
// # Fragments
//
// A [TextFragment] is one visually contiguous run of text on a page, with its
// [BBox], style metadata ([FontFlags], font name and size) and reading order
// index. Fragments for a page are grouped in [PageFragments] together with the
// page dimensions:
//
//	page := model.PageFragments{
//	    PageIndex: 0,
//	    Width:     612,
//	    Height:    792,
//	    Fragments: fragments,
//	}
//
// Fragments flagged IsVariable are expected to differ between documents and
// are excluded from alignment.
//
// # Matches and Diffs
//
// Alignment produces [FragmentMatch] values of kind [Matched], [Missing] or
// [Extra]. Classification turns matches into [PageDiff] values of one of the
// [DiffKind] constants, each carrying the golden and target boxes and a
// severity in [0, 1].
//
// # Results
//
// [PageResult] collects the diffs of one page with per-kind counts, and
// [ComparisonResult] collects pages in ascending order with document totals
// and any [Warning] values raised along the way.
//
// # Geometry
//
// [BBox] uses (left, top, right, bottom) edges with Y growing downward.
// [BBox.Validate] reports [ErrMalformedBoundingBox] for inverted or
// non-finite boxes.
package model

// Package mask applies variable-field masks to page fragments.
//
// A mask is a boolean slice aligned positionally with a page's fragments;
// true marks a fragment whose content is expected to differ between the
// golden document and generated copies (names, dates, policy numbers).
// Masked fragments are never aligned or reported.
//
//	masked, err := mask.ApplyMask(page.Fragments, []bool{false, true, false})
//	if errors.Is(err, mask.ErrInvalidMaskLength) {
//	    // caller bug: one entry per fragment is required
//	}
//
// How a mask is produced is outside this package's concern. Anything that
// implements [Detector] can supply masks; [Heuristic] is a regular-expression
// detector for common form fields, and [Any] unions several detectors.
package mask

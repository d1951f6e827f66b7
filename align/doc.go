// Package align computes the correspondence between the golden and target
// fragments of one page.
//
// Fragments are compared through a normalized key: lowercased, internal
// whitespace runs collapsed to a single space, and trimmed. A dynamic
// programming longest-common-subsequence pass over the keys finds the largest
// set of key-equal pairs that keeps the relative order of both sides, so
// insertions and deletions do not cascade into false mismatches:
//
//	matches := align.Align(goldenFragments, targetFragments)
//	for _, m := range matches {
//	    switch m.Kind {
//	    case model.Matched:  // m.Golden and m.Target are both set
//	    case model.Missing:  // only m.Golden
//	    case model.Extra:    // only m.Target
//	    }
//	}
//
// # Ties
//
// When several common subsequences share the maximum length, the one with
// the smallest total reading-order displacement between paired fragments is
// chosen. Fragments with duplicate text are told apart by order alone.
//
// # Gap Pairing
//
// Fragments left between the same two LCS anchors on both sides are paired
// in order as Matched, so an edited fragment is reported as changed text
// rather than a removal plus an insertion. [Options.PairGaps] turns this off.
//
// Time and space are O(n·m) per page.
package align

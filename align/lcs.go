package align

import (
	"github.com/tsawler/golden/model"
)

// Options controls alignment behavior
type Options struct {
	// PairGaps pairs unmatched golden and target fragments that fall between
	// the same two LCS anchors, in order, as Matched. Leftovers become
	// Missing/Extra. When false every non-LCS fragment is Missing or Extra.
	PairGaps bool
}

// DefaultOptions returns the default alignment options
func DefaultOptions() Options {
	return Options{PairGaps: true}
}

// Step choices recorded by the DP table
const (
	stepNone byte = iota
	stepMatch
	stepSkipGolden
	stepSkipTarget
)

// anchor is an LCS pair of indices into the golden and target sequences
type anchor struct {
	g, t int
}

// Align aligns two fragment sequences of the same page.
//
// Fragments are ordered by ReadingOrder (copies are sorted; the inputs are
// not modified) and variable fragments are skipped. Every remaining fragment
// appears in exactly one returned match.
func Align(golden, target []model.TextFragment) []model.FragmentMatch {
	return AlignWith(golden, target, DefaultOptions())
}

// AlignWith is Align with explicit options
func AlignWith(golden, target []model.TextFragment, opts Options) []model.FragmentMatch {
	g := ordered(golden)
	t := ordered(target)

	anchors := lcs(g, t)

	matches := make([]model.FragmentMatch, 0, len(g)+len(t)-len(anchors))
	gi, ti := 0, 0
	emit := func(gEnd, tEnd int) {
		matches = appendGap(matches, g[gi:gEnd], t[ti:tEnd], opts.PairGaps)
	}

	for _, a := range anchors {
		emit(a.g, a.t)
		matches = append(matches, model.FragmentMatch{
			Golden: &g[a.g],
			Target: &t[a.t],
			Kind:   model.Matched,
		})
		gi, ti = a.g+1, a.t+1
	}
	emit(len(g), len(t))

	return matches
}

// ordered returns a reading-ordered copy without variable fragments
func ordered(fragments []model.TextFragment) []model.TextFragment {
	out := make([]model.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if !f.IsVariable {
			out = append(out, f)
		}
	}
	return model.SortByReadingOrder(out)
}

// appendGap emits the fragments that fall between two anchors
func appendGap(matches []model.FragmentMatch, g, t []model.TextFragment, pair bool) []model.FragmentMatch {
	paired := 0
	if pair {
		paired = min(len(g), len(t))
	}

	for k := 0; k < paired; k++ {
		matches = append(matches, model.FragmentMatch{Golden: &g[k], Target: &t[k], Kind: model.Matched})
	}
	for k := paired; k < len(g); k++ {
		matches = append(matches, model.FragmentMatch{Golden: &g[k], Kind: model.Missing})
	}
	for k := paired; k < len(t); k++ {
		matches = append(matches, model.FragmentMatch{Target: &t[k], Kind: model.Extra})
	}
	return matches
}

// lcs returns the longest common subsequence of key-equal fragments as
// index pairs in ascending order.
//
// Among LCS solutions of equal length the one with the smallest total
// reading-order displacement wins. Remaining ties prefer a match, then
// skipping a golden fragment, then skipping a target fragment.
func lcs(g, t []model.TextFragment) []anchor {
	n, m := len(g), len(t)
	if n == 0 || m == 0 {
		return nil
	}

	k := newKeyer()
	gk := make([]string, n)
	for i, f := range g {
		gk[i] = k.key(f.Text)
	}
	tk := make([]string, m)
	for j, f := range t {
		tk[j] = k.key(f.Text)
	}

	// Suffix tables: cell (i, j) describes g[i:] against t[j:]
	w := m + 1
	length := make([]int, (n+1)*w)
	cost := make([]int, (n+1)*w)
	step := make([]byte, (n+1)*w)

	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			at := i*w + j
			bestLen, bestCost, bestStep := -1, 0, stepNone

			if gk[i] == tk[j] {
				next := (i+1)*w + j + 1
				bestLen = length[next] + 1
				bestCost = cost[next] + displacement(g[i], t[j])
				bestStep = stepMatch
			}

			down := (i+1)*w + j
			if better(length[down], cost[down], bestLen, bestCost) {
				bestLen, bestCost, bestStep = length[down], cost[down], stepSkipGolden
			}

			right := i*w + j + 1
			if better(length[right], cost[right], bestLen, bestCost) {
				bestLen, bestCost, bestStep = length[right], cost[right], stepSkipTarget
			}

			length[at], cost[at], step[at] = bestLen, bestCost, bestStep
		}
	}

	anchors := make([]anchor, 0, length[0])
	i, j := 0, 0
	for i < n && j < m {
		switch step[i*w+j] {
		case stepMatch:
			anchors = append(anchors, anchor{g: i, t: j})
			i++
			j++
		case stepSkipGolden:
			i++
		default:
			j++
		}
	}
	return anchors
}

// better reports whether (l1, c1) strictly beats (l2, c2): longer first,
// then cheaper.
func better(l1, c1, l2, c2 int) bool {
	if l1 != l2 {
		return l1 > l2
	}
	return c1 < c2
}

func displacement(a, b model.TextFragment) int {
	d := a.ReadingOrder - b.ReadingOrder
	if d < 0 {
		return -d
	}
	return d
}

package classify

import (
	"github.com/tsawler/golden/align"
)

// Similarity returns the character-level similarity of two strings after
// normalization: 2·LCS / (len(a) + len(b)) over runes. Two empty strings are
// identical (1.0).
func Similarity(a, b string) float64 {
	ra := []rune(align.Key(a))
	rb := []rune(align.Key(b))
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(lcsLength(ra, rb)) / float64(total)
}

// lcsLength computes the LCS length with two rolling rows
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

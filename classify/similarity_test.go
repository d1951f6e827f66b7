package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1},
		{"one empty", "abc", "", 0},
		{"identical", "hello", "hello", 1},
		{"case and spacing ignored", "Hello  World", "hello world", 1},
		{"disjoint", "abc", "xyz", 0},
		{"half", "abcd", "abxy", 0.5},
		{"unicode runes", "café", "cafe", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Policy terms", "Policy term"},
		{"kitten", "sitting"},
		{"a b c", "c b a"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), 1e-12)
	}
}

func TestLCSLength(t *testing.T) {
	assert.Equal(t, 4, lcsLength([]rune("ABCBDAB"), []rune("BDCABA")))
	assert.Equal(t, 0, lcsLength(nil, []rune("abc")))
}

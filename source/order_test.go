package source

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/golden/model"
)

func at(text string, left, top float64) model.TextFragment {
	return model.TextFragment{Text: text, BBox: model.NewBBox(left, top, left+40, top+10)}
}

func texts(frags []model.TextFragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Text
	}
	return out
}

func TestAssignReadingOrder(t *testing.T) {
	tests := []struct {
		name  string
		input []model.TextFragment
		want  []string
	}{
		{"empty", nil, []string{}},
		{
			"top to bottom",
			[]model.TextFragment{at("third", 10, 60), at("first", 10, 20), at("second", 10, 40)},
			[]string{"first", "second", "third"},
		},
		{
			"left to right within a line",
			[]model.TextFragment{at("right", 200, 20), at("left", 10, 21), at("middle", 100, 19)},
			[]string{"left", "middle", "right"},
		},
		{
			"two lines with jitter",
			[]model.TextFragment{at("b2", 100, 42), at("a2", 100, 20), at("b1", 10, 40), at("a1", 10, 22)},
			[]string{"a1", "a2", "b1", "b2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignReadingOrder(tt.input, DefaultLineConfig())
			assert.Equal(t, tt.want, texts(got))
			for i, f := range got {
				assert.Equal(t, i, f.ReadingOrder)
			}
		})
	}
}

func TestAssignReadingOrderCopies(t *testing.T) {
	input := []model.TextFragment{at("b", 10, 40), at("a", 10, 20)}
	input[0].ReadingOrder = 7

	_ = AssignReadingOrder(input, DefaultLineConfig())
	assert.Equal(t, "b", input[0].Text)
	assert.Equal(t, 7, input[0].ReadingOrder)
}

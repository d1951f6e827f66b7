package mask

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/golden/model"
)

func fragments(texts ...string) []model.TextFragment {
	out := make([]model.TextFragment, len(texts))
	for i, t := range texts {
		out[i] = model.TextFragment{Text: t, ReadingOrder: i, BBox: model.NewBBox(0, float64(i*10), 50, float64(i*10+8))}
	}
	return out
}

func TestApplyMask(t *testing.T) {
	in := fragments("a", "b", "c")

	out, err := ApplyMask(in, []bool{false, true, false})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.False(t, out[0].IsVariable)
	assert.True(t, out[1].IsVariable)
	assert.False(t, out[2].IsVariable)

	// Input untouched
	for _, f := range in {
		assert.False(t, f.IsVariable)
	}
}

func TestApplyMaskClearsPreviousFlag(t *testing.T) {
	in := fragments("a")
	in[0].IsVariable = true

	out, err := ApplyMask(in, []bool{false})
	require.NoError(t, err)
	assert.False(t, out[0].IsVariable)
	assert.True(t, in[0].IsVariable)
}

func TestApplyMaskInvalidLength(t *testing.T) {
	// Mask of length 3 for a 4-fragment page
	_, err := ApplyMask(fragments("a", "b", "c", "d"), []bool{false, false, true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMaskLength))
	assert.Contains(t, err.Error(), "3 entries for 4 fragments")
}

func TestApplyMaskEmpty(t *testing.T) {
	out, err := ApplyMask(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestApplyScores(t *testing.T) {
	out, err := ApplyScores(fragments("a", "b", "c"), []float64{0.1, 0.5, 0.9}, 0.5)
	require.NoError(t, err)
	assert.False(t, out[0].IsVariable)
	assert.True(t, out[1].IsVariable)
	assert.True(t, out[2].IsVariable)

	_, err = ApplyScores(fragments("a"), nil, 0.5)
	assert.True(t, errors.Is(err, ErrInvalidMaskLength))
}

func TestApplyPageWrapsPageIndex(t *testing.T) {
	page := model.PageFragments{PageIndex: 3, Fragments: fragments("a", "b")}

	_, err := ApplyPage(page, []bool{true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 3")
	assert.True(t, errors.Is(err, ErrInvalidMaskLength))
}

func TestApplyDetector(t *testing.T) {
	pages := []model.PageFragments{
		{PageIndex: 0, Fragments: fragments("Policy #12345", "Terms")},
		{PageIndex: 1, Fragments: fragments("Signature")},
	}

	d := Static(map[int][]bool{0: {true, false}})
	out, err := ApplyDetector(context.Background(), d, pages)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, out[0].Fragments[0].IsVariable)
	assert.False(t, out[0].Fragments[1].IsVariable)
	assert.False(t, out[1].Fragments[0].IsVariable)
	assert.False(t, pages[0].Fragments[0].IsVariable)
}

func TestApplyDetectorBadLength(t *testing.T) {
	pages := []model.PageFragments{{PageIndex: 0, Fragments: fragments("a", "b")}}

	_, err := ApplyDetector(context.Background(), Static(map[int][]bool{0: {true}}), pages)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMaskLength))
	assert.Contains(t, err.Error(), `detector "static"`)
}

func TestApplyDetectorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ApplyDetector(ctx, Static(nil), []model.PageFragments{{Fragments: fragments("a")}})
	assert.True(t, errors.Is(err, context.Canceled))
}

type failingDetector struct{}

func (failingDetector) Name() string { return "failing" }

func (failingDetector) Detect(context.Context, model.PageFragments) ([]bool, error) {
	return nil, errors.New("model unavailable")
}

func TestAnyUnionsDetectors(t *testing.T) {
	page := model.PageFragments{Fragments: fragments("a", "b", "c")}

	d := Any(
		Static(map[int][]bool{0: {true, false, false}}),
		Static(map[int][]bool{0: {false, false, true}}),
	)
	m, err := d.Detect(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, m)

	_, err = Any(failingDetector{}).Detect(context.Background(), page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")

	_, err = Any(Static(map[int][]bool{0: {true}})).Detect(context.Background(), page)
	assert.True(t, errors.Is(err, ErrInvalidMaskLength))
}

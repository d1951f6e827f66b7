package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/golden"
	"github.com/tsawler/golden/classify"
	"github.com/tsawler/golden/model"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func docs() ([]model.PageFragments, []model.PageFragments) {
	g := []model.PageFragments{{PageIndex: 0, Fragments: []model.TextFragment{
		{Text: "Total", BBox: model.NewBBox(0, 0, 50, 10)},
		{Text: "Due now", BBox: model.NewBBox(0, 20, 50, 30), ReadingOrder: 1},
	}}}
	tg := []model.PageFragments{{PageIndex: 0, Fragments: []model.TextFragment{
		{Text: "Total", BBox: model.NewBBox(0, 5, 50, 15)},
	}}}
	return g, tg
}

func result(t *testing.T) *model.ComparisonResult {
	g, tg := docs()
	r, err := golden.Compare(g, tg).Run(context.Background())
	require.NoError(t, err)
	return r
}

func TestSaveAndGet(t *testing.T) {
	s := openMemory(t)
	r := result(t)

	id, err := s.Save(context.Background(), Record{Golden: "g.pdf", Target: "t.pdf", Result: r})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	rec, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "g.pdf", rec.Golden)
	assert.Equal(t, "fail", rec.Status)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, r, rec.Result)
}

func TestGetMissing(t *testing.T) {
	s := openMemory(t)
	_, err := s.Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Lookup("abc")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveValidation(t *testing.T) {
	s := openMemory(t)
	_, err := s.Save(context.Background(), Record{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Save(ctx, Record{Result: result(t)})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestListNewestFirst(t *testing.T) {
	s := openMemory(t)
	r := result(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		_, err := s.Save(context.Background(), Record{
			Target:    name,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Result:    r,
		})
		require.NoError(t, err)
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Target)
	assert.Equal(t, "first", all[2].Target)

	two, err := s.List(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestFingerprintLookup(t *testing.T) {
	s := openMemory(t)
	g, tg := docs()

	fp, err := Fingerprint(g, tg, classify.DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, fp, 64)

	again, err := Fingerprint(g, tg, classify.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, fp, again)

	cfg := classify.DefaultConfig()
	cfg.IgnoreStyle = true
	other, err := Fingerprint(g, tg, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, fp, other)

	ranged, err := Fingerprint(g, tg, classify.DefaultConfig(), "pages=0-0")
	require.NoError(t, err)
	assert.NotEqual(t, fp, ranged)

	id, err := s.Save(context.Background(), Record{Fingerprint: fp, Result: result(t)})
	require.NoError(t, err)

	rec, err := s.Lookup(fp)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, fp, rec.Fingerprint)
}

func TestPersistentStore(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	id, err := s.Save(context.Background(), Record{Target: "kept", Result: result(t)})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	rec, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "kept", rec.Target)
}

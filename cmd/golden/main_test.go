package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/golden"
	"github.com/tsawler/golden/report"
	"github.com/tsawler/golden/source"
)

func init() {
	color.NoColor = true
}

const goldenDoc = `pages:
  - index: 0
    width: 612
    height: 792
    fragments:
      - {text: "Certificate of Insurance", bbox: [72, 50, 300, 64], font: Helvetica-Bold, size: 14, flags: [bold]}
      - {text: "Policy Number: AB12345", bbox: [72, 80, 300, 92], font: Helvetica, size: 10}
      - {text: "This certificate is issued as a matter of information only", bbox: [72, 100, 500, 112], font: Helvetica, size: 10}
`

const changedDoc = `pages:
  - index: 0
    width: 612
    height: 792
    fragments:
      - {text: "Certificate of Insurance", bbox: [72, 50, 300, 64], font: Helvetica-Bold, size: 14, flags: [bold]}
      - {text: "Policy Number: ZZ99999", bbox: [72, 80, 300, 92], font: Helvetica, size: 10}
      - {text: "This certificate is issued as a matter of information only", bbox: [72, 140, 500, 152], font: Helvetica, size: 10}
`

type fixture struct {
	dir     string
	golden  string
	same    string
	changed string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:     dir,
		golden:  filepath.Join(dir, "golden.yaml"),
		same:    filepath.Join(dir, "same.yaml"),
		changed: filepath.Join(dir, "changed.yaml"),
	}
	require.NoError(t, os.WriteFile(f.golden, []byte(goldenDoc), 0o644))
	require.NoError(t, os.WriteFile(f.same, []byte(goldenDoc), 0o644))
	require.NoError(t, os.WriteFile(f.changed, []byte(changedDoc), 0o644))
	return f
}

// run executes the root command and returns stdout and the error
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *golden.Range
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single page", "3", &golden.Range{Start: 2, End: 2}, false},
		{"range", "1-4", &golden.Range{Start: 0, End: 3}, false},
		{"spaces", " 2 - 5 ", &golden.Range{Start: 1, End: 4}, false},
		{"zero", "0-2", nil, true},
		{"reversed", "4-2", nil, true},
		{"not a number", "a-b", nil, true},
		{"open ended", "2-", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePages(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errDifferences))
	assert.Equal(t, 2, exitCode(errors.New("boom")))
}

func TestCompareIdentical(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "compare", f.golden, f.same)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "golden.yaml")
}

func TestCompareDifferences(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "compare", f.golden, f.same, f.changed, "--format", "yaml")
	require.ErrorIs(t, err, errDifferences)

	var views []report.View
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "pass", views[0].Status)
	assert.Equal(t, "fail", views[1].Status)
	assert.Equal(t, 1, views[1].Totals["text_changed"])
	assert.Equal(t, 1, views[1].Totals["layout_shifted"])
}

func TestCompareMaskAndTolerance(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "compare", f.golden, f.changed, "--mask", "--tolerance", "50")
	assert.NoError(t, err)
}

func TestComparePageRange(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "compare", f.golden, f.same, "--pages", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, golden.ErrPageRangeOutOfBounds)
	assert.Equal(t, 2, exitCode(err))
}

const twoPageDoc = goldenDoc + `  - index: 1
    width: 612
    height: 792
    fragments:
      - {text: "Authorized representative", bbox: [72, 50, 300, 62], font: Helvetica, size: 10}
`

func TestCompareMissingPage(t *testing.T) {
	f := newFixture(t)
	twoPages := filepath.Join(f.dir, "two-pages.yaml")
	require.NoError(t, os.WriteFile(twoPages, []byte(twoPageDoc), 0o644))

	out, err := run(t, "compare", twoPages, f.same, "--format", "yaml")
	require.ErrorIs(t, err, errDifferences)
	assert.Equal(t, 1, exitCode(err))

	var views []report.View
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "fail", views[0].Status)
	assert.Equal(t, 1, views[0].Totals["missing_text"])
	require.Len(t, views[0].Pages, 2)
	require.Len(t, views[0].Pages[1].Diffs, 1)
	assert.True(t, views[0].Pages[1].Diffs[0].PageLevel)

	out, err = run(t, "compare", twoPages, f.same, "--format", "yaml", "--union=false")
	require.NoError(t, err)
	views = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "pass", views[0].Status)
	require.Len(t, views[0].Warnings, 1)
	assert.Contains(t, views[0].Warnings[0], "page_count_differs")
}

func TestCompareArgs(t *testing.T) {
	_, err := run(t, "compare", "only-one.yaml")
	assert.Error(t, err)
}

func TestCompareHTMLToFile(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(f.dir, "report.html")

	stdout, err := run(t, "compare", f.golden, f.changed, "--format", "html", "--out", out)
	require.ErrorIs(t, err, errDifferences)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "changed.yaml")
}

func TestCompareOverlays(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(f.dir, "overlays")

	_, err := run(t, "compare", f.golden, f.changed, "--overlay-dir", dir, "--overlay-scale", "0.5")
	require.ErrorIs(t, err, errDifferences)

	for _, name := range []string{"changed-p1-golden.png", "changed-p1-target.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}
}

func TestStoreAndHistory(t *testing.T) {
	f := newFixture(t)
	db := filepath.Join(f.dir, "history")

	_, err := run(t, "compare", f.golden, f.same, "--store", db)
	require.NoError(t, err)
	_, err = run(t, "compare", f.golden, f.changed, "--store", db)
	require.ErrorIs(t, err, errDifferences)

	out, err := run(t, "history", "--store", db)
	require.NoError(t, err)
	assert.Contains(t, out, "same.yaml")
	assert.Contains(t, out, "changed.yaml")
	assert.Contains(t, out, "fail")
}

func TestHistoryRequiresStore(t *testing.T) {
	_, err := run(t, "history")
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "extract", f.changed)
	require.NoError(t, err)

	doc, err := source.Load(strings.NewReader(out), source.YAML)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Len(t, doc.Pages[0].Fragments, 3)
	assert.Equal(t, "Policy Number: ZZ99999", doc.Pages[0].Fragments[1].Text)
}

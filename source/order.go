package source

import (
	"math"
	"sort"

	"github.com/tsawler/golden/model"
)

// LineConfig controls how fragments are grouped into lines when reading
// order is assigned
type LineConfig struct {
	// LineHeightTolerance is the vertical center distance, as a fraction of
	// fragment height, within which two fragments share a line (default: 0.5)
	LineHeightTolerance float64
}

// DefaultLineConfig returns the default line grouping configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{LineHeightTolerance: 0.5}
}

// AssignReadingOrder returns a copy of fragments ordered top to bottom, then
// left to right within a line, with ReadingOrder renumbered from 0.
func AssignReadingOrder(fragments []model.TextFragment, cfg LineConfig) []model.TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Center().Y < sorted[j].BBox.Center().Y
	})

	var lines [][]model.TextFragment
	var current []model.TextFragment
	var lineY float64
	for _, f := range sorted {
		y := f.BBox.Center().Y
		if len(current) > 0 && math.Abs(y-lineY) <= lineTolerance(current, f, cfg) {
			current = append(current, f)
			lineY = averageCenterY(current)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, current)
		}
		current = []model.TextFragment{f}
		lineY = y
	}
	lines = append(lines, current)

	out := make([]model.TextFragment, 0, len(fragments))
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].BBox.Left < line[j].BBox.Left
		})
		out = append(out, line...)
	}
	for i := range out {
		out[i].ReadingOrder = i
	}
	return out
}

// lineTolerance scales with the taller of the line and the candidate
func lineTolerance(line []model.TextFragment, f model.TextFragment, cfg LineConfig) float64 {
	h := f.BBox.Height()
	for _, l := range line {
		h = math.Max(h, l.BBox.Height())
	}
	return h * cfg.LineHeightTolerance
}

func averageCenterY(line []model.TextFragment) float64 {
	sum := 0.0
	for _, f := range line {
		sum += f.BBox.Center().Y
	}
	return sum / float64(len(line))
}

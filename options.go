package golden

import (
	"runtime"

	"github.com/tsawler/golden/align"
	"github.com/tsawler/golden/classify"
	"github.com/tsawler/golden/mask"
)

// Range is an inclusive, 0-based page range
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CompareOptions holds configuration for a comparison run.
type CompareOptions struct {
	// Page selection, nil means the default range
	pageRange *Range

	// Classification thresholds
	config classify.Config

	// Alignment behavior
	alignment align.Options

	// Compare pages present in only one document
	includeUnpaired bool

	// Maximum pages compared concurrently
	workers int

	// Variable-content detectors run on both sides of every page
	detectors []mask.Detector
}

// defaultOptions returns the default comparison options.
func defaultOptions() CompareOptions {
	return CompareOptions{
		pageRange:       nil,
		config:          classify.DefaultConfig(),
		alignment:       align.DefaultOptions(),
		includeUnpaired: false,
		workers:         runtime.GOMAXPROCS(0),
		detectors:       nil,
	}
}

// clone creates a deep copy of CompareOptions.
func (o CompareOptions) clone() CompareOptions {
	newOpts := CompareOptions{
		config:          o.config,
		alignment:       o.alignment,
		includeUnpaired: o.includeUnpaired,
		workers:         o.workers,
	}

	if o.pageRange != nil {
		r := *o.pageRange
		newOpts.pageRange = &r
	}
	if o.detectors != nil {
		newOpts.detectors = make([]mask.Detector, len(o.detectors))
		copy(newOpts.detectors, o.detectors)
	}

	return newOpts
}

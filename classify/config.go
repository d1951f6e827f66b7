package classify

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid comparison config")

// Config holds the classification thresholds
type Config struct {
	// TextSimilarityThreshold is the normalized similarity below which a
	// matched pair is reported as changed text. Range [0, 1], default 0.98.
	TextSimilarityThreshold float64

	// PositionTolerance is the largest center-point displacement, in page
	// units, still considered the same position. Default 2.0.
	PositionTolerance float64

	// IgnoreStyle suppresses StyleChanged diffs
	IgnoreStyle bool

	// FontSizeTolerance is the largest font size difference still considered
	// the same style. Default 0.75.
	FontSizeTolerance float64

	// StyleSeverity is the fixed severity of a StyleChanged diff. Default 0.3.
	StyleSeverity float64
}

// DefaultConfig returns the default classification thresholds
func DefaultConfig() Config {
	return Config{
		TextSimilarityThreshold: 0.98,
		PositionTolerance:       2.0,
		IgnoreStyle:             false,
		FontSizeTolerance:       0.75,
		StyleSeverity:           0.3,
	}
}

// Validate checks that every threshold is in range
func (c Config) Validate() error {
	switch {
	case !inUnit(c.TextSimilarityThreshold):
		return fmt.Errorf("%w: text similarity threshold %g not in [0, 1]", ErrInvalidConfig, c.TextSimilarityThreshold)
	case !nonNegative(c.PositionTolerance):
		return fmt.Errorf("%w: position tolerance %g is negative", ErrInvalidConfig, c.PositionTolerance)
	case !nonNegative(c.FontSizeTolerance):
		return fmt.Errorf("%w: font size tolerance %g is negative", ErrInvalidConfig, c.FontSizeTolerance)
	case !inUnit(c.StyleSeverity):
		return fmt.Errorf("%w: style severity %g not in [0, 1]", ErrInvalidConfig, c.StyleSeverity)
	}
	return nil
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

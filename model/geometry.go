package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedBoundingBox is returned when a bounding box has inverted or
// non-finite edges.
var ErrMalformedBoundingBox = errors.New("malformed bounding box")

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in page space.
// Y grows downward, so Top <= Bottom for a well-formed box.
type BBox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewBBox creates a bounding box from its four edges
func NewBBox(left, top, right, bottom float64) BBox {
	return BBox{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.Left + b.Right) / 2,
		Y: (b.Top + b.Bottom) / 2,
	}
}

// CenterDisplacement returns the distance between the centers of two boxes
func (b BBox) CenterDisplacement(other BBox) float64 {
	return b.Center().Distance(other.Center())
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right < other.Left ||
		b.Left > other.Right ||
		b.Bottom < other.Top ||
		b.Top > other.Bottom)
}

// Union returns the smallest box containing both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// IsValid reports whether all edges are finite and ordered.
// Zero-area boxes are valid; a single glyph can be degenerate.
func (b BBox) IsValid() bool {
	for _, v := range [4]float64{b.Left, b.Top, b.Right, b.Bottom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Left <= b.Right && b.Top <= b.Bottom
}

// Validate returns ErrMalformedBoundingBox when the box is not valid
func (b BBox) Validate() error {
	if b.IsValid() {
		return nil
	}
	return fmt.Errorf("%w: (%g, %g, %g, %g)", ErrMalformedBoundingBox, b.Left, b.Top, b.Right, b.Bottom)
}

// String formats the box as (left, top, right, bottom)
func (b BBox) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f, %.1f)", b.Left, b.Top, b.Right, b.Bottom)
}

// Package annotate draws comparison differences onto page images.
//
//	img := annotate.Page(goldenPage, 2)
//	out := annotate.Overlay(img, pageResult, annotate.Golden, annotate.Options{Scale: 2})
//	_ = annotate.EncodePNG(f, out)
//
// Each diff kind has its own colour: missing text red, extra text blue,
// changed text yellow, layout shifts orange and style changes purple.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/tsawler/golden/model"
)

// Side selects which document's boxes are drawn
type Side int

const (
	Golden Side = iota
	Target
)

func (s Side) String() string {
	if s == Golden {
		return "golden"
	}
	return "target"
}

// Palette maps diff kinds to colours
type Palette map[model.DiffKind]color.RGBA

// DefaultPalette returns the standard diff colours
func DefaultPalette() Palette {
	return Palette{
		model.MissingText:   {R: 220, G: 38, B: 38, A: 255},
		model.ExtraText:     {R: 37, G: 99, B: 235, A: 255},
		model.TextChanged:   {R: 234, G: 179, B: 8, A: 255},
		model.LayoutShifted: {R: 249, G: 115, B: 22, A: 255},
		model.StyleChanged:  {R: 147, G: 51, B: 234, A: 255},
	}
}

// Color returns the colour of a kind, grey for kinds without an entry
func (p Palette) Color(kind model.DiffKind) color.RGBA {
	if c, ok := p[kind]; ok {
		return c
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

// Hex returns the colour as a CSS hex string
func (p Palette) Hex(kind model.DiffKind) string {
	c := p.Color(kind)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Options controls overlay drawing
type Options struct {
	// Scale converts page units to pixels (default 1)
	Scale float64
	// Stroke is the outline width in pixels (default 2)
	Stroke int
	// FillAlpha is the opacity of the box fill, 0 for outlines only
	FillAlpha uint8
	// Palette defaults to DefaultPalette
	Palette Palette
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Stroke <= 0 {
		o.Stroke = 2
	}
	if o.Palette == nil {
		o.Palette = DefaultPalette()
	}
	return o
}

// Overlay returns a copy of img with a rectangle drawn for every diff of
// page that has a box on the given side.
func Overlay(img image.Image, page model.PageResult, side Side, opts Options) *image.RGBA {
	opts = opts.withDefaults()

	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)

	for _, d := range page.Diffs {
		box := d.GoldenBox
		if side == Target {
			box = d.TargetBox
		}
		if box == nil || !box.IsValid() {
			continue
		}
		r := toRect(*box, opts.Scale).Add(dst.Bounds().Min)
		c := opts.Palette.Color(d.Kind)
		if opts.FillAlpha > 0 {
			fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: opts.FillAlpha}
			draw.Draw(dst, r, image.NewUniform(fill), image.Point{}, draw.Over)
		}
		outline(dst, r, c, opts.Stroke)
	}
	return dst
}

// Page renders a blank page with a light outline for every fragment, for
// inputs that have no rendered image.
func Page(page model.PageFragments, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w, h := page.Width, page.Height
	if !page.HasDimensions() {
		for _, f := range page.Fragments {
			if f.BBox.IsValid() {
				w = math.Max(w, f.BBox.Right)
				h = math.Max(h, f.BBox.Bottom)
			}
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w*scale)), int(math.Ceil(h*scale))))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	grey := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for _, f := range page.Fragments {
		if f.BBox.IsValid() {
			outline(img, toRect(f.BBox, scale), grey, 1)
		}
	}
	return img
}

// Scale resizes img by factor with Catmull-Rom resampling
func Scale(img image.Image, factor float64) *image.RGBA {
	b := img.Bounds()
	w := int(math.Max(1, math.Round(float64(b.Dx())*factor)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*factor)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func toRect(b model.BBox, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(b.Left*scale)),
		int(math.Floor(b.Top*scale)),
		int(math.Ceil(b.Right*scale)),
		int(math.Ceil(b.Bottom*scale)),
	)
}

// outline draws a rectangle border of the given width inside r
func outline(dst *image.RGBA, r image.Rectangle, c color.Color, width int) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Src)
	}
}

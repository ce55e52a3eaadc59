package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
)

// Capturer implements ports.ImageCapturer by drawing step boxes and edge curves into a PNG.
// It is a structural preview, not a pixel-perfect copy of the browser canvas.
type Capturer struct {
	pixelRatio float64
	maxSize    int
	background color.NRGBA
}

// Option configures the Capturer.
type Option func(*Capturer)

// WithPixelRatio sets how many pixels one canvas unit covers. Default 1.
func WithPixelRatio(r float64) Option {
	return func(c *Capturer) {
		if r > 0 {
			c.pixelRatio = r
		}
	}
}

// WithMaxSize bounds the longest side of the output; larger captures are scaled down.
func WithMaxSize(px int) Option {
	return func(c *Capturer) {
		if px > 0 {
			c.maxSize = px
		}
	}
}

// New creates a Capturer.
func New(opts ...Option) *Capturer {
	c := &Capturer{
		pixelRatio: 1,
		maxSize:    4096,
		background: color.NRGBA{R: 0xF8, G: 0xFA, B: 0xFC, A: 0xFF},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var palette = map[domain.Color]color.NRGBA{
	domain.ColorDefault: {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	domain.ColorBlue:    {R: 0xDB, G: 0xEA, B: 0xFE, A: 0xFF},
	domain.ColorGreen:   {R: 0xDC, G: 0xFC, B: 0xE7, A: 0xFF},
	domain.ColorPurple:  {R: 0xF3, G: 0xE8, B: 0xFF, A: 0xFF},
	domain.ColorOrange:  {R: 0xFF, G: 0xED, B: 0xD5, A: 0xFF},
	domain.ColorRed:     {R: 0xFE, G: 0xE2, B: 0xE2, A: 0xFF},
	domain.ColorPink:    {R: 0xFC, G: 0xE7, B: 0xF3, A: 0xFF},
	domain.ColorYellow:  {R: 0xFE, G: 0xF9, B: 0xC3, A: 0xFF},
	domain.ColorGray:    {R: 0xF3, G: 0xF4, B: 0xF6, A: 0xFF},
}

var (
	borderColor = color.NRGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xFF}
	edgeColor   = color.NRGBA{R: 0x63, G: 0x66, B: 0xF1, A: 0xFF}
)

// Fill returns the RGBA fill used for a palette color.
func Fill(c domain.Color) color.NRGBA {
	if f, ok := palette[c]; ok {
		return f
	}
	return palette[domain.ColorDefault]
}

// Capture draws steps inside region and returns PNG bytes.
// The pixel ratio is lowered before allocation so the longest side never exceeds the max size.
func (c *Capturer) Capture(ctx context.Context, region geometry.Rect, steps []*domain.Step) ([]byte, error) {
	if region.W <= 0 || region.H <= 0 {
		return nil, fmt.Errorf("empty capture region %vx%v", region.W, region.H)
	}
	ratio := c.ratioFor(region)
	w := clampPx(math.Ceil(region.W*ratio), c.maxSize)
	h := clampPx(math.Ceil(region.H*ratio), c.maxSize)
	img := imaging.New(w, h, c.background)

	toPx := func(p domain.Point) image.Point {
		return image.Point{
			X: int(math.Round((p.X - region.X) * ratio)),
			Y: int(math.Round((p.Y - region.Y) * ratio)),
		}
	}

	for _, path := range geometry.Paths(steps) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		samples := int(math.Max(16, hypot(path.Curve.Start, path.Curve.End)*ratio))
		for i := 0; i <= samples; i++ {
			dot(img, toPx(path.Curve.At(float64(i)/float64(samples))))
		}
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		box := geometry.BoxOf(st)
		origin := toPx(domain.Point{X: box.X, Y: box.Y})
		bw := max(1, int(math.Round(box.W*ratio)))
		bh := max(1, int(math.Round(box.H*ratio)))
		outer := image.Rect(origin.X, origin.Y, origin.X+bw, origin.Y+bh)
		fill(img, outer, borderColor)
		if bw >= 3 && bh >= 3 {
			fill(img, outer.Inset(1), Fill(st.Color))
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ratioFor returns the configured pixel ratio, reduced to fit region within maxSize.
func (c *Capturer) ratioFor(region geometry.Rect) float64 {
	ratio := c.pixelRatio
	if longest := math.Max(region.W, region.H) * ratio; longest > float64(c.maxSize) {
		ratio *= float64(c.maxSize) / longest
	}
	return ratio
}

func clampPx(v float64, limit int) int {
	return min(max(1, int(v)), limit)
}

// fill paints r in place; draw.Draw clips it to the image bounds.
func fill(img *image.NRGBA, r image.Rectangle, col color.NRGBA) {
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// dot paints a 2x2 edge sample. Out-of-bounds pixels are ignored by SetNRGBA.
func dot(img *image.NRGBA, p image.Point) {
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			img.SetNRGBA(p.X+dx, p.Y+dy, edgeColor)
		}
	}
}

func hypot(a, b domain.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

package controller

import (
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
)

// Zoom returns the zoom level in percent.
func (c *Controller) Zoom() float64 { return c.zoom }

// Scroll returns the canvas coordinate shown at the top-left corner of the viewport.
func (c *Controller) Scroll() domain.Point { return c.scroll }

// SetViewport records the visible size of the canvas, in screen pixels.
func (c *Controller) SetViewport(w, h float64) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.viewport = geometry.Size{W: w, H: h}
}

// SetScroll moves the viewport so p is at its top-left corner.
func (c *Controller) SetScroll(p domain.Point) { c.scroll = p }

// SetZoom changes the zoom level, clamped to the configured range, keeping the canvas
// point under the viewport center fixed.
func (c *Controller) SetZoom(percent float64) float64 {
	next := c.tunables.ClampZoom(percent)
	half := domain.Point{X: c.viewport.W / 2, Y: c.viewport.H / 2}
	center := c.scroll.Add(half.Scale(1 / c.factor()))
	c.zoom = next
	c.scroll = center.Sub(half.Scale(1 / c.factor()))
	return c.zoom
}

// ToCanvas converts a point in viewport pixels into canvas coordinates.
func (c *Controller) ToCanvas(screen domain.Point) domain.Point {
	return c.scroll.Add(screen.Scale(1 / c.factor()))
}

// ToScreen converts a canvas coordinate into viewport pixels.
func (c *Controller) ToScreen(p domain.Point) domain.Point {
	return p.Sub(c.scroll).Scale(c.factor())
}

func (c *Controller) factor() float64 { return c.zoom / 100 }

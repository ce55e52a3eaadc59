package ports

import (
	"context"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/geometry"
)

// ImageCapturer renders part of the canvas to an image.
type ImageCapturer interface {
	// Capture draws steps (and the edges between them) inside region, in canvas units.
	// It returns the encoded image bytes.
	Capture(ctx context.Context, region geometry.Rect, steps []*domain.Step) ([]byte, error)
}

package domain

// Scale and zoom bounds.
const (
	DefaultScale = 1.0
	MinScale     = 0.5
	MaxScale     = 3.0

	DefaultZoom = 100.0
	MinZoom     = 50.0
	MaxZoom     = 200.0
)

// Tunables groups the UX constants of the editor.
// The duplicate offset and resize step have no rationale beyond feel, so they are configurable.
type Tunables struct {
	DuplicateOffset Point   `mapstructure:"duplicate_offset" yaml:"duplicate_offset"`
	ResizeStep      float64 `mapstructure:"resize_step" yaml:"resize_step"`
	MinScale        float64 `mapstructure:"min_scale" yaml:"min_scale"`
	MaxScale        float64 `mapstructure:"max_scale" yaml:"max_scale"`
	MinZoom         float64 `mapstructure:"min_zoom" yaml:"min_zoom"`
	MaxZoom         float64 `mapstructure:"max_zoom" yaml:"max_zoom"`
	// HistoryLimit caps the number of snapshots kept. Zero means unbounded.
	HistoryLimit int `mapstructure:"history_limit" yaml:"history_limit"`
}

// DefaultTunables returns the stock editor constants.
func DefaultTunables() Tunables {
	return Tunables{
		DuplicateOffset: Point{X: 20, Y: 20},
		ResizeStep:      0.01,
		MinScale:        MinScale,
		MaxScale:        MaxScale,
		MinZoom:         MinZoom,
		MaxZoom:         MaxZoom,
	}
}

// Normalize fills zero or inverted fields with their defaults.
func (t Tunables) Normalize() Tunables {
	d := DefaultTunables()
	if t.ResizeStep <= 0 {
		t.ResizeStep = d.ResizeStep
	}
	if t.MinScale <= 0 || t.MaxScale <= 0 || t.MinScale > t.MaxScale {
		t.MinScale, t.MaxScale = d.MinScale, d.MaxScale
	}
	if t.MinZoom <= 0 || t.MaxZoom <= 0 || t.MinZoom > t.MaxZoom {
		t.MinZoom, t.MaxZoom = d.MinZoom, d.MaxZoom
	}
	if t.HistoryLimit < 0 {
		t.HistoryLimit = 0
	}
	return t
}

// ClampScale bounds s to the configured scale range.
func (t Tunables) ClampScale(s float64) float64 {
	return clamp(s, t.MinScale, t.MaxScale)
}

// ClampZoom bounds z (percent) to the configured zoom range.
func (t Tunables) ClampZoom(z float64) float64 {
	return clamp(z, t.MinZoom, t.MaxZoom)
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

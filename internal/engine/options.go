package engine

import "fmt"

// Options are the conversion settings both engines honor.
type Options struct {
	// Quality is 1-100; 0 leaves the engine default.
	Quality int `json:"quality,omitempty" yaml:"quality,omitempty"`
	// Resize is optional; see Resize.Active.
	Resize *Resize `json:"resize,omitempty" yaml:"resize,omitempty"`
}

// Resize describes a geometry change. Zero dimensions are unset.
type Resize struct {
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`
	// KeepAspect defaults to true when nil.
	KeepAspect *bool `json:"keep_aspect,omitempty" yaml:"keep_aspect,omitempty"`
}

// Active reports whether the resize has any effect.
func (r *Resize) Active() bool {
	return r != nil && (r.Width > 0 || r.Height > 0)
}

// MaintainAspect reports the effective aspect policy.
func (r *Resize) MaintainAspect() bool {
	return r == nil || r.KeepAspect == nil || *r.KeepAspect
}

// Mode classifies an active resize.
type Mode int

const (
	ModeNone Mode = iota
	// ModeFit scales down to fit a bounding box, never up.
	ModeFit
	// ModeExact forces both dimensions.
	ModeExact
	// ModeWidth sets the width and derives the height.
	ModeWidth
	// ModeHeight sets the height and derives the width.
	ModeHeight
)

// Mode returns how the engines should apply r.
func (r *Resize) Mode() Mode {
	switch {
	case !r.Active():
		return ModeNone
	case r.Width > 0 && r.Height > 0:
		if r.MaintainAspect() {
			return ModeFit
		}
		return ModeExact
	case r.Width > 0:
		return ModeWidth
	default:
		return ModeHeight
	}
}

// Validate rejects out-of-range values.
func (o Options) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("invalid parameter: quality %d out of range 1-100", o.Quality)
	}
	if o.Resize != nil && (o.Resize.Width < 0 || o.Resize.Height < 0) {
		return fmt.Errorf("invalid parameter: resize %dx%d must be positive", o.Resize.Width, o.Resize.Height)
	}
	return nil
}

// Bool returns a pointer to b, for Resize.KeepAspect.
func Bool(b bool) *bool { return &b }

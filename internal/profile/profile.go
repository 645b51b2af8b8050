// Package profile holds named conversion presets.
package profile

import (
	"sort"
	"strings"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
)

// Profile is a preset output format with optional quality and bounding box.
type Profile struct {
	Name        string
	Description string
	Format      string // output format name
	Quality     int    // 1-100, 0 keeps the engine default
	MaxWidth    int    // bounding box, 0 = unset
	MaxHeight   int
}

// Built-in profiles.
var profiles = map[string]Profile{
	"web": {
		Name:        "web",
		Description: "WebP for modern browsers, fits 1920x1920",
		Format:      "WEBP",
		Quality:     82,
		MaxWidth:    1920,
		MaxHeight:   1920,
	},
	"web-compat": {
		Name:        "web-compat",
		Description: "JPEG for every browser, fits 1920x1920",
		Format:      "JPEG",
		Quality:     85,
		MaxWidth:    1920,
		MaxHeight:   1920,
	},
	"thumbnail": {
		Name:        "thumbnail",
		Description: "small JPEG preview, fits 320x320",
		Format:      "JPEG",
		Quality:     78,
		MaxWidth:    320,
		MaxHeight:   320,
	},
	"archive": {
		Name:        "archive",
		Description: "lossless PNG at original size",
		Format:      "PNG",
	},
	"print": {
		Name:        "print",
		Description: "TIFF at original size",
		Format:      "TIFF",
	},
}

// Get returns a profile by name, ignoring case.
func Get(name string) (Profile, bool) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Overrides are user-supplied values that win over the profile's. Zero
// values are unset.
type Overrides struct {
	Format     string
	Quality    int
	Width      int
	Height     int
	KeepAspect *bool
	// DefaultQuality applies only when neither Quality nor the profile sets
	// one.
	DefaultQuality int
}

// Apply merges o over p and returns the output format and engine options.
func (p Profile) Apply(o Overrides) (string, engine.Options) {
	format := p.Format
	if o.Format != "" {
		format = o.Format
	}

	opts := engine.Options{Quality: p.Quality}
	if o.Quality > 0 {
		opts.Quality = o.Quality
	}
	if opts.Quality == 0 {
		opts.Quality = o.DefaultQuality
	}

	w, h := p.MaxWidth, p.MaxHeight
	if o.Width > 0 || o.Height > 0 {
		// An explicit geometry replaces the preset box as a whole.
		w, h = o.Width, o.Height
	}
	if w > 0 || h > 0 {
		opts.Resize = &engine.Resize{Width: w, Height: h, KeepAspect: o.KeepAspect}
	}
	return format, opts
}

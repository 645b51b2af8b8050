package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/formats"
)

func TestBuiltinProfilesTargetWritableFormats(t *testing.T) {
	for _, name := range Names() {
		p, ok := Get(name)
		require.True(t, ok, name)
		assert.Equal(t, name, p.Name)
		assert.True(t, formats.IsImageOutput(p.Format), "%s -> %s", name, p.Format)
		assert.NoError(t, engine.Options{Quality: p.Quality}.Validate(), name)
	}
}

func TestGet(t *testing.T) {
	p, ok := Get(" Web ")
	require.True(t, ok)
	assert.Equal(t, "WEBP", p.Format)

	_, ok = Get("telegram")
	assert.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"archive", "print", "thumbnail", "web", "web-compat"}, Names())
}

func TestApplyUsesProfile(t *testing.T) {
	p, _ := Get("thumbnail")
	format, opts := p.Apply(Overrides{})
	assert.Equal(t, "JPEG", format)
	assert.Equal(t, 78, opts.Quality)
	require.NotNil(t, opts.Resize)
	assert.Equal(t, 320, opts.Resize.Width)
	assert.Equal(t, 320, opts.Resize.Height)
	assert.Equal(t, engine.ModeFit, opts.Resize.Mode())
}

func TestApplyOverrides(t *testing.T) {
	p, _ := Get("web")
	format, opts := p.Apply(Overrides{Format: "png", Quality: 95, Width: 800, KeepAspect: engine.Bool(false)})
	assert.Equal(t, "png", format)
	assert.Equal(t, 95, opts.Quality)
	require.NotNil(t, opts.Resize)
	assert.Equal(t, 800, opts.Resize.Width)
	assert.Zero(t, opts.Resize.Height, "explicit geometry replaces the box")
	assert.Equal(t, engine.ModeWidth, opts.Resize.Mode())
}

func TestApplyWithoutResize(t *testing.T) {
	p, _ := Get("archive")
	format, opts := p.Apply(Overrides{})
	assert.Equal(t, "PNG", format)
	assert.Zero(t, opts.Quality)
	assert.Nil(t, opts.Resize)

	// The zero profile is what --to without --preset uses.
	format, opts = Profile{}.Apply(Overrides{Format: "gif", Height: 50})
	assert.Equal(t, "gif", format)
	require.NotNil(t, opts.Resize)
	assert.Equal(t, 50, opts.Resize.Height)
}

func TestApplyDefaultQuality(t *testing.T) {
	web, _ := Get("web")
	_, opts := web.Apply(Overrides{DefaultQuality: 60})
	assert.Equal(t, 82, opts.Quality, "preset quality beats the configured default")

	_, opts = web.Apply(Overrides{Quality: 70, DefaultQuality: 60})
	assert.Equal(t, 70, opts.Quality)

	archive, _ := Get("archive")
	_, opts = archive.Apply(Overrides{DefaultQuality: 60})
	assert.Equal(t, 60, opts.Quality)

	_, opts = Profile{}.Apply(Overrides{Format: "jpeg", DefaultQuality: 60})
	assert.Equal(t, 60, opts.Quality)
}

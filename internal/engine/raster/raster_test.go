package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
)

func fixture(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func dims(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height, name
}

func TestResolveAliases(t *testing.T) {
	e := New(Config{})
	want, ok := e.Resolve("JPEG")
	require.True(t, ok)
	for _, name := range []string{"jpg", "JPG", "Jpeg", "jpe"} {
		tok, ok := e.Resolve(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, tok, name)
	}

	tok, ok := e.Resolve("tif")
	assert.True(t, ok)
	assert.Equal(t, engine.Token("TIFF"), tok)

	_, ok = e.Resolve("WEBP")
	assert.False(t, ok, "webp is decode-only here")
	assert.Equal(t, engine.Uninitialized, e.Status(), "resolution must not initialize")
}

func TestRoundTripKeepsDimensions(t *testing.T) {
	e := New(Config{})
	for _, tc := range []struct {
		name   string
		format imaging.Format
		token  engine.Token
	}{
		{"png", imaging.PNG, "PNG"},
		{"jpeg", imaging.JPEG, "JPEG"},
		{"gif", imaging.GIF, "GIF"},
		{"tiff", imaging.TIFF, "TIFF"},
		{"bmp", imaging.BMP, "BMP"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := fixture(t, 64, 48, tc.format)
			out, err := e.Convert(context.Background(), engine.Input{Data: in}, tc.token, engine.Options{Quality: 100})
			require.NoError(t, err)
			w, h, _ := dims(t, out.Data)
			assert.Equal(t, 64, w)
			assert.Equal(t, 48, h)
			assert.Equal(t, tc.name, out.InputFormat)
		})
	}
	assert.Equal(t, engine.Ready, e.Status())
}

// withOrientation inserts an EXIF APP1 segment carrying the given
// orientation tag right after the JPEG SOI marker.
func withOrientation(jpeg []byte, orientation byte) []byte {
	app1 := []byte{
		0xFF, 0xE1, 0x00, 0x22,
		'E', 'x', 'i', 'f', 0x00, 0x00,
		'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, orientation, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	out := append([]byte{}, jpeg[:2]...)
	out = append(out, app1...)
	return append(out, jpeg[2:]...)
}

func TestRoundTripAppliesEXIFOrientation(t *testing.T) {
	e := New(Config{})
	in := withOrientation(fixture(t, 64, 48, imaging.JPEG), 6)

	out, err := e.Convert(context.Background(), engine.Input{Data: in}, "JPEG", engine.Options{Quality: 100})
	require.NoError(t, err)
	w, h, _ := dims(t, out.Data)
	assert.Equal(t, 48, w, "rotated to display orientation")
	assert.Equal(t, 64, h)
}

func TestResizeModes(t *testing.T) {
	e := New(Config{})
	src := fixture(t, 200, 100, imaging.PNG)

	tests := []struct {
		name         string
		resize       *engine.Resize
		wantW, wantH int
	}{
		{"bounding box", &engine.Resize{Width: 100, Height: 100}, 100, 50},
		{"box never upscales", &engine.Resize{Width: 400, Height: 400}, 200, 100},
		{"exact", &engine.Resize{Width: 30, Height: 90, KeepAspect: engine.Bool(false)}, 30, 90},
		{"width only", &engine.Resize{Width: 50}, 50, 25},
		{"height only", &engine.Resize{Height: 20}, 40, 20},
		{"no dimensions", &engine.Resize{}, 200, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Convert(context.Background(), engine.Input{Data: src}, "PNG", engine.Options{Resize: tt.resize})
			require.NoError(t, err)
			w, h, _ := dims(t, out.Data)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestBoundingBoxPreservesAspect(t *testing.T) {
	e := New(Config{})
	src := fixture(t, 200, 100, imaging.JPEG)
	out, err := e.Convert(context.Background(), engine.Input{Data: src}, "PNG",
		engine.Options{Resize: &engine.Resize{Width: 100, Height: 100, KeepAspect: engine.Bool(true)}})
	require.NoError(t, err)

	w, h, _ := dims(t, out.Data)
	assert.LessOrEqual(t, max(w, h), 100)
	assert.InDelta(t, 2.0, float64(w)/float64(h), 0.05)
}

func TestQualityChangesJPEGSize(t *testing.T) {
	e := New(Config{})
	src := fixture(t, 128, 128, imaging.PNG)

	low, err := e.Convert(context.Background(), engine.Input{Data: src}, "JPEG", engine.Options{Quality: 5})
	require.NoError(t, err)
	high, err := e.Convert(context.Background(), engine.Input{Data: src}, "JPEG", engine.Options{Quality: 100})
	require.NoError(t, err)
	assert.Less(t, len(low.Data), len(high.Data))
}

func TestConvertErrors(t *testing.T) {
	e := New(Config{})
	ctx := context.Background()

	_, err := e.Convert(ctx, engine.Input{Data: []byte("not an image at all")}, "PNG", engine.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image: unknown format")

	_, err = e.Convert(ctx, engine.Input{}, "PNG", engine.Options{})
	assert.ErrorIs(t, err, engine.ErrEmptyInput)

	_, err = e.Convert(ctx, engine.Input{Data: fixture(t, 4, 4, imaging.PNG)}, "WEBP", engine.Options{})
	assert.ErrorIs(t, err, engine.ErrUnsupportedFormat)

	_, err = e.Convert(ctx, engine.Input{Data: fixture(t, 4, 4, imaging.PNG)}, "PNG", engine.Options{Quality: 150})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid parameter")
}

func TestCanRead(t *testing.T) {
	e := New(Config{})
	assert.True(t, e.CanRead(engine.Input{Data: fixture(t, 2, 2, imaging.BMP)}))
	assert.False(t, e.CanRead(engine.Input{Data: []byte{0x00, 0x00, 0x01, 0x00}}))
	assert.False(t, e.CanRead(engine.Input{}))
	assert.Equal(t, engine.Uninitialized, e.Status())
}

type brokenEncoder struct{ fail bool }

func (b *brokenEncoder) Token() engine.Token { return "PNG" }

func (b *brokenEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	if b.fail {
		return errors.New("codec table corrupt")
	}
	return imaging.Encode(w, img, imaging.PNG)
}

func TestInitFailureIsRetryable(t *testing.T) {
	enc := &brokenEncoder{fail: true}
	e := New(Config{Encoders: []Encoder{enc}})
	src := fixture(t, 8, 8, imaging.PNG)

	_, err := e.Convert(context.Background(), engine.Input{Data: src}, "PNG", engine.Options{})
	require.Error(t, err)
	assert.True(t, engine.IsInitError(err))
	assert.Equal(t, engine.Failed, e.Status())

	enc.fail = false
	out, err := e.Convert(context.Background(), engine.Input{Data: src}, "PNG", engine.Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Data)
	assert.Equal(t, engine.Ready, e.Status())

	require.NoError(t, e.Close())
	assert.Equal(t, engine.Uninitialized, e.Status())
}

func TestPNGLevel(t *testing.T) {
	assert.Equal(t, pngLevel(5), pngLevel(9))
	assert.NotEqual(t, pngLevel(5), pngLevel(95))
	assert.Equal(t, pngLevel(75), pngLevel(100))
}

package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/imgconv-cli/internal/classify"
	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/engine/raster"
	"github.com/AnyUserName/imgconv-cli/internal/hasher"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xc0
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func rasterConverter(t *testing.T) *converter.Converter {
	t.Helper()
	c, err := converter.New(converter.Config{Engines: []engine.Engine{raster.New(raster.Config{})}})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestScanInputs(t *testing.T) {
	dir := t.TempDir()
	img := pngBytes(t, 2, 2)
	writeFile(t, filepath.Join(dir, "a.png"), img)
	writeFile(t, filepath.Join(dir, "sub", "b.JPG"), img)
	writeFile(t, filepath.Join(dir, "sub", "c.tif"), img)
	writeFile(t, filepath.Join(dir, ".cache", "d.png"), img)
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("x"))
	writeFile(t, filepath.Join(dir, "raw.cr2"), []byte("x"))

	loose := filepath.Join(t.TempDir(), "photo.unknown")
	writeFile(t, loose, img)

	sources, err := ScanInputs([]string{dir, loose, filepath.Join(dir, "a.png")})
	require.NoError(t, err)

	var rel []string
	formats := map[string]string{}
	for _, s := range sources {
		rel = append(rel, filepath.ToSlash(s.RelPath))
		formats[filepath.ToSlash(s.RelPath)] = s.Format
	}
	sort.Strings(rel)
	assert.Equal(t, []string{"a.png", "photo.unknown", "raw.cr2", "sub/b.JPG", "sub/c.tif"}, rel)
	assert.Equal(t, "jpeg", formats["sub/b.JPG"])
	assert.Equal(t, "tiff", formats["sub/c.tif"])
	assert.Len(t, sources, 5, "a.png named twice is scanned once")
}

func TestScanInputsMissingPath(t *testing.T) {
	_, err := ScanInputs([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestPlanNames(t *testing.T) {
	sources := []Source{
		{RelPath: "photo.png"},
		{RelPath: "photo.jpg"},
		{RelPath: filepath.Join("sub", "icon.gif")},
	}
	assert.Equal(t, []string{
		"photo-png.webp",
		"photo-jpg.webp",
		filepath.Join("sub", "icon.webp"),
	}, planNames(sources, "WEBP"))
}

func TestHashedName(t *testing.T) {
	data := []byte("payload")
	assert.Equal(t, "sub/a."+hasher.Short(data, 8)+".png", hashedName("sub/a.png", data))
}

func TestRunConvertsTree(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(in, "a.png"), pngBytes(t, 40, 20))
	writeFile(t, filepath.Join(in, "nested", "b.png"), pngBytes(t, 10, 10))

	var progress bytes.Buffer
	p := New(rasterConverter(t), Config{
		Inputs:    []string{in},
		OutputDir: out,
		Format:    "jpeg",
		Options:   engine.Options{Quality: 80, Resize: &engine.Resize{Width: 20}},
		Workers:   2,
		Progress:  &progress,
		Logger:    zerolog.Nop(),
	})
	r, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, r.Stats.Converted)
	assert.Zero(t, r.Stats.Failed)
	assert.Equal(t, 2, r.Stats.ByEngine["raster"])
	assert.Equal(t, "jpeg", r.Format)
	assert.NotEmpty(t, progress.String())

	for _, e := range r.Entries {
		require.True(t, e.OK(), "%+v", e.Failure)
		assert.Equal(t, "png", e.InputFormat)
		assert.Equal(t, 20, e.Width)
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(e.Output)))
		require.NoError(t, err)
		assert.Equal(t, e.Hash, hasher.Sum(data))
		assert.Equal(t, int64(len(data)), e.NewSize)
	}
	assert.FileExists(t, filepath.Join(out, "a.jpeg"))
	assert.FileExists(t, filepath.Join(out, "nested", "b.jpeg"))
}

func TestRunHashNames(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.png"), pngBytes(t, 8, 8))

	out := t.TempDir()
	r, err := New(rasterConverter(t), Config{
		Inputs:    []string{in},
		OutputDir: out,
		Format:    "png",
		HashNames: true,
	}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Entries, 1)

	e := r.Entries[0]
	assert.Equal(t, "a."+e.Hash[:8]+".png", e.Output)
	assert.FileExists(t, filepath.Join(out, e.Output))
}

func TestRunPartialFailure(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "good.png"), pngBytes(t, 4, 4))
	writeFile(t, filepath.Join(in, "bad.png"), []byte("not an image"))

	r, err := New(rasterConverter(t), Config{
		Inputs:    []string{in},
		OutputDir: t.TempDir(),
		Format:    "bmp",
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Stats.Converted)
	assert.Equal(t, 1, r.Stats.Failed)

	failed := r.Failures()
	require.Len(t, failed, 1)
	assert.Equal(t, filepath.Join(in, "bad.png"), failed[0].Input)
	assert.Empty(t, failed[0].Output)
}

func TestRunAllFailed(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.png"), pngBytes(t, 4, 4))

	// RAW formats are read-only, so no engine is ever asked.
	r, err := New(rasterConverter(t), Config{
		Inputs:    []string{in},
		OutputDir: t.TempDir(),
		Format:    "cr2",
	}).Run(context.Background())
	require.ErrorIs(t, err, ErrAllFailed)
	require.NotNil(t, r)
	require.Len(t, r.Entries, 1)
	assert.Equal(t, classify.Format, r.Entries[0].Failure.Category)
}

func TestRunRefusesToOverwriteInput(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.png"), pngBytes(t, 4, 4))
	before, err := os.ReadFile(filepath.Join(in, "a.png"))
	require.NoError(t, err)

	_, err = New(rasterConverter(t), Config{
		Inputs:    []string{in},
		OutputDir: in,
		Format:    "png",
	}).Run(context.Background())
	require.ErrorIs(t, err, ErrAllFailed)

	after, err := os.ReadFile(filepath.Join(in, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunNoInputs(t *testing.T) {
	_, err := New(rasterConverter(t), Config{Inputs: []string{t.TempDir()}, Format: "png"}).Run(context.Background())
	assert.ErrorContains(t, err, "no images found")
}

type countingConverter struct {
	inflight, peak atomic.Int32
	calls          atomic.Int32
	next           func(converter.Request) converter.Result
}

func (c *countingConverter) Convert(ctx context.Context, req converter.Request) converter.Result {
	n := c.inflight.Add(1)
	defer c.inflight.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	c.calls.Add(1)
	return c.next(req)
}

func TestRunBoundsWorkersAndDeclaresMIME(t *testing.T) {
	in := t.TempDir()
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		writeFile(t, filepath.Join(in, n+".png"), pngBytes(t, 2, 2))
	}

	mimes := make(chan string, 6)
	conv := &countingConverter{next: func(req converter.Request) converter.Result {
		mimes <- req.MIMEType
		return converter.Result{Success: &converter.Success{Data: []byte("x"), NewSize: 1, Engine: engine.FFmpeg}}
	}}

	r, err := New(conv, Config{
		Inputs:    []string{in},
		OutputDir: t.TempDir(),
		Format:    "gif",
		Engine:    engine.FFmpeg,
		Workers:   2,
	}).Run(context.Background())
	require.NoError(t, err)
	close(mimes)

	assert.Equal(t, int32(6), conv.calls.Load())
	assert.LessOrEqual(t, conv.peak.Load(), int32(2))
	assert.Equal(t, 6, r.Stats.ByEngine["ffmpeg"])
	for m := range mimes {
		assert.Equal(t, "image/png", m)
	}
}

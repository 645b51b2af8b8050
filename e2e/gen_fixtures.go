//go:build ignore

// gen_fixtures creates a small input tree for the imgconv smoke test: one
// image per in-process format, a nested directory, a hidden directory that
// must be skipped and a corrupt file that must fail.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	for _, sub := range []string{"nested", ".hidden"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			panic(err)
		}
	}

	fixtures := []struct {
		name   string
		img    *image.NRGBA
		format imaging.Format
	}{
		{"banner.jpg", gradient(400, 225), imaging.JPEG},
		{"logo.png", alphaGradient(100, 100), imaging.PNG},
		{"icon.gif", gradient(64, 64), imaging.GIF},
		{"scan.bmp", gradient(120, 80), imaging.BMP},
		{"nested/print.tiff", gradient(300, 200), imaging.TIFF},
		{".hidden/skipped.png", gradient(10, 10), imaging.PNG},
	}
	for _, f := range fixtures {
		if err := imaging.Save(f.img, filepath.Join(dir, f.name), imaging.JPEGQuality(85)); err != nil {
			panic(fmt.Errorf("%s: %w", f.name, err))
		}
	}

	// A PNG extension over bytes no engine can decode.
	if err := os.WriteFile(filepath.Join(dir, "nested", "corrupt.png"), []byte("\x89PNG\r\n\x1a\ntruncated"), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(fixtures)+1, dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

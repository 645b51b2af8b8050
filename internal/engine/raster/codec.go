package raster

import (
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
)

// Encoder writes an image in one output format.
type Encoder interface {
	// Token is the engine token the encoder produces.
	Token() engine.Token
	// Encode writes img at the given quality (1-100, 0 = default).
	Encode(w io.Writer, img image.Image, quality int) error
}

// imagingEncoder encodes through imaging.Encode with per-format options
// derived from the quality setting.
type imagingEncoder struct {
	token   engine.Token
	format  imaging.Format
	options func(quality int) []imaging.EncodeOption
}

func (e *imagingEncoder) Token() engine.Token { return e.token }

func (e *imagingEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	var opts []imaging.EncodeOption
	if e.options != nil && quality > 0 {
		opts = e.options(quality)
	}
	return imaging.Encode(w, img, e.format, opts...)
}

// defaultEncoders returns the writable codecs in native token order.
func defaultEncoders() []Encoder {
	return []Encoder{
		&imagingEncoder{token: "JPEG", format: imaging.JPEG, options: jpegOptions},
		&imagingEncoder{token: "PNG", format: imaging.PNG, options: pngOptions},
		&imagingEncoder{token: "GIF", format: imaging.GIF, options: gifOptions},
		&imagingEncoder{token: "TIFF", format: imaging.TIFF},
		&imagingEncoder{token: "BMP", format: imaging.BMP},
	}
}

func jpegOptions(quality int) []imaging.EncodeOption {
	return []imaging.EncodeOption{imaging.JPEGQuality(quality)}
}

// pngOptions reads the zlib level from the tens digit of quality, the
// convention ImageMagick uses for PNG.
func pngOptions(quality int) []imaging.EncodeOption {
	return []imaging.EncodeOption{imaging.PNGCompressionLevel(pngLevel(quality))}
}

func pngLevel(quality int) png.CompressionLevel {
	switch level := quality / 10; {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// gifOptions scales the palette size with quality.
func gifOptions(quality int) []imaging.EncodeOption {
	colors := quality * 256 / 100
	if colors < 2 {
		colors = 2
	}
	return []imaging.EncodeOption{imaging.GIFNumColors(colors)}
}

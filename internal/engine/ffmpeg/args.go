package ffmpeg

import (
	"fmt"
	"math"
	"strconv"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
)

// JPEGQuality maps 1-100 onto ffmpeg's -q:v scale, where 1 is best and 31
// is worst.
func JPEGQuality(quality int) int {
	return int(math.Round(31 - float64(quality)/100*30))
}

// PNGCompression maps 1-100 onto zlib's 0-9 compression level, inversely.
func PNGCompression(quality int) int {
	level := int(math.Round(float64(100-quality) / 11.11))
	return min(9, level)
}

// QualityArgs returns the encoder flags for quality, or nil when the token
// has no quality control.
func QualityArgs(token engine.Token, quality int) []string {
	if quality <= 0 {
		return nil
	}
	switch token {
	case "mjpeg":
		return []string{"-q:v", strconv.Itoa(JPEGQuality(quality))}
	case "webp":
		return []string{"-quality", strconv.Itoa(quality)}
	case "png":
		return []string{"-compression_level", strconv.Itoa(PNGCompression(quality))}
	}
	return nil
}

// ScaleFilter renders r as a scale filter, or "" when r has no effect.
func ScaleFilter(r *engine.Resize) string {
	switch r.Mode() {
	case engine.ModeFit:
		// Shrink only: the box is clamped to the input size first.
		return fmt.Sprintf("scale='min(%d,iw)':'min(%d,ih)':force_original_aspect_ratio=decrease", r.Width, r.Height)
	case engine.ModeExact:
		return fmt.Sprintf("scale=%d:%d", r.Width, r.Height)
	case engine.ModeWidth:
		return fmt.Sprintf("scale=%d:-1", r.Width)
	case engine.ModeHeight:
		return fmt.Sprintf("scale=-1:%d", r.Height)
	}
	return ""
}

// BuildArgs assembles the ffmpeg command line for one conversion:
//
//	-i <input> [-vf <filter>] [quality flags] -f <muxer> <output>
//
// preceded by flags that keep ffmpeg quiet and non-interactive.
func BuildArgs(input, output string, token engine.Token, opts engine.Options) []string {
	out := outputs[token]
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", input}
	if f := ScaleFilter(opts.Resize); f != "" {
		args = append(args, "-vf", f)
	}
	args = append(args, QualityArgs(token, opts.Quality)...)
	if out.muxer == image2 {
		args = append(args, "-frames:v", "1", "-update", "1")
	}
	return append(args, "-f", out.muxer, output)
}

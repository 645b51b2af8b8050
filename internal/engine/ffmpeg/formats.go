package ffmpeg

import (
	"regexp"
	"strings"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
)

// binExt marks input whose declared type says nothing useful.
const binExt = "bin"

// mimeExtensions maps declared MIME types to input file extensions.
var mimeExtensions = map[string]string{
	"image/jpeg":                "jpg",
	"image/jpg":                 "jpg",
	"image/png":                 "png",
	"image/webp":                "webp",
	"image/gif":                 "gif",
	"image/bmp":                 "bmp",
	"image/tiff":                "tiff",
	"image/tif":                 "tiff",
	"image/avif":                "avif",
	"image/heic":                "heic",
	"image/heif":                "heif",
	"image/ico":                 "ico",
	"image/x-icon":              "ico",
	"image/vnd.microsoft.icon":  "ico",
	"image/svg+xml":             "svg",
	"image/x-tga":               "tga",
	"image/x-targa":             "tga",
	"image/vnd.adobe.photoshop": "psd",
	"image/x-exr":               "exr",
	"image/vnd.radiance":        "hdr",
	"image/x-dds":               "dds",
	"image/x-pcx":               "pcx",
	"image/x-portable-bitmap":   "pbm",
	"image/x-portable-graymap":  "pgm",
	"image/x-portable-pixmap":   "ppm",
	"image/x-portable-anymap":   "pam",
	"image/x-xpixmap":           "xpm",
	"image/x-xbitmap":           "xbm",
	"image/x-sgi":               "sgi",
	"image/x-sun-raster":        "sun",
	"image/fits":                "fits",
	"image/x-dpx":               "dpx",
	"image/jp2":                 "jp2",
	"image/jpx":                 "jp2",
	"image/jxl":                 "jxl",
	"application/pdf":           "pdf",
}

// subtypeExt is the shape an unlisted image/<sub> must have to become a file
// extension inside a workspace.
var subtypeExt = regexp.MustCompile(`^[a-z0-9][a-z0-9.+-]*$`)

// MIMEExtension maps a declared MIME type to an input extension. Unlisted
// image/<sub> types yield <sub> when it is a plain token; anything else
// yields "bin".
func MIMEExtension(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if ext, ok := mimeExtensions[mt]; ok {
		return ext
	}
	if sub, ok := strings.CutPrefix(mt, "image/"); ok && subtypeExt.MatchString(sub) && !strings.Contains(sub, "..") {
		return sub
	}
	return binExt
}

// readable lists the input extensions ffmpeg decodes.
var readable = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "webp": true, "gif": true, "bmp": true,
	"tiff": true, "tif": true, "avif": true, "heic": true, "heif": true, "ico": true,
	"tga": true, "psd": true, "exr": true, "hdr": true, "dds": true, "pcx": true,
	"pbm": true, "pgm": true, "ppm": true, "pam": true, "pfm": true, "xpm": true,
	"xbm": true, "sgi": true, "sun": true, "ras": true, "fits": true, "fts": true,
	"dpx": true, "cin": true, "j2k": true, "jp2": true, "jxl": true,
}

// Supports reports whether ffmpeg reads the given format name.
func Supports(name string) bool {
	return readable[strings.ToLower(strings.TrimSpace(name))]
}

// normalized maps format names to ffmpeg's own names. Names missing here are
// used as-is.
var normalized = map[string]engine.Token{
	"jpg":  "mjpeg",
	"jpeg": "mjpeg",
	"tif":  "tiff",
	"heic": "heif",
	"ras":  "sun",
	"fts":  "fits",
	"cin":  "dpx",
	"jp2":  "jpeg2000",
}

// Normalize returns ffmpeg's name for a format.
func Normalize(name string) engine.Token {
	n := strings.ToLower(strings.TrimSpace(name))
	if tok, ok := normalized[n]; ok {
		return tok
	}
	return engine.Token(n)
}

// output describes how a writable token is produced.
type output struct {
	// muxer is passed to -f.
	muxer string
	// ext names the output file.
	ext string
}

const image2 = "image2"

// outputs lists the tokens ffmpeg can write. heif, psd, dds and xpm are
// decode-only.
var outputs = map[engine.Token]output{
	"mjpeg":    {"mjpeg", "jpg"},
	"png":      {image2, "png"},
	"apng":     {"apng", "apng"},
	"webp":     {"webp", "webp"},
	"gif":      {"gif", "gif"},
	"bmp":      {image2, "bmp"},
	"tiff":     {image2, "tiff"},
	"avif":     {"avif", "avif"},
	"ico":      {"ico", "ico"},
	"tga":      {image2, "tga"},
	"exr":      {image2, "exr"},
	"hdr":      {image2, "hdr"},
	"pcx":      {image2, "pcx"},
	"pbm":      {image2, "pbm"},
	"pgm":      {image2, "pgm"},
	"ppm":      {image2, "ppm"},
	"pam":      {image2, "pam"},
	"pfm":      {image2, "pfm"},
	"xbm":      {image2, "xbm"},
	"sgi":      {image2, "sgi"},
	"sun":      {image2, "sun"},
	"fits":     {image2, "fits"},
	"dpx":      {image2, "dpx"},
	"j2k":      {image2, "j2k"},
	"jpeg2000": {image2, "jp2"},
	"jxl":      {image2, "jxl"},
}

// aliases maps user-facing names to output tokens where the two differ.
var aliases = func() map[string]engine.Token {
	m := make(map[string]engine.Token, len(normalized)+1)
	for name, tok := range normalized {
		if _, ok := outputs[tok]; ok {
			m[name] = tok
		}
	}
	m["targa"] = "tga"
	return m
}()

func nativeTokens() []engine.Token {
	out := make([]engine.Token, 0, len(outputs))
	for tok := range outputs {
		out = append(out, tok)
	}
	return out
}

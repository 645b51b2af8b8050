package ffmpeg

import "bytes"

// Detection is the input format the adapter settled on.
type Detection struct {
	Ext string
	// Sniffed is set when the extension came from the leading bytes rather
	// than the declared MIME type.
	Sniffed bool
	// Guessed is set when nothing matched and Ext is the JPEG default.
	Guessed bool
}

// DetectInput picks the input extension: the declared MIME type first, then
// the leading bytes when the type is missing or generic.
func DetectInput(mimeType string, data []byte) Detection {
	if ext := MIMEExtension(mimeType); ext != binExt {
		return Detection{Ext: ext}
	}
	ext, ok := Sniff(data)
	return Detection{Ext: ext, Sniffed: true, Guessed: !ok}
}

type signature struct {
	ext    string
	offset int
	magic  []byte
	// brand, when set, must also appear at brandOffset.
	brand       []byte
	brandOffset int
}

// signatures are tried in order.
var signatures = []signature{
	{ext: "jpg", magic: []byte{0xFF, 0xD8, 0xFF}},
	{ext: "png", magic: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
	{ext: "webp", magic: []byte("RIFF"), brand: []byte("WEBP"), brandOffset: 8},
	{ext: "gif", magic: []byte("GIF8")},
	{ext: "bmp", magic: []byte("BM")},
	{ext: "tiff", magic: []byte{'I', 'I', 0x2A, 0x00}},
	{ext: "tiff", magic: []byte{'M', 'M', 0x00, 0x2A}},
	{ext: "avif", offset: 4, magic: []byte("ftyp"), brand: []byte("avif"), brandOffset: 8},
	{ext: "heic", offset: 4, magic: []byte("ftyp"), brand: []byte("heic"), brandOffset: 8},
	{ext: "ico", magic: []byte{0x00, 0x00, 0x01, 0x00}},
}

func (s signature) match(data []byte) bool {
	if !hasAt(data, s.offset, s.magic) {
		return false
	}
	return s.brand == nil || hasAt(data, s.brandOffset, s.brand)
}

func hasAt(data []byte, off int, want []byte) bool {
	return len(data) >= off+len(want) && bytes.Equal(data[off:off+len(want)], want)
}

// Sniff matches the leading bytes against the known signatures. When none
// matches it returns "jpg" and false: a last-resort guess, not a detection.
func Sniff(data []byte) (string, bool) {
	for _, s := range signatures {
		if s.match(data) {
			return s.ext, true
		}
	}
	return "jpg", false
}

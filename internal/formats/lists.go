package formats

// outputList names the image formats offered as conversion targets. Video,
// font and text containers share the engine vocabulary and stay out.
var outputList = []string{
	"JPEG", "JPG", "PNG", "WEBP", "AVIF", "GIF", "BMP", "TIFF",
	"JXL", "APNG", "QOI",
	"PSD", "PSB", "AI", "EPS", "PDF", "PDFA",
	"EXR", "HDR", "FITS", "FTS", "DPX", "CIN",
	"J2K", "J2C", "JP2", "JPC", "JPM", "JPT", "JNG",
	"TGA", "PCX", "DDS", "ICO", "CUR",
	"SVG", "SVGZ", "MVG",
	"PBM", "PGM", "PPM", "PAM", "PNM", "PFM", "PHM",
	"XBM", "XPM", "PICON", "PICT", "PCT", "SGI", "SUN", "RAS", "MTV",
	"PALM", "WBMP", "OTB", "PTIF", "TIFF64", "FARBFELD", "FF",
	"MNG", "JPS",
	"FAX", "G3", "G4", "GROUP4",
	"MIFF", "CLIP", "MASK", "MONO", "GRAY", "GRAYA",
	"BMP2", "BMP3", "DCX", "EPDF", "EPSF", "EPSI", "EPT", "EPT2", "EPT3",
	"GIF87", "ICB", "ICON", "INLINE", "PJPEG", "VDA", "VST", "PNG8", "PNG24", "PNG32",
}

// inputList names the image formats accepted as sources. Camera RAW formats
// appear here only: writing them is unsupported by policy.
var inputList = []string{
	"JPEG", "JPG", "PNG", "WEBP", "AVIF", "GIF", "BMP", "TIFF",
	"JXL", "APNG", "HEIC", "HEIF", "QOI",
	"PSD", "PSB", "AI", "EPS", "PDF",
	"CR2", "CR3", "CRW", "NEF", "ARW", "DNG", "RAF", "ORF", "RW2", "PEF", "SRW",
	"ERF", "MEF", "MRW", "3FR", "NRW", "IIQ", "X3F", "K25", "KDC", "DCR", "RWL",
	"FFF", "STI", "SR2", "SRF", "MOS", "MDC",
	"EXR", "HDR", "FITS", "FTS", "DPX", "CIN",
	"J2K", "J2C", "JP2", "JPC", "JPM", "JPT", "JNG",
	"TGA", "PCX", "DDS", "XCF", "ICO", "CUR",
	"SVG", "SVGZ", "MVG",
	"PBM", "PGM", "PPM", "PAM", "PNM", "PFM", "PHM",
	"XBM", "XPM", "PICON", "PICT", "PCT", "SGI", "SUN",
	"PALM", "WBMP", "FARBFELD",
}

var popular = []string{
	"JPEG", "JPG", "PNG", "WEBP", "GIF",
	"AVIF", "JXL", "HEIC", "HEIF",
	"TIFF", "PDF", "PSD", "EPS",
	"SVG", "ICO",
	"BMP", "TGA",
}

var (
	imageOutputs = toSet(outputList)
	imageInputs  = toSet(inputList)
)

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

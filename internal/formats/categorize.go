package formats

// Category labels used by Categorize, in display order.
const (
	CategoryWeb          = "web"
	CategoryNextGen      = "next-gen"
	CategoryRaw          = "RAW"
	CategoryProfessional = "professional"
	CategoryHDR          = "HDR/scientific"
	CategoryVector       = "vector"
	CategoryLegacy       = "legacy"
	CategoryOther        = "other"
)

// Group is one category bucket produced by Categorize.
type Group struct {
	Category string       `json:"category" yaml:"category"`
	Formats  []Descriptor `json:"formats" yaml:"formats"`
}

type bucket struct {
	name string
	ids  map[string]bool
}

// buckets are checked in order; a descriptor lands in the first one that
// lists it and in CategoryOther when none does.
var buckets = []bucket{
	{CategoryWeb, toSet([]string{"JPEG", "JPG", "PNG", "WEBP", "GIF", "BMP"})},
	{CategoryNextGen, toSet([]string{"JXL", "QOI", "AVIF", "HEIC", "HEIF", "APNG"})},
	{CategoryRaw, toSet([]string{
		"CR2", "CR3", "CRW", "NEF", "ARW", "DNG", "RAF", "ORF", "RW2", "PEF",
		"SRW", "ERF", "MEF", "MRW", "3FR", "NRW", "IIQ", "X3F", "K25", "KDC",
		"DCR", "RWL", "FFF", "STI", "SR2", "SRF", "MOS", "MDC",
	})},
	{CategoryProfessional, toSet([]string{"PSD", "PSB", "AI", "EPS", "PDF", "PDFA", "TIFF", "TIFF64", "PTIF"})},
	{CategoryHDR, toSet([]string{"EXR", "HDR", "FITS", "FTS", "DPX", "CIN"})},
	{CategoryVector, toSet([]string{"SVG", "SVGZ", "MVG"})},
	{CategoryLegacy, toSet([]string{"TGA", "PCX", "XBM", "XPM", "ICO", "CUR", "DDS", "SGI", "SUN", "RAS", "MTV"})},
}

// CategoryOf returns the bucket label for a format identifier.
func CategoryOf(id string) string {
	id = normalize(id)
	for _, b := range buckets {
		if b.ids[id] {
			return b.name
		}
	}
	return CategoryOther
}

// Categorize groups ds by category. Groups follow the fixed bucket order,
// formats keep their input order, and empty groups are omitted.
func Categorize(ds []Descriptor) []Group {
	byName := make(map[string][]Descriptor)
	for _, d := range ds {
		c := CategoryOf(d.ID)
		byName[c] = append(byName[c], d)
	}

	var out []Group
	for _, name := range Categories() {
		if len(byName[name]) == 0 {
			continue
		}
		out = append(out, Group{Category: name, Formats: byName[name]})
	}
	return out
}

// Categories returns every category label in display order.
func Categories() []string {
	names := make([]string, 0, len(buckets)+1)
	for _, b := range buckets {
		names = append(names, b.name)
	}
	return append(names, CategoryOther)
}

package formats

// table is the full descriptor set in declaration order. Order is part of the
// contract: List and Categorize preserve it.
var table = []Descriptor{
	{"3FR", "Hasselblad CFV/H3D39II Raw Format", true, false},
	{"3G2", "Media Container", true, false},
	{"3GP", "Media Container", true, false},
	{"A", "Raw alpha samples", true, true},
	{"AAI", "AAI Dune image", true, true},
	{"AI", "Adobe Illustrator CS2", true, true},
	{"APNG", "Animated Portable Network Graphics", true, true},
	{"ART", "PFS: 1st Publisher Clip Art", true, true},
	{"ARW", "Sony Alpha Raw Format", true, false},
	{"ASHLAR", "Image sequence laid out in continuous irregular courses", false, true},
	{"AVI", "Microsoft Audio/Visual Interleaved", true, false},
	{"AVIF", "AV1 Image File Format", true, true},
	{"AVS", "AVS X image", true, true},
	{"B", "Raw blue samples", true, true},
	{"BAYER", "Raw mosaiced samples", true, true},
	{"BAYERA", "Raw mosaiced and alpha samples", true, true},
	{"BGR", "Raw blue, green, and red samples", true, true},
	{"BGRA", "Raw blue, green, red, and alpha samples", true, true},
	{"BGRO", "Raw blue, green, red, and opacity samples", true, true},
	{"BMP", "Microsoft Windows bitmap image", true, true},
	{"BMP2", "Microsoft Windows bitmap image (V2)", true, true},
	{"BMP3", "Microsoft Windows bitmap image (V3)", true, true},
	{"BRF", "BRF ASCII Braille format", false, true},
	{"C", "Raw cyan samples", true, true},
	{"CAL", "Continuous Acquisition and Life-cycle Support Type 1", true, true},
	{"CALS", "Continuous Acquisition and Life-cycle Support Type 1", true, true},
	{"CANVAS", "Constant image uniform color", true, false},
	{"CAPTION", "Caption", true, false},
	{"CIN", "Cineon Image File", true, true},
	{"CIP", "Cisco IP phone image format", false, true},
	{"CLIP", "Image Clip Mask", true, true},
	{"CMYK", "Raw cyan, magenta, yellow, and black samples", true, true},
	{"CMYKA", "Raw cyan, magenta, yellow, black, and alpha samples", true, true},
	{"CR2", "Canon Digital Camera Raw Format", true, false},
	{"CR3", "Canon Digital Camera Raw Format", true, false},
	{"CRW", "Canon Digital Camera Raw Format", true, false},
	{"CUBE", "Cube LUT", true, false},
	{"CUR", "Microsoft icon", true, true},
	{"CUT", "DR Halo", true, false},
	{"DATA", "Base64-encoded inline images", true, true},
	{"DCM", "Digital Imaging and Communications in Medicine image", true, false},
	{"DCR", "Kodak Digital Camera Raw Format", true, false},
	{"DCRAW", "Raw Photo Decoder (dcraw)", true, false},
	{"DCX", "ZSoft IBM PC multi-page Paintbrush", true, true},
	{"DDS", "Microsoft DirectDraw Surface", true, true},
	{"DFONT", "Multi-face font package", true, false},
	{"DNG", "Digital Negative Raw Format", true, false},
	{"DPX", "SMPTE 268M-2003 (DPX 2.0)", true, true},
	{"DXT1", "Microsoft DirectDraw Surface", true, true},
	{"DXT5", "Microsoft DirectDraw Surface", true, true},
	{"EPDF", "Encapsulated Portable Document Format", true, true},
	{"EPI", "Encapsulated PostScript Interchange format", true, true},
	{"EPS", "Encapsulated PostScript", true, true},
	{"EPS2", "Level II Encapsulated PostScript", false, true},
	{"EPS3", "Level III Encapsulated PostScript", false, true},
	{"EPSF", "Encapsulated PostScript", true, true},
	{"EPSI", "Encapsulated PostScript Interchange format", true, true},
	{"EPT", "Encapsulated PostScript with TIFF preview", true, true},
	{"EPT2", "Encapsulated PostScript Level II with TIFF preview", true, true},
	{"EPT3", "Encapsulated PostScript Level III with TIFF preview", true, true},
	{"ERF", "Epson Raw Format", true, false},
	{"EXR", "High Dynamic-range (HDR)", true, true},
	{"FARBFELD", "Farbfeld", true, true},
	{"FAX", "Group 3 FAX", true, true},
	{"FF", "Farbfeld", true, true},
	{"FFF", "Hasselblad CFV/H3D39II Raw Format", true, false},
	{"FILE", "Uniform Resource Locator (file://)", true, false},
	{"FITS", "Flexible Image Transport System", true, true},
	{"FL32", "FilmLight", true, true},
	{"FLV", "Flash Video Stream", true, true},
	{"FRACTAL", "Plasma fractal image", true, false},
	{"FTP", "Uniform Resource Locator (ftp://)", false, false},
	{"FTS", "Flexible Image Transport System", true, true},
	{"FTXT", "Formatted text image", true, true},
	{"G", "Raw green samples", true, true},
	{"G3", "Group 3 FAX", true, true},
	{"G4", "Group 4 FAX", true, true},
	{"GIF", "CompuServe graphics interchange format", true, true},
	{"GIF87", "CompuServe graphics interchange format", true, true},
	{"GRADIENT", "Gradual linear passing from one shade to another", true, false},
	{"GRAY", "Raw gray samples", true, true},
	{"GRAYA", "Raw gray and alpha samples", true, true},
	{"GROUP4", "Raw CCITT Group4", true, true},
	{"HALD", "Identity Hald color lookup table image", true, false},
	{"HDR", "Radiance RGBE image format", true, true},
	{"HEIC", "High Efficiency Image Format", true, false},
	{"HEIF", "High Efficiency Image Format", true, false},
	{"HISTOGRAM", "Histogram of the image", false, true},
	{"HRZ", "Slow Scan TeleVision", true, true},
	{"HTM", "Hypertext Markup Language and a client-side image map", false, true},
	{"HTML", "Hypertext Markup Language and a client-side image map", false, true},
	{"HTTP", "Uniform Resource Locator (http://)", false, false},
	{"HTTPS", "Uniform Resource Locator (https://)", true, false},
	{"ICB", "Truevision Targa image", true, true},
	{"ICO", "Microsoft icon", true, true},
	{"ICON", "Microsoft icon", true, true},
	{"IIQ", "Phase One Raw Format", true, false},
	{"INFO", "The image format and characteristics", false, true},
	{"INLINE", "Base64-encoded inline images", true, true},
	{"IPL", "IPL Image Sequence", true, true},
	{"ISOBRL", "ISO/TR 11548-1 format", false, true},
	{"ISOBRL6", "ISO/TR 11548-1 format 6dot", false, true},
	{"J2C", "JPEG-2000 Code Stream Syntax", true, true},
	{"J2K", "JPEG-2000 Code Stream Syntax", true, true},
	{"JNG", "JPEG Network Graphics", true, true},
	{"JNX", "Garmin tile format", true, false},
	{"JP2", "JPEG-2000 File Format Syntax", true, true},
	{"JPC", "JPEG-2000 Code Stream Syntax", true, true},
	{"JPE", "Joint Photographic Experts Group JFIF format", true, true},
	{"JPEG", "Joint Photographic Experts Group JFIF format", true, true},
	{"JPG", "Joint Photographic Experts Group JFIF format", true, true},
	{"JPM", "JPEG-2000 File Format Syntax", true, true},
	{"JPS", "Joint Photographic Experts Group JFIF format", true, true},
	{"JPT", "JPEG-2000 File Format Syntax", true, true},
	{"JSON", "The image format and characteristics", false, true},
	{"JXL", "JPEG XL (ISO/IEC 18181)", true, true},
	{"K", "Raw black samples", true, true},
	{"K25", "Kodak Digital Camera Raw Format", true, false},
	{"KDC", "Kodak Digital Camera Raw Format", true, false},
	{"LABEL", "Image label", true, false},
	{"M", "Raw magenta samples", true, true},
	{"M2V", "MPEG Video Stream", true, true},
	{"M4V", "Raw VIDEO-4 Video", true, true},
	{"MAC", "MAC Paint", true, false},
	{"MAP", "Colormap intensities and indices", true, true},
	{"MASK", "Image Clip Mask", true, true},
	{"MAT", "MATLAB level 5 image format", true, true},
	{"MATTE", "MATTE format", false, true},
	{"MDC", "Minolta Digital Camera Raw Format", true, false},
	{"MEF", "Mamiya Raw Format", true, false},
	{"MIFF", "Magick Image File Format", true, true},
	{"MKV", "Multimedia Container", true, true},
	{"MNG", "Multiple-image Network Graphics", true, true},
	{"MONO", "Raw bi-level bitmap", true, true},
	{"MOS", "Aptus Leaf Raw Format", true, false},
	{"MOV", "MPEG Video Stream", true, true},
	{"MP4", "VIDEO-4 Video Stream", true, true},
	{"MPC", "Magick Pixel Cache image format", true, true},
	{"MPEG", "MPEG Video Stream", true, true},
	{"MPG", "MPEG Video Stream", true, true},
	{"MPO", "Joint Photographic Experts Group JFIF format", true, false},
	{"MRW", "Sony (Minolta) Raw Format", true, false},
	{"MSL", "Magick Scripting Language", true, true},
	{"MSVG", "ImageMagick's own SVG internal renderer", true, true},
	{"MTV", "MTV Raytracing image format", true, true},
	{"MVG", "Magick Vector Graphics", true, true},
	{"NEF", "Nikon Digital SLR Camera Raw Format", true, false},
	{"NRW", "Nikon Digital SLR Camera Raw Format", true, false},
	{"NULL", "Constant image of uniform color", true, true},
	{"O", "Raw opacity samples", true, true},
	{"ORA", "OpenRaster format", false, false},
	{"ORF", "Olympus Digital Camera Raw Format", true, false},
	{"OTB", "On-the-air bitmap", true, true},
	{"OTF", "Open Type font", true, false},
	{"PAL", "16bit/pixel interleaved YUV", true, true},
	{"PALM", "Palm pixmap", true, true},
	{"PAM", "Common 2-dimensional bitmap format", true, true},
	{"PANGO", "Pango Markup Language", false, false},
	{"PATTERN", "Predefined pattern", true, false},
	{"PBM", "Portable bitmap format (black and white)", true, true},
	{"PCD", "Photo CD", true, true},
	{"PCDS", "Photo CD", true, true},
	{"PCL", "Printer Control Language", true, true},
	{"PCT", "Apple Macintosh QuickDraw/PICT", true, true},
	{"PCX", "ZSoft IBM PC Paintbrush", true, true},
	{"PDB", "Palm Database ImageViewer Format", true, true},
	{"PDF", "Portable Document Format", true, true},
	{"PDFA", "Portable Document Archive Format", true, true},
	{"PEF", "Pentax Electronic Raw Format", true, false},
	{"PES", "Embrid Embroidery Format", true, false},
	{"PFA", "Postscript Type 1 font (ASCII)", true, false},
	{"PFB", "Postscript Type 1 font (binary)", true, false},
	{"PFM", "Portable float format", true, true},
	{"PGM", "Portable graymap format (gray scale)", true, true},
	{"PGX", "JPEG 2000 uncompressed format", true, true},
	{"PHM", "Portable half float format", true, true},
	{"PICON", "Personal Icon", true, true},
	{"PICT", "Apple Macintosh QuickDraw/PICT", true, true},
	{"PIX", "Alias/Wavefront RLE image format", true, false},
	{"PJPEG", "Joint Photographic Experts Group JFIF format", true, true},
	{"PLASMA", "Plasma fractal image", true, false},
	{"PNG", "Portable Network Graphics", true, true},
	{"PNG00", "PNG inheriting bit-depth, color-type from original, if possible", true, true},
	{"PNG24", "opaque or binary transparent 24-bit RGB", true, true},
	{"PNG32", "opaque or transparent 32-bit RGBA", true, true},
	{"PNG48", "opaque or binary transparent 48-bit RGB", true, true},
	{"PNG64", "opaque or transparent 64-bit RGBA", true, true},
	{"PNG8", "8-bit indexed with optional binary transparency", true, true},
	{"PNM", "Portable anymap", true, true},
	{"POCKETMOD", "Pocketmod Personal Organizer", true, true},
	{"PPM", "Portable pixmap format (color)", true, true},
	{"PS", "PostScript", true, true},
	{"PS2", "Level II PostScript", false, true},
	{"PS3", "Level III PostScript", false, true},
	{"PSB", "Adobe Large Document Format", true, true},
	{"PSD", "Adobe Photoshop bitmap", true, true},
	{"PTIF", "Pyramid encoded TIFF", true, true},
	{"PWP", "Seattle Film Works", true, false},
	{"QOI", "Quite OK image format", true, true},
	{"R", "Raw red samples", true, true},
	{"RADIAL-GRADIENT", "Gradual radial passing from one shade to another", true, false},
	{"RAF", "Fuji CCD-RAW Graphic Raw Format", true, false},
	{"RAS", "SUN Rasterfile", true, true},
	{"RAW", "Raw", true, false},
	{"RGB", "Raw red, green, and blue samples", true, true},
	{"RGB565", "Raw red, green, blue samples in 565 format", true, false},
	{"RGBA", "Raw red, green, blue, and alpha samples", true, true},
	{"RGBO", "Raw red, green, blue, and opacity samples", true, true},
	{"RGF", "LEGO Mindstorms EV3 Robot Graphic Format (black and white)", true, true},
	{"RLA", "Alias/Wavefront image", true, false},
	{"RLE", "Utah Run length encoded image", true, false},
	{"RMF", "Raw Media Format", true, false},
	{"RW2", "Panasonic Lumix Raw Format", true, false},
	{"RWL", "Leica Raw Format", true, false},
	{"SCR", "ZX-Spectrum SCREEN$", true, false},
	{"SCREENSHOT", "Screen shot", true, false},
	{"SCT", "Scitex HandShake", true, false},
	{"SFW", "Seattle Film Works", true, false},
	{"SGI", "Irix RGB image", true, true},
	{"SHTML", "Hypertext Markup Language and a client-side image map", false, true},
	{"SIX", "DEC SIXEL Graphics Format", true, true},
	{"SIXEL", "DEC SIXEL Graphics Format", true, true},
	{"SPARSE-COLOR", "Sparse Color", false, true},
	{"SR2", "Sony Raw Format 2", true, false},
	{"SRF", "Sony Raw Format", true, false},
	{"SRW", "Samsung Raw Format", true, false},
	{"STEGANO", "Steganographic image", true, false},
	{"STI", "Sinar CaptureShop Raw Format", true, false},
	{"STRIMG", "String to image and back", true, true},
	{"SUN", "SUN Rasterfile", true, true},
	{"SVG", "Scalable Vector Graphics", true, true},
	{"SVGZ", "Compressed Scalable Vector Graphics", true, true},
	{"TEXT", "Text", true, false},
	{"TGA", "Truevision Targa image", true, true},
	{"THUMBNAIL", "EXIF Profile Thumbnail", false, true},
	{"TIFF", "Tagged Image File Format", true, true},
	{"TIFF64", "Tagged Image File Format (64-bit)", true, true},
	{"TILE", "Tile image with a texture", true, false},
	{"TIM", "PSX TIM", true, false},
	{"TM2", "PS2 TIM2", true, false},
	{"TTC", "TrueType font collection", true, false},
	{"TTF", "TrueType font", true, false},
	{"TXT", "Text", true, true},
	{"UBRL", "Unicode Text format", false, true},
	{"UBRL6", "Unicode Text format 6dot", false, true},
	{"UIL", "X-Motif UIL table", false, true},
	{"UYVY", "16bit/pixel interleaved YUV", true, true},
	{"VDA", "Truevision Targa image", true, true},
	{"VICAR", "Video Image Communication And Retrieval", true, true},
	{"VID", "Visual Image Directory", true, true},
	{"VIFF", "Khoros Visualization image", true, true},
	{"VIPS", "VIPS image", true, true},
	{"VST", "Truevision Targa image", true, true},
	{"WBMP", "Wireless Bitmap (level 0) image", true, true},
	{"WEBM", "Open Web Media", true, true},
	{"WEBP", "WebP Image Format", true, true},
	{"WMV", "Windows Media Video", true, true},
	{"WPG", "Word Perfect Graphics", true, true},
	{"X3F", "Sigma Camera RAW Format", true, false},
	{"XBM", "X Windows system bitmap (black and white)", true, true},
	{"XC", "Constant image uniform color", true, false},
	{"XCF", "GIMP image", true, false},
	{"XPM", "X Windows system pixmap (color)", true, true},
	{"XPS", "Microsoft XML Paper Specification", true, false},
	{"XV", "Khoros Visualization image", true, true},
	{"Y", "Raw yellow samples", true, true},
	{"YAML", "The image format and characteristics", false, true},
	{"YCBCR", "Raw Y, Cb, and Cr samples", true, true},
	{"YCBCRA", "Raw Y, Cb, Cr, and alpha samples", true, true},
	{"YUV", "CCIR 601 4:1:1 or 4:2:2", true, true},
}

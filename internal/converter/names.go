package converter

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// OutputFilename replaces the extension of name with the lowercased format.
// A name without an extension gets one appended.
func OutputFilename(name, format string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return stem + "." + strings.ToLower(strings.TrimSpace(format))
}

// FileExtension returns the lowercased extension of name without the dot.
func FileExtension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders n bytes in base-1024 units with at most two
// decimals: "0 Bytes", "1.5 KB", "2 MB".
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	v, i := float64(n), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

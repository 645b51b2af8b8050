package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgconv-cli/internal/formats"
)

// Source represents a discovered input file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scanned directory, or the base
	// name for a file given directly. Outputs mirror it.
	RelPath string
	// Format is the format implied by the extension (jpeg, png, ...).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// extensionFormat normalizes an extension to a registry name.
func extensionFormat(path string) string {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch format {
	case "jpg":
		format = "jpeg"
	case "tif":
		format = "tiff"
	}
	return format
}

// ScanInputs expands paths into sources. Directories are walked recursively,
// skipping hidden directories and keeping files whose extension names a
// readable image format. Files named directly are always kept; the engines
// decide whether they can be read.
func ScanInputs(paths []string) ([]Source, error) {
	var sources []Source
	seen := map[string]bool{}

	add := func(s Source) {
		if !seen[s.AbsPath] {
			seen[s.AbsPath] = true
			sources = append(sources, s)
		}
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(Source{
				AbsPath: abs,
				RelPath: filepath.Base(abs),
				Format:  extensionFormat(abs),
				Size:    info.Size(),
			})
			continue
		}

		found, err := scanDir(abs)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
		for _, s := range found {
			add(s)
		}
	}
	return sources, nil
}

func scanDir(root string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		format := extensionFormat(path)
		if format == "" || !formats.IsImageInput(format) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sources = append(sources, Source{
			AbsPath: path,
			RelPath: relPath,
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}

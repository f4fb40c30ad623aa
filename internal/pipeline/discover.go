package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Image file extensions accepted by default (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Extensions additionally accepted with --extended-formats. All have a
// registered decoder in imageio.
var extendedExtensions = map[string]bool{
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Discover walks inputDir, collects files with image extensions
// (case-insensitive), prunes hidden directories, and returns the paths
// sorted lexicographically for deterministic processing order.
func Discover(inputDir string, extended bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if imageExtensions[ext] || (extended && extendedExtensions[ext]) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

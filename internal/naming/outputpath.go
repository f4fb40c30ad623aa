// Package naming builds mask output paths and resolves basename collisions.
package naming

import (
	"path/filepath"
	"strings"
)

// OutputPath builds the mask path for an input file given its path relative
// to the input directory. The relative subtree is mirrored under outputDir,
// the extension is replaced with ".png", and suffix (if any) is inserted
// before it:
//
//	photos/cat.jpg, suffix ""      → <outputDir>/photos/cat.png
//	photos/cat.jpg, suffix "_mask" → <outputDir>/photos/cat_mask.png
func OutputPath(relPath, outputDir, suffix string) string {
	dir := filepath.Dir(relPath)
	base := filepath.Base(relPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, dir, stem+suffix+".png")
}

// Package imageio wraps image decoding and mask encoding. Decoding goes
// through disintegration/imaging with the golang.org/x/image codecs
// registered, so JPEG, PNG, BMP, TIFF, and WebP inputs all decode through
// the one call. Masks are always written as PNG with a fixed encoder
// configuration, keeping repeat runs byte-identical.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	// Register decoders beyond the stdlib's image/png and image/jpeg.
	// WebP is decode-only, which is all the input side needs.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maskEncoder is the single encoder used for all mask output. PNG is
// lossless and, at a fixed compression level, deterministic for a given
// mask, which the idempotence guarantee relies on.
var maskEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Load decodes the image at path. The caller owns the returned image; it is
// never cached.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// SaveMask writes m as a PNG at path, creating parent directories as needed.
// On encode failure the partial file is removed so a later run's
// skip-existing check cannot mistake it for a finished mask.
func SaveMask(path string, m *image.Gray) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create mask directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mask %q: %w", path, err)
	}
	if err := maskEncoder.Encode(f, m); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode mask %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("write mask %q: %w", path, err)
	}
	return nil
}

// EncodeSelfTest verifies the PNG encoder works by encoding a tiny mask to
// the bit bucket. Used by the pre-flight checks.
func EncodeSelfTest() error {
	m := image.NewGray(image.Rect(0, 0, 4, 4))
	return maskEncoder.Encode(io.Discard, m)
}

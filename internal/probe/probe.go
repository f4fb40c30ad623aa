// Package probe reads image headers without decoding pixel data. The
// pipeline probes each file before the full decode so per-file stats and
// unsupported-format skips stay cheap.
package probe

import (
	"fmt"
	"image"
	"os"

	// Codec registration lives in imageio; importing it here keeps
	// DecodeConfig aware of the same format set the decoder supports.
	_ "github.com/backmassage/maskmaster/internal/imageio"
)

// Info describes an image file's header: registered format name and pixel
// dimensions.
type Info struct {
	Format string // e.g. "png", "jpeg", "bmp", "tiff", "webp".
	Width  int
	Height int
}

// Pixels returns the total pixel count, for stats and coverage reporting.
func (i *Info) Pixels() int {
	return i.Width * i.Height
}

// Probe reads the header of the image at path. It fails for files the
// registered codecs cannot identify, which the pipeline treats the same as
// a decode failure.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("read image header %q: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image %q has invalid dimensions %dx%d", path, cfg.Width, cfg.Height)
	}
	return &Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

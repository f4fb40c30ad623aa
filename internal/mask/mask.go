// Package mask implements the per-pixel threshold test: a source image is
// reduced to a single-channel mask whose samples are 255 where red, green,
// and blue all strictly exceed the threshold, and 0 elsewhere.
package mask

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Threshold is the channel cutoff for the qualifying test. A pixel qualifies
// when every channel is strictly greater than the threshold; equality does
// not qualify.
type Threshold uint8

// DefaultThreshold matches the original script's fixed constant.
const DefaultThreshold Threshold = 200

// Result holds the mask derived from one image plus the qualifying-pixel
// aggregates the coordinator folds into batch totals.
type Result struct {
	Mask  *image.Gray
	Count int // Number of qualifying pixels.

	// Channel sums over qualifying pixels only, for MeanColor.
	sumR, sumG, sumB uint64
}

// Compute derives the mask for img. The mask shares img's bounds; its sample
// is 255 iff the corresponding source pixel's R, G and B are all strictly
// greater than t. Alpha is ignored: channels are compared un-premultiplied,
// so a fully transparent white pixel still qualifies.
//
// Fast paths cover the pixel formats the standard decoders actually produce
// (NRGBA and RGBA from PNG, YCbCr from JPEG); everything else goes through
// the color-model fallback with identical semantics.
func Compute(img image.Image, t Threshold) Result {
	switch src := img.(type) {
	case *image.NRGBA:
		return computeNRGBA(src, t)
	case *image.RGBA:
		return computeRGBA(src, t)
	case *image.YCbCr:
		return computeYCbCr(src, t)
	default:
		return computeGeneric(img, t)
	}
}

// Coverage returns the fraction of the image's pixels that qualified, in
// [0, 1]. Zero-area images report 0.
func (r Result) Coverage() float64 {
	b := r.Mask.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	return float64(r.Count) / float64(total)
}

// MeanColor returns the average color of the qualifying pixels, for display
// as hex or HSL. ok is false when no pixel qualified.
func (r Result) MeanColor() (c colorful.Color, ok bool) {
	if r.Count == 0 {
		return colorful.Color{}, false
	}
	n := float64(r.Count) * 255.0
	return colorful.Color{
		R: float64(r.sumR) / n,
		G: float64(r.sumG) / n,
		B: float64(r.sumB) / n,
	}, true
}

func (r *Result) hit(cr, cg, cb uint8) {
	r.Count++
	r.sumR += uint64(cr)
	r.sumG += uint64(cg)
	r.sumB += uint64(cb)
}

func computeNRGBA(src *image.NRGBA, t Threshold) Result {
	b := src.Bounds()
	res := Result{Mask: image.NewGray(b)}
	th := uint8(t)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		mi := res.Mask.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, si, mi = x+1, si+4, mi+1 {
			cr, cg, cb := src.Pix[si], src.Pix[si+1], src.Pix[si+2]
			if cr > th && cg > th && cb > th {
				res.Mask.Pix[mi] = 255
				res.hit(cr, cg, cb)
			}
		}
	}
	return res
}

func computeRGBA(src *image.RGBA, t Threshold) Result {
	b := src.Bounds()
	res := Result{Mask: image.NewGray(b)}
	th := uint8(t)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		mi := res.Mask.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, si, mi = x+1, si+4, mi+1 {
			cr, cg, cb, ca := src.Pix[si], src.Pix[si+1], src.Pix[si+2], src.Pix[si+3]
			if ca != 0xff {
				// Stored premultiplied; recover straight alpha via the
				// color model so semantics match the NRGBA path.
				n := color.NRGBAModel.Convert(src.RGBAAt(x, y)).(color.NRGBA)
				cr, cg, cb = n.R, n.G, n.B
			}
			if cr > th && cg > th && cb > th {
				res.Mask.Pix[mi] = 255
				res.hit(cr, cg, cb)
			}
		}
	}
	return res
}

func computeYCbCr(src *image.YCbCr, t Threshold) Result {
	b := src.Bounds()
	res := Result{Mask: image.NewGray(b)}
	th := uint8(t)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		mi := res.Mask.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, mi = x+1, mi+1 {
			c := src.YCbCrAt(x, y)
			cr, cg, cb := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
			if cr > th && cg > th && cb > th {
				res.Mask.Pix[mi] = 255
				res.hit(cr, cg, cb)
			}
		}
	}
	return res
}

func computeGeneric(img image.Image, t Threshold) Result {
	b := img.Bounds()
	res := Result{Mask: image.NewGray(b)}
	th := uint8(t)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		mi := res.Mask.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, mi = x+1, mi+1 {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if n.R > th && n.G > th && n.B > th {
				res.Mask.Pix[mi] = 255
				res.hit(n.R, n.G, n.B)
			}
		}
	}
	return res
}

package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// NormalizeFrame returns a colour copy of img resized to exactly width×height
// with its origin at (0,0).
//
// Frames already at the target size are copied without resampling; others
// are resized with bilinear interpolation, ignoring aspect ratio, which is how
// acquired frames are fitted to the working geometry.
func NormalizeFrame(img image.Image, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, width, height, imaging.Linear)
}

// Grayscale converts img to a single-channel luminance image using
// ITU-R BT.601 weights (0.299 R + 0.587 G + 0.114 B).
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return cloneGray(g)
	}

	lum := imaging.Grayscale(img)
	w, h := lum.Bounds().Dx(), lum.Bounds().Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := lum.Pix[y*lum.Stride : y*lum.Stride+w*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := 0; x < w; x++ {
			dst[x] = src[x*4]
		}
	}
	return gray
}

// ToNRGBA returns img as a colour image with origin (0,0). Single-channel
// images are expanded to three equal channels.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Fill returns a width×height colour frame of a single colour.
func Fill(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

func cloneGray(g *image.Gray) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

package imaging

import "image"

// Dilate grows foreground with a size×size all-ones structuring element,
// applied iterations times. Each output pixel is the maximum over the square
// window centred on it; pixels outside the image do not take part.
func Dilate(bin *image.Gray, size, iterations int) *image.Gray {
	return morph(bin, size, iterations, maxByte)
}

// Erode shrinks foreground with a size×size all-ones structuring element,
// applied iterations times. Each output pixel is the minimum over the square
// window centred on it; pixels outside the image do not take part.
func Erode(bin *image.Gray, size, iterations int) *image.Gray {
	return morph(bin, size, iterations, minByte)
}

// Close is dilation followed by erosion with the same structuring element.
// The preprocessor uses it with more dilation than erosion passes, which
// bridges gaps in edges and leaves them slightly thickened.
func Close(bin *image.Gray, size, dilations, erosions int) *image.Gray {
	return Erode(Dilate(bin, size, dilations), size, erosions)
}

func morph(bin *image.Gray, size, iterations int, pick func(a, b uint8) uint8) *image.Gray {
	cur := cloneGray(bin)
	if size <= 1 {
		return cur
	}
	for i := 0; i < iterations; i++ {
		// A square element is separable: run the window along rows, then
		// along columns.
		cur = windowPass(cur, size, true, pick)
		cur = windowPass(cur, size, false, pick)
	}
	return cur
}

func windowPass(src *image.Gray, size int, horizontal bool, pick func(a, b uint8) uint8) *image.Gray {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	before := (size - 1) / 2
	after := size - 1 - before

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var lo, hi, fixed int
			if horizontal {
				lo, hi, fixed = x-before, x+after, y
				lo, hi = clamp(lo, 0, w-1), clamp(hi, 0, w-1)
			} else {
				lo, hi, fixed = y-before, y+after, x
				lo, hi = clamp(lo, 0, h-1), clamp(hi, 0, h-1)
			}

			var v uint8
			for k := lo; k <= hi; k++ {
				var p uint8
				if horizontal {
					p = src.Pix[fixed*src.Stride+k]
				} else {
					p = src.Pix[k*src.Stride+fixed]
				}
				if k == lo {
					v = p
				} else {
					v = pick(v, p)
				}
			}
			dst.Pix[y*dst.Stride+x] = v
		}
	}
	return dst
}

func maxByte(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func minByte(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

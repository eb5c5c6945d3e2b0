package imaging

import (
	"image"
	"math"
)

// Canny performs Canny edge detection on a single-channel image.
//
// The input is expected to be smoothed already; Canny does not blur. The
// result is a binary image where white pixels (255) are edges and black
// pixels (0) are not.
//
// Parameters:
//   - gray: Source luminance image.
//   - low: Hysteresis low threshold on the 0-255 gradient scale. Pixels with
//     magnitude above it are edge candidates.
//   - high: Hysteresis high threshold. Pixels with magnitude above it are
//     strong edges and seed the hysteresis walk.
//
// Setting low == high disables the weak-edge band: a pixel is an edge exactly
// when its suppressed magnitude exceeds the threshold.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators for X and Y, border pixels
//     replicated. Magnitude is the L1 norm |Gx| + |Gy|.
//
//  2. Non-maximum suppression: Keep a pixel only if its magnitude is a local
//     maximum along the gradient direction, quantised to 0°, 45°, 90° or
//     135°. Ties favour the earlier neighbour so plateaus yield one-pixel
//     edges.
//
//  3. Hysteresis thresholding: Every strong pixel is an edge; candidate
//     pixels become edges when 8-connected to an edge through other
//     candidates.
func Canny(gray *image.Gray, low, high float64) *image.Gray {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))
	if width < 3 || height < 3 {
		return out
	}

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)])
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	gradX := make([]float64, width*height)
	gradY := make([]float64, width*height)
	magnitude := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			i := y*width + x
			gradX[i] = gx
			gradY[i] = gy
			magnitude[i] = math.Abs(gx) + math.Abs(gy)
		}
	}

	// Non-maximum suppression. Sector boundaries sit at 22.5° and 67.5°.
	const tan22 = 0.4142135623730951
	const tan67 = 2.414213562373095

	// 0 = not an edge, 1 = candidate, 2 = edge
	state := make([]uint8, width*height)
	var stack []int

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if mag <= low {
				continue
			}

			ax, ay := math.Abs(gradX[i]), math.Abs(gradY[i])
			var before, after float64
			switch {
			case ay <= ax*tan22:
				// Horizontal gradient: compare left and right.
				before, after = magnitude[i-1], magnitude[i+1]
			case ay > ax*tan67:
				// Vertical gradient: compare above and below.
				before, after = magnitude[i-width], magnitude[i+width]
			case (gradX[i] > 0) == (gradY[i] > 0):
				before, after = magnitude[i-width-1], magnitude[i+width+1]
			default:
				before, after = magnitude[i-width+1], magnitude[i+width-1]
			}

			if !(mag > before && mag >= after) {
				continue
			}

			if mag > high {
				state[i] = 2
				stack = append(stack, i)
			} else {
				state[i] = 1
			}
		}
	}

	// Edge tracking by hysteresis.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out.Pix[(i/width)*out.Stride+i%width] = 255

		x, y := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if state[j] == 1 {
					state[j] = 2
					stack = append(stack, j)
				}
			}
		}
	}

	return out
}

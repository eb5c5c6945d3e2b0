package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
)

// GaussianKernel returns a normalised size×size Gaussian kernel.
//
// The 1-D weights are exp(-(i-c)²/(2σ²)) for i in [0,size), c = (size-1)/2,
// normalised to sum to 1; the 2-D kernel is their outer product. For size 5
// and sigma 1 the centre weight is about 0.162.
func GaussianKernel(size int, sigma float64) *convolution.Kernel {
	weights := make([]float64, size)
	c := float64(size-1) / 2
	var sum float64
	for i := range weights {
		d := float64(i) - c
		weights[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}

	k := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			k.Matrix[y*k.Width+x] = weights[y] * weights[x]
		}
	}
	return k
}

// GaussianBlur smooths a single-channel image with a size×size Gaussian
// kernel of the given sigma. Border pixels are replicated.
func GaussianBlur(gray *image.Gray, size int, sigma float64) *image.Gray {
	k := GaussianKernel(size, sigma)
	rgba := convolution.Convolve(gray, k, &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true})

	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = row[x*4]
		}
	}
	return out
}

package pipeline

import (
	"image"

	"github.com/ironsheep/docscan/internal/config"
	"github.com/ironsheep/docscan/internal/imaging"
)

// Preprocess turns a colour frame into a binary edge map of the same size.
// The steps run in a fixed order with no branching: grayscale, Gaussian
// blur, Canny edge detection, dilation, erosion.
func Preprocess(frame image.Image, p config.Params) *image.Gray {
	gray := imaging.Grayscale(frame)
	blurred := imaging.GaussianBlur(gray, p.BlurSize, p.BlurSigma)
	edges := imaging.Canny(blurred, p.CannyLow, p.CannyHigh)
	return imaging.Close(edges, p.MorphSize, p.DilateIterations, p.ErodeIterations)
}

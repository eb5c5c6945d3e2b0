package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropMargin removes margin pixels from every side of img.
func CropMargin(img image.Image, margin int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if margin < 0 {
		return nil, fmt.Errorf("invalid crop margin %d", margin)
	}
	if 2*margin >= bounds.Dx() || 2*margin >= bounds.Dy() {
		return nil, fmt.Errorf("crop margin %d leaves no pixels in %dx%d image",
			margin, bounds.Dx(), bounds.Dy())
	}

	r := image.Rect(bounds.Min.X+margin, bounds.Min.Y+margin, bounds.Max.X-margin, bounds.Max.Y-margin)
	return imaging.Crop(img, r), nil
}

// Resize scales img to exactly width×height with bilinear interpolation.
func Resize(img image.Image, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resize target %dx%d", width, height)
	}
	return imaging.Resize(img, width, height, imaging.Linear), nil
}

// CropAndResize removes margin pixels from each side and scales the result
// back to width×height, so the output size does not depend on the margin.
func CropAndResize(img image.Image, margin, width, height int) (*image.NRGBA, error) {
	cropped, err := CropMargin(img, margin)
	if err != nil {
		return nil, err
	}
	return Resize(cropped, width, height)
}

package rectify

import (
	"image"
	"math"

	"github.com/ironsheep/docscan/internal/imaging"
)

// WarpPerspective resamples src through the forward transform m into a new
// width×height image.
//
// Every destination pixel is mapped back through the inverse of m and
// sampled bilinearly. Source positions outside src read as opaque black, so
// regions the quad does not cover come out black.
func WarpPerspective(src image.Image, m Matrix, width, height int) (*image.NRGBA, error) {
	inv, err := m.Inverse()
	if err != nil {
		return nil, err
	}

	in := imaging.ToNRGBA(src)
	sw, sh := in.Bounds().Dx(), in.Bounds().Dy()
	out := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+width*4]
		for x := 0; x < width; x++ {
			row[x*4+3] = 255

			u, v, ok := inv.Apply(float64(x), float64(y))
			if !ok || u <= -1 || v <= -1 || u >= float64(sw) || v >= float64(sh) {
				continue
			}

			x0, y0 := int(math.Floor(u)), int(math.Floor(v))
			fx, fy := u-float64(x0), v-float64(y0)

			for ch := 0; ch < 3; ch++ {
				top := (1-fx)*sample(in, x0, y0, ch) + fx*sample(in, x0+1, y0, ch)
				bottom := (1-fx)*sample(in, x0, y0+1, ch) + fx*sample(in, x0+1, y0+1, ch)
				row[x*4+ch] = uint8(math.Round(math.Min(255, (1-fy)*top+fy*bottom)))
			}
		}
	}

	return out, nil
}

// sample reads one channel of img, returning 0 outside its bounds.
func sample(img *image.NRGBA, x, y, ch int) float64 {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return 0
	}
	return float64(img.Pix[y*img.Stride+x*4+ch])
}

package rectify

import (
	"fmt"
	"image"

	"github.com/ironsheep/docscan/internal/detection"
	"github.com/ironsheep/docscan/internal/imaging"
)

// Default output geometry.
const (
	DefaultWidth  = 480
	DefaultHeight = 640
	DefaultMargin = 20
)

// Rectifier produces Width×Height top-down views of ordered quads.
type Rectifier struct {
	Width  int
	Height int

	// Margin is cropped from every side of the warped image before it is
	// scaled back to Width×Height.
	Margin int
}

// NewRectifier returns a Rectifier with the given output size and crop
// margin.
func NewRectifier(width, height, margin int) *Rectifier {
	return &Rectifier{Width: width, Height: height, Margin: margin}
}

// Destination returns the target corners in top-left, top-right,
// bottom-left, bottom-right order.
func (r *Rectifier) Destination() []image.Point {
	return []image.Point{
		{0, 0},
		{r.Width, 0},
		{0, r.Height},
		{r.Width, r.Height},
	}
}

// Transform returns the homography taking q onto the destination rectangle.
func (r *Rectifier) Transform(q detection.OrderedQuad) (Matrix, error) {
	corners := q.Points()
	if err := CheckNonDegenerate(corners); err != nil {
		return Matrix{}, err
	}
	return Homography(corners, r.Destination())
}

// Rectify warps the region of frame enclosed by q into a Width×Height image,
// crops Margin pixels from every side and resizes back to Width×Height.
// Degenerate quads return an error wrapping ErrDegenerateQuad.
func (r *Rectifier) Rectify(frame image.Image, q detection.OrderedQuad) (*image.NRGBA, error) {
	h, err := r.Transform(q)
	if err != nil {
		return nil, err
	}

	warped, err := WarpPerspective(frame, h, r.Width, r.Height)
	if err != nil {
		return nil, err
	}

	out, err := imaging.CropAndResize(warped, r.Margin, r.Width, r.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to crop rectified frame: %w", err)
	}
	return out, nil
}

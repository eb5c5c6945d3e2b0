package imaging

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a hex colour string like "#00FF00" into an opaque RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// DrawPoints marks each point on dst with a filled disc of the given
// thickness (diameter). Pixels outside dst are skipped.
//
// This is the diagnostic overlay: it draws the vertices of the selected
// quadrilateral, not its edges.
func DrawPoints(dst *image.NRGBA, pts []image.Point, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	bounds := dst.Bounds()
	r := thickness / 2
	r2 := r * r

	for _, p := range pts {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r2 {
					continue
				}
				px, py := p.X+dx, p.Y+dy
				if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
					continue
				}
				dst.SetNRGBA(px, py, nc)
			}
		}
	}
}

package detection

import (
	"fmt"
	"image"
)

// OrderedQuad holds four corners tagged by their role.
type OrderedQuad struct {
	TopLeft     image.Point `json:"top_left"`
	TopRight    image.Point `json:"top_right"`
	BottomLeft  image.Point `json:"bottom_left"`
	BottomRight image.Point `json:"bottom_right"`
}

// Points returns the corners as top-left, top-right, bottom-left,
// bottom-right.
func (q OrderedQuad) Points() []image.Point {
	return []image.Point{q.TopLeft, q.TopRight, q.BottomLeft, q.BottomRight}
}

// OrderCorners assigns roles to exactly four points:
//   - top-left is the point with the smallest x + y
//   - bottom-right is the point with the largest x + y
//   - top-right is the point with the smallest y - x
//   - bottom-left is the point with the largest y - x
//
// When several points share an extremum the first one in pts wins.
//
// The result only depends on the coordinates, so ordering an ordered quad
// again returns it unchanged. Quads rotated past roughly 45° can have two
// roles fall on the same point; that is a limitation of the heuristic and
// not reported as an error.
func OrderCorners(pts []image.Point) (OrderedQuad, error) {
	if len(pts) != 4 {
		return OrderedQuad{}, fmt.Errorf("need exactly 4 corners, got %d", len(pts))
	}

	tl, br, tr, bl := 0, 0, 0, 0
	for i, p := range pts {
		sum, diff := p.X+p.Y, p.Y-p.X
		if sum < pts[tl].X+pts[tl].Y {
			tl = i
		}
		if sum > pts[br].X+pts[br].Y {
			br = i
		}
		if diff < pts[tr].Y-pts[tr].X {
			tr = i
		}
		if diff > pts[bl].Y-pts[bl].X {
			bl = i
		}
	}

	return OrderedQuad{
		TopLeft:     pts[tl],
		TopRight:    pts[tr],
		BottomLeft:  pts[bl],
		BottomRight: pts[br],
	}, nil
}

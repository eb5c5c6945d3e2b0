package detection

import (
	"image"
)

// Default extraction parameters.
const (
	DefaultMinArea         = 5000.0
	DefaultEpsilonFraction = 0.02
)

// Candidate is the quadrilateral chosen from a binary frame.
type Candidate struct {
	// Points are the four simplified vertices in contour order.
	Points []image.Point `json:"points"`

	// Area is the area enclosed by the full contour the vertices came
	// from, in square pixels.
	Area float64 `json:"area"`

	// Contour is the full traced boundary behind Points.
	Contour Contour `json:"-"`
}

// Extractor selects the best document candidate from a binary edge map.
//
// A contour qualifies when its enclosed area is strictly greater than
// MinArea and its Douglas-Peucker approximation, with a tolerance of
// EpsilonFraction times its perimeter, has exactly four vertices. The
// qualifying contour with the largest area wins; equal areas keep the one
// found first.
type Extractor struct {
	MinArea         float64
	EpsilonFraction float64

	// Overlay, when set, is called with the vertices of the selected
	// candidate. It never influences the result.
	Overlay func(pts []image.Point)
}

// NewExtractor returns an Extractor with the default thresholds.
func NewExtractor() *Extractor {
	return &Extractor{
		MinArea:         DefaultMinArea,
		EpsilonFraction: DefaultEpsilonFraction,
	}
}

// FindQuad returns the best four-vertex candidate in bin, or nil when no
// contour qualifies.
func (e *Extractor) FindQuad(bin *image.Gray) *Candidate {
	var best *Candidate
	maxArea := 0.0

	for _, c := range FindExternalContours(bin) {
		area := ContourArea(c)
		if area <= e.MinArea {
			continue
		}

		approx := ApproxPolyDP(c, e.EpsilonFraction*ArcLength(c, true), true)
		if len(approx) != 4 || area <= maxArea {
			continue
		}

		maxArea = area
		best = &Candidate{
			Points:  approx,
			Area:    area,
			Contour: c,
		}
	}

	if best != nil && e.Overlay != nil {
		e.Overlay(best.Points)
	}
	return best
}

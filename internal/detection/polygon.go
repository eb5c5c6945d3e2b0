package detection

import (
	"image"
	"math"
)

// ContourArea returns the area enclosed by the closed polygon c using the
// shoelace formula. The result is always non-negative; fewer than three
// points enclose nothing.
func ContourArea(c []image.Point) float64 {
	if len(c) < 3 {
		return 0
	}
	var sum int
	prev := c[len(c)-1]
	for _, p := range c {
		sum += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return math.Abs(float64(sum)) / 2
}

// ArcLength returns the length of the polyline c. When closed is true the
// segment from the last point back to the first is included.
func ArcLength(c []image.Point, closed bool) float64 {
	if len(c) < 2 {
		return 0
	}
	var length float64
	for i := 1; i < len(c); i++ {
		length += distance(c[i-1], c[i])
	}
	if closed {
		length += distance(c[len(c)-1], c[0])
	}
	return length
}

// ApproxPolyDP simplifies c with the Douglas-Peucker algorithm so that no
// dropped point lies further than epsilon from the resulting polygon.
//
// For closed contours the loop is split at two mutually distant points and
// both halves are simplified separately. Vertices left nearly collinear with
// their neighbours are then removed, which keeps a split point landing
// mid-edge from surviving as a spurious vertex. The result keeps the
// contour's winding direction.
func ApproxPolyDP(c []image.Point, epsilon float64, closed bool) Contour {
	n := len(c)
	if n == 0 {
		return nil
	}
	if n <= 2 || epsilon < 0 {
		return append(Contour(nil), c...)
	}

	if !closed {
		keep := make([]bool, n)
		keep[0], keep[n-1] = true, true
		douglasPeucker(c, 0, n-1, epsilon, keep)
		return collect(c, keep)
	}

	a := farthestFrom(c, c[0])
	b := farthestFrom(c, c[a])
	if distance(c[a], c[b]) <= epsilon {
		return Contour{c[a]}
	}

	// Walk the loop as a line starting at a so both halves are contiguous.
	loop := make([]image.Point, n)
	for i := range loop {
		loop[i] = c[(a+i)%n]
	}
	split := (b - a + n) % n

	keep := make([]bool, n)
	keep[0], keep[split] = true, true
	douglasPeucker(loop, 0, split, epsilon, keep)
	douglasPeuckerWrap(loop, split, epsilon, keep)

	return dropCollinear(collect(loop, keep), epsilon)
}

// douglasPeuckerWrap simplifies the half of the loop running from split back
// to the start.
func douglasPeuckerWrap(loop []image.Point, split int, epsilon float64, keep []bool) {
	n := len(loop)
	tail := make([]image.Point, 0, n-split+1)
	tail = append(tail, loop[split:]...)
	tail = append(tail, loop[0])

	tailKeep := make([]bool, len(tail))
	douglasPeucker(tail, 0, len(tail)-1, epsilon, tailKeep)
	for i := 1; i < len(tail)-1; i++ {
		if tailKeep[i] {
			keep[split+i] = true
		}
	}
}

// douglasPeucker marks the points of pts[first:last+1] that must be kept to
// stay within epsilon of the simplified line. It uses an explicit stack so
// long contours cannot overflow the goroutine stack.
func douglasPeucker(pts []image.Point, first, last int, epsilon float64, keep []bool) {
	type span struct{ lo, hi int }
	stack := []span{{first, last}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}

		maxDist, idx := -1.0, -1
		for i := s.lo + 1; i < s.hi; i++ {
			if d := lineDistance(pts[i], pts[s.lo], pts[s.hi]); d > maxDist {
				maxDist, idx = d, i
			}
		}

		if maxDist > epsilon {
			keep[idx] = true
			stack = append(stack, span{s.lo, idx}, span{idx, s.hi})
		}
	}
}

// dropCollinear removes vertices closer than epsilon to the line through
// their neighbours, repeating until none is left.
func dropCollinear(poly Contour, epsilon float64) Contour {
	for len(poly) > 3 {
		removed := false
		for i := 0; i < len(poly); i++ {
			prev := poly[(i+len(poly)-1)%len(poly)]
			next := poly[(i+1)%len(poly)]
			if lineDistance(poly[i], prev, next) <= epsilon && between(poly[i], prev, next) {
				poly = append(poly[:i], poly[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return poly
}

func collect(pts []image.Point, keep []bool) Contour {
	out := make(Contour, 0, 8)
	for i, p := range pts {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func farthestFrom(pts []image.Point, origin image.Point) int {
	best, bestDist := 0, -1
	for i, p := range pts {
		d := p.Sub(origin)
		if dist := d.X*d.X + d.Y*d.Y; dist > bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// lineDistance returns the distance from p to the infinite line through a
// and b, or to a itself when a and b coincide.
func lineDistance(p, a, b image.Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return distance(p, a)
	}
	return math.Abs(dx*float64(p.Y-a.Y)-dy*float64(p.X-a.X)) / norm
}

// between reports whether p projects onto the segment ab.
func between(p, a, b image.Point) bool {
	ab, ap := b.Sub(a), p.Sub(a)
	dot := ab.X*ap.X + ab.Y*ap.Y
	return dot >= 0 && dot <= ab.X*ab.X+ab.Y*ab.Y
}

func distance(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

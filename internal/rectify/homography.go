package rectify

import (
	"errors"
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateQuad is returned when four corners cannot define a
// perspective transform: points coincide, three are collinear, or the
// outline is not convex.
var ErrDegenerateQuad = errors.New("degenerate quad")

// collinearTolerance bounds twice a corner triangle's area relative to the
// squared length of its longest side. Below it the corners count as
// collinear.
const collinearTolerance = 1e-3

// Matrix is a 3×3 projective transform in row-major order, normalised so
// the bottom-right element is 1.
type Matrix [3][3]float64

// Identity is the transform that maps every point onto itself.
var Identity = Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Apply maps (x, y) through m. ok is false when the point maps to infinity.
func (m Matrix) Apply(x, y float64) (float64, float64, bool) {
	w := m[2][0]*x + m[2][1]*y + m[2][2]
	if w == 0 {
		return 0, 0, false
	}
	return (m[0][0]*x + m[0][1]*y + m[0][2]) / w,
		(m[1][0]*x + m[1][1]*y + m[1][2]) / w, true
}

// Inverse returns the transform undoing m.
func (m Matrix) Inverse() (Matrix, error) {
	d := mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})

	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return Matrix{}, fmt.Errorf("%w: transform is not invertible: %v", ErrDegenerateQuad, err)
	}

	var out Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = inv.At(r, c)
		}
	}
	return out.normalised()
}

func (m Matrix) normalised() (Matrix, error) {
	s := m[2][2]
	if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return Matrix{}, fmt.Errorf("%w: transform cannot be normalised", ErrDegenerateQuad)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r][c] /= s
		}
	}
	return m, nil
}

// Homography solves the transform that maps each src point onto the dst
// point with the same index. Both slices must hold exactly four points.
//
// The eight unknowns h00..h21 (h22 fixed to 1) satisfy, for every pair:
//
//	x' = (h00 x + h01 y + h02) / (h20 x + h21 y + 1)
//	y' = (h10 x + h11 y + h12) / (h20 x + h21 y + 1)
//
// which is linear after multiplying out the denominator.
func Homography(src, dst []image.Point) (Matrix, error) {
	if len(src) != 4 || len(dst) != 4 {
		return Matrix{}, fmt.Errorf("need exactly 4 point pairs, got %d and %d", len(src), len(dst))
	}

	A := mat.NewDense(8, 8, nil)
	B := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := float64(src[i].X), float64(src[i].Y)
		xp, yp := float64(dst[i].X), float64(dst[i].Y)

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -x*xp)
		A.Set(i*2, 7, -y*xp)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -x*yp)
		A.Set(i*2+1, 7, -y*yp)
		B.SetVec(i*2+1, yp)
	}

	var h mat.VecDense
	if err := h.SolveVec(A, B); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrDegenerateQuad, err)
	}

	return Matrix{
		{h.AtVec(0), h.AtVec(1), h.AtVec(2)},
		{h.AtVec(3), h.AtVec(4), h.AtVec(5)},
		{h.AtVec(6), h.AtVec(7), 1},
	}, nil
}

// CheckNonDegenerate verifies that the corners, taken in the order
// top-left, top-right, bottom-left, bottom-right, describe a usable quad.
// No three corners may be collinear and the outline
// top-left → top-right → bottom-right → bottom-left must be convex.
func CheckNonDegenerate(corners []image.Point) error {
	if len(corners) != 4 {
		return fmt.Errorf("%w: need 4 corners, got %d", ErrDegenerateQuad, len(corners))
	}

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if corners[i] == corners[j] {
				return fmt.Errorf("%w: corners %v coincide", ErrDegenerateQuad, corners[i])
			}
		}
	}

	// Walk the outline in perimeter order.
	ring := [4]image.Point{corners[0], corners[1], corners[3], corners[2]}
	sign := 0
	for i := 0; i < 4; i++ {
		a, b, c := ring[i], ring[(i+1)%4], ring[(i+2)%4]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)

		longest := max(sqDist(a, b), sqDist(b, c), sqDist(a, c))
		if math.Abs(float64(cross)) <= collinearTolerance*float64(longest) {
			return fmt.Errorf("%w: corners %v, %v, %v are collinear", ErrDegenerateQuad, a, b, c)
		}

		s := 1
		if cross < 0 {
			s = -1
		}
		if sign != 0 && s != sign {
			return fmt.Errorf("%w: outline is not convex", ErrDegenerateQuad)
		}
		sign = s
	}
	return nil
}

func sqDist(a, b image.Point) int {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

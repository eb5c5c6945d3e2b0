package imaging

import (
	"fmt"
	"image"
	"math"
)

// DiffResult summarises the per-pixel difference between two images
type DiffResult struct {
	MeanAbsDiff     float64 `json:"mean_abs_diff"`
	MaxAbsDiff      int     `json:"max_abs_diff"`
	PixelsDifferent int     `json:"pixels_different"`
	TotalPixels     int     `json:"total_pixels"`
}

// Compare measures how far two same-sized images are apart. A pixel's
// difference is the mean absolute difference of its R, G and B channels;
// pixels differing by more than tolerance are counted as different.
func Compare(a, b image.Image, tolerance float64) (*DiffResult, error) {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return nil, fmt.Errorf("size mismatch: %dx%d vs %dx%d", ba.Dx(), ba.Dy(), bb.Dx(), bb.Dy())
	}

	total := ba.Dx() * ba.Dy()
	if total == 0 {
		return &DiffResult{}, nil
	}

	var sum float64
	maxDiff := 0
	different := 0

	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			r1, g1, b1, _ := a.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			r2, g2, b2, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()

			dr := absDiff(uint8(r1>>8), uint8(r2>>8))
			dg := absDiff(uint8(g1>>8), uint8(g2>>8))
			db := absDiff(uint8(b1>>8), uint8(b2>>8))
			diff := float64(dr+dg+db) / 3.0

			sum += diff
			if m := max(dr, dg, db); m > maxDiff {
				maxDiff = m
			}
			if diff > tolerance {
				different++
			}
		}
	}

	return &DiffResult{
		MeanAbsDiff:     math.Round(sum/float64(total)*100) / 100,
		MaxAbsDiff:      maxDiff,
		PixelsDifferent: different,
		TotalPixels:     total,
	}, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

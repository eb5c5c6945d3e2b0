package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestGaussianKernel(t *testing.T) {
	k := GaussianKernel(5, 1)

	var sum float64
	for _, v := range k.Matrix {
		sum += v
	}
	if absFloat(sum-1) > 1e-9 {
		t.Errorf("kernel sum: got %v, want 1", sum)
	}

	if k.Width != 5 || k.Height != 5 || len(k.Matrix) != 25 {
		t.Fatalf("kernel shape: got %dx%d with %d weights, want 5x5", k.Width, k.Height, len(k.Matrix))
	}

	// Row-major outer product of the 1-D weights
	w := []float64{0.05449, 0.24420, 0.40262, 0.24420, 0.05449}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := k.Matrix[y*5+x]; absFloat(got-w[y]*w[x]) > 1e-4 {
				t.Errorf("weight (%d,%d): got %.5f, want %.5f", x, y, got, w[y]*w[x])
			}
		}
	}

	centre := k.At(2, 2)
	if absFloat(centre-0.1621) > 0.001 {
		t.Errorf("centre weight: got %.4f, want ~0.1621", centre)
	}

	// Symmetric and peaked at the centre
	if k.At(0, 0) != k.At(4, 4) || k.At(0, 2) != k.At(2, 0) {
		t.Error("kernel should be symmetric")
	}
	for i, v := range k.Matrix {
		if v > centre {
			t.Errorf("weight %d (%v) exceeds centre", i, v)
		}
	}
}

func TestGaussianBlur_Uniform(t *testing.T) {
	blurred := GaussianBlur(createGray(20, 20, 128), 5, 1)

	// Uniform image should remain uniform after blur, borders included
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if v := int(blurred.GrayAt(x, y).Y); v < 127 || v > 128 {
				t.Fatalf("blurred(%d,%d): got %d, want ~128", x, y, v)
			}
		}
	}
}

func TestGaussianBlur_WithSpot(t *testing.T) {
	img := createGray(11, 11, 0)
	img.SetGray(5, 5, grayValue(255))

	blurred := GaussianBlur(img, 5, 1)

	// Center should be reduced (spread to neighbors)
	if blurred.GrayAt(5, 5).Y >= 255 {
		t.Error("bright spot should be reduced after blur")
	}

	// Neighbors should receive some of the brightness
	for _, p := range []image.Point{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
		if blurred.GrayAt(p.X, p.Y).Y == 0 {
			t.Errorf("neighbor %v should receive some brightness from blur", p)
		}
	}

	// Outside the 5x5 support nothing changes
	if blurred.GrayAt(5, 8).Y != 0 {
		t.Errorf("pixel outside kernel support: got %d, want 0", blurred.GrayAt(5, 8).Y)
	}
}

func TestCanny_UniformImage(t *testing.T) {
	// Uniform image should have no edges
	edges := Canny(createGray(50, 50, 128), 150, 150)
	if n := countNonZero(edges); n != 0 {
		t.Errorf("uniform image produced %d edge pixels", n)
	}
}

func TestCanny_StrongVerticalEdge(t *testing.T) {
	img := createGray(100, 100, 0)
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			img.SetGray(x, y, grayValue(255))
		}
	}

	edges := Canny(GaussianBlur(img, 5, 1), 150, 150)

	// Every interior row carries exactly one edge pixel, next to x=50
	for y := 5; y < 95; y++ {
		count := 0
		for x := 0; x < 100; x++ {
			if edges.GrayAt(x, y).Y == 255 {
				count++
				if x < 48 || x > 51 {
					t.Errorf("row %d: edge at x=%d, want near 50", y, x)
				}
			}
		}
		if count != 1 {
			t.Errorf("row %d: got %d edge pixels, want 1", y, count)
		}
	}
}

func TestCanny_BinaryOutput(t *testing.T) {
	img := GaussianBlur(Grayscale(createEdgeTestImage(60, 60)), 5, 1)
	edges := Canny(img, 50, 150)

	for i, v := range edges.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d: got %d, want 0 or 255", i, v)
		}
	}
	if countNonZero(edges) == 0 {
		t.Error("expected edges around the rectangle")
	}
}

func TestCanny_Hysteresis(t *testing.T) {
	// A vertical step at x=30 whose contrast fades down the image: the right
	// side is 200-3y on a black background. Along the ridge at x=30 the
	// magnitude is 4*(200-3y)+18, so rows 1-26 are above 500 and the rest
	// only clear the low threshold. Away from the ridge it stays at 24.
	img := createGray(60, 60, 0)
	for y := 0; y < 60; y++ {
		for x := 30; x < 60; x++ {
			img.SetGray(x, y, grayValue(uint8(200-3*y)))
		}
	}

	strict := Canny(img, 500, 500)
	linked := Canny(img, 50, 500)

	if got := countNonZero(strict); got != 26 {
		t.Errorf("strict edges: got %d, want 26", got)
	}
	if got := countNonZero(linked); got != 58 {
		t.Errorf("linked edges: got %d, want 58", got)
	}

	// The weak tail continues the strong ridge in the same column
	for y := 1; y < 59; y++ {
		if linked.GrayAt(30, y).Y != 255 {
			t.Errorf("ridge pixel (30,%d) missing", y)
		}
	}

	// Weak pixels alone are never edges
	if got := countNonZero(Canny(img, 50, 1000)); got != 0 {
		t.Errorf("no strong seed: got %d edges, want 0", got)
	}
}

func TestCanny_SmallImage(t *testing.T) {
	edges := Canny(createGray(2, 2, 10), 150, 150)
	if edges.Bounds().Dx() != 2 || edges.Bounds().Dy() != 2 {
		t.Errorf("dimensions: got %v, want 2x2", edges.Bounds())
	}
}

// Helper functions

// createEdgeTestImage creates an image with a black rectangle on white background
// to create clear edges for testing
func createEdgeTestImage(width, height int) image.Image {
	img := createInMemoryImage(width, height, grayValue(255)).(*image.RGBA)

	// Black rectangle in center (creates 4 edges)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, grayValue(0))
		}
	}

	return img
}

func grayValue(v uint8) color.Gray {
	return color.Gray{Y: v}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

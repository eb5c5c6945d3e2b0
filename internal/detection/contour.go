package detection

import (
	"image"
)

// Contour is a closed boundary as an ordered list of pixel positions. The
// last point connects back to the first.
type Contour []image.Point

// chainDirs are the eight neighbour offsets in counter-clockwise order
// (with y pointing down), starting east.
var chainDirs = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// west is the chain direction pointing to (x-1, y).
const west = 4

// plane is a binary image padded with a one pixel background frame so
// neighbour lookups never leave the buffer.
type plane struct {
	width  int // padded width
	height int // padded height
	fg     []bool
}

func newPlane(bin *image.Gray) *plane {
	b := bin.Bounds()
	p := &plane{
		width:  b.Dx() + 2,
		height: b.Dy() + 2,
	}
	p.fg = make([]bool, p.width*p.height)
	for y := 0; y < b.Dy(); y++ {
		row := bin.Pix[bin.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < b.Dx(); x++ {
			if row[x] != 0 {
				p.fg[(y+1)*p.width+x+1] = true
			}
		}
	}
	return p
}

func (p *plane) at(pt image.Point) bool {
	return p.fg[pt.Y*p.width+pt.X]
}

// outerBackground marks every background cell 4-connected to the padding
// frame.
func (p *plane) outerBackground() []bool {
	outer := make([]bool, len(p.fg))
	stack := []int{0}
	outer[0] = true

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%p.width, i/p.width

		for _, n := range [4]image.Point{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}} {
			if n.X < 0 || n.X >= p.width || n.Y < 0 || n.Y >= p.height {
				continue
			}
			j := n.Y*p.width + n.X
			if outer[j] || p.fg[j] {
				continue
			}
			outer[j] = true
			stack = append(stack, j)
		}
	}
	return outer
}

// FindExternalContours traces the outer border of every outermost
// foreground region of bin. Non-zero pixels are foreground and regions are
// 8-connected. Straight runs along the border are compressed to their end
// points.
//
// Regions lying inside a hole of another region are skipped entirely. The
// result is ordered by the raster position of each region's first pixel and
// coordinates are in bin's coordinate space.
func FindExternalContours(bin *image.Gray) []Contour {
	b := bin.Bounds()
	if b.Empty() {
		return nil
	}

	p := newPlane(bin)
	outer := p.outerBackground()
	visited := make([]bool, len(p.fg))
	offset := b.Min.Sub(image.Pt(1, 1))

	contours := make([]Contour, 0)
	for y := 1; y < p.height-1; y++ {
		for x := 1; x < p.width-1; x++ {
			i := y*p.width + x
			if !p.fg[i] || visited[i] {
				continue
			}
			if !p.markRegion(x, y, visited, outer) {
				continue
			}
			contour := p.traceBorder(image.Pt(x, y))
			for k := range contour {
				contour[k] = contour[k].Add(offset)
			}
			contours = append(contours, contour)
		}
	}

	return contours
}

// markRegion flood-fills the 8-connected region containing (x, y) into
// visited and reports whether the region touches the outer background.
func (p *plane) markRegion(x, y int, visited, outer []bool) bool {
	external := false
	stack := []int{y*p.width + x}
	visited[stack[0]] = true

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if outer[i-1] || outer[i+1] || outer[i-p.width] || outer[i+p.width] {
			external = true
		}

		// Foreground never sits on the padding frame, so all neighbours
		// are in range.
		for _, d := range chainDirs {
			j := i + d.Y*p.width + d.X
			if p.fg[j] && !visited[j] {
				visited[j] = true
				stack = append(stack, j)
			}
		}
	}
	return external
}

// traceBorder follows the outer border of the region whose raster-first
// pixel is start. The pixel west of start is background.
//
// Each step searches the neighbours of the current pixel counter-clockwise,
// beginning just after the pixel it was entered from. A pixel is emitted
// only where the direction of travel changes.
func (p *plane) traceBorder(start image.Point) Contour {
	// Clockwise search from west for the first neighbour.
	s := west
	found := false
	for {
		s = (s + 7) & 7
		if p.at(start.Add(chainDirs[s])) {
			found = true
			break
		}
		if s == west {
			break
		}
	}
	if !found {
		return Contour{start}
	}

	first := start.Add(chainDirs[s])
	prev := (s + 4) & 7
	cur := start
	contour := make(Contour, 0, 16)

	for {
		var next image.Point
		for k := 1; k <= 8; k++ {
			d := (s + k) & 7
			if n := cur.Add(chainDirs[d]); p.at(n) {
				next, s = n, d
				break
			}
		}

		if s != prev {
			contour = append(contour, cur)
		}
		prev = s

		if next == start && cur == first {
			break
		}
		cur = next
		s = (s + 4) & 7
	}

	if len(contour) == 0 {
		contour = append(contour, start)
	}
	return contour
}

package imaging

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// TileGrid stacks a grid of images into one image for debug display.
//
// Every tile is scaled to the first tile's size multiplied by scale, so
// stages of different resolution line up. Single-channel tiles are expanded
// to colour. Rows must all have the same number of tiles.
//
// Parameters:
//   - rows: Tiles in row-major order, e.g. [[original, binary], [overlay, doc]].
//   - scale: Size factor applied to every tile. Must be positive.
//
// Returns:
//   - *image.NRGBA: The stacked image, cols×tileW by rows×tileH pixels.
//   - error: Non-nil if the grid is empty, ragged, or scale is not positive.
func TileGrid(rows [][]image.Image, scale float64) (*image.NRGBA, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty tile grid")
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid tile scale %v", scale)
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("tile row %d has %d tiles, want %d", i, len(row), cols)
		}
		for j, tile := range row {
			if tile == nil {
				return nil, fmt.Errorf("tile (%d,%d) is nil", i, j)
			}
		}
	}

	first := rows[0][0].Bounds()
	tileW := int(float64(first.Dx())*scale + 0.5)
	tileH := int(float64(first.Dy())*scale + 0.5)
	if tileW < 1 || tileH < 1 {
		return nil, fmt.Errorf("tile scale %v collapses %dx%d tiles", scale, first.Dx(), first.Dy())
	}

	out := image.NewNRGBA(image.Rect(0, 0, cols*tileW, len(rows)*tileH))
	for i, row := range rows {
		for j, tile := range row {
			dst := image.Rect(j*tileW, i*tileH, (j+1)*tileW, (i+1)*tileH)
			xdraw.ApproxBiLinear.Scale(out, dst, tile, tile.Bounds(), xdraw.Src, nil)
		}
	}
	return out, nil
}

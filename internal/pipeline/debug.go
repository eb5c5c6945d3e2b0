package pipeline

import (
	"fmt"
	"image"

	"github.com/ironsheep/docscan/internal/imaging"
)

// DefaultTileScale shrinks each debug tile to 60% of the frame size.
const DefaultTileScale = 0.6

// DebugRenderer turns a frame's Result into the diagnostic image shown next
// to the document.
type DebugRenderer interface {
	Render(res *Result) (image.Image, error)
}

// TileRenderer lays the stage outputs out as a 2×2 grid:
//
//	[original, binary]
//	[overlay,  document]
//
// Without a document the bottom row shows the original twice.
type TileRenderer struct {
	Scale float64
}

// NewTileRenderer returns a TileRenderer with the default scale.
func NewTileRenderer() *TileRenderer {
	return &TileRenderer{Scale: DefaultTileScale}
}

// Render implements DebugRenderer.
func (t *TileRenderer) Render(res *Result) (image.Image, error) {
	if res == nil || res.Original == nil || res.Binary == nil {
		return nil, fmt.Errorf("nothing to render")
	}

	bottom := []image.Image{res.Original, res.Original}
	if res.Found() {
		bottom = []image.Image{res.Overlay, res.Document}
	}

	return imaging.TileGrid([][]image.Image{
		{res.Original, res.Binary},
		bottom,
	}, t.Scale)
}

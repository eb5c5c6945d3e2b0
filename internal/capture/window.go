//go:build gocv

package capture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/docscan/internal/pipeline"
)

// QuitKey ends the scan loop when pressed in either window.
const QuitKey = 'q'

// Window shows the debug view and the rectified document in two desktop
// windows.
type Window struct {
	result   *gocv.Window
	document *gocv.Window
}

// OpenWindow creates the two display windows.
func OpenWindow() (*Window, error) {
	return &Window{
		result:   gocv.NewWindow(ResultWindowTitle),
		document: gocv.NewWindow(DocumentWindowTitle),
	}, nil
}

// ShowResult implements pipeline.DisplaySink.
func (w *Window) ShowResult(img image.Image) error {
	return show(w.result, img)
}

// ShowDocument implements pipeline.DisplaySink.
func (w *Window) ShowDocument(img image.Image) error {
	return show(w.document, img)
}

func show(win *gocv.Window, img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	win.IMShow(mat)
	if win.WaitKey(1)&0xFF == QuitKey {
		return pipeline.ErrStopped
	}
	return nil
}

// Close destroys both windows.
func (w *Window) Close() error {
	if err := w.result.Close(); err != nil {
		return err
	}
	return w.document.Close()
}

//go:build !gocv

package capture

import (
	"context"
	"image"
)

// Camera is unavailable without the gocv build tag.
type Camera struct{}

// OpenCamera always fails without the gocv build tag.
func OpenCamera(device, width, height int, brightness float64) (*Camera, error) {
	return nil, ErrNoOpenCV
}

func (c *Camera) Read(ctx context.Context) (image.Image, error) { return nil, ErrNoOpenCV }
func (c *Camera) Close() error                                   { return nil }

// Window is unavailable without the gocv build tag.
type Window struct{}

// OpenWindow always fails without the gocv build tag.
func OpenWindow() (*Window, error) {
	return nil, ErrNoOpenCV
}

func (w *Window) ShowResult(img image.Image) error   { return ErrNoOpenCV }
func (w *Window) ShowDocument(img image.Image) error { return ErrNoOpenCV }
func (w *Window) Close() error                       { return nil }

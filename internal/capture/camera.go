//go:build gocv

package capture

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ironsheep/docscan/internal/pipeline"
)

// Camera reads frames from a video device through OpenCV.
type Camera struct {
	mu  sync.Mutex
	vc  *gocv.VideoCapture
	mat gocv.Mat
}

// OpenCamera opens device and requests the working geometry and
// brightness. Drivers may ignore the hints; the scan loop resizes frames
// regardless.
func OpenCamera(device, width, height int, brightness float64) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	vc.Set(gocv.VideoCaptureBrightness, brightness)

	return &Camera{vc: vc, mat: gocv.NewMat()}, nil
}

// Read implements pipeline.FrameSource. An empty grab is an acquisition
// failure; the device stays open for the next cycle.
func (c *Camera) Read(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, fmt.Errorf("%w: empty frame from camera", pipeline.ErrAcquisition)
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrAcquisition, err)
	}
	return img, nil
}

// Close implements pipeline.FrameSource.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mat.Close()
	return c.vc.Close()
}

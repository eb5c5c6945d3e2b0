// Package config holds the tunable constants of the scanning pipeline and the
// process settings of the docscan binary.
//
// Pipeline parameters are fixed for the lifetime of a run. They are exposed as
// named fields so tests and the inspection server can construct variants, but
// nothing adjusts them while frames are being processed.
//
// Settings are resolved in this order:
//
//  1. Built-in defaults (Default, DefaultSettings)
//  2. A .env file in the working directory, if present
//  3. DOCSCAN_* environment variables
//
// The merged result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Params are the geometric and filter constants used by every pipeline stage.
type Params struct {
	// FrameWidth and FrameHeight are the fixed working geometry. Frames are
	// resized to this size on acquisition and the rectified document is
	// produced at this size.
	FrameWidth  int `validate:"gt=0"`
	FrameHeight int `validate:"gt=0"`

	// Brightness is the capture brightness hint handed to the camera.
	Brightness float64 `validate:"gte=0,lte=255"`

	// AreaThreshold is the strict lower bound on contour area in pixels².
	AreaThreshold float64 `validate:"gte=0"`

	// CannyLow and CannyHigh are the hysteresis thresholds of the edge
	// detector, on the 0-255 gradient scale.
	CannyLow  float64 `validate:"gte=0"`
	CannyHigh float64 `validate:"gtefield=CannyLow"`

	// BlurSize is the Gaussian kernel side (odd) and BlurSigma its sigma.
	BlurSize  int     `validate:"gt=0"`
	BlurSigma float64 `validate:"gt=0"`

	// MorphSize is the side of the square all-ones structuring element.
	MorphSize        int `validate:"gt=0"`
	DilateIterations int `validate:"gte=0"`
	ErodeIterations  int `validate:"gte=0"`

	// ApproxEpsilon is the polygon approximation tolerance as a fraction of
	// the contour perimeter.
	ApproxEpsilon float64 `validate:"gt=0,lt=1"`

	// CropMargin is removed from every side of the warped document before it
	// is resized back to the working geometry.
	CropMargin int `validate:"gte=0"`
}

// Default returns the parameters the scanner was tuned with.
func Default() Params {
	return Params{
		FrameWidth:       480,
		FrameHeight:      640,
		Brightness:       150,
		AreaThreshold:    5000,
		CannyLow:         150,
		CannyHigh:        150,
		BlurSize:         5,
		BlurSigma:        1,
		MorphSize:        5,
		DilateIterations: 2,
		ErodeIterations:  1,
		ApproxEpsilon:    0.02,
		CropMargin:       20,
	}
}

// Validate checks struct constraints plus the cross-field rules the tags
// cannot express.
func (p Params) Validate() error {
	if err := newValidator().Struct(p); err != nil {
		return fmt.Errorf("invalid pipeline parameters: %w", err)
	}
	if p.BlurSize%2 == 0 {
		return fmt.Errorf("invalid pipeline parameters: blur size %d must be odd", p.BlurSize)
	}
	if 2*p.CropMargin >= p.FrameWidth || 2*p.CropMargin >= p.FrameHeight {
		return fmt.Errorf("invalid pipeline parameters: crop margin %d leaves no image in %dx%d",
			p.CropMargin, p.FrameWidth, p.FrameHeight)
	}
	return nil
}

// Settings configure the docscan process around the pipeline.
type Settings struct {
	Params Params

	// Device is the camera index opened by the scan loop.
	Device int `validate:"gte=0"`

	// Inputs, when non-empty, replaces the camera with a list of image files.
	Inputs []string

	LogLevel string `validate:"oneof=trace debug info warn error"`
	// LogFile enables a rotating log file in addition to stderr.
	LogFile string

	// MaxFPS caps the loop rate. Zero means unlimited.
	MaxFPS float64 `validate:"gte=0"`

	// Headless replaces the window sink with a logging sink.
	Headless bool

	OverlayColor     string `validate:"hexcolor"`
	OverlayThickness int    `validate:"gt=0"`

	// MaxAcquisitionFailures ends the loop after this many consecutive
	// failed reads.
	MaxAcquisitionFailures int `validate:"gt=0"`
}

// DefaultSettings returns settings for an interactive camera session.
func DefaultSettings() Settings {
	return Settings{
		Params:                 Default(),
		Device:                 0,
		LogLevel:               "info",
		OverlayColor:           "#00FF00",
		OverlayThickness:       15,
		MaxAcquisitionFailures: 30,
	}
}

// Load resolves settings from defaults, an optional .env file and the
// environment.
func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds settings from a lookup function, typically os.Getenv.
func FromEnv(getenv func(string) string) (Settings, error) {
	s := DefaultSettings()
	e := envReader{get: getenv}

	s.Device = e.int("DOCSCAN_DEVICE", s.Device)
	if v := getenv("DOCSCAN_INPUTS"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				s.Inputs = append(s.Inputs, p)
			}
		}
	}
	s.LogLevel = strings.ToLower(e.str("DOCSCAN_LOG_LEVEL", s.LogLevel))
	s.LogFile = e.str("DOCSCAN_LOG_FILE", s.LogFile)
	s.MaxFPS = e.float("DOCSCAN_MAX_FPS", s.MaxFPS)
	s.Headless = e.bool("DOCSCAN_HEADLESS", s.Headless)
	s.OverlayColor = e.str("DOCSCAN_OVERLAY_COLOR", s.OverlayColor)
	s.OverlayThickness = e.int("DOCSCAN_OVERLAY_THICKNESS", s.OverlayThickness)
	s.MaxAcquisitionFailures = e.int("DOCSCAN_MAX_ACQUISITION_FAILURES", s.MaxAcquisitionFailures)

	p := &s.Params
	p.Brightness = e.float("DOCSCAN_BRIGHTNESS", p.Brightness)
	p.AreaThreshold = e.float("DOCSCAN_AREA_THRESHOLD", p.AreaThreshold)
	p.CannyLow = e.float("DOCSCAN_CANNY_LOW", p.CannyLow)
	p.CannyHigh = e.float("DOCSCAN_CANNY_HIGH", p.CannyHigh)
	p.ApproxEpsilon = e.float("DOCSCAN_APPROX_EPSILON", p.ApproxEpsilon)
	p.CropMargin = e.int("DOCSCAN_CROP_MARGIN", p.CropMargin)

	if e.err != nil {
		return Settings{}, e.err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings and the embedded parameters.
func (s Settings) Validate() error {
	if err := newValidator().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return s.Params.Validate()
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// envReader collects the first parse error so FromEnv can stay linear.
type envReader struct {
	get func(string) string
	err error
}

func (e *envReader) str(key, def string) string {
	if v := e.get(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) int(key string, def int) int {
	v := e.get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) float(key string, def float64) float64 {
	v := e.get(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *envReader) bool(key string, def bool) bool {
	v := e.get(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}

func (e *envReader) fail(key, val string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid value %q for %s: %w", val, key, err)
	}
}

package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/docscan/internal/config"
	"github.com/ironsheep/docscan/internal/detection"
	"github.com/ironsheep/docscan/internal/imaging"
	"github.com/ironsheep/docscan/internal/rectify"
)

// Default overlay style: green vertex markers, 15 pixels across.
var (
	DefaultOverlayColor     = color.RGBA{0, 255, 0, 255}
	DefaultOverlayThickness = 15
)

// Result holds every buffer produced for one frame.
type Result struct {
	// Original is the input frame as a colour image.
	Original *image.NRGBA

	// Binary is the preprocessed edge map.
	Binary *image.Gray

	// Overlay is a copy of Original with the candidate's vertices drawn
	// on it. It equals Original when no candidate was found or the
	// overlay is disabled.
	Overlay *image.NRGBA

	// Candidate is the selected contour, nil when none qualified.
	Candidate *detection.Candidate

	// Quad holds the candidate's corners in canonical order.
	Quad *detection.OrderedQuad

	// Document is the rectified page, nil unless rectification succeeded.
	Document *image.NRGBA
}

// Found reports whether a document was rectified from the frame.
func (r *Result) Found() bool {
	return r != nil && r.Document != nil
}

// Pipeline processes frames with one fixed parameter set. It holds no
// per-frame state and may be shared by concurrent callers.
type Pipeline struct {
	params    config.Params
	rectifier *rectify.Rectifier

	overlay          bool
	overlayColor     color.Color
	overlayThickness int
}

// Option adjusts a Pipeline under construction.
type Option func(*Pipeline)

// WithOverlay sets the colour and size of the vertex markers.
func WithOverlay(c color.Color, thickness int) Option {
	return func(p *Pipeline) {
		p.overlay = true
		p.overlayColor = c
		p.overlayThickness = thickness
	}
}

// WithoutOverlay disables vertex drawing. Result.Overlay then aliases
// Result.Original.
func WithoutOverlay() Option {
	return func(p *Pipeline) {
		p.overlay = false
	}
}

// New validates params and returns a Pipeline using them.
func New(params config.Params, opts ...Option) (*Pipeline, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		params:           params,
		rectifier:        rectify.NewRectifier(params.FrameWidth, params.FrameHeight, params.CropMargin),
		overlay:          true,
		overlayColor:     DefaultOverlayColor,
		overlayThickness: DefaultOverlayThickness,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Params returns the parameters the pipeline was built with.
func (p *Pipeline) Params() config.Params {
	return p.params
}

// Process runs every stage on frame, which must already have the working
// geometry.
//
// A frame without a candidate is not an error: the Result simply has no
// Document. When the candidate cannot be rectified, Process returns the
// partial Result together with an error wrapping ErrDegenerateQuad so the
// caller can still render diagnostics.
func (p *Pipeline) Process(frame image.Image) (*Result, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrAcquisition)
	}
	b := frame.Bounds()
	if b.Dx() != p.params.FrameWidth || b.Dy() != p.params.FrameHeight {
		return nil, fmt.Errorf("frame is %dx%d, pipeline expects %dx%d",
			b.Dx(), b.Dy(), p.params.FrameWidth, p.params.FrameHeight)
	}

	res := &Result{Original: imaging.ToNRGBA(frame)}
	res.Binary = Preprocess(res.Original, p.params)
	res.Overlay = res.Original

	extractor := &detection.Extractor{
		MinArea:         p.params.AreaThreshold,
		EpsilonFraction: p.params.ApproxEpsilon,
	}
	if p.overlay {
		extractor.Overlay = func(pts []image.Point) {
			res.Overlay = imaging.ToNRGBA(res.Original)
			imaging.DrawPoints(res.Overlay, pts, p.overlayColor, p.overlayThickness)
		}
	}

	res.Candidate = extractor.FindQuad(res.Binary)
	if res.Candidate == nil {
		return res, nil
	}

	quad, err := detection.OrderCorners(res.Candidate.Points)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrDegenerateQuad, err)
	}
	res.Quad = &quad

	doc, err := p.rectifier.Rectify(res.Original, quad)
	if err != nil {
		return res, err
	}
	res.Document = doc
	return res, nil
}

// Scan processes a single frame of any size and returns the rectified
// document. It fails with ErrNoQuad when the frame holds no candidate.
func (p *Pipeline) Scan(frame image.Image) (*Result, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrAcquisition)
	}
	res, err := p.Process(imaging.NormalizeFrame(frame, p.params.FrameWidth, p.params.FrameHeight))
	if err != nil {
		return res, err
	}
	if res.Candidate == nil {
		return res, ErrNoQuad
	}
	return res, nil
}

// IsFrameError reports whether err is one of the per-frame failures the run
// loop recovers from.
func IsFrameError(err error) bool {
	return errors.Is(err, ErrAcquisition) || errors.Is(err, ErrNoQuad) || errors.Is(err, ErrDegenerateQuad)
}

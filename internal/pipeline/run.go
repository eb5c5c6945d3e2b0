package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ironsheep/docscan/internal/imaging"
	"github.com/ironsheep/docscan/internal/logging"
)

// FrameSource supplies colour frames of any size. Read blocks until a frame
// is available and returns io.EOF once the source is exhausted. Any other
// error is an acquisition failure for that cycle.
type FrameSource interface {
	Read(ctx context.Context) (image.Image, error)
	Close() error
}

// DisplaySink accepts the images produced each cycle. Either method may
// return ErrStopped to end the loop.
type DisplaySink interface {
	ShowResult(img image.Image) error
	ShowDocument(img image.Image) error
}

// RunOptions tune the run loop. Zero values fall back to defaults.
type RunOptions struct {
	// MaxFPS caps how often a frame is read. Zero means unlimited.
	MaxFPS float64

	// MaxAcquisitionFailures ends the loop after this many consecutive
	// failed reads. Zero means 30.
	MaxAcquisitionFailures int

	// Renderer draws the diagnostic view. Nil means a TileRenderer.
	Renderer DebugRenderer

	// Logger receives per-cycle logs. Nil discards them.
	Logger *logrus.Logger
}

// Stats summarise a finished run.
type Stats struct {
	Cycles              int `json:"cycles"`
	Documents           int `json:"documents"`
	NoQuad              int `json:"no_quad"`
	Degenerate          int `json:"degenerate"`
	AcquisitionFailures int `json:"acquisition_failures"`
	DisplayFailures     int `json:"display_failures"`
}

const defaultMaxAcquisitionFailures = 30

// Run reads frames from src until it is exhausted, ctx is cancelled, the
// sink asks to stop, or too many reads fail in a row. Every frame is
// resized to the pipeline geometry, processed, and shown on sink.
//
// Run owns src and closes it on every exit path. A normal stop returns a
// nil error; only repeated acquisition failures are reported.
func Run(ctx context.Context, src FrameSource, sink DisplaySink, p *Pipeline, opts RunOptions) (stats Stats, err error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewTileRenderer()
	}
	maxFailures := opts.MaxAcquisitionFailures
	if maxFailures <= 0 {
		maxFailures = defaultMaxAcquisitionFailures
	}
	limit := rate.Inf
	if opts.MaxFPS > 0 {
		limit = rate.Limit(opts.MaxFPS)
	}
	limiter := rate.NewLimiter(limit, 1)

	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close frame source")
		}
		log.WithFields(logrus.Fields{
			"cycles":    stats.Cycles,
			"documents": stats.Documents,
			"no_quad":   stats.NoQuad,
		}).Info("Scan loop stopped")
	}()

	params := p.Params()
	failures := 0

	for {
		if ctx.Err() != nil {
			return stats, nil
		}
		if err := limiter.Wait(ctx); err != nil {
			return stats, nil
		}

		frame, err := src.Read(ctx)
		if errors.Is(err, io.EOF) {
			log.Debug("Frame source exhausted")
			return stats, nil
		}
		if ctx.Err() != nil {
			return stats, nil
		}
		if err == nil && frame == nil {
			err = errors.New("source returned no frame")
		}
		if err != nil {
			stats.AcquisitionFailures++
			failures++
			log.WithError(err).WithField("consecutive", failures).Warn("Frame acquisition failed")
			if failures >= maxFailures {
				return stats, fmt.Errorf("%w: %d consecutive failures: %v", ErrAcquisition, failures, err)
			}
			continue
		}
		failures = 0

		if cycle(log, frame, sink, renderer, p, params.FrameWidth, params.FrameHeight, &stats) {
			return stats, nil
		}
	}
}

// cycle processes and displays one acquired frame. It reports true when the
// sink asked to end the loop.
func cycle(log *logrus.Logger, frame image.Image, sink DisplaySink, renderer DebugRenderer, p *Pipeline, width, height int, stats *Stats) bool {
	stats.Cycles++
	start := time.Now()
	entry := log.WithField("cycle_id", uuid.NewString())

	res, perr := p.Process(imaging.NormalizeFrame(frame, width, height))
	switch {
	case errors.Is(perr, ErrDegenerateQuad):
		stats.Degenerate++
		entry.WithError(perr).Debug("Skipping rectification")
	case perr != nil:
		entry.WithError(perr).Error("Failed to process frame")
		return false
	case res.Found():
		stats.Documents++
	default:
		stats.NoQuad++
	}

	fields := logrus.Fields{
		"quad_found": res.Found(),
		"elapsed":    time.Since(start).String(),
	}
	if res.Candidate != nil {
		fields["area"] = res.Candidate.Area
	}
	entry.WithFields(fields).Debug("Frame processed")

	view, err := renderer.Render(res)
	if err != nil {
		stats.DisplayFailures++
		entry.WithError(err).Warn("Failed to render debug view")
	} else if show(entry, stats, sink.ShowResult, view) {
		return true
	}

	if res.Found() {
		return show(entry, stats, sink.ShowDocument, res.Document)
	}
	return false
}

// show hands img to a sink method and reports whether the sink asked to
// stop. Other display errors are logged and counted.
func show(entry *logrus.Entry, stats *Stats, fn func(image.Image) error, img image.Image) bool {
	err := fn(img)
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrStopped):
		entry.Info("Display requested stop")
		return true
	default:
		stats.DisplayFailures++
		entry.WithError(err).Warn("Display failed")
		return false
	}
}

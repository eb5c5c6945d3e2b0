package pipeline

import (
	"errors"

	"github.com/ironsheep/docscan/internal/rectify"
)

var (
	// ErrAcquisition reports that a frame source produced no frame.
	ErrAcquisition = errors.New("frame acquisition failed")

	// ErrNoQuad reports that a frame holds no document candidate. The run
	// loop treats it as a normal outcome; single-image callers get it as
	// an error.
	ErrNoQuad = errors.New("no document quad found")

	// ErrStopped is returned by a DisplaySink to end the run loop, for
	// example when the operator presses the quit key.
	ErrStopped = errors.New("stopped by display")

	// ErrDegenerateQuad aliases rectify.ErrDegenerateQuad so callers can
	// match every per-frame failure from this package.
	ErrDegenerateQuad = rectify.ErrDegenerateQuad
)

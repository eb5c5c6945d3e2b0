package capture

import "errors"

// ErrNoOpenCV reports that the binary was built without camera and window
// support.
var ErrNoOpenCV = errors.New("built without OpenCV support; rebuild with -tags gocv or use file inputs")

// Window titles used by the desktop sink.
const (
	ResultWindowTitle   = "Result"
	DocumentWindowTitle = "Final Document"
)

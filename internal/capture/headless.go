package capture

import (
	"image"

	"github.com/sirupsen/logrus"
)

// LogSink is the display sink for runs without a screen. It logs what would
// have been shown and keeps nothing.
type LogSink struct {
	Log *logrus.Logger

	results   int
	documents int
}

// NewLogSink returns a sink logging to log.
func NewLogSink(log *logrus.Logger) *LogSink {
	return &LogSink{Log: log}
}

// ShowResult implements pipeline.DisplaySink.
func (s *LogSink) ShowResult(img image.Image) error {
	s.results++
	b := img.Bounds()
	s.Log.WithFields(logrus.Fields{
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Debug("Debug view ready")
	return nil
}

// ShowDocument implements pipeline.DisplaySink.
func (s *LogSink) ShowDocument(img image.Image) error {
	s.documents++
	b := img.Bounds()
	s.Log.WithFields(logrus.Fields{
		"width":  b.Dx(),
		"height": b.Dy(),
		"count":  s.documents,
	}).Info("Document captured")
	return nil
}

// Counts reports how many debug views and documents were shown.
func (s *LogSink) Counts() (results, documents int) {
	return s.results, s.documents
}

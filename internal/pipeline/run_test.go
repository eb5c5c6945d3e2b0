package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ironsheep/docscan/internal/imaging"
	"github.com/ironsheep/docscan/internal/logging"
)

// fakeSource replays frames and errors in order, then reports io.EOF.
type fakeSource struct {
	mu     sync.Mutex
	steps  []sourceStep
	reads  int
	closed int
}

type sourceStep struct {
	frame image.Image
	err   error
}

func (s *fakeSource) Read(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reads >= len(s.steps) {
		return nil, io.EOF
	}
	step := s.steps[s.reads]
	s.reads++
	return step.frame, step.err
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// failingSource never produces a frame.
type failingSource struct {
	fakeSource
}

func (s *failingSource) Read(ctx context.Context) (image.Image, error) {
	return nil, errors.New("camera unplugged")
}

// blockingSource waits for cancellation.
type blockingSource struct {
	fakeSource
	started chan struct{}
}

func (s *blockingSource) Read(ctx context.Context) (image.Image, error) {
	close(s.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

// recordingSink counts what it was shown. stopAfter, when positive, makes
// the n-th ShowResult call return ErrStopped.
type recordingSink struct {
	results   []image.Image
	documents []image.Image
	stopAfter int
	failDocs  bool
}

func (s *recordingSink) ShowResult(img image.Image) error {
	s.results = append(s.results, img)
	if s.stopAfter > 0 && len(s.results) >= s.stopAfter {
		return ErrStopped
	}
	return nil
}

func (s *recordingSink) ShowDocument(img image.Image) error {
	if s.failDocs {
		return errors.New("window closed")
	}
	s.documents = append(s.documents, img)
	return nil
}

func blankFrame() image.Image {
	return imaging.Fill(480, 640, color.Black)
}

func TestRun_UntilExhausted(t *testing.T) {
	p := newTestPipeline(t)
	src := &fakeSource{steps: []sourceStep{
		{frame: documentFrame()},
		{frame: blankFrame()},
		{frame: documentFrame()},
	}}
	sink := &recordingSink{}

	stats, err := Run(context.Background(), src, sink, p, RunOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Cycles != 3 || stats.Documents != 2 || stats.NoQuad != 1 {
		t.Errorf("stats: got %+v, want 3 cycles, 2 documents, 1 no-quad", stats)
	}
	if len(sink.results) != 3 {
		t.Errorf("result views: got %d, want 3", len(sink.results))
	}
	if len(sink.documents) != 2 {
		t.Errorf("documents shown: got %d, want 2", len(sink.documents))
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times, want 1", src.closed)
	}
}

func TestRun_BlankFrameShowsOnlyResult(t *testing.T) {
	p := newTestPipeline(t)
	src := &fakeSource{steps: []sourceStep{{frame: blankFrame()}}}
	sink := &recordingSink{}

	if _, err := Run(context.Background(), src, sink, p, RunOptions{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(sink.results) != 1 || len(sink.documents) != 0 {
		t.Errorf("got %d results and %d documents, want 1 and 0", len(sink.results), len(sink.documents))
	}
}

func TestRun_NormalisesFrameSize(t *testing.T) {
	p := newTestPipeline(t)
	src := &fakeSource{steps: []sourceStep{{frame: imaging.Fill(1280, 720, color.Black)}}}
	sink := &recordingSink{}

	stats, err := Run(context.Background(), src, sink, p, RunOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Cycles != 1 || stats.NoQuad != 1 {
		t.Errorf("stats: got %+v", stats)
	}
	if b := sink.results[0].Bounds(); b.Dx() != 576 || b.Dy() != 768 {
		t.Errorf("debug view: got %dx%d, want 576x768", b.Dx(), b.Dy())
	}
}

func TestRun_StopRequested(t *testing.T) {
	p := newTestPipeline(t)
	src := &fakeSource{steps: []sourceStep{
		{frame: blankFrame()},
		{frame: blankFrame()},
		{frame: blankFrame()},
	}}
	sink := &recordingSink{stopAfter: 2}

	stats, err := Run(context.Background(), src, sink, p, RunOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Cycles != 2 {
		t.Errorf("cycles: got %d, want 2", stats.Cycles)
	}
	if src.reads != 2 {
		t.Errorf("reads: got %d, want 2", src.reads)
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times, want 1", src.closed)
	}
}

func TestRun_TransientAcquisitionFailures(t *testing.T) {
	p := newTestPipeline(t)
	glitch := errors.New("dropped frame")
	src := &fakeSource{steps: []sourceStep{
		{err: glitch},
		{frame: nil},
		{frame: blankFrame()},
		{err: glitch},
		{err: glitch},
		{frame: blankFrame()},
	}}
	sink := &recordingSink{}

	stats, err := Run(context.Background(), src, sink, p, RunOptions{MaxAcquisitionFailures: 3})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.AcquisitionFailures != 4 {
		t.Errorf("acquisition failures: got %d, want 4", stats.AcquisitionFailures)
	}
	if stats.Cycles != 2 {
		t.Errorf("cycles: got %d, want 2", stats.Cycles)
	}
}

func TestRun_TooManyAcquisitionFailures(t *testing.T) {
	p := newTestPipeline(t)
	src := &failingSource{}
	sink := &recordingSink{}

	stats, err := Run(context.Background(), src, sink, p, RunOptions{MaxAcquisitionFailures: 3})
	if !errors.Is(err, ErrAcquisition) {
		t.Fatalf("got %v, want ErrAcquisition", err)
	}
	if stats.AcquisitionFailures != 3 || stats.Cycles != 0 {
		t.Errorf("stats: got %+v", stats)
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times, want 1", src.closed)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	p := newTestPipeline(t)
	src := &blockingSource{started: make(chan struct{})}
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Run(ctx, src, sink, p, RunOptions{})
		done <- err
	}()

	<-src.started
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("cancelled run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times, want 1", src.closed)
	}
}

func TestRun_DisplayFailuresAreNotFatal(t *testing.T) {
	p := newTestPipeline(t)
	src := &fakeSource{steps: []sourceStep{
		{frame: documentFrame()},
		{frame: documentFrame()},
	}}
	sink := &recordingSink{failDocs: true}

	stats, err := Run(context.Background(), src, sink, p, RunOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Cycles != 2 || stats.DisplayFailures != 2 {
		t.Errorf("stats: got %+v, want 2 cycles and 2 display failures", stats)
	}
}

func TestRun_RateLimited(t *testing.T) {
	p := newTestPipeline(t)
	src := &fakeSource{steps: []sourceStep{
		{frame: blankFrame()},
		{frame: blankFrame()},
		{frame: blankFrame()},
	}}

	start := time.Now()
	if _, err := Run(context.Background(), src, &recordingSink{}, p, RunOptions{MaxFPS: 20}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Burst of one, then 50ms between the remaining reads
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("3 frames at 20 fps took %v, want at least 100ms", elapsed)
	}
}

func TestRun_LogsCycles(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Level: "debug", Output: &buf, NoColors: true})
	if err != nil {
		t.Fatalf("logging.New failed: %v", err)
	}

	p := newTestPipeline(t)
	src := &fakeSource{steps: []sourceStep{{frame: documentFrame()}}}

	if _, err := Run(context.Background(), src, &recordingSink{}, p, RunOptions{Logger: log}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"cycle_id", "quad_found", "Scan loop stopped"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

package capture

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ironsheep/docscan/internal/imaging"
	"github.com/ironsheep/docscan/internal/pipeline"
)

// supportedExt lists the file types the decoders are registered for.
var supportedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// FileSource replays a list of image files as frames, one per Read, then
// reports io.EOF. Each file is decoded and resized to the working geometry.
type FileSource struct {
	mu     sync.Mutex
	paths  []string
	next   int
	width  int
	height int
	closed bool
}

// NewFileSource returns a source over paths. Directories are expanded to
// the supported image files they contain, in name order.
func NewFileSource(paths []string, width, height int) (*FileSource, error) {
	files, err := ExpandInputs(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input images")
	}
	return &FileSource{paths: files, width: width, height: height}, nil
}

// ExpandInputs resolves files, directories and glob patterns to a flat list
// of image paths.
func ExpandInputs(inputs []string) ([]string, error) {
	var out []string
	for _, in := range inputs {
		matches, err := filepath.Glob(in)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", in, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input not found: %s", in)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				return nil, fmt.Errorf("failed to stat input: %w", err)
			}
			if !info.IsDir() {
				out = append(out, m)
				continue
			}
			entries, err := os.ReadDir(m)
			if err != nil {
				return nil, fmt.Errorf("failed to read input directory: %w", err)
			}
			var dir []string
			for _, e := range entries {
				if !e.IsDir() && supportedExt[strings.ToLower(filepath.Ext(e.Name()))] {
					dir = append(dir, filepath.Join(m, e.Name()))
				}
			}
			sort.Strings(dir)
			out = append(out, dir...)
		}
	}
	return out, nil
}

// Read implements pipeline.FrameSource. A file that fails to decode is an
// acquisition failure for that cycle; the source moves on to the next one.
func (s *FileSource) Read(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	frame, err := imaging.LoadFrame(path, s.width, s.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrAcquisition, err)
	}
	return frame, nil
}

// Remaining reports how many files have not been read yet.
func (s *FileSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	return len(s.paths) - s.next
}

// Close implements pipeline.FrameSource.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

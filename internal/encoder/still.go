package encoder

import (
	"errors"
	"fmt"
	"image"

	"github.com/kovidgoyal/imaging"
)

// StillWriter saves exactly one frame as an image file, in the format
// implied by the file extension
type StillWriter struct {
	path    string
	format  imaging.Format
	written bool
}

// NewStillWriter checks that path names a supported image format
func NewStillWriter(path string) (*StillWriter, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return nil, fmt.Errorf("unsupported still image %s: %w", path, err)
	}
	return &StillWriter{path: path, format: format}, nil
}

// WriteFrame saves img; repeats are meaningless for a still and ignored
func (s *StillWriter) WriteFrame(img image.Image, repeat int) error {
	if s.written {
		return errors.New("still image already written")
	}
	if repeat <= 0 {
		return nil
	}
	if err := imaging.Save(img, s.path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.path, err)
	}
	s.written = true
	return nil
}

// Written reports whether the frame has been saved
func (s *StillWriter) Written() bool {
	return s.written
}

// Close is a no-op; the file is complete once WriteFrame returns
func (s *StillWriter) Close() error {
	return nil
}

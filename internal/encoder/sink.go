// Package encoder writes rendered frames to their destination: a single still
// image, or an ffmpeg process fed a PNG stream over its stdin.
package encoder

import (
	"image"
)

// Sink receives rendered frames in presentation order
type Sink interface {
	// WriteFrame emits img repeat times
	WriteFrame(img image.Image, repeat int) error
	// Close flushes and releases the destination; it is safe to call more than once
	Close() error
}

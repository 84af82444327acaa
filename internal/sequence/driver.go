package sequence

import (
	"context"
	"fmt"
	"image"

	"github.com/linuxmatters/vmaganimate/internal/encoder"
	"github.com/linuxmatters/vmaganimate/internal/renderer"
)

// FrameSource renders the frame for a progress value
type FrameSource interface {
	Render(t float64) (*renderer.Frame, error)
}

// Event describes one step after its frames were written
type Event struct {
	Step          int // Index of the step in the timeline
	Steps         int
	Frame         int // Frames written so far, counting repeats
	Frames        int
	Progress      float64
	Magnification float64
	Rendered      bool        // False when the previous frame was reused
	Image         *image.RGBA // Read-only; valid until the next event
}

// Observer receives an event after every step
type Observer func(Event)

// Driver walks a timeline, rendering through Source and writing to Sink
type Driver struct {
	Source   FrameSource
	Sink     encoder.Sink
	Observer Observer
}

// Run emits every step in order and closes the sink. The sink is closed on
// failure too, and a close error is reported when nothing else failed.
func (d *Driver) Run(ctx context.Context, tl Timeline) (err error) {
	if d.Source == nil || d.Sink == nil {
		return fmt.Errorf("driver needs a frame source and a sink")
	}
	defer func() {
		if cerr := d.Sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	total := tl.Frames()
	written := 0

	var (
		frame    *renderer.Frame
		progress float64
	)
	for i, step := range tl {
		if err := ctx.Err(); err != nil {
			return err
		}

		rendered := false
		if frame == nil || step.Progress != progress {
			frame, err = d.Source.Render(step.Progress)
			if err != nil {
				return fmt.Errorf("rendering frame at t=%.4f: %w", step.Progress, err)
			}
			progress = step.Progress
			rendered = true
		}

		if err := d.Sink.WriteFrame(frame.Image, step.Repeat); err != nil {
			return err
		}
		written += step.Repeat

		if d.Observer != nil {
			d.Observer(Event{
				Step:          i,
				Steps:         len(tl),
				Frame:         written,
				Frames:        total,
				Progress:      step.Progress,
				Magnification: frame.Magnification,
				Rendered:      rendered,
				Image:         frame.Image,
			})
		}
	}
	return nil
}

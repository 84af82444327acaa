// Package sequence turns the zoom curve into an ordered list of frames and
// drives a renderer through it into a sink.
package sequence

import (
	"fmt"
)

// Step renders the frame at Progress and emits it Repeat times
type Step struct {
	Progress float64
	Repeat   int
}

// Timeline is the ordered list of steps for one animation
type Timeline []Step

// Build lays out the five phases of the animation: hold at the start, ramp up
// to full magnification, hold at the peak, ramp back down, hold at the end.
// Steps that would be emitted zero times are dropped.
func Build(waitFrames, stretchFrames int) (Timeline, error) {
	if stretchFrames < 1 {
		return nil, fmt.Errorf("transition needs at least one frame, got %d", stretchFrames)
	}
	if waitFrames < 0 {
		return nil, fmt.Errorf("hold cannot be negative, got %d frames", waitFrames)
	}

	s := float64(stretchFrames)
	tl := make(Timeline, 0, 2*stretchFrames+4)

	tl = tl.add(0, waitFrames)
	for i := 0; i <= stretchFrames; i++ {
		tl = tl.add(float64(i)/s, 1)
	}
	tl = tl.add(1, waitFrames-1)
	for i := stretchFrames; i >= 1; i-- {
		tl = tl.add(float64(i)/s, 1)
	}
	tl = tl.add(1/s, waitFrames)

	return tl, nil
}

func (tl Timeline) add(progress float64, repeat int) Timeline {
	if repeat <= 0 {
		return tl
	}
	return append(tl, Step{Progress: progress, Repeat: repeat})
}

// Frames is the number of frames the timeline emits, counting repeats
func (tl Timeline) Frames() int {
	n := 0
	for _, s := range tl {
		n += s.Repeat
	}
	return n
}

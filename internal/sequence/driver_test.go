package sequence

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/linuxmatters/vmaganimate/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource renders blank 4x4 frames and records the requested progress values
type fakeSource struct {
	calls []float64
	err   error
}

func (f *fakeSource) Render(t float64) (*renderer.Frame, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, t)
	return &renderer.Frame{
		Image:    image.NewRGBA(image.Rect(0, 0, 4, 4)),
		Geometry: renderer.Geometry{Progress: t, Magnification: 1 + t},
	}, nil
}

// recordingSink keeps every frame it is handed
type recordingSink struct {
	frames   []image.Image
	repeats  []int
	closed   int
	writeErr error
	closeErr error
}

func (r *recordingSink) WriteFrame(img image.Image, repeat int) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.frames = append(r.frames, img)
	r.repeats = append(r.repeats, repeat)
	return nil
}

func (r *recordingSink) Close() error {
	r.closed++
	return r.closeErr
}

func TestDriver_ReusesHeldFrames(t *testing.T) {
	tl, err := Build(2, 2)
	require.NoError(t, err)

	src := &fakeSource{}
	sink := &recordingSink{}
	var events []Event
	d := &Driver{Source: src, Sink: sink, Observer: func(e Event) { events = append(events, e) }}

	require.NoError(t, d.Run(context.Background(), tl))

	if diff := cmp.Diff([]float64{0, 0.5, 1, 0.5}, src.calls); diff != "" {
		t.Errorf("render calls mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{2, 1, 1, 1, 1, 1, 1, 2}, sink.repeats)
	assert.Equal(t, 1, sink.closed)

	// Consecutive steps with equal progress share one image
	assert.Same(t, sink.frames[0], sink.frames[1])
	assert.Same(t, sink.frames[3], sink.frames[5])
	assert.NotSame(t, sink.frames[2], sink.frames[6])

	require.Len(t, events, len(tl))
	last := events[len(events)-1]
	assert.Equal(t, 10, last.Frame)
	assert.Equal(t, 10, last.Frames)
	assert.Equal(t, len(tl), last.Steps)
	assert.InDelta(t, 1.5, last.Magnification, 1e-9)
	assert.True(t, events[0].Rendered)
	assert.False(t, events[1].Rendered)
}

func TestDriver_RenderErrorClosesSink(t *testing.T) {
	tl, err := Build(1, 1)
	require.NoError(t, err)

	boom := errors.New("boom")
	sink := &recordingSink{}
	d := &Driver{Source: &fakeSource{err: boom}, Sink: sink}

	err = d.Run(context.Background(), tl)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, sink.closed)
	assert.Empty(t, sink.frames)
}

func TestDriver_WriteErrorWins(t *testing.T) {
	tl, err := Build(1, 1)
	require.NoError(t, err)

	writeErr := errors.New("broken pipe")
	sink := &recordingSink{writeErr: writeErr, closeErr: errors.New("exit 1")}
	d := &Driver{Source: &fakeSource{}, Sink: sink}

	assert.ErrorIs(t, d.Run(context.Background(), tl), writeErr)
	assert.Equal(t, 1, sink.closed)
}

func TestDriver_CloseErrorReported(t *testing.T) {
	tl, err := Build(1, 1)
	require.NoError(t, err)

	closeErr := errors.New("encoder exited with status 1")
	sink := &recordingSink{closeErr: closeErr}
	d := &Driver{Source: &fakeSource{}, Sink: sink}

	assert.ErrorIs(t, d.Run(context.Background(), tl), closeErr)
	assert.Len(t, sink.frames, len(tl))
}

func TestDriver_Cancelled(t *testing.T) {
	tl, err := Build(5, 5)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{}
	d := &Driver{
		Source: &fakeSource{},
		Sink:   sink,
		Observer: func(e Event) {
			if e.Step == 2 {
				cancel()
			}
		},
	}

	assert.ErrorIs(t, d.Run(ctx, tl), context.Canceled)
	assert.Len(t, sink.frames, 3)
	assert.Equal(t, 1, sink.closed)
}

func TestDriver_RequiresSourceAndSink(t *testing.T) {
	d := &Driver{}
	assert.Error(t, d.Run(context.Background(), Timeline{{Progress: 0, Repeat: 1}}))
}

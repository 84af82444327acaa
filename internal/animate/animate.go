// Package animate wires the pipeline together: load and prepare the source
// image, build the compositor and timeline, then drive frames into a sink.
package animate

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/linuxmatters/vmaganimate/internal/config"
	"github.com/linuxmatters/vmaganimate/internal/easing"
	"github.com/linuxmatters/vmaganimate/internal/encoder"
	"github.com/linuxmatters/vmaganimate/internal/renderer"
	"github.com/linuxmatters/vmaganimate/internal/sequence"
	"github.com/linuxmatters/vmaganimate/internal/source"
)

// Job is a validated configuration with its source image prepared
type Job struct {
	Config     config.Config
	Source     *source.Image
	Compositor *renderer.Compositor
	// Timeline is nil for still output
	Timeline sequence.Timeline

	OriginalWidth  int
	OriginalHeight int
}

// SinkFactory opens the destination for a job
type SinkFactory func(ctx context.Context, job *Job) (encoder.Sink, error)

// Options tunes a run
type Options struct {
	// Observer receives an event after every written step
	Observer sequence.Observer
	// Stderr receives ffmpeg's diagnostics; nil discards them
	Stderr io.Writer
	// NewSink replaces the default still writer or ffmpeg encoder
	NewSink SinkFactory
}

// Result summarises a finished run
type Result struct {
	Frames  int
	Command []string // Empty for still output
	Elapsed time.Duration
}

// NewJob validates cfg and prepares everything rendering needs. The source
// image is decoded and fitted to the aspect ratio exactly once, here.
func NewJob(cfg config.Config) (*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	orig, err := source.Load(cfg.Input)
	if err != nil {
		return nil, err
	}

	src, err := source.Prepare(orig, cfg.CenterRow, cfg.Aspect, cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("preparing %s: %w", cfg.Input, err)
	}

	overlays := renderer.Overlays{
		Credit: cfg.Credit,
		Color:  cfg.Overlay.Color,
		Margin: cfg.Overlay.Margin,
	}
	if cfg.Percentage {
		overlays.PercentFace, err = renderer.PercentFace(cfg.Overlay.PercentFont, cfg.Overlay.PercentFontSize)
		if err != nil {
			return nil, fmt.Errorf("percentage font: %w", err)
		}
	}
	if cfg.Credit != "" {
		overlays.CreditFace, err = renderer.CreditFace(cfg.Overlay.CreditFont, cfg.Overlay.CreditFontSize)
		if err != nil {
			return nil, fmt.Errorf("credit font: %w", err)
		}
	}

	layout := renderer.Layout{
		OutputWidth:   cfg.Width,
		OutputHeight:  cfg.Height(),
		Magnification: cfg.Magnification,
		Curve:         easing.Curve{Exponent: cfg.EasingExponent},
	}
	comp, err := renderer.NewCompositor(src, layout, overlays)
	if err != nil {
		return nil, err
	}

	job := &Job{
		Config:         cfg,
		Source:         src,
		Compositor:     comp,
		OriginalWidth:  orig.Bounds().Dx(),
		OriginalHeight: orig.Bounds().Dy(),
	}

	if cfg.Mode() != config.ModeStill {
		job.Timeline, err = sequence.Build(cfg.WaitFrames(), cfg.StretchFrames())
		if err != nil {
			return nil, &config.ConfigError{Field: "transition", Err: err}
		}
	}
	return job, nil
}

// Still reports whether the job writes a single image instead of a video
func (j *Job) Still() bool {
	return j.Timeline == nil
}

// Frames is the number of frames the sink will receive
func (j *Job) Frames() int {
	if j.Still() {
		return 1
	}
	return j.Timeline.Frames()
}

// Run renders the job. Still output renders the fully zoomed frame once and
// never starts an encoder.
func (j *Job) Run(ctx context.Context, opts Options) (*Result, error) {
	startTime := time.Now()
	newSink := opts.NewSink
	if newSink == nil {
		newSink = j.defaultSink(opts.Stderr)
	}

	sink, err := newSink(ctx, j)
	if err != nil {
		return nil, err
	}

	result := &Result{Frames: j.Frames()}
	if enc, ok := sink.(*encoder.Encoder); ok {
		result.Command = enc.Command()
	}

	if j.Still() {
		err = j.writeStill(sink, opts.Observer)
	} else {
		d := &sequence.Driver{Source: j.Compositor, Sink: sink, Observer: opts.Observer}
		err = d.Run(ctx, j.Timeline)
	}
	if err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(startTime)
	return result, nil
}

func (j *Job) writeStill(sink encoder.Sink, observer sequence.Observer) error {
	frame, err := j.Compositor.Render(1)
	if err != nil {
		_ = sink.Close()
		return fmt.Errorf("rendering still: %w", err)
	}
	if err := sink.WriteFrame(frame.Image, 1); err != nil {
		_ = sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	if observer != nil {
		observer(sequence.Event{
			Steps:         1,
			Frame:         1,
			Frames:        1,
			Progress:      1,
			Magnification: frame.Magnification,
			Rendered:      true,
			Image:         frame.Image,
		})
	}
	return nil
}

// defaultSink writes stills directly and streams everything else to ffmpeg
func (j *Job) defaultSink(stderr io.Writer) SinkFactory {
	return func(ctx context.Context, job *Job) (encoder.Sink, error) {
		cfg := job.Config
		if job.Still() {
			return encoder.NewStillWriter(cfg.Output)
		}

		ffmpegPath, err := encoder.LookupFFmpeg(cfg.FFmpegPath)
		if err != nil {
			return nil, err
		}

		profile := encoder.ProfileFor(cfg.Mode())
		if err := encoder.CheckProfile(ctx, ffmpegPath, profile); err != nil {
			return nil, err
		}

		enc, err := encoder.New(encoder.Config{
			OutputPath: cfg.Output,
			FFmpegPath: ffmpegPath,
			Framerate:  cfg.EffectiveFPS(),
			Profile:    profile,
			Stderr:     stderr,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create encoder: %w", err)
		}
		if err := enc.Start(ctx); err != nil {
			return nil, err
		}
		return enc, nil
	}
}

// Run is NewJob followed by Job.Run
func Run(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	job, err := NewJob(cfg)
	if err != nil {
		return nil, err
	}
	return job.Run(ctx, opts)
}

package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Config holds the encoder configuration
type Config struct {
	OutputPath string  // Path to the output video
	FFmpegPath string  // Encoder binary, resolved through PATH
	Framerate  int     // Frames per second, applied to input and output
	Profile    Profile // Codec arguments for the container

	// Stderr receives ffmpeg's diagnostics as they are written. The tail is
	// always kept for EncoderError regardless.
	Stderr io.Writer
}

// EncoderError reports an ffmpeg process that exited unsuccessfully
type EncoderError struct {
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *EncoderError) Error() string {
	msg := fmt.Sprintf("encoder exited with status %d: %s", e.ExitCode, strings.Join(e.Command, " "))
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *EncoderError) Unwrap() error {
	return e.Err
}

// Encoder streams PNG frames into an ffmpeg process
type Encoder struct {
	config Config
	args   []string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *tailBuffer

	buf     bytes.Buffer
	png     png.Encoder
	frames  int
	closed  bool
	closeMu sync.Mutex
	waitErr error
}

// New creates a new encoder instance
func New(config Config) (*Encoder, error) {
	if config.Framerate <= 0 {
		return nil, fmt.Errorf("invalid framerate: %d", config.Framerate)
	}
	if config.OutputPath == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}
	if config.FFmpegPath == "" {
		return nil, fmt.Errorf("ffmpeg path cannot be empty")
	}

	return &Encoder{
		config: config,
		args:   BuildArgs(config.Profile, config.Framerate, config.OutputPath),
		png:    png.Encoder{CompressionLevel: png.BestSpeed, BufferPool: &bufferPool{}},
	}, nil
}

// Command returns the full command line the encoder runs
func (e *Encoder) Command() []string {
	return append([]string{e.config.FFmpegPath}, e.args...)
}

// Frames is the number of frames written so far, counting repeats
func (e *Encoder) Frames() int {
	return e.frames
}

// Start launches ffmpeg. Cancelling ctx kills the process.
func (e *Encoder) Start(ctx context.Context) error {
	if e.cmd != nil {
		return errors.New("encoder already started")
	}

	cmd := exec.CommandContext(ctx, e.config.FFmpegPath, e.args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	e.stderr = newTailBuffer(4096)
	if e.config.Stderr != nil {
		cmd.Stderr = io.MultiWriter(e.config.Stderr, e.stderr)
	} else {
		cmd.Stderr = e.stderr
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	return nil
}

// WriteFrame PNG-encodes img once and writes the bytes repeat times. Writes
// block while ffmpeg's pipe is full.
func (e *Encoder) WriteFrame(img image.Image, repeat int) error {
	if e.cmd == nil {
		return errors.New("encoder not started")
	}
	if e.closed {
		return errors.New("encoder closed")
	}
	if repeat <= 0 {
		return nil
	}

	e.buf.Reset()
	if err := e.png.Encode(&e.buf, img); err != nil {
		return fmt.Errorf("encoding frame %d: %w", e.frames, err)
	}

	data := e.buf.Bytes()
	for i := 0; i < repeat; i++ {
		if _, err := e.stdin.Write(data); err != nil {
			// A broken pipe means ffmpeg died; its exit status explains why
			if cerr := e.Close(); cerr != nil {
				return cerr
			}
			return fmt.Errorf("writing frame %d: %w", e.frames, err)
		}
		e.frames++
	}
	return nil
}

// Close closes ffmpeg's stdin and waits for it to finish
func (e *Encoder) Close() error {
	e.closeMu.Lock()
	defer e.closeMu.Unlock()

	if e.closed {
		return e.waitErr
	}
	e.closed = true
	if e.cmd == nil {
		return nil
	}

	// stdin must be closed before Wait or ffmpeg never sees EOF
	closeErr := e.stdin.Close()

	if err := e.cmd.Wait(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		e.waitErr = &EncoderError{
			Command:  e.Command(),
			ExitCode: code,
			Stderr:   strings.TrimSpace(e.stderr.String()),
			Err:      err,
		}
		return e.waitErr
	}

	if closeErr != nil && !errors.Is(closeErr, io.ErrClosedPipe) {
		e.waitErr = fmt.Errorf("closing ffmpeg stdin: %w", closeErr)
	}
	return e.waitErr
}

// bufferPool lets the PNG encoder reuse its scratch buffers between frames
type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *bufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}

// tailBuffer keeps the last max bytes written to it
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}

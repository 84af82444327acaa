package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"
)

// Video settings
const (
	DefaultWidth  = 1920
	DefaultFPS    = 30
	DefaultAspect = 16.0 / 9.0

	// GIFFrameDivisor reduces the frame rate of animated GIF output
	GIFFrameDivisor = 3
)

// Timing settings (seconds)
const (
	DefaultWaitSeconds    = 1.0
	DefaultStretchSeconds = 1.5
	DefaultEasingExponent = 3.0
)

// Overlay layout, as divisors of the output width
const (
	MarginDivisor          = 25 // Margin from the frame edges
	PercentFontSizeDivisor = 10 // Magnification label
	CreditFontSizeDivisor  = 20 // Credit label
)

// DefaultFFmpeg is the encoder binary looked up on PATH
const DefaultFFmpeg = "ffmpeg"

// Mode is the kind of output selected by the output file extension
type Mode int

const (
	ModeVideo Mode = iota // Streamed to ffmpeg with encoder defaults
	ModeStill             // Single frame at full magnification
	ModeGIF               // Animated GIF at a reduced frame rate
	ModeMKV               // Lossless FFV1 with alpha
	ModeMP4               // H.264-compatible yuv420p
)

func (m Mode) String() string {
	switch m {
	case ModeStill:
		return "still"
	case ModeGIF:
		return "gif"
	case ModeMKV:
		return "mkv"
	case ModeMP4:
		return "mp4"
	default:
		return "video"
	}
}

// ModeFor selects the output mode from a path's extension
func ModeFor(path string) Mode {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return ModeStill
	case ".gif":
		return ModeGIF
	case ".mkv":
		return ModeMKV
	case ".mp4":
		return ModeMP4
	default:
		return ModeVideo
	}
}

// Overlay holds the text overlay appearance.
// Font paths are optional; the embedded Go fonts are used when empty.
type Overlay struct {
	Margin          int
	PercentFontSize float64
	CreditFontSize  float64
	PercentFont     string
	CreditFont      string
	Color           color.NRGBA
}

// Config is the immutable description of one animation run.
// Build it with Default, adjust fields, then call Validate before use.
type Config struct {
	Input  string
	Output string

	// Magnification is the target zoom factor (1.5 for 150%)
	Magnification float64
	// CenterRow is the focal row in original image pixels, or -1 for the vertical centre
	CenterRow int

	Percentage bool
	Credit     string
	Background color.NRGBA

	Width          int
	Aspect         float64
	FPS            int
	WaitSeconds    float64
	StretchSeconds float64
	EasingExponent float64

	Overlay Overlay

	FFmpegPath string
}

// Default returns a configuration carrying the stock constants
func Default() Config {
	return Config{
		CenterRow:      -1,
		Background:     color.NRGBA{},
		Width:          DefaultWidth,
		Aspect:         DefaultAspect,
		FPS:            DefaultFPS,
		WaitSeconds:    DefaultWaitSeconds,
		StretchSeconds: DefaultStretchSeconds,
		EasingExponent: DefaultEasingExponent,
		Overlay: Overlay{
			Margin:          DefaultWidth / MarginDivisor,
			PercentFontSize: float64(DefaultWidth / PercentFontSizeDivisor),
			CreditFontSize:  float64(DefaultWidth / CreditFontSizeDivisor),
			Color:           color.NRGBA{R: 255, G: 255, A: 255},
		},
		FFmpegPath: DefaultFFmpeg,
	}
}

// SetWidth changes the output width and rescales the overlay layout with it
func (c *Config) SetWidth(width int) {
	c.Width = width
	c.Overlay.Margin = width / MarginDivisor
	c.Overlay.PercentFontSize = float64(width / PercentFontSizeDivisor)
	c.Overlay.CreditFontSize = float64(width / CreditFontSizeDivisor)
}

// Height is the output height derived from the width and aspect ratio
func (c Config) Height() int {
	return int(float64(c.Width) / c.Aspect)
}

// Mode returns the output mode for the configured output path
func (c Config) Mode() Mode {
	return ModeFor(c.Output)
}

// EffectiveFPS is the frame rate actually rendered; GIF output runs slower
func (c Config) EffectiveFPS() int {
	if c.Mode() == ModeGIF {
		return c.FPS / GIFFrameDivisor
	}
	return c.FPS
}

// WaitFrames is the number of frames in each hold segment
func (c Config) WaitFrames() int {
	return int(math.Round(c.WaitSeconds * float64(c.EffectiveFPS())))
}

// StretchFrames is the number of frame intervals in each ramp segment
func (c Config) StretchFrames() int {
	return int(math.Round(c.StretchSeconds * float64(c.EffectiveFPS())))
}

// TotalFrames is the number of frames the encoder receives
func (c Config) TotalFrames() int {
	if c.Mode() == ModeStill {
		return 1
	}
	wait := max(c.WaitFrames(), 0)
	return 2*wait + max(wait-1, 0) + 2*c.StretchFrames() + 1
}

// ConfigError reports a missing or invalid setting
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

// ErrRequired marks a required setting that was not supplied
var ErrRequired = errors.New("is required")

// Validate checks every invariant the pipeline relies on
func (c Config) Validate() error {
	if c.Input == "" {
		return &ConfigError{Field: "input", Err: ErrRequired}
	}
	if c.Output == "" {
		return &ConfigError{Field: "output", Err: ErrRequired}
	}
	if c.Magnification == 0 {
		return &ConfigError{Field: "magnification", Err: ErrRequired}
	}
	if c.Magnification <= 1 || math.IsNaN(c.Magnification) || math.IsInf(c.Magnification, 0) {
		return invalid("magnification", "%.0f%% must be greater than 100%%", c.Magnification*100)
	}
	if c.CenterRow < -1 {
		return invalid("center", "row %d must not be negative", c.CenterRow)
	}
	if c.Width <= 0 {
		return invalid("width", "%d must be positive", c.Width)
	}
	if c.Aspect <= 0 || math.IsNaN(c.Aspect) || math.IsInf(c.Aspect, 0) {
		return invalid("aspect", "%v must be positive", c.Aspect)
	}
	if c.Height() <= 0 {
		return invalid("aspect", "%v leaves no output height at width %d", c.Aspect, c.Width)
	}
	if c.EasingExponent <= 0 {
		return invalid("easing", "exponent %v must be positive", c.EasingExponent)
	}
	if c.Overlay.Margin < 0 {
		return invalid("margin", "%d must not be negative", c.Overlay.Margin)
	}
	if c.Percentage && c.Overlay.PercentFontSize <= 0 {
		return invalid("percent_font_size", "%v must be positive", c.Overlay.PercentFontSize)
	}
	if c.Credit != "" && c.Overlay.CreditFontSize <= 0 {
		return invalid("credit_font_size", "%v must be positive", c.Overlay.CreditFontSize)
	}

	// Timing only matters when frames are streamed
	if c.Mode() == ModeStill {
		return nil
	}
	if c.FPS <= 0 {
		return invalid("fps", "%d must be positive", c.FPS)
	}
	if c.EffectiveFPS() <= 0 {
		return invalid("fps", "%d is too low for %s output", c.FPS, c.Mode())
	}
	if c.WaitSeconds < 0 {
		return invalid("hold", "%vs must not be negative", c.WaitSeconds)
	}
	if c.StretchFrames() < 1 {
		return invalid("transition", "%vs at %d fps yields no frames", c.StretchSeconds, c.EffectiveFPS())
	}
	if c.FFmpegPath == "" {
		return &ConfigError{Field: "ffmpeg", Err: ErrRequired}
	}
	return nil
}

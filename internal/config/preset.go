package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is the YAML form of the animation constants. Every field is
// optional; unset fields keep the value already present in the Config.
type Preset struct {
	Width      *int     `yaml:"width"`
	Aspect     string   `yaml:"aspect"`
	FPS        *int     `yaml:"fps"`
	Hold       *float64 `yaml:"hold"`
	Transition *float64 `yaml:"transition"`
	Easing     *float64 `yaml:"easing"`
	Background string   `yaml:"background"`
	FFmpeg     string   `yaml:"ffmpeg"`

	Overlay struct {
		Margin          *int     `yaml:"margin"`
		PercentFontSize *float64 `yaml:"percent_font_size"`
		CreditFontSize  *float64 `yaml:"credit_font_size"`
		PercentFont     string   `yaml:"percent_font"`
		CreditFont      string   `yaml:"credit_font"`
		Color           string   `yaml:"color"`
	} `yaml:"overlay"`
}

// LoadPreset reads a YAML preset from disk
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Field: "config", Err: err}
	}
	return ParsePreset(data)
}

// ParsePreset decodes a YAML preset, rejecting unknown keys
func ParsePreset(data []byte) (*Preset, error) {
	var p Preset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Field: "config", Err: err}
	}
	return &p, nil
}

// Apply overlays the preset onto cfg. A width change rescales the overlay
// layout first so explicit overlay sizes in the same preset still win.
func (p *Preset) Apply(cfg *Config) error {
	if p.Width != nil {
		cfg.SetWidth(*p.Width)
	}
	if p.Aspect != "" {
		aspect, err := ParseAspect(p.Aspect)
		if err != nil {
			return &ConfigError{Field: "aspect", Err: err}
		}
		cfg.Aspect = aspect
	}
	if p.FPS != nil {
		cfg.FPS = *p.FPS
	}
	if p.Hold != nil {
		cfg.WaitSeconds = *p.Hold
	}
	if p.Transition != nil {
		cfg.StretchSeconds = *p.Transition
	}
	if p.Easing != nil {
		cfg.EasingExponent = *p.Easing
	}
	if p.Background != "" {
		c, err := ParseColor(p.Background)
		if err != nil {
			return &ConfigError{Field: "background", Err: err}
		}
		cfg.Background = c
	}
	if p.FFmpeg != "" {
		cfg.FFmpegPath = p.FFmpeg
	}

	o := p.Overlay
	if o.Margin != nil {
		cfg.Overlay.Margin = *o.Margin
	}
	if o.PercentFontSize != nil {
		cfg.Overlay.PercentFontSize = *o.PercentFontSize
	}
	if o.CreditFontSize != nil {
		cfg.Overlay.CreditFontSize = *o.CreditFontSize
	}
	if o.PercentFont != "" {
		cfg.Overlay.PercentFont = o.PercentFont
	}
	if o.CreditFont != "" {
		cfg.Overlay.CreditFont = o.CreditFont
	}
	if o.Color != "" {
		c, err := ParseColor(o.Color)
		if err != nil {
			return &ConfigError{Field: "overlay.color", Err: err}
		}
		cfg.Overlay.Color = c
	}
	return nil
}

// ParseAspect accepts "W:H", "W/H" or a plain ratio such as "1.7778"
func ParseAspect(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{":", "/"} {
		if w, h, ok := strings.Cut(s, sep); ok {
			wf, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
			if err != nil {
				return 0, fmt.Errorf("invalid aspect %q", s)
			}
			hf, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
			if err != nil || hf == 0 {
				return 0, fmt.Errorf("invalid aspect %q", s)
			}
			if wf <= 0 || hf < 0 {
				return 0, fmt.Errorf("aspect %q must be positive", s)
			}
			return wf / hf, nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid aspect %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("aspect %q must be positive", s)
	}
	return v, nil
}

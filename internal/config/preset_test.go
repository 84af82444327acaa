package config

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset_AppliesEveryField(t *testing.T) {
	preset, err := ParsePreset([]byte(`
width: 1280
aspect: "4:3"
fps: 24
hold: 0.5
transition: 2
easing: 4
background: black
ffmpeg: /opt/ffmpeg/bin/ffmpeg
overlay:
  margin: 10
  credit_font_size: 30
  credit_font: /fonts/Barlow.ttf
  color: "#ffffff"
`))
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, preset.Apply(&cfg))

	assert.Equal(t, 1280, cfg.Width)
	assert.InDelta(t, 4.0/3.0, cfg.Aspect, 1e-12)
	assert.Equal(t, 960, cfg.Height())
	assert.Equal(t, 24, cfg.FPS)
	assert.Equal(t, 0.5, cfg.WaitSeconds)
	assert.Equal(t, 2.0, cfg.StretchSeconds)
	assert.Equal(t, 4.0, cfg.EasingExponent)
	assert.Equal(t, color.NRGBA{A: 255}, cfg.Background)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)

	// Explicit overlay values win over the width-derived ones
	assert.Equal(t, 10, cfg.Overlay.Margin)
	assert.Equal(t, 30.0, cfg.Overlay.CreditFontSize)
	// Unset overlay values follow the new width
	assert.Equal(t, 128.0, cfg.Overlay.PercentFontSize)
	assert.Equal(t, "/fonts/Barlow.ttf", cfg.Overlay.CreditFont)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, cfg.Overlay.Color)
}

func TestParsePreset_Empty(t *testing.T) {
	preset, err := ParsePreset(nil)
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, preset.Apply(&cfg))
	assert.Equal(t, Default(), cfg)
}

func TestParsePreset_RejectsUnknownKeys(t *testing.T) {
	_, err := ParsePreset([]byte("framerate: 60\n"))
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "want *ConfigError, got %v", err)
	assert.Equal(t, "config", cfgErr.Field)
}

func TestPresetApply_BadColour(t *testing.T) {
	preset, err := ParsePreset([]byte("background: notacolour\n"))
	require.NoError(t, err)

	cfg := Default()
	err = preset.Apply(&cfg)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "background", cfgErr.Field)
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 60\n"), 0o644))

	preset, err := LoadPreset(path)
	require.NoError(t, err)
	require.NotNil(t, preset.FPS)
	assert.Equal(t, 60, *preset.FPS)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseAspect(t *testing.T) {
	testCases := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "16:9", want: 16.0 / 9.0},
		{input: "9/16", want: 9.0 / 16.0},
		{input: " 4 : 3 ", want: 4.0 / 3.0},
		{input: "2.35", want: 2.35},
		{input: "16:0", wantErr: true},
		{input: "0:9", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "wide", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseAspect(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

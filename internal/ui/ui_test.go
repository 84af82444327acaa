package ui

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() JobInfo {
	return JobInfo{
		Input:         "photo.jpg",
		Output:        "zoom.mkv",
		Mode:          "mkv",
		Width:         1920,
		Height:        1080,
		FPS:           30,
		Magnification: 2,
	}
}

func TestDownsampleFrame_Averages(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 2))
	// Left half red, right half blue
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 2 {
				c = color.RGBA{B: 255, A: 255}
			}
			frame.SetRGBA(x, y, c)
		}
	}

	preview := DownsampleFrame(frame, PreviewConfig{Width: 2, Height: 1})
	require.Len(t, preview, 1)
	require.Len(t, preview[0], 2)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, preview[0][0])
	assert.Equal(t, color.RGBA{B: 255, A: 255}, preview[0][1])
}

func TestDownsampleFrame_SmallerThanPreview(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 3, 2))
	frame.SetRGBA(2, 1, color.RGBA{G: 200, A: 255})

	preview := DownsampleFrame(frame, DefaultPreviewConfig())
	require.Len(t, preview, 18)
	for _, row := range preview {
		require.Len(t, row, 64)
	}
	assert.Equal(t, color.RGBA{G: 200, A: 255}, preview[17][63])
}

func TestDownsampleFrame_Nil(t *testing.T) {
	assert.Nil(t, DownsampleFrame(nil, DefaultPreviewConfig()))
}

func TestRenderPreview(t *testing.T) {
	out := RenderPreview([][]color.RGBA{{{R: 1, G: 2, B: 3, A: 255}, {R: 4, G: 5, B: 6, A: 255}}})
	assert.Contains(t, out, "\x1b[48;2;1;2;3m \x1b[0m")
	assert.Contains(t, out, "\x1b[48;2;4;5;6m \x1b[0m")
	assert.Contains(t, out, "┌──┐")
	assert.Equal(t, "", RenderPreview(nil))
}

func TestModel_ProgressView(t *testing.T) {
	m := NewModel(testInfo(), true)
	assert.Contains(t, m.View(), "Starting render")

	_, cmd := m.Update(RenderProgress{Frame: 45, TotalFrames: 180, Magnification: 1.5, Elapsed: time.Second})
	assert.Nil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "25%")
	assert.Contains(t, view, "Frame 45 of 180")
	assert.Contains(t, view, "Zoom  150%")
	assert.NotContains(t, view, "Frame Preview", "preview disabled")
}

func TestModel_PreviewCached(t *testing.T) {
	m := NewModel(testInfo(), false)
	frame := image.NewRGBA(image.Rect(0, 0, 64, 36))

	m.Update(RenderProgress{Frame: 1, TotalFrames: 10, Magnification: 1, FrameData: frame})
	assert.Contains(t, m.View(), "Frame Preview")
	cached := m.cachedPreview

	// Same frame number reuses the cached preview
	m.Update(RenderProgress{Frame: 1, TotalFrames: 10, Magnification: 1})
	m.View()
	assert.Equal(t, cached, m.cachedPreview)
}

func TestModel_Complete(t *testing.T) {
	m := NewModel(testInfo(), true)
	assert.Empty(t, m.CompletionSummary())

	_, cmd := m.Update(RenderComplete{OutputFile: "zoom.mkv", FileSize: 2048, TotalFrames: 180, TotalTime: 3 * time.Second})
	require.NotNil(t, cmd, "completion schedules the quit timer")

	summary := m.CompletionSummary()
	assert.Contains(t, summary, "Render Complete")
	assert.Contains(t, summary, "zoom.mkv")
	assert.Contains(t, summary, "180 frames, 6.0s at 30 fps")
	assert.Contains(t, summary, "2.0 KB")
	assert.Equal(t, summary, m.View())
}

func TestModel_CtrlCInterrupts(t *testing.T) {
	m := NewModel(testInfo(), true)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.Interrupted())
}

func TestModel_Failed(t *testing.T) {
	m := NewModel(testInfo(), true)
	_, cmd := m.Update(RenderFailed{Err: errors.New("boom")})
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
	assert.False(t, m.Interrupted())
}

func TestMakeGradientBar_Clamps(t *testing.T) {
	assert.Equal(t, 10, strings.Count(makeGradientBar(2, 10), "█"))
	assert.Equal(t, 0, strings.Count(makeGradientBar(-1, 10), "█"))
	assert.Equal(t, 5, strings.Count(makeGradientBar(0.5, 10), "█"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "0s", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "1.0 MB", formatBytes(1024*1024))
}

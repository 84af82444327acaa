package ui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/vmaganimate/internal/cli"
)

// JobInfo describes the render shown in the header
type JobInfo struct {
	Input         string
	Output        string
	Mode          string
	Width         int
	Height        int
	FPS           int
	Magnification float64
}

// RenderProgress is sent after every timeline step is written
type RenderProgress struct {
	Frame         int
	TotalFrames   int
	Progress      float64 // Timeline position in [0,1]
	Magnification float64
	Elapsed       time.Duration
	FrameData     *image.RGBA // Current frame for the preview (optional)
}

// RenderComplete signals the output file is finished
type RenderComplete struct {
	OutputFile  string
	FileSize    int64
	TotalFrames int
	TotalTime   time.Duration
	Command     string // Encoder command line, empty for stills
}

// RenderFailed stops the UI after an error; the caller reports it
type RenderFailed struct {
	Err error
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// Model implements the Bubbletea model for a render
type Model struct {
	progressBar progress.Model
	info        JobInfo
	state       RenderProgress
	complete    *RenderComplete
	failed      error

	startTime time.Time

	// UI state
	width           int
	height          int
	noPreview       bool
	cachedPreview   string
	cachedFrameNum  int
	completionDelay time.Duration
	interrupted     bool
}

// NewModel creates a new progress UI model
func NewModel(info JobInfo, noPreview bool) *Model {
	// Lens gradient: blue → yellow
	p := progress.New(
		progress.WithGradient(string(cli.LensBlue), string(cli.LensYellow)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		info:            info,
		startTime:       time.Now(),
		cachedFrameNum:  -1,
		completionDelay: 2 * time.Second,
		noPreview:       noPreview,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = max(min(msg.Width-30, 50), 10)
		return m, nil

	case RenderProgress:
		m.state = msg
		return m, nil

	case RenderComplete:
		m.complete = &msg
		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case RenderFailed:
		m.failed = msg.Err
		return m, tea.Quit

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// Interrupted reports whether the user pressed Ctrl+C before completion
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// View renders the UI
func (m *Model) View() string {
	if m.complete != nil {
		return m.renderComplete()
	}
	if m.failed != nil {
		return ""
	}
	return m.renderProgress()
}

// CompletionSummary returns the final summary for printing after the program exits.
// Returns empty string if rendering is not complete.
func (m *Model) CompletionSummary() string {
	if m.complete == nil {
		return ""
	}
	return m.renderComplete()
}

func (m *Model) renderHeader(s *strings.Builder) {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.LensYellow).
		Render("vmaganimate 🔍")

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(cli.LensAmber).Render(
		fmt.Sprintf("Zooming to %.0f%%: %s → %s", m.info.Magnification*100, m.info.Input, m.info.Output)))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("%s  │  %d×%d  │  %d fps", m.info.Mode, m.info.Width, m.info.Height, m.info.FPS)))
	s.WriteString("\n\n")
}

func (m *Model) renderProgress() string {
	var s strings.Builder
	m.renderHeader(&s)

	if m.state.TotalFrames == 0 {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Starting render..."))
		return m.frame(s.String(), cli.LensBlue)
	}

	percent := float64(m.state.Frame) / float64(m.state.TotalFrames)
	s.WriteString("Progress: ")
	s.WriteString(m.progressBar.ViewAs(percent))
	s.WriteString(fmt.Sprintf("  %d%%", int(percent*100)))
	s.WriteString("\n\n")

	// Timing information
	elapsed := m.state.Elapsed
	if elapsed == 0 {
		elapsed = time.Since(m.startTime)
	}

	var estimatedTotal, eta time.Duration
	var rate float64
	if percent > 0 {
		estimatedTotal = time.Duration(float64(elapsed) / percent)
		eta = estimatedTotal - elapsed
		if elapsed > 0 {
			rate = float64(m.state.Frame) / elapsed.Seconds()
		}
	}

	timingInfo := fmt.Sprintf("Time: %s / %s  │  Speed: %.1f frames/s  │  ETA: %s",
		formatDuration(elapsed),
		formatDuration(estimatedTotal),
		rate,
		formatDuration(eta))
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(timingInfo))
	s.WriteString("\n")

	phaseStyle := lipgloss.NewStyle().Faint(true).Italic(true)
	s.WriteString(phaseStyle.Render(fmt.Sprintf("Frame %d of %d", m.state.Frame, m.state.TotalFrames)))
	s.WriteString("\n\n")

	// Zoom meter: how far along the magnification is
	zoom := 0.0
	if m.info.Magnification > 1 {
		zoom = (m.state.Magnification - 1) / (m.info.Magnification - 1)
	}
	s.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("Zoom %4.0f%%  ", m.state.Magnification*100)))
	s.WriteString(makeGradientBar(zoom, 30))
	s.WriteString("\n")

	if !m.noPreview {
		// Regenerate only when a new frame arrived; the cache prevents flicker
		if m.state.FrameData != nil && m.state.Frame != m.cachedFrameNum {
			preview := DownsampleFrame(m.state.FrameData, DefaultPreviewConfig())
			m.cachedPreview = RenderPreview(preview)
			m.cachedFrameNum = m.state.Frame
		}
		if m.cachedPreview != "" {
			s.WriteString("\n")
			s.WriteString(m.cachedPreview)
		}
	}

	return m.frame(s.String(), cli.LensBlue)
}

func (m *Model) renderComplete() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.LensYellow).
		Render("✓ Render Complete!")

	s.WriteString(title)
	s.WriteString("\n\n")

	dimLabel := lipgloss.NewStyle().Faint(true)

	s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Output:   "), m.complete.OutputFile))
	s.WriteString(fmt.Sprintf("%s%d×%d, %s\n", dimLabel.Render("Format:   "), m.info.Width, m.info.Height, m.info.Mode))

	if m.complete.TotalFrames > 1 && m.info.FPS > 0 {
		videoDuration := time.Duration(m.complete.TotalFrames) * time.Second / time.Duration(m.info.FPS)
		s.WriteString(fmt.Sprintf("%s%d frames, %.1fs at %d fps\n",
			dimLabel.Render("Video:    "),
			m.complete.TotalFrames,
			videoDuration.Seconds(),
			m.info.FPS))
	}
	s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Time:     "), formatDuration(m.complete.TotalTime)))
	s.WriteString(fmt.Sprintf("%s%s", dimLabel.Render("Size:     "), formatBytes(m.complete.FileSize)))
	if m.complete.Command != "" {
		s.WriteString("\n\n")
		s.WriteString(dimLabel.Render(m.complete.Command))
	}

	return m.frame(s.String(), cli.LensAmber) + "\n"
}

func (m *Model) frame(content string, border lipgloss.Color) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(content)
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[min(exp, len(units)-1)])
}

// makeGradientBar draws a blue-to-yellow bar filled to ratio
func makeGradientBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	filled = max(0, min(filled, width))

	gradientColors := []lipgloss.Color{
		cli.LensBlue,
		lipgloss.Color("#4FA3F7"),
		lipgloss.Color("#8CC3E8"),
		lipgloss.Color("#D9D98C"),
		cli.LensAmber,
		cli.LensYellow,
	}

	var result strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			pos := float64(i) / float64(width)
			colorIdx := min(int(pos*float64(len(gradientColors))), len(gradientColors)-1)
			result.WriteString(lipgloss.NewStyle().Foreground(gradientColors[colorIdx]).Render("█"))
		} else {
			result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#2A2A2A")).Render("░"))
		}
	}
	return result.String()
}

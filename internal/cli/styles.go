package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	appName        = "vmaganimate 🔍"
	appDescription = "Turn a still image into a Ken Burns zoom: ease in to a magnified detail, hold, and ease back out."
)

// Color palette
var (
	primaryColor   = LensBlue
	accentColor    = LensAmber
	successColor   = lipgloss.Color("#00AA00") // Green
	errorColor     = lipgloss.Color("#D32F2F") // Red
	mutedColor     = lipgloss.Color("#888888") // Gray
	highlightColor = LensYellow
	textColor      = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	// Title style - bold blue
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Subtitle style - muted gray
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Section header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1).
			MarginBottom(1)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// Printer writes styled messages; errors go to Err, everything else to Out
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// NewPrinter creates a printer for the given streams
func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{Out: out, Err: err}
}

// PrintBanner prints the application banner
func (p *Printer) PrintBanner() {
	fmt.Fprintln(p.Out, TitleStyle.Render(appName))
	fmt.Fprintln(p.Out, SubtitleStyle.Render(appDescription))
	fmt.Fprintln(p.Out)
}

// PrintVersion prints version information
func (p *Printer) PrintVersion(version string) {
	fmt.Fprintln(p.Out, TitleStyle.Render(appName))
	fmt.Fprintf(p.Out, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(p.Out)
}

// PrintError prints an error message
func (p *Printer) PrintError(message string) {
	fmt.Fprintf(p.Err, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func (p *Printer) PrintWarning(message string) {
	fmt.Fprintf(p.Out, "%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) {
	fmt.Fprintf(p.Out, "%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func (p *Printer) PrintInfo(key, value string) {
	fmt.Fprintf(p.Out, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func (p *Printer) PrintSection(title string) {
	fmt.Fprintln(p.Out, HeaderStyle.Render(title))
}

// PrintBox prints content in a styled box
func (p *Printer) PrintBox(content string) {
	fmt.Fprintln(p.Out, BoxStyle.Render(content))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatRate formats rendering throughput
func FormatRate(frames int, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f frames/s", float64(frames)/d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// PrintSummary prints the finished render in a box
func (p *Printer) PrintSummary(output, elapsed, rate, size, frames string) {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("✓ Render Complete!"))
	b.WriteString("\n\n")

	b.WriteString(KeyStyle.Render("Output:    "))
	b.WriteString(ValueStyle.Render(output))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Time:      "))
	b.WriteString(ValueStyle.Render(elapsed))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Speed:     "))
	b.WriteString(ValueStyle.Render(rate))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("File Size: "))
	b.WriteString(ValueStyle.Render(size))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Frames:    "))
	b.WriteString(ValueStyle.Render(frames))

	p.PrintBox(b.String())
}

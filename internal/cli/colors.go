package cli

import "github.com/charmbracelet/lipgloss"

// Lens colour palette
// Shared colours for consistent branding across CLI and TUI
var (
	// Core colours (bright to deep), matching the default overlay yellow
	LensYellow = lipgloss.Color("#FFFF00") // Overlay yellow
	LensAmber  = lipgloss.Color("#FFC107") // Amber
	LensBlue   = lipgloss.Color("#1E90FF") // Dodger blue

	// Accent colours
	SlateGray = lipgloss.Color("#8A9BA8") // Subtle text
)

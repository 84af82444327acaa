package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles - lens theme
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(LensYellow).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(LensAmber).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(LensAmber).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(LensYellow).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(SlateGray).
				Italic(true)
)

// StyledHelpPrinter creates a custom help printer with Lipgloss styling
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return kong.HelpPrinter(func(options kong.HelpOptions, ctx *kong.Context) error {
		fmt.Fprint(ctx.Stdout, RenderHelp(ctx.Model))
		return nil
	})
}

// RenderHelp formats the usage text for app. Parse errors print it too, so
// it does not depend on a parsed context.
func RenderHelp(app *kong.Application) string {
	var sb strings.Builder

	// Title and description
	sb.WriteString(helpTitleStyle.Render(appName))
	sb.WriteString("\n")
	sb.WriteString(helpDescStyle.Render(appDescription))
	sb.WriteString("\n")

	// Usage
	sb.WriteString(helpSectionStyle.Render("Usage:"))
	sb.WriteString("\n  ")
	sb.WriteString(fmt.Sprintf("%s -i <image> -o <output> -m <percent> [flags]", app.Name))
	sb.WriteString("\n")

	// Flags section
	flags := getFlags(app)
	if len(flags) > 0 {
		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, flag := range flags {
			sb.WriteString("  ")
			sb.WriteString(helpFlagStyle.Render(flag.flags))
			if flag.help != "" {
				sb.WriteString("  ")
				sb.WriteString(flag.help)
			}
			if flag.defaultVal != "" {
				sb.WriteString(" ")
				sb.WriteString(helpDefaultStyle.Render("(default: " + flag.defaultVal + ")"))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render("Outputs:"))
	sb.WriteString("\n")
	sb.WriteString("  .mkv lossless FFV1 with alpha, .mp4 yuv420p, .gif at a third of the frame rate.\n")
	sb.WriteString("  .png, .jpg and .jpeg write only the fully zoomed frame.\n")
	sb.WriteString("\n")
	return sb.String()
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

func getFlags(app *kong.Application) []flag {
	var flags []flag

	// Always include help flag
	flags = append(flags, flag{
		flags: "-h, --help",
		help:  "Show context-sensitive help.",
	})

	// Parse flags from the model
	for _, f := range app.Node.Flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		flagStr := ""
		if f.Short != 0 {
			flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		} else {
			flagStr = fmt.Sprintf("--%s", f.Name)
		}

		if !f.IsBool() && f.PlaceHolder != "" {
			flagStr += "=" + strings.ToUpper(f.PlaceHolder)
		}

		// Only show default if it's a meaningful value (not empty, not type placeholder)
		defaultVal := ""
		if f.HasDefault && !f.IsBool() {
			val := f.Default
			if val != "" && val != "STRING" && val != "BOOL" {
				defaultVal = val
			}
		}

		flags = append(flags, flag{
			flags:      flagStr,
			help:       f.Help,
			defaultVal: defaultVal,
		})
	}

	return flags
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/vmaganimate/internal/animate"
	"github.com/linuxmatters/vmaganimate/internal/cli"
	"github.com/linuxmatters/vmaganimate/internal/config"
	"github.com/linuxmatters/vmaganimate/internal/sequence"
	"github.com/linuxmatters/vmaganimate/internal/ui"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // Image, font or encoder failure
	exitUsage   = 2 // Missing or invalid settings
)

// CLI is the command line. Required settings are checked by config.Validate
// so a missing flag and an invalid one are reported the same way.
type CLI struct {
	Input         string `short:"i" placeholder:"image" help:"Source image (required)."`
	Output        string `short:"o" placeholder:"file" help:"Output video (.mkv, .mp4, .gif, ...) or still (.png, .jpg) (required)."`
	Magnification int    `short:"m" placeholder:"percent" help:"Target magnification in percent, above 100 (required)."`
	Center        int    `short:"c" placeholder:"row" default:"-1" help:"Focal row in source image pixels; -1 is the vertical centre."`
	Percentage    bool   `short:"p" help:"Overlay the current magnification."`
	Credit        string `short:"r" placeholder:"text" help:"Overlay a credit line."`
	Background    string `short:"b" placeholder:"colour" help:"Padding colour: a name, #RGB, #RRGGBB or #RRGGBBAA. Transparent when unset."`
	Config        string `placeholder:"preset.yaml" help:"YAML preset overriding the built-in constants."`
	FPS           int    `name:"fps" placeholder:"n" help:"Frame rate; GIF output uses a third of it. Defaults to 30."`
	FFmpeg        string `name:"ffmpeg" placeholder:"path" help:"ffmpeg binary to run. Defaults to ffmpeg on PATH."`
	NoProgress    bool   `help:"Disable the interactive progress view."`
	NoPreview     bool   `help:"Disable the frame preview in the progress view."`
	Version       bool   `help:"Show version information."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, renders, and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	printer := cli.NewPrinter(stdout, stderr)

	var flags CLI
	exitCode := -1
	parser, err := kong.New(&flags,
		kong.Name("vmaganimate"),
		kong.Description("Ken Burns zoom animations from a single image."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
	if err != nil {
		printer.PrintError(err.Error())
		return exitFailure
	}

	if _, err := parser.Parse(args); err != nil {
		printer.PrintError(err.Error())
		fmt.Fprint(stderr, cli.RenderHelp(parser.Model))
		return exitUsage
	}
	if exitCode >= 0 {
		// --help already printed
		return exitCode
	}

	// Handle version flag
	if flags.Version {
		printer.PrintVersion(version)
		return exitOK
	}

	cfg, err := buildConfig(flags)
	if err != nil {
		return reportError(printer, parser, err)
	}

	job, err := animate.NewJob(cfg)
	if err != nil {
		return reportError(printer, parser, err)
	}
	if job.Still() && flags.FPS != 0 {
		printer.PrintWarning(fmt.Sprintf("--fps is ignored for still output %s", cfg.Output))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *animate.Result
	if useProgressView(stdout, flags.NoProgress) {
		result, err = runInteractive(ctx, job, stdout, flags.NoPreview)
	} else {
		result, err = runPlain(ctx, job, printer, stderr)
	}
	if err != nil {
		return reportError(printer, parser, err)
	}

	printer.PrintSuccess(fmt.Sprintf("Done! Output: %s (%d frames in %s)",
		cfg.Output, result.Frames, cli.FormatDuration(result.Elapsed)))
	return exitOK
}

// buildConfig layers the preset and then the flags over the defaults
func buildConfig(flags CLI) (config.Config, error) {
	cfg := config.Default()

	if flags.Config != "" {
		preset, err := config.LoadPreset(flags.Config)
		if err != nil {
			return cfg, err
		}
		if err := preset.Apply(&cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Input = flags.Input
	cfg.Output = flags.Output
	cfg.Magnification = float64(flags.Magnification) / 100
	cfg.CenterRow = flags.Center
	cfg.Percentage = flags.Percentage
	cfg.Credit = flags.Credit

	if flags.Background != "" {
		bg, err := config.ParseColor(flags.Background)
		if err != nil {
			return cfg, &config.ConfigError{Field: "background", Err: err}
		}
		cfg.Background = bg
	}
	if flags.FPS != 0 {
		cfg.FPS = flags.FPS
	}
	if flags.FFmpeg != "" {
		cfg.FFmpegPath = flags.FFmpeg
	}

	return cfg, cfg.Validate()
}

// reportError prints err and maps it to an exit code. Configuration
// problems also print the usage text.
func reportError(printer *cli.Printer, parser *kong.Kong, err error) int {
	printer.PrintError(err.Error())

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprint(printer.Err, cli.RenderHelp(parser.Model))
		return exitUsage
	}
	return exitFailure
}

// useProgressView reports whether stdout is a terminal that can host the TUI
func useProgressView(stdout io.Writer, disabled bool) bool {
	if disabled {
		return false
	}
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func describeJob(job *animate.Job) []string {
	cfg := job.Config
	src := job.Source

	fit := "matches output aspect"
	switch {
	case src.Padded():
		fit = fmt.Sprintf("padded by %d rows of %s top and bottom", src.Offset, config.FormatColor(cfg.Background))
	case src.Cropped():
		fit = fmt.Sprintf("cropped by %d rows top and bottom", -src.Offset)
	}

	lines := []string{
		"Input", fmt.Sprintf("%s (%d×%d, %s)", cfg.Input, job.OriginalWidth, job.OriginalHeight, fit),
		"Output", fmt.Sprintf("%s (%d×%d, %s)", cfg.Output, cfg.Width, cfg.Height(), cfg.Mode()),
		"Zoom", fmt.Sprintf("%.0f%% centred at %.1f%% of the height", cfg.Magnification*100, src.CenterFraction*100),
	}
	if !job.Still() {
		lines = append(lines, "Frames", fmt.Sprintf("%d at %d fps", job.Frames(), cfg.EffectiveFPS()))
	}
	return lines
}

// runPlain renders with line-oriented output, for pipes and CI logs
func runPlain(ctx context.Context, job *animate.Job, printer *cli.Printer, stderr io.Writer) (*animate.Result, error) {
	printer.PrintBanner()
	printer.PrintSection("Settings")
	info := describeJob(job)
	for i := 0; i+1 < len(info); i += 2 {
		printer.PrintInfo(info[i], info[i+1])
	}

	// Report every quarter of the way through
	nextQuarter := 1
	observer := func(e sequence.Event) {
		for nextQuarter <= 4 && e.Frame*4 >= e.Frames*nextQuarter {
			printer.PrintInfo("Progress", fmt.Sprintf("%d%% (frame %d of %d)", nextQuarter*25, e.Frame, e.Frames))
			nextQuarter++
		}
	}

	result, err := job.Run(ctx, animate.Options{Observer: observer, Stderr: stderr})
	if err != nil {
		return nil, err
	}

	size := "-"
	if fi, err := os.Stat(job.Config.Output); err == nil {
		size = cli.FormatBytes(fi.Size())
	}
	printer.PrintSummary(job.Config.Output, cli.FormatDuration(result.Elapsed),
		cli.FormatRate(result.Frames, result.Elapsed), size, fmt.Sprintf("%d", result.Frames))
	return result, nil
}

// runInteractive renders on a goroutine while Bubbletea owns the terminal
func runInteractive(ctx context.Context, job *animate.Job, stdout io.Writer, noPreview bool) (*animate.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := job.Config
	model := ui.NewModel(ui.JobInfo{
		Input:         cfg.Input,
		Output:        cfg.Output,
		Mode:          cfg.Mode().String(),
		Width:         cfg.Width,
		Height:        cfg.Height(),
		FPS:           cfg.EffectiveFPS(),
		Magnification: cfg.Magnification,
	}, noPreview)
	p := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithContext(ctx))

	// ffmpeg's diagnostics would tear the TUI, so only the tail in
	// EncoderError is kept
	var result *animate.Result
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = job.Run(gctx, animate.Options{
			Observer: func(e sequence.Event) {
				p.Send(ui.RenderProgress{
					Frame:         e.Frame,
					TotalFrames:   e.Frames,
					Progress:      e.Progress,
					Magnification: e.Magnification,
					Elapsed:       time.Since(startTime),
					FrameData:     e.Image,
				})
			},
		})
		if err != nil {
			p.Send(ui.RenderFailed{Err: err})
			return err
		}

		var size int64
		if fi, err := os.Stat(cfg.Output); err == nil {
			size = fi.Size()
		}
		p.Send(ui.RenderComplete{
			OutputFile:  cfg.Output,
			FileSize:    size,
			TotalFrames: result.Frames,
			TotalTime:   result.Elapsed,
			Command:     strings.Join(result.Command, " "),
		})
		return nil
	})

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		cancel()
		_ = g.Wait()
		return nil, fmt.Errorf("running UI: %w", err)
	}

	// Ctrl+C in the UI stops rendering and ffmpeg with it
	if model.Interrupted() {
		cancel()
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if model.Interrupted() {
		return nil, context.Canceled
	}
	return result, nil
}

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type helpFixture struct {
	Input  string `short:"i" placeholder:"image" help:"Source image."`
	Frames int    `default:"30" help:"Frame rate."`
	Quiet  bool   `help:"No output."`
	Secret string `hidden:""`
}

func TestRenderHelp(t *testing.T) {
	var fixture helpFixture
	parser, err := kong.New(&fixture, kong.Name("vmaganimate"))
	require.NoError(t, err)

	help := RenderHelp(parser.Model)

	assert.Contains(t, help, "vmaganimate -i <image>")
	assert.Contains(t, help, "-h, --help")
	assert.Contains(t, help, "-i, --input=IMAGE")
	assert.Contains(t, help, "(default: 30)")
	assert.Contains(t, help, "--quiet")
	assert.NotContains(t, help, "--secret")
}

func TestPrinter_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	p.PrintInfo("Output", "zoom.mkv")
	p.PrintSuccess("done")
	p.PrintError("boom")

	assert.Contains(t, out.String(), "Output:")
	assert.Contains(t, out.String(), "zoom.mkv")
	assert.Contains(t, out.String(), "done")
	assert.NotContains(t, out.String(), "boom")
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "boom")
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out, &out).PrintSummary("zoom.mp4", "2.5s", "72.0 frames/s", "1.2 MB", "180")

	for _, want := range []string{"Render Complete", "zoom.mp4", "2.5s", "72.0 frames/s", "1.2 MB", "180"} {
		assert.True(t, strings.Contains(out.String(), want), "summary missing %q", want)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))

	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "2.0 MB", FormatBytes(2*1024*1024))

	assert.Equal(t, "60.0 frames/s", FormatRate(120, 2*time.Second))
	assert.Equal(t, "-", FormatRate(10, 0))
}

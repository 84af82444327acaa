package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds configuration for the frame preview
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells
}

// DefaultPreviewConfig returns a sensible default preview size.
// Terminal cells are about twice as tall as wide, so 64x18 shows 16:9.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  64,
		Height: 18,
	}
}

// DownsampleFrame averages each cell's region of frame into one colour.
// Transparent pixels are shown over black.
func DownsampleFrame(frame *image.RGBA, config PreviewConfig) [][]color.RGBA {
	if frame == nil || config.Width <= 0 || config.Height <= 0 {
		return nil
	}
	bounds := frame.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	preview := make([][]color.RGBA, config.Height)
	for row := 0; row < config.Height; row++ {
		preview[row] = make([]color.RGBA, config.Width)

		// Region of the source this row covers; never empty
		y0 := row * srcHeight / config.Height
		y1 := max((row+1)*srcHeight/config.Height, y0+1)

		for col := 0; col < config.Width; col++ {
			x0 := col * srcWidth / config.Width
			x1 := max((col+1)*srcWidth/config.Width, x0+1)

			var sumR, sumG, sumB uint32
			pixelCount := uint32(0)

			for y := y0; y < y1 && y < srcHeight; y++ {
				i := frame.PixOffset(bounds.Min.X+x0, bounds.Min.Y+y)
				for x := x0; x < x1 && x < srcWidth; x++ {
					// Premultiplied, so this is already composited over black
					sumR += uint32(frame.Pix[i])
					sumG += uint32(frame.Pix[i+1])
					sumB += uint32(frame.Pix[i+2])
					pixelCount++
					i += 4
				}
			}

			if pixelCount > 0 {
				preview[row][col] = color.RGBA{
					R: uint8(sumR / pixelCount),
					G: uint8(sumG / pixelCount),
					B: uint8(sumB / pixelCount),
					A: 255,
				}
			}
		}
	}

	return preview
}

// RenderPreview draws the grid with ANSI 24-bit background colours,
// one space per cell
func RenderPreview(preview [][]color.RGBA) string {
	if len(preview) == 0 {
		return ""
	}

	var b strings.Builder
	border := strings.Repeat("─", len(preview[0]))

	b.WriteString("  Frame Preview:\n")
	b.WriteString("  ┌" + border + "┐\n")

	for _, row := range preview {
		b.WriteString("  │")
		for _, pixel := range row {
			// \x1b[48;2;R;G;Bm sets the background colour
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm \x1b[0m", pixel.R, pixel.G, pixel.B)
		}
		b.WriteString("│\n")
	}

	b.WriteString("  └" + border + "┘\n")
	return b.String()
}

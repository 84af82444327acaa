package renderer

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
)

// LoadFont parses TrueType data into a face of the given pixel size
func LoadFont(data []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return face, nil
}

// LoadFontFile loads a TrueType font from disk
func LoadFontFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return LoadFont(data, size)
}

// PercentFace returns the magnification label font: the file at path, or
// the embedded Go Mono when path is empty
func PercentFace(path string, size float64) (font.Face, error) {
	if path != "" {
		return LoadFontFile(path, size)
	}
	return LoadFont(gomono.TTF, size)
}

// CreditFace returns the credit label font: the file at path, or the
// embedded Go Medium when path is empty
func CreditFace(path string, size float64) (font.Face, error) {
	if path != "" {
		return LoadFontFile(path, size)
	}
	return LoadFont(gomedium.TTF, size)
}

// Anchor selects the corner a label is pinned to
type Anchor int

const (
	BottomLeft Anchor = iota
	BottomRight
)

// DrawLabel draws text with its ink box margin pixels in from the anchored corner
func DrawLabel(img *image.RGBA, face font.Face, text string, col color.Color, anchor Anchor, margin int) {
	if text == "" || face == nil {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}

	// Measure text; Min.Y is negative (ascent), Max.Y positive (descent)
	bounds, _ := d.BoundString(text)
	size := img.Bounds()

	var x int
	switch anchor {
	case BottomRight:
		x = size.Max.X - margin - bounds.Max.X.Ceil()
	default:
		x = size.Min.X + margin - bounds.Min.X.Floor()
	}
	y := size.Max.Y - margin - bounds.Max.Y.Ceil()

	d.Dot = freetype.Pt(x, y)
	d.DrawString(text)
}

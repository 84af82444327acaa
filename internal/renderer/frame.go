package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/linuxmatters/vmaganimate/internal/source"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Frame is one rendered output image plus the geometry it was cut with
type Frame struct {
	Image *image.RGBA
	Geometry
}

// Overlays configures the optional text labels. A nil face disables its label.
type Overlays struct {
	PercentFace font.Face
	CreditFace  font.Face
	Credit      string
	Color       color.Color
	Margin      int
}

// Compositor cuts frames from a prepared source image
type Compositor struct {
	src      *source.Image
	layout   Layout
	overlays Overlays
	kernel   draw.Interpolator
}

// NewCompositor creates a compositor for src. The layout's CenterFraction is
// taken from src.
func NewCompositor(src *source.Image, layout Layout, overlays Overlays) (*Compositor, error) {
	if src == nil || src.Pix == nil {
		return nil, fmt.Errorf("no source image")
	}
	if layout.OutputWidth <= 0 || layout.OutputHeight <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", layout.OutputWidth, layout.OutputHeight)
	}
	if layout.Magnification < 1 {
		return nil, fmt.Errorf("magnification %.3f is below 1", layout.Magnification)
	}
	if overlays.Color == nil {
		overlays.Color = color.NRGBA{R: 255, G: 255, A: 255}
	}
	layout.CenterFraction = src.CenterFraction

	return &Compositor{
		src:      src,
		layout:   layout,
		overlays: overlays,
		kernel:   draw.CatmullRom,
	}, nil
}

// Layout returns the layout frames are placed with
func (c *Compositor) Layout() Layout {
	return c.layout
}

// Render produces the frame for progress t in [0,1]. The source is scaled to
// the output width and the current magnification, but only the rows inside
// the crop window are computed.
func (c *Compositor) Render(t float64) (*Frame, error) {
	g, err := c.layout.At(t)
	if err != nil {
		return nil, err
	}

	// dst covers just the window; Scale clips the full scaled rectangle to it
	dst := image.NewRGBA(g.Window)
	scaled := image.Rect(0, 0, c.layout.OutputWidth, g.ScaledHeight)
	c.kernel.Scale(dst, scaled, c.src.Pix, c.src.Pix.Bounds(), draw.Src, nil)

	img := &image.RGBA{
		Pix:    dst.Pix,
		Stride: dst.Stride,
		Rect:   image.Rect(0, 0, c.layout.OutputWidth, c.layout.OutputHeight),
	}

	c.applyTextOverlay(img, g)

	return &Frame{Image: img, Geometry: g}, nil
}

// applyTextOverlay renders the magnification and credit labels
func (c *Compositor) applyTextOverlay(img *image.RGBA, g Geometry) {
	o := c.overlays
	if o.PercentFace != nil {
		DrawLabel(img, o.PercentFace, fmt.Sprintf("%d%%", g.Percent()), o.Color, BottomRight, o.Margin)
	}
	if o.CreditFace != nil && o.Credit != "" {
		DrawLabel(img, o.CreditFace, o.Credit, o.Color, BottomLeft, o.Margin)
	}
}

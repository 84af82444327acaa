package renderer

import (
	"fmt"
	"image"
	"math"

	"github.com/linuxmatters/vmaganimate/internal/easing"
)

// Layout holds everything needed to place the crop window for a progress value
type Layout struct {
	OutputWidth    int
	OutputHeight   int
	Magnification  float64
	CenterFraction float64
	Curve          easing.Curve
}

// Geometry describes where one frame is cut from the scaled source.
// Window is in scaled-image coordinates and always spans the full width.
type Geometry struct {
	Progress      float64
	Eased         float64
	Magnification float64
	ScaledHeight  int
	FocusRow      int
	YOffset       float64
	Window        image.Rectangle
}

// Percent is the magnification label value
func (g Geometry) Percent() int {
	return int(math.Round(g.Magnification * 100))
}

// At computes the zoom and crop window for progress t in [0,1].
// The focal point starts centred and drifts to its natural position
// as the zoom completes.
func (l Layout) At(t float64) (Geometry, error) {
	t = math.Max(0, math.Min(1, t))
	eased := l.Curve.Ease(t)

	curMag := 1 + eased*(l.Magnification-1)
	scaledHeight := int(math.Round(float64(l.OutputHeight) * curMag))
	if scaledHeight < l.OutputHeight {
		return Geometry{}, fmt.Errorf("scaled height %d is smaller than output height %d at magnification %.3f",
			scaledHeight, l.OutputHeight, curMag)
	}

	yc := int(math.Floor(float64(scaledHeight) * l.CenterFraction))

	yOffsetBegin := (0.5 - l.CenterFraction) * float64(l.OutputHeight)
	yOffsetEnd := 0.0
	yOffset := yOffsetBegin + eased*(yOffsetEnd-yOffsetBegin)

	y1 := yc - l.OutputHeight/2 + int(math.Round(yOffset))
	y2 := y1 + l.OutputHeight
	if y1 < 0 {
		y1 = 0
		y2 = l.OutputHeight
	} else if y2 > scaledHeight {
		y1 = scaledHeight - l.OutputHeight
		y2 = scaledHeight
	}

	return Geometry{
		Progress:      t,
		Eased:         eased,
		Magnification: curMag,
		ScaledHeight:  scaledHeight,
		FocusRow:      yc,
		YOffset:       yOffset,
		Window:        image.Rect(0, y1, l.OutputWidth, y2),
	}, nil
}

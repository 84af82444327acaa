// Package source loads the input still and prepares it once for rendering.
package source

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/kovidgoyal/imaging"
	"golang.org/x/image/draw"
)

// Image is the prepared canvas every frame is cut from. It has exactly the
// output aspect ratio and must not be modified after Prepare returns.
type Image struct {
	Pix *image.RGBA

	// CenterFraction is the focal row as a fraction of the canvas height, in [0,1]
	CenterFraction float64

	// Offset is the vertical shift applied to the original: positive when
	// padded, negative when cropped
	Offset int
}

// Width of the prepared canvas
func (s *Image) Width() int { return s.Pix.Rect.Dx() }

// Height of the prepared canvas
func (s *Image) Height() int { return s.Pix.Rect.Dy() }

// Padded reports whether the original was letterboxed onto a larger canvas
func (s *Image) Padded() bool { return s.Offset > 0 }

// Cropped reports whether rows were cut from the original
func (s *Image) Cropped() bool { return s.Offset < 0 }

// ImageLoadError reports an input image that could not be read or decoded
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("loading image %s: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

// Load decodes an image file, applying EXIF orientation and converting any
// embedded colour profile to sRGB
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	if img == nil || img.Bounds().Empty() {
		return nil, &ImageLoadError{Path: path, Err: errors.New("image has no pixels")}
	}
	return img, nil
}

// Prepare fits orig to the aspect ratio by padding or cropping vertically,
// never resampling. centerRow is the focal row in orig's pixels; pass a
// negative value for the vertical centre. bg fills any padding.
func Prepare(orig image.Image, centerRow int, aspect float64, bg color.Color) (*Image, error) {
	b := orig.Bounds()
	origWidth, origHeight := b.Dx(), b.Dy()
	if origWidth <= 0 || origHeight <= 0 {
		return nil, errors.New("source image is empty")
	}
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return nil, fmt.Errorf("invalid aspect ratio %v", aspect)
	}

	if centerRow < 0 {
		centerRow = origHeight / 2
	}

	newWidth := origWidth
	newHeight := int(float64(origWidth) / aspect)
	if newHeight <= 0 {
		return nil, fmt.Errorf("aspect ratio %v leaves no rows at width %d", aspect, origWidth)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	var offset int

	origAspect := float64(origWidth) / float64(origHeight)
	if origAspect > aspect {
		// Wider than the target: letterbox top and bottom
		offset = (newHeight - origHeight) / 2
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		dst := image.Rect(0, offset, origWidth, offset+origHeight)
		draw.Draw(canvas, dst, orig, b.Min, draw.Src)
	} else {
		// Taller or equal: keep the middle band
		offset = -((origHeight - newHeight) / 2)
		draw.Draw(canvas, canvas.Bounds(), orig, image.Pt(b.Min.X, b.Min.Y-offset), draw.Src)
	}

	center := float64(centerRow+offset) / float64(newHeight)
	center = math.Max(0, math.Min(1, center))

	return &Image{Pix: canvas, CenterFraction: center, Offset: offset}, nil
}

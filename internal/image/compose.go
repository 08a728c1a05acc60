package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Fit is how a layer image is resized into its target box.
type Fit int

const (
	// FitNone pastes the image as-is.
	FitNone Fit = iota
	// FitFill stretches to the box, ignoring aspect ratio.
	FitFill
	// FitThumbnail shrinks to fit inside the box, keeping aspect ratio. Never upscales.
	FitThumbnail
	// FitCrop scales to cover the box, keeping aspect ratio, then center-crops the overflow.
	FitCrop
)

// ParseFit maps a config name to a Fit. The empty string is FitNone.
func ParseFit(s string) (Fit, error) {
	switch s {
	case "", "none":
		return FitNone, nil
	case "fill":
		return FitFill, nil
	case "thumbnail":
		return FitThumbnail, nil
	case "crop":
		return FitCrop, nil
	}
	return FitNone, fmt.Errorf("unknown fit %q", s)
}

func (f Fit) String() string {
	switch f {
	case FitFill:
		return "fill"
	case FitThumbnail:
		return "thumbnail"
	case FitCrop:
		return "crop"
	}
	return "none"
}

// Layer places one image on a canvas. Width and Height bound the fit; zero
// means the canvas size.
type Layer struct {
	X, Y     int
	Fit      Fit
	Width    int
	Height   int
	Centered bool
}

// Canvas is the card being drawn. It wraps a gg context so text and images
// share one RGBA buffer.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas returns a w×h canvas cleared to bg. A nil bg leaves it transparent.
func NewCanvas(w, h int, bg color.Color) *Canvas {
	dc := gg.NewContext(w, h)
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	return &Canvas{dc: dc}
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

// Context exposes the drawing context for text and shapes.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.dc.Image().(*image.RGBA)
}

// DrawLayer resizes img per l.Fit and pastes it at the layer anchor. It
// returns the rectangle that was painted.
func (c *Canvas) DrawLayer(img image.Image, l Layer) image.Rectangle {
	w, h := l.Width, l.Height
	if w <= 0 {
		w = c.Width()
	}
	if h <= 0 {
		h = c.Height()
	}

	opaque := isOpaque(img)
	img = Resize(img, l.Fit, w, h)

	x, y := l.X, l.Y
	b := img.Bounds()
	if l.Centered {
		x -= b.Dx() / 2
		y -= b.Dy() / 2
	}
	return c.paste(img, x, y, opaque)
}

// Paste draws img with its top-left corner at (x, y).
func (c *Canvas) Paste(img image.Image, x, y int) image.Rectangle {
	return c.paste(img, x, y, isOpaque(img))
}

// paste uses the image alpha as the mask unless the image is opaque, in which
// case the region is replaced.
func (c *Canvas) paste(img image.Image, x, y int, opaque bool) image.Rectangle {
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	if opaque {
		draw.Draw(c.Image(), r, img, b.Min, draw.Src)
		return r
	}
	c.dc.DrawImage(img, x-b.Min.X, y-b.Min.Y)
	return r
}

// Resize applies fit to img for a w×h box.
func Resize(img image.Image, fit Fit, w, h int) image.Image {
	switch fit {
	case FitFill:
		return imaging.Resize(img, w, h, imaging.Lanczos)
	case FitThumbnail:
		return imaging.Fit(img, w, h, imaging.Lanczos)
	case FitCrop:
		return cropFill(img, w, h)
	}
	return img
}

// cropFill scales img to cover w×h and crops the dominant axis around the center.
func cropFill(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return imaging.New(w, h, color.Transparent)
	}
	imgRatio := float64(b.Dx()) / float64(b.Dy())
	boxRatio := float64(w) / float64(h)

	if imgRatio > boxRatio {
		nw := max(int(float64(h)*imgRatio), w)
		img = imaging.Resize(img, nw, h, imaging.Lanczos)
	} else {
		nh := max(int(float64(w)/imgRatio), h)
		img = imaging.Resize(img, w, nh, imaging.Lanczos)
	}
	return imaging.CropCenter(img, w, h)
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Sheet lays rendered cards out in a grid for printing.
type Sheet struct {
	Columns    int
	CellWidth  int
	CellHeight int
	Gap        int
	Background color.Color
}

// DefaultSheet is a 3-column sheet of cards at a third of their size.
func DefaultSheet(cardW, cardH int) Sheet {
	return Sheet{
		Columns:    3,
		CellWidth:  cardW / 3,
		CellHeight: cardH / 3,
		Gap:        8,
		Background: color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	}
}

// Compose fits each image into its cell, centered, left to right then top to
// bottom. An empty list gives nil.
func (s Sheet) Compose(imgs []image.Image) *image.NRGBA {
	if len(imgs) == 0 {
		return nil
	}
	cols := s.Columns
	if cols <= 0 {
		cols = 1
	}
	cols = min(cols, len(imgs))
	rows := (len(imgs) + cols - 1) / cols

	bg := s.Background
	if bg == nil {
		bg = color.White
	}
	W := cols*s.CellWidth + (cols+1)*s.Gap
	H := rows*s.CellHeight + (rows+1)*s.Gap
	canvas := imaging.New(W, H, bg)

	for i, img := range imgs {
		c := imaging.Fit(img, s.CellWidth, s.CellHeight, imaging.Lanczos)
		b := c.Bounds()
		x := s.Gap + (i%cols)*(s.CellWidth+s.Gap) + (s.CellWidth-b.Dx())/2
		y := s.Gap + (i/cols)*(s.CellHeight+s.Gap) + (s.CellHeight-b.Dy())/2
		canvas = imaging.Paste(canvas, c, image.Pt(x, y))
	}
	return canvas
}

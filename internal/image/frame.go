package imagepkg

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// FrameStyle colors the procedural card frame.
type FrameStyle struct {
	Header      color.Color
	Body        color.Color
	Footer      color.Color
	Orb         color.Color
	Border      color.Color
	BorderWidth float64
	// OrbRadius is the radius of the score orb in pixels.
	OrbRadius float64
}

// DefaultFrameStyle is the placeholder palette used before real card models exist.
var DefaultFrameStyle = FrameStyle{
	Header:      colornames.Green,
	Body:        colornames.Blue,
	Footer:      colornames.Red,
	Orb:         colornames.Yellow,
	Border:      colornames.Black,
	BorderWidth: 4,
	OrbRadius:   60,
}

// DrawFrame paints a header band, body, footer with a score orb, and the
// outer border.
func (c *Canvas) DrawFrame(s FrameStyle) {
	dc := c.dc
	w, h := float64(c.Width()), float64(c.Height())
	headerY := h * 0.1

	dc.Push()
	defer dc.Pop()

	dc.SetColor(s.Header)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(s.Body)
	dc.DrawRectangle(0, headerY, w, h-headerY)
	dc.Fill()

	dc.SetLineWidth(s.BorderWidth)
	dc.SetColor(s.Border)
	dc.DrawLine(0, headerY, w, headerY)
	dc.Stroke()

	// footer
	x0, y0, r := w/2, h*0.62, s.OrbRadius
	side := h * 0.75

	dc.MoveTo(0, h)
	dc.LineTo(0, side)
	dc.LineTo(x0-r, y0)
	dc.LineTo(x0+r, y0)
	dc.LineTo(w, side)
	dc.LineTo(w, h)
	dc.ClosePath()
	dc.SetColor(s.Footer)
	dc.Fill()

	dc.DrawCircle(x0, y0, r)
	dc.SetColor(s.Orb)
	dc.FillPreserve()
	dc.SetColor(s.Border)
	dc.Stroke()

	dc.DrawLine(0, side, x0-r, y0)
	dc.DrawLine(x0+r, y0, w, side)
	dc.Stroke()

	// border
	dc.DrawRectangle(0, 0, w, h)
	dc.Stroke()
}

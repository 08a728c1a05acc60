package imagepkg

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func near(got color.Color, want color.NRGBA, tol uint8) bool {
	g := color.NRGBAModel.Convert(got).(color.NRGBA)
	d := func(a, b uint8) uint8 {
		if a > b {
			return a - b
		}
		return b - a
	}
	return d(g.R, want.R) <= tol && d(g.G, want.G) <= tol && d(g.B, want.B) <= tol && d(g.A, want.A) <= tol
}

func TestParseFit(t *testing.T) {
	tests := []struct {
		in   string
		want Fit
	}{
		{"", FitNone},
		{"none", FitNone},
		{"fill", FitFill},
		{"thumbnail", FitThumbnail},
		{"crop", FitCrop},
	}
	for _, tt := range tests {
		got, err := ParseFit(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFit(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if tt.in != "" && got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
	if _, err := ParseFit("stretch"); err == nil {
		t.Error("ParseFit(stretch) succeeded")
	}
}

func TestResizeDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		fit          Fit
		boxW, boxH   int
		wantW, wantH int
	}{
		{"fill ignores aspect", 200, 100, FitFill, 75, 105, 75, 105},
		{"thumbnail shrinks wide", 300, 100, FitThumbnail, 150, 150, 150, 50},
		{"thumbnail shrinks tall", 100, 400, FitThumbnail, 150, 200, 50, 200},
		{"thumbnail never upscales", 40, 20, FitThumbnail, 750, 1050, 40, 20},
		{"crop wide", 600, 200, FitCrop, 100, 100, 100, 100},
		{"crop tall", 100, 500, FitCrop, 75, 105, 75, 105},
		{"crop upscales", 10, 10, FitCrop, 75, 105, 75, 105},
		{"crop same ratio", 150, 210, FitCrop, 750, 1050, 750, 1050},
		{"none", 33, 44, FitNone, 10, 10, 33, 44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resize(solid(tt.w, tt.h, red), tt.fit, tt.boxW, tt.boxH)
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Resize(%dx%d, %v, %dx%d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.fit, tt.boxW, tt.boxH, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

// A wide image is cropped on the horizontal axis only: the middle third
// survives and the top stripe is still at the top.
func TestCropWideIsHorizontalOnly(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 600, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 600; x++ {
			c := green
			switch {
			case y < 40:
				c = black
			case x < 200:
				c = red
			case x >= 400:
				c = blue
			}
			src.Set(x, y, c)
		}
	}

	out := Resize(src, FitCrop, 100, 100)
	if b := out.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("size = %v, want 100x100", b.Size())
	}
	if got := out.At(50, 60); !near(got, green, 8) {
		t.Errorf("center = %v, want green", got)
	}
	if got := out.At(50, 5); !near(got, black, 8) {
		t.Errorf("top = %v, want the black stripe kept", got)
	}
	if got := out.At(2, 80); near(got, red, 64) {
		t.Errorf("left edge = %v, red column should be cropped away", got)
	}
}

func TestCropTallIsVerticalOnly(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 100; x++ {
			c := green
			switch {
			case x < 20:
				c = black
			case y < 100:
				c = red
			case y >= 200:
				c = blue
			}
			src.Set(x, y, c)
		}
	}

	out := Resize(src, FitCrop, 100, 100)
	if got := out.At(60, 50); !near(got, green, 8) {
		t.Errorf("center = %v, want green", got)
	}
	if got := out.At(5, 50); !near(got, black, 8) {
		t.Errorf("left = %v, want the black stripe kept", got)
	}
}

func TestDrawLayerCentered(t *testing.T) {
	c := NewCanvas(100, 100, white)
	r := c.DrawLayer(solid(20, 10, red), Layer{X: 50, Y: 50, Centered: true})

	if want := image.Rect(40, 45, 60, 55); r != want {
		t.Errorf("DrawLayer rect = %v, want %v", r, want)
	}
	if got := c.Image().At(40, 45); !near(got, red, 0) {
		t.Errorf("top-left of layer = %v, want red", got)
	}
	if got := c.Image().At(39, 45); !near(got, white, 0) {
		t.Errorf("left of layer = %v, want white", got)
	}
}

func TestDrawLayerFitUsesLayerBox(t *testing.T) {
	c := NewCanvas(200, 200, white)
	r := c.DrawLayer(solid(400, 100, red), Layer{Fit: FitThumbnail, Width: 40, Height: 40})
	if r.Dx() != 40 || r.Dy() != 10 {
		t.Errorf("rect = %v, want 40x10", r)
	}
}

func TestPasteAlphaMask(t *testing.T) {
	c := NewCanvas(10, 10, blue)

	overlay := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	overlay.Set(0, 0, color.NRGBA{R: 255, A: 255})
	overlay.Set(1, 0, color.NRGBA{R: 255, A: 0})
	overlay.Set(2, 0, color.NRGBA{R: 255, A: 128})

	c.Paste(overlay, 2, 2)

	img := c.Image()
	if got := img.At(2, 2); !near(got, red, 0) {
		t.Errorf("opaque pixel = %v, want red", got)
	}
	if got := img.At(3, 2); !near(got, blue, 0) {
		t.Errorf("transparent pixel = %v, want the background", got)
	}
	if got := img.At(4, 2); !near(got, color.NRGBA{R: 128, B: 127, A: 255}, 3) {
		t.Errorf("half pixel = %v, want a blend", got)
	}
}

func TestPasteOpaqueReplaces(t *testing.T) {
	c := NewCanvas(10, 10, blue)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	c.Paste(src, 0, 0)
	if got := c.Image().At(1, 1); !near(got, white, 0) {
		t.Errorf("pixel = %v, want white", got)
	}
}

func TestDrawFrame(t *testing.T) {
	c := NewCanvas(750, 1050, nil)
	c.DrawFrame(DefaultFrameStyle)

	img := c.Image()
	if got := img.At(375, 50); !near(got, color.NRGBA{G: 128, A: 255}, 0) {
		t.Errorf("header = %v, want green", got)
	}
	if got := img.At(375, 300); !near(got, color.NRGBA{B: 255, A: 255}, 0) {
		t.Errorf("body = %v, want blue", got)
	}
	if got := img.At(375, 651); !near(got, color.NRGBA{R: 255, G: 255, A: 255}, 0) {
		t.Errorf("orb = %v, want yellow", got)
	}
	if got := img.At(375, 1000); !near(got, red, 0) {
		t.Errorf("footer = %v, want red", got)
	}
	if got := img.At(0, 500); !near(got, black, 0) {
		t.Errorf("border = %v, want black", got)
	}
}

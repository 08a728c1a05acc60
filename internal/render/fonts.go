package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Embedded fonts addressable by name from the field table.
var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

// FontCache parses font files once and hands out faces. Parsed fonts are
// shared; faces are not, since they keep scratch buffers.
type FontCache struct {
	dir string

	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

// NewFontCache resolves relative font paths against dir.
func NewFontCache(dir string) *FontCache {
	return &FontCache{dir: dir, fonts: map[string]*opentype.Font{}}
}

// Face returns a new face for name at size pixels. name is a builtin font
// name or a TTF/OTF path.
func (c *FontCache) Face(name string, size float64) (font.Face, error) {
	f, err := c.font(name)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}
	return face, nil
}

func (c *FontCache) font(name string) (*opentype.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.fonts[name]; ok {
		return f, nil
	}

	data, ok := builtinFonts[name]
	if !ok {
		path := name
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", name, err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", name, err)
	}
	c.fonts[name] = f
	return f, nil
}

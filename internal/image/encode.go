package imagepkg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/youruser/cardforge/internal/util"
)

// PNG signature (8 bytes) plus the IHDR chunk (4 length, 4 type, 13 data, 4 crc).
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// EncodePNG writes img as PNG. When dpi is positive a pHYs chunk records the
// resolution so print tools pick it up.
func EncodePNG(w io.Writer, img image.Image, dpi int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	b := buf.Bytes()
	if dpi <= 0 {
		_, err := w.Write(b)
		return err
	}
	if len(b) < ihdrEnd || string(b[12:16]) != "IHDR" {
		return errors.New("png: unexpected encoder output")
	}

	if _, err := w.Write(b[:ihdrEnd]); err != nil {
		return err
	}
	if _, err := w.Write(physChunk(dpi)); err != nil {
		return err
	}
	_, err := w.Write(b[ihdrEnd:])
	return err
}

// SavePNG encodes img to path, creating parent directories.
func SavePNG(path string, img image.Image, dpi int) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img, dpi); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1 // unit: meter
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}

// DPI reads the resolution stamped in a PNG's pHYs chunk.
func DPI(b []byte) (int, bool) {
	if len(b) < 8 {
		return 0, false
	}
	for p := 8; p+12 <= len(b); {
		n := int(binary.BigEndian.Uint32(b[p : p+4]))
		typ := string(b[p+4 : p+8])
		if p+12+n > len(b) {
			return 0, false
		}
		if typ == "pHYs" && n == 9 && b[p+16] == 1 {
			ppm := binary.BigEndian.Uint32(b[p+8 : p+12])
			return int(math.Round(float64(ppm) * 0.0254)), true
		}
		if typ == "IDAT" || typ == "IEND" {
			return 0, false
		}
		p += 12 + n
	}
	return 0, false
}

package geoplot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// captureImage reads the rendered frame back as a straight-alpha image.
func captureImage(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pix)
	return unpremultiply(pix, b.Dx(), b.Dy())
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to NRGBA.
// Channels brighter than their alpha clamp to 255.
func unpremultiply(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pix), len(img.Pix)) &^ 3
	copy(img.Pix, pix[:n])
	for i := 0; i < n; i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path, creating its
// directory when missing.
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// screenshotName returns the file name of a viewer screenshot taken at t.
func screenshotName(t time.Time, label string) string {
	return t.Format("20060102_150405") + "_" + sanitizeLabel(label) + ".png"
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', replacing every
// other rune with '_'. Blank labels become "screenshot".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "screenshot"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

package viewblur

import "testing"

// Test helper functions shared across viewblur tests.

// newFilled creates a dense pixmap filled with px.
func newFilled(t *testing.T, w, h int, format Format, px [4]byte) *Pixmap {
	t.Helper()
	pm, err := NewPixmap(w, h, format)
	if err != nil {
		t.Fatalf("NewPixmap(%d, %d, %v) = %v", w, h, format, err)
	}
	pm.Fill(px)
	return pm
}

// newPattern creates a dense RGBA pixmap with a deterministic, non-uniform
// pattern so that blurs of it are sensitive to ordering mistakes.
func newPattern(t *testing.T, w, h int) *Pixmap {
	t.Helper()
	pm, err := NewPixmap(w, h, FormatRGBA8)
	if err != nil {
		t.Fatalf("NewPixmap(%d, %d) = %v", w, h, err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pm.SetPixelAt(x, y, [4]byte{
				byte(x * 37 % 251),
				byte(y * 53 % 241),
				byte((x ^ y) * 11),
				byte(128 + (x+y)%128),
			})
		}
	}
	return pm
}

// samePixels reports the first pixel where a and b differ.
func samePixels(a, b *Pixmap) (x, y int, ok bool) {
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.PixelAt(x, y) != b.PixelAt(x, y) {
				return x, y, false
			}
		}
	}
	return 0, 0, true
}

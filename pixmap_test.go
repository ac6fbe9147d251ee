package viewblur

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewPixmapErrors(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		format Format
		stride int
		want   error
	}{
		{"zero width", 0, 4, FormatRGBA8, 0, ErrInvalidDimensions},
		{"negative height", 4, -1, FormatRGBA8, 16, ErrInvalidDimensions},
		{"unknown format", 4, 4, Format(200), 16, ErrInvalidFormat},
		{"short stride", 4, 4, FormatRGBA8, 15, ErrInvalidStride},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPixmapWithStride(tt.w, tt.h, tt.format, tt.stride)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewPixmapWithStride() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromRaw(t *testing.T) {
	data := make([]byte, 40)

	pm, err := FromRaw(data, 2, 2, FormatARGB8, 20)
	if err != nil {
		t.Fatalf("FromRaw() = %v", err)
	}
	if pm.Stride() != 20 || pm.Scale() != 1 {
		t.Errorf("stride = %d, scale = %v; want 20, 1", pm.Stride(), pm.Scale())
	}

	// FromRaw must not copy.
	pm.SetPixelAt(1, 1, [4]byte{1, 2, 3, 4})
	if data[20+4] != 1 || data[20+7] != 4 {
		t.Error("FromRaw copied its data")
	}

	if _, err := FromRaw(data[:30], 2, 2, FormatARGB8, 20); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("FromRaw(short) error = %v, want ErrDataTooSmall", err)
	}
}

func TestPixmapRowBytesSkipsPadding(t *testing.T) {
	pm, err := NewPixmapWithStride(3, 2, FormatRGBA8, 16)
	if err != nil {
		t.Fatalf("NewPixmapWithStride() = %v", err)
	}
	if got := len(pm.RowBytes(1)); got != 12 {
		t.Errorf("len(RowBytes(1)) = %d, want 12", got)
	}
	if pm.RowBytes(2) != nil || pm.RowBytes(-1) != nil {
		t.Error("RowBytes out of range should be nil")
	}
	if off := pm.PixelOffset(2, 1); off != 16+8 {
		t.Errorf("PixelOffset(2, 1) = %d, want 24", off)
	}
}

func TestPixmapPixelAtOutOfBounds(t *testing.T) {
	pm := newFilled(t, 2, 2, FormatRGBA8, [4]byte{5, 6, 7, 8})
	pm.SetPixelAt(-1, 0, [4]byte{9, 9, 9, 9})
	pm.SetPixelAt(0, 2, [4]byte{9, 9, 9, 9})

	if px := pm.PixelAt(5, 5); px != ([4]byte{}) {
		t.Errorf("PixelAt(out of bounds) = %v, want zero", px)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if px := pm.PixelAt(x, y); px != [4]byte{5, 6, 7, 8} {
				t.Fatalf("pixel (%d,%d) = %v, out-of-bounds write leaked", x, y, px)
			}
		}
	}
}

func TestPixmapClone(t *testing.T) {
	pm := newFilled(t, 3, 3, FormatRGBA8, [4]byte{1, 1, 1, 1})
	pm.SetScale(2)
	pm.SetOrientation(OrientationDown)

	c := pm.Clone()
	c.Fill([4]byte{2, 2, 2, 2})

	if pm.PixelAt(0, 0) != [4]byte{1, 1, 1, 1} {
		t.Error("Clone shares pixel memory")
	}
	if c.Scale() != 2 || c.Orientation() != OrientationDown {
		t.Errorf("Clone metadata = %v, %v", c.Scale(), c.Orientation())
	}
}

func TestPixmapSetScaleIgnoresNonPositive(t *testing.T) {
	pm := newFilled(t, 4, 2, FormatRGBA8, [4]byte{})
	pm.SetScale(2)
	pm.SetScale(0)
	pm.SetScale(-1)

	w, h := pm.LogicalSize()
	if pm.Scale() != 2 || w != 2 || h != 1 {
		t.Errorf("scale = %v, logical size = %vx%v; want 2, 2x1", pm.Scale(), w, h)
	}
}

func TestPixmapToImage(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		px     [4]byte
		want   [4]byte
		premul bool
	}{
		{"ARGB", FormatARGB8, [4]byte{40, 10, 20, 30}, [4]byte{10, 20, 30, 40}, false},
		{"RGBA", FormatRGBA8, [4]byte{10, 20, 30, 40}, [4]byte{10, 20, 30, 40}, false},
		{"BGRA premul", FormatBGRAPremul, [4]byte{30, 20, 10, 40}, [4]byte{10, 20, 30, 40}, true},
		{"RGB", FormatRGB8, [4]byte{10, 20, 30}, [4]byte{10, 20, 30, 255}, false},
		{"Gray", FormatGray8, [4]byte{77}, [4]byte{77, 77, 77, 255}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := newFilled(t, 2, 1, tt.format, tt.px)
			img := pm.ToImage()

			var pix []byte
			switch im := img.(type) {
			case *image.RGBA:
				if !tt.premul {
					t.Fatalf("ToImage() = *image.RGBA, want *image.NRGBA")
				}
				pix = im.Pix
			case *image.NRGBA:
				if tt.premul {
					t.Fatalf("ToImage() = *image.NRGBA, want *image.RGBA")
				}
				pix = im.Pix
			default:
				t.Fatalf("ToImage() = %T", img)
			}

			got := [4]byte{pix[4], pix[5], pix[6], pix[7]}
			if got != tt.want {
				t.Errorf("second pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromImagePremultiplies(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{R: 255, A: 128})

	pm, err := FromImage(src, 2)
	if err != nil {
		t.Fatalf("FromImage() = %v", err)
	}
	if pm.Width() != 2 || pm.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", pm.Width(), pm.Height())
	}
	if pm.Format() != FormatRGBAPremul || pm.Scale() != 2 {
		t.Errorf("format = %v, scale = %v", pm.Format(), pm.Scale())
	}
	if px := pm.PixelAt(0, 0); px != [4]byte{128, 0, 0, 128} {
		t.Errorf("pixel = %v, want {128 0 0 128}", px)
	}

	if pm, _ := FromImage(src, 0); pm.Scale() != 1 {
		t.Error("FromImage with scale 0 should default to 1")
	}
}

func TestFromImageEmpty(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil", nil},
		{"zero width", image.NewRGBA(image.Rect(0, 0, 0, 4))},
		{"zero height", image.NewNRGBA(image.Rect(3, 3, 9, 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm, err := FromImage(tt.img, 1)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("FromImage() error = %v, want ErrInvalidDimensions", err)
			}
			if pm != nil {
				t.Errorf("FromImage() = %v, want nil", pm)
			}
		})
	}
}

package viewblur

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Pixmap is a rectangular pixel buffer with an explicit row stride.
//
// Besides its pixels a Pixmap carries the device scale it was rasterized at
// (physical pixels per logical unit) and an orientation; both travel
// unchanged through a blur.
//
// A Pixmap is owned by whoever currently holds it. It is not safe for
// concurrent mutation.
type Pixmap struct {
	data        []byte
	width       int
	height      int
	stride      int
	format      Format
	scale       float64
	orientation Orientation
}

// NewPixmap creates a zeroed pixmap with a dense stride.
func NewPixmap(width, height int, format Format) (*Pixmap, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return NewPixmapWithStride(width, height, format, format.RowBytes(width))
}

// NewPixmapWithStride creates a zeroed pixmap with a custom stride for alignment.
// Stride must be at least format.RowBytes(width).
func NewPixmapWithStride(width, height int, format Format, stride int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	return &Pixmap{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
		scale:  1,
	}, nil
}

// FromRaw wraps existing data without copying.
// The caller must ensure data remains valid for the lifetime of the Pixmap.
func FromRaw(data []byte, width, height int, format Format, stride int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}
	required := stride * height
	if len(data) < required {
		return nil, ErrDataTooSmall
	}

	return &Pixmap{
		data:   data[:required],
		width:  width,
		height: height,
		stride: stride,
		format: format,
		scale:  1,
	}, nil
}

// FromImage copies img into a new premultiplied RGBA pixmap at the given
// device scale. A non-positive scale is treated as 1. An empty image yields
// ErrInvalidDimensions.
func FromImage(img image.Image, scale float64) (*Pixmap, error) {
	if img == nil {
		return nil, ErrInvalidDimensions
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidDimensions
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)

	if scale <= 0 {
		scale = 1
	}
	return &Pixmap{
		data:   dst.Pix,
		width:  b.Dx(),
		height: b.Dy(),
		stride: dst.Stride,
		format: FormatRGBAPremul,
		scale:  scale,
	}, nil
}

// Width returns the width in pixels.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height in pixels.
func (p *Pixmap) Height() int {
	return p.height
}

// Stride returns the number of bytes per row (including padding).
func (p *Pixmap) Stride() int {
	return p.stride
}

// Format returns the pixel format.
func (p *Pixmap) Format() Format {
	return p.format
}

// Scale returns the device scale factor.
func (p *Pixmap) Scale() float64 {
	return p.scale
}

// SetScale sets the device scale factor. Non-positive values are ignored.
func (p *Pixmap) SetScale(scale float64) {
	if scale > 0 {
		p.scale = scale
	}
}

// Orientation returns the orientation flag.
func (p *Pixmap) Orientation() Orientation {
	return p.orientation
}

// SetOrientation sets the orientation flag.
func (p *Pixmap) SetOrientation(o Orientation) {
	p.orientation = o
}

// Data returns the raw pixel data slice, including row padding.
func (p *Pixmap) Data() []byte {
	return p.data
}

// Bounds returns the pixel rectangle, anchored at the origin.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// LogicalSize returns the size in logical units (pixels divided by scale).
func (p *Pixmap) LogicalSize() (w, h float64) {
	return float64(p.width) / p.scale, float64(p.height) / p.scale
}

// RowBytes returns the pixel bytes of row y, without padding.
// Returns nil if y is out of bounds.
func (p *Pixmap) RowBytes(y int) []byte {
	if y < 0 || y >= p.height {
		return nil
	}
	start := y * p.stride
	return p.data[start : start+p.format.RowBytes(p.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (p *Pixmap) PixelOffset(x, y int) int {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return -1
	}
	return y*p.stride + x*p.format.BytesPerPixel()
}

// PixelAt returns the raw channel bytes of pixel (x, y) in storage order.
// Channels beyond the format's pixel size are zero; out of bounds yields zero.
func (p *Pixmap) PixelAt(x, y int) [4]byte {
	var px [4]byte
	off := p.PixelOffset(x, y)
	if off < 0 {
		return px
	}
	copy(px[:], p.data[off:off+p.format.BytesPerPixel()])
	return px
}

// SetPixelAt stores raw channel bytes for pixel (x, y) in storage order.
func (p *Pixmap) SetPixelAt(x, y int, px [4]byte) {
	off := p.PixelOffset(x, y)
	if off < 0 {
		return
	}
	copy(p.data[off:off+p.format.BytesPerPixel()], px[:])
}

// Fill sets every pixel to px (storage order).
func (p *Pixmap) Fill(px [4]byte) {
	bpp := p.format.BytesPerPixel()
	for y := 0; y < p.height; y++ {
		row := p.RowBytes(y)
		for i := 0; i < len(row); i += bpp {
			copy(row[i:i+bpp], px[:bpp])
		}
	}
}

// Clone creates a deep copy, preserving stride, scale and orientation.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]byte, len(p.data))
	copy(data, p.data)
	c := *p
	c.data = data
	return &c
}

// ToImage converts the pixmap to a standard library image.
// Premultiplied RGBA formats yield *image.RGBA, straight-alpha formats yield
// *image.NRGBA, and formats without alpha yield an opaque *image.NRGBA.
func (p *Pixmap) ToImage() image.Image {
	rect := p.Bounds()
	if p.format.IsPremultiplied() {
		img := image.NewRGBA(rect)
		p.swizzleInto(img.Pix, img.Stride)
		return img
	}
	img := image.NewNRGBA(rect)
	p.swizzleInto(img.Pix, img.Stride)
	return img
}

// swizzleInto writes pixels into dst in R, G, B, A order.
func (p *Pixmap) swizzleInto(dst []byte, dstStride int) {
	bpp := p.format.BytesPerPixel()
	for y := 0; y < p.height; y++ {
		src := p.RowBytes(y)
		out := dst[y*dstStride : y*dstStride+p.width*4]
		for x := 0; x < p.width; x++ {
			s := src[x*bpp : x*bpp+bpp]
			d := out[x*4 : x*4+4]
			switch p.format {
			case FormatARGB8:
				d[0], d[1], d[2], d[3] = s[1], s[2], s[3], s[0]
			case FormatBGRA8, FormatBGRAPremul:
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
			case FormatRGB8:
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
			case FormatGray8:
				d[0], d[1], d[2], d[3] = s[0], s[0], s[0], 0xff
			default:
				copy(d, s)
			}
		}
	}
}

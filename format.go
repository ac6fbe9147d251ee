package viewblur

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatARGB8 is 32-bit ARGB, alpha first (4 bytes per pixel).
	// This is the native layout of most window-system snapshots.
	FormatARGB8 Format = iota

	// FormatRGBA8 is 32-bit RGBA in sRGB color space (4 bytes per pixel).
	FormatRGBA8

	// FormatRGBAPremul is 32-bit RGBA with premultiplied alpha (4 bytes per pixel).
	// This is the layout of *image.RGBA.
	FormatRGBAPremul

	// FormatBGRA8 is 32-bit BGRA in sRGB color space (4 bytes per pixel).
	FormatBGRA8

	// FormatBGRAPremul is 32-bit BGRA with premultiplied alpha (4 bytes per pixel).
	FormatBGRAPremul

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Channels is the number of color channels.
	Channels int

	// AlphaIndex is the byte index of alpha within a pixel, or -1.
	AlphaIndex int

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatARGB8:      {BytesPerPixel: 4, Channels: 4, AlphaIndex: 0},
	FormatRGBA8:      {BytesPerPixel: 4, Channels: 4, AlphaIndex: 3},
	FormatRGBAPremul: {BytesPerPixel: 4, Channels: 4, AlphaIndex: 3, IsPremultiplied: true},
	FormatBGRA8:      {BytesPerPixel: 4, Channels: 4, AlphaIndex: 3},
	FormatBGRAPremul: {BytesPerPixel: 4, Channels: 4, AlphaIndex: 3, IsPremultiplied: true},
	FormatRGB8:       {BytesPerPixel: 3, Channels: 3, AlphaIndex: -1},
	FormatGray8:      {BytesPerPixel: 1, Channels: 1, AlphaIndex: -1},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{AlphaIndex: -1}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().AlphaIndex >= 0
}

// IsPremultiplied returns true if alpha is premultiplied.
func (f Format) IsPremultiplied() bool {
	return f.Info().IsPremultiplied
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// Convolvable reports whether pixels of this format are four interleaved
// 8-bit channels that the box convolution can address directly.
func (f Format) Convolvable() bool {
	info := f.Info()
	return info.BytesPerPixel == 4 && info.Channels == 4
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatARGB8:
		return "ARGB8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBAPremul:
		return "RGBAPremul"
	case FormatBGRA8:
		return "BGRA8"
	case FormatBGRAPremul:
		return "BGRAPremul"
	case FormatRGB8:
		return "RGB8"
	case FormatGray8:
		return "Gray8"
	default:
		return "Unknown"
	}
}

// Orientation describes how stored pixels map onto the displayed image.
// Blurring never changes it; it travels with the buffer.
type Orientation uint8

// Orientation values, in EXIF order.
const (
	OrientationUp Orientation = iota
	OrientationDown
	OrientationLeft
	OrientationRight
	OrientationUpMirrored
	OrientationDownMirrored
	OrientationLeftMirrored
	OrientationRightMirrored
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case OrientationUp:
		return "Up"
	case OrientationDown:
		return "Down"
	case OrientationLeft:
		return "Left"
	case OrientationRight:
		return "Right"
	case OrientationUpMirrored:
		return "UpMirrored"
	case OrientationDownMirrored:
		return "DownMirrored"
	case OrientationLeftMirrored:
		return "LeftMirrored"
	case OrientationRightMirrored:
		return "RightMirrored"
	default:
		return "Unknown"
	}
}

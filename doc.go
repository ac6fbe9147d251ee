// Package viewblur blurs rasterized view snapshots with an iterated box
// filter that approximates a Gaussian.
//
// # Overview
//
// Blur convolves a Pixmap with a square box window one, two or three times,
// following the SVG feGaussianBlur box approximation. The window is sized
// from the radius as
//
//	size = floor(max(radius, 2) * 3*sqrt(2*pi)/4 + 0.5)
//
// rounded up to the next odd number, and the pass count grows with the
// unclamped radius: one pass below 0.5, two below 1.5, three otherwise.
// Pixels outside the image are treated as copies of the nearest edge pixel,
// so a uniform image blurs to itself.
//
// # Quick Start
//
//	src, _ := viewblur.NewPixmap(640, 480, viewblur.FormatRGBAPremul)
//	out, err := viewblur.Blur(src, viewblur.DefaultRadius)
//
// The result has the source dimensions, format, scale and orientation, with
// a dense stride. Radius is given in logical units, but the window it yields
// is applied in buffer pixels; it is not multiplied by the buffer's scale.
//
// # Formats
//
// Only four-channel, 8-bit interleaved formats are convolved. For any other
// Format, Blur returns the source together with an error matching
// ErrUnsupportedFormat, which callers can treat as an unblurred fallback.
//
// # Concurrency
//
// Blur has no shared mutable state and may run on any goroutine. A Blurrer
// created with WithWorkers splits each pass into row and column bands and
// runs them on a worker pool; the call still returns only after the whole
// result is written.
//
// # Logging
//
// viewblur is silent by default. See SetLogger.
//
// # Sub-packages
//
//   - surface: the rendering host interface and a CPU implementation
//   - overlay: per-element controller that swaps blurred snapshots in and out
package viewblur

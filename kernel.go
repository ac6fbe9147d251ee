package viewblur

import "math"

const (
	// MinKernelRadius is the smallest radius used for sizing the box window.
	// Smaller radii still select fewer iterations.
	MinKernelRadius = 2.0

	// MaxKernelSize caps the box window side so that huge or infinite radii
	// stay finite. It is odd, like every kernel size.
	MaxKernelSize = 4095

	// DefaultRadius is the blur radius used when the caller has no preference.
	DefaultRadius = 6.0
)

// boxScale is 3*sqrt(2*pi)/4, the factor from the SVG feGaussianBlur
// recommendation that turns a standard deviation into a box size.
var boxScale = 3 * math.Sqrt(2*math.Pi) / 4

// BoxKernel describes an iterated box blur approximating a Gaussian.
type BoxKernel struct {
	// Size is the side of the square box window in pixels. Always odd so the
	// window stays centered on the output pixel.
	Size int

	// Iterations is the number of box passes, 1 to 3.
	Iterations int
}

// NewBoxKernel derives the box window and pass count for a blur radius given
// in logical units. The window is not multiplied by the device scale.
func NewBoxKernel(radius float64) BoxKernel {
	return BoxKernel{
		Size:       KernelSize(radius),
		Iterations: IterationCount(radius),
	}
}

// KernelSize returns the box window side for radius:
//
//	d = floor(max(radius, 2) * 3*sqrt(2*pi)/4 + 0.5), rounded up to odd.
//
// Negative and NaN radii behave like zero.
func KernelSize(radius float64) int {
	r := sanitizeRadius(radius)
	if r < MinKernelRadius {
		r = MinKernelRadius
	}

	raw := math.Floor(r*boxScale + 0.5)
	if raw >= MaxKernelSize {
		return MaxKernelSize
	}

	size := int(raw)
	if size%2 == 0 {
		size++
	}
	return size
}

// IterationCount returns the number of box passes for the unclamped radius.
// Three passes approximate a Gaussian well; small radii trade quality for cost.
func IterationCount(radius float64) int {
	r := sanitizeRadius(radius)
	switch {
	case r < 0.5:
		return 1
	case r < 1.5:
		return 2
	default:
		return 3
	}
}

// Half returns the number of pixels the window extends on each side.
func (k BoxKernel) Half() int {
	return k.Size / 2
}

// Area returns the number of pixels averaged per output pixel.
func (k BoxKernel) Area() int {
	return k.Size * k.Size
}

func sanitizeRadius(radius float64) float64 {
	if math.IsNaN(radius) || radius < 0 {
		return 0
	}
	return radius
}

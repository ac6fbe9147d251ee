package viewblur

import (
	"errors"
	"fmt"
)

// Common errors for pixmap and blur operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("viewblur: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("viewblur: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("viewblur: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("viewblur: data buffer too small")

	// ErrUnsupportedFormat is returned when a pixmap is not four interleaved
	// 8-bit channels. The blur result is the unmodified input.
	ErrUnsupportedFormat = errors.New("viewblur: pixel format is not directly convolvable")

	// ErrAllocation is returned when the working buffers for a blur request
	// cannot be obtained. The request is aborted.
	ErrAllocation = errors.New("viewblur: cannot allocate working buffers")

	// ErrStaleOverlay is returned when a tracked overlay was invalidated
	// outside the controller (for example, its element was recycled).
	ErrStaleOverlay = errors.New("viewblur: stale overlay reference")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindUnsupportedFormat indicates a buffer the convolver cannot address.
	KindUnsupportedFormat
	// KindAllocation indicates working buffers could not be allocated.
	KindAllocation
	// KindStaleOverlay indicates a dangling overlay handle.
	KindStaleOverlay
	// KindHost indicates a failure reported by the rendering host.
	KindHost
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported-format"
	case KindAllocation:
		return "allocation"
	case KindStaleOverlay:
		return "stale-overlay"
	case KindHost:
		return "host"
	default:
		return "unknown"
	}
}

// Error is a structured error produced by a blur or overlay operation.
type Error struct {
	// Op is the operation that failed (e.g., "viewblur.Blur").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether the caller can continue with a degraded
// result. Only an unsupported format leaves one behind: Blur then returns
// its input unblurred.
func (e *Error) Recoverable() bool {
	return e.Kind == KindUnsupportedFormat
}

// IsRecoverable reports whether err leaves a usable result behind.
// A nil error is recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Recoverable()
	}
	return errors.Is(err, ErrUnsupportedFormat)
}

func newError(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

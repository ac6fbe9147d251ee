package viewblur

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := newError("viewblur.Blur", KindAllocation, ErrAllocation)
	want := "viewblur.Blur [allocation]: viewblur: cannot allocate working buffers"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrAllocation) {
		t.Error("errors.Is should see through *Error")
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"unsupported", newError("op", KindUnsupportedFormat, ErrUnsupportedFormat), true},
		{"wrapped unsupported", fmt.Errorf("outer: %w", ErrUnsupportedFormat), true},
		{"stale", newError("op", KindStaleOverlay, ErrStaleOverlay), false},
		{"unknown", newError("op", KindUnknown, ErrInvalidDimensions), false},
		{"host", newError("op", KindHost, errors.New("boom")), false},
		{"allocation", newError("op", KindAllocation, ErrAllocation), false},
		{"wrapped allocation", fmt.Errorf("outer: %w", ErrAllocation), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecoverable(tt.err); got != tt.want {
				t.Errorf("IsRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

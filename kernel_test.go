package viewblur

import (
	"math"
	"testing"
)

func TestIterationCount(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{0.0, 1},
		{0.4, 1},
		{0.5, 2},
		{1.4, 2},
		{1.5, 3},
		{10.0, 3},
		{-3, 1},
		{math.NaN(), 1},
		{math.Inf(1), 3},
	}

	for _, tt := range tests {
		if got := IterationCount(tt.radius); got != tt.want {
			t.Errorf("IterationCount(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestKernelSize(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{0, 5},   // clamped to 2: floor(3.76+0.5) = 4 -> 5
		{0.3, 5}, // clamped to 2
		{2, 5},
		{3, 7},   // floor(6.14) = 6 -> 7
		{4, 9},   // floor(8.02) = 8 -> 9
		{5, 9},   // floor(9.90) = 9
		{6, 11},  // floor(11.78) = 11
		{10, 19}, // floor(19.30) = 19
		{20, 39}, // floor(38.10) = 38 -> 39
		{-1, 5},
		{math.NaN(), 5},
		{1e12, MaxKernelSize},
		{math.Inf(1), MaxKernelSize},
	}

	for _, tt := range tests {
		if got := KernelSize(tt.radius); got != tt.want {
			t.Errorf("KernelSize(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestKernelSizeOddAndMonotonic(t *testing.T) {
	prev := 0
	for r := 0.0; r <= 300; r += 0.05 {
		size := KernelSize(r)
		if size%2 != 1 {
			t.Fatalf("KernelSize(%v) = %d, want odd", r, size)
		}
		if size < prev {
			t.Fatalf("KernelSize(%v) = %d < KernelSize of smaller radius = %d", r, size, prev)
		}
		prev = size
	}
}

func TestNewBoxKernel(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   BoxKernel
	}{
		{"default radius", DefaultRadius, BoxKernel{Size: 11, Iterations: 3}},
		{"small radius clamps size", 0.3, BoxKernel{Size: 5, Iterations: 1}},
		{"two passes", 1.0, BoxKernel{Size: 5, Iterations: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBoxKernel(tt.radius)
			if got != tt.want {
				t.Errorf("NewBoxKernel(%v) = %+v, want %+v", tt.radius, got, tt.want)
			}
		})
	}
}

func TestBoxKernelHalfAndArea(t *testing.T) {
	k := BoxKernel{Size: 11, Iterations: 3}
	if k.Half() != 5 {
		t.Errorf("Half() = %d, want 5", k.Half())
	}
	if k.Area() != 121 {
		t.Errorf("Area() = %d, want 121", k.Area())
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"math"
	"time"

	"github.com/gogpu/viewblur"
)

// Errors reported by hosts.
var (
	// ErrForeignElement is returned when an element was not created by the host.
	ErrForeignElement = errors.New("surface: element does not belong to this host")

	// ErrNotChild is returned when an element is not a child of the given parent.
	ErrNotChild = errors.New("surface: element is not a child of parent")

	// ErrDetached is returned when an element has no parent to swap within.
	ErrDetached = errors.New("surface: element is not attached to a parent")
)

// Rect is a frame in logical units, relative to the parent's origin.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// PixelSize returns the frame's size in physical pixels at scale.
func (r Rect) PixelSize(scale float64) (w, h int) {
	return int(math.Round(r.W * scale)), int(math.Round(r.H * scale))
}

// Layout selects how a parent arranges its children.
type Layout uint8

const (
	// LayoutFree positions children by their own frames.
	LayoutFree Layout = iota

	// LayoutStack arranges children in order along a line. Replacing a child
	// must keep its index.
	LayoutStack
)

// String returns a human-readable name for the layout.
func (l Layout) String() string {
	switch l {
	case LayoutFree:
		return "free"
	case LayoutStack:
		return "stack"
	default:
		return "unknown"
	}
}

// Element is a displayable node of a host's tree.
//
// Elements are used as map keys by the overlay controller, so implementations
// must be comparable (pointer types are).
type Element interface {
	// Frame returns the element's frame in its parent's coordinates.
	Frame() Rect

	// Parent returns the containing element, or nil when detached.
	Parent() Parent
}

// Parent is an element that contains children.
type Parent interface {
	Element

	// Layout returns how the parent arranges its children.
	Layout() Layout

	// Children returns the children in order. The slice must not be modified.
	Children() []Element

	// IndexOf returns the position of e among the children, or -1.
	IndexOf(e Element) int

	// Insert places e at index i, clamped to [0, len(children)].
	Insert(i int, e Element) error

	// Remove detaches e. It reports whether e was a child.
	Remove(e Element) bool
}

// Transition is a handle to an in-flight cross-fade.
type Transition interface {
	// Cancel stops the animation and applies its final state immediately.
	// Cancel is idempotent.
	Cancel()

	// Done reports whether the transition has finished or been cancelled.
	Done() bool
}

// Host is the rendering host consumed by the overlay controller.
type Host interface {
	// Rasterize snapshots e at its current frame and the host's device scale.
	Rasterize(e Element) (*viewblur.Pixmap, error)

	// NewOverlay wraps pm in a displayable element sized to frame.
	// The host copies what it needs; pm is not retained.
	NewOverlay(frame Rect, pm *viewblur.Pixmap) (Element, error)

	// InstallOverlay puts overlay in original's place within parent and
	// detaches original. Linear-stack parents keep the index.
	InstallOverlay(parent Parent, original, overlay Element) error

	// RestoreOriginal puts original back in overlay's place within parent
	// and detaches overlay. Linear-stack parents keep the index.
	RestoreOriginal(parent Parent, overlay, original Element) error

	// CrossFade animates from one element to the other over d.
	// A non-positive d applies the final state with no animation frame.
	CrossFade(from, to Element, d time.Duration) Transition

	// ReleaseOverlay discards an overlay created by NewOverlay and its pixels.
	ReleaseOverlay(overlay Element)
}

// RecycleNotifier is implemented by hosts that announce element teardown or
// reuse, so holders of per-element state can drop it.
type RecycleNotifier interface {
	// OnRecycle registers fn to be called with each recycled element.
	OnRecycle(fn func(Element))
}

// completed is a Transition that finished before it started.
type completed struct{}

func (completed) Cancel()    {}
func (completed) Done() bool { return true }

// Completed returns a Transition that is already done.
func Completed() Transition {
	return completed{}
}

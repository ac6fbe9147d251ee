// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/viewblur"
)

// HostOption configures a SoftwareHost during creation.
type HostOption func(*SoftwareHost)

// WithScaler sets the interpolator used to draw image content whose size
// differs from its frame. The default is draw.ApproxBiLinear.
func WithScaler(s xdraw.Scaler) HostOption {
	return func(h *SoftwareHost) {
		if s != nil {
			h.scaler = s
		}
	}
}

// WithCurve sets the easing curve applied to cross-fade progress.
// The default is EaseInOut.
func WithCurve(curve func(float64) float64) HostOption {
	return func(h *SoftwareHost) {
		if curve != nil {
			h.curve = curve
		}
	}
}

// SoftwareHost is a CPU rendering host for Node trees.
//
// Example:
//
//	host := surface.NewSoftwareHost(2.0)
//	pm, err := host.Rasterize(node)
type SoftwareHost struct {
	scale  float64
	scaler xdraw.Scaler
	curve  func(float64) float64

	// fades maps the incoming element of each running cross-fade to it.
	fades map[*Node]*fade

	// pending holds released overlays still drawn by a running fade.
	pending map[*Node]struct{}

	recycleFns []func(Element)
	frames     int
}

// NewSoftwareHost creates a host rendering at the given device scale.
// A non-positive scale is treated as 1.
func NewSoftwareHost(scale float64, opts ...HostOption) *SoftwareHost {
	if scale <= 0 {
		scale = 1
	}
	h := &SoftwareHost{
		scale:   scale,
		scaler:  xdraw.ApproxBiLinear,
		curve:   EaseInOut,
		fades:   make(map[*Node]*fade),
		pending: make(map[*Node]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Scale returns the device scale factor.
func (h *SoftwareHost) Scale() float64 {
	return h.scale
}

// Rasterize renders e and its subtree into a premultiplied RGBA pixmap of
// e's frame size times the device scale.
func (h *SoftwareHost) Rasterize(e Element) (*viewblur.Pixmap, error) {
	n, ok := e.(*Node)
	if !ok || n == nil {
		return nil, ErrForeignElement
	}

	w, ht := n.frame.PixelSize(h.scale)
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("surface: rasterize %q: %w", n.Name, viewblur.ErrInvalidDimensions)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, ht))
	h.drawNode(img, n, -n.frame.X, -n.frame.Y, 1)

	pm, err := viewblur.FromRaw(img.Pix, w, ht, viewblur.FormatRGBAPremul, img.Stride)
	if err != nil {
		return nil, fmt.Errorf("surface: rasterize %q: %w", n.Name, err)
	}
	pm.SetScale(h.scale)

	viewblur.Logger().Debug("surface: rasterized", "node", n.Name, "width", w, "height", ht, "scale", h.scale)
	return pm, nil
}

// NewOverlay creates a detached overlay node showing pm, sized to frame.
func (h *SoftwareHost) NewOverlay(frame Rect, pm *viewblur.Pixmap) (Element, error) {
	if pm == nil {
		return nil, fmt.Errorf("surface: new overlay: %w", viewblur.ErrInvalidDimensions)
	}
	n := NewNode("blur-overlay", frame)
	n.Content = pm.ToImage()
	n.overlay = true
	return n, nil
}

// InstallOverlay replaces original with overlay inside parent.
func (h *SoftwareHost) InstallOverlay(parent Parent, original, overlay Element) error {
	return h.swap(parent, original, overlay)
}

// RestoreOriginal replaces overlay with original inside parent.
func (h *SoftwareHost) RestoreOriginal(parent Parent, overlay, original Element) error {
	return h.swap(parent, overlay, original)
}

// swap removes out from parent and inserts in. Stack parents receive in at
// out's index; free parents receive it on top of their other children.
func (h *SoftwareHost) swap(parent Parent, out, in Element) error {
	if parent == nil {
		return ErrDetached
	}
	i := parent.IndexOf(out)
	if i < 0 {
		return ErrNotChild
	}

	if parent.Layout() == LayoutStack {
		parent.Remove(out)
		if err := parent.Insert(i, in); err != nil {
			_ = parent.Insert(i, out)
			return err
		}
		return nil
	}

	if err := parent.Insert(len(parent.Children()), in); err != nil {
		return err
	}
	parent.Remove(out)
	return nil
}

// ReleaseOverlay detaches an overlay and drops its pixels. If a running
// fade still draws the overlay as its outgoing side, the release happens
// when that fade ends.
func (h *SoftwareHost) ReleaseOverlay(overlay Element) {
	n, ok := overlay.(*Node)
	if !ok || n == nil || !n.overlay {
		return
	}
	if f := h.fades[n]; f != nil {
		f.finish()
	}
	for _, f := range h.fades {
		if f.from == n {
			h.pending[n] = struct{}{}
			return
		}
	}
	h.release(n)
}

func (h *SoftwareHost) release(n *Node) {
	delete(h.pending, n)
	if n.parent != nil {
		n.parent.Remove(n)
	}
	n.Content = nil
	n.children = nil
}

// OnRecycle registers fn to be called for every element passed to Recycle.
func (h *SoftwareHost) OnRecycle(fn func(Element)) {
	if fn != nil {
		h.recycleFns = append(h.recycleFns, fn)
	}
}

// Recycle tears e down for reuse: running fades touching it end, it is
// detached from its parent, and recycle listeners are notified.
func (h *SoftwareHost) Recycle(e Element) {
	n, ok := e.(*Node)
	if !ok || n == nil {
		return
	}
	for _, f := range h.fades {
		if f.to == n || f.from == n {
			f.finish()
		}
	}
	if n.parent != nil {
		n.parent.Remove(n)
	}
	n.recycled = true

	viewblur.Logger().Debug("surface: recycled", "node", n.Name)
	for _, fn := range h.recycleFns {
		fn(n)
	}
}

var _ Host = (*SoftwareHost)(nil)
var _ RecycleNotifier = (*SoftwareHost)(nil)

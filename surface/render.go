// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// drawNode draws n, whose parent origin sits at (ox, oy) logical units
// relative to dst's origin. Opacity multiplies down the tree.
func (h *SoftwareHost) drawNode(dst *image.RGBA, n *Node, ox, oy, alpha float64) {
	// The outgoing side of a running cross-fade is drawn beneath n.
	if f := h.fades[n]; f != nil && !f.done && f.from != nil {
		h.drawNode(dst, f.from, ox, oy, alpha*(1-f.eased()))
	}

	alpha *= n.opacity
	if alpha <= 0 {
		return
	}

	x, y := ox+n.frame.X, oy+n.frame.Y
	rect := image.Rect(
		h.px(x), h.px(y),
		h.px(x+n.frame.W), h.px(y+n.frame.H),
	)
	mask := alphaMask(alpha)

	if n.Background != nil {
		xdraw.DrawMask(dst, rect, image.NewUniform(n.Background), image.Point{}, mask, image.Point{}, xdraw.Over)
	}
	if n.Content != nil {
		h.drawContent(dst, rect, n.Content, mask)
	}

	for _, c := range n.children {
		h.drawNode(dst, c, x, y, alpha)
	}
}

// drawContent draws img into rect, scaling it when the sizes differ.
func (h *SoftwareHost) drawContent(dst *image.RGBA, rect image.Rectangle, img image.Image, mask image.Image) {
	sb := img.Bounds()
	if sb.Dx() == rect.Dx() && sb.Dy() == rect.Dy() {
		xdraw.DrawMask(dst, rect, img, sb.Min, mask, image.Point{}, xdraw.Over)
		return
	}

	var opts *xdraw.Options
	if mask != nil {
		opts = &xdraw.Options{DstMask: mask}
	}
	h.scaler.Scale(dst, rect, img, sb, xdraw.Over, opts)
}

// px converts a logical coordinate to a device pixel coordinate.
func (h *SoftwareHost) px(v float64) int {
	return int(math.Round(v * h.scale))
}

// alphaMask returns a uniform mask for alpha, or nil when fully opaque.
func alphaMask(alpha float64) image.Image {
	if alpha >= 1 {
		return nil
	}
	return image.NewUniform(color.Alpha{A: uint8(clamp01(alpha)*255 + 0.5)})
}

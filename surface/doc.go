// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface describes the rendering host that the blur overlay
// controller drives, and provides a CPU implementation of it.
//
// A host owns a tree of displayable elements. The controller needs exactly
// four things from it:
//
//   - Rasterize: a synchronous snapshot of an element at its current frame
//     and device scale
//   - InstallOverlay / RestoreOriginal: child-list swaps that keep the
//     ordinal position when the parent is a linear stack
//   - CrossFade: a best-effort, cancellable animated transition
//   - ReleaseOverlay: dropping an overlay and its pixels
//
// # Software host
//
// SoftwareHost renders a tree of Node values into an *image.RGBA. Image
// content is scaled with golang.org/x/image/draw. Transitions are advanced
// by calling Step from the host's frame loop:
//
//	host := surface.NewSoftwareHost(2.0)
//	list := surface.NewStack("list", surface.Rect{W: 320, H: 480}, 8)
//	row := surface.NewNode("row", surface.Rect{W: 320, H: 120})
//	_ = list.Append(row)
//
//	pm, err := host.Rasterize(row) // 640x240 pixels at scale 2
//
// Neither the interfaces nor SoftwareHost are safe for concurrent use; call
// them from the goroutine that owns the UI state.
package surface

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// Node is the element type of SoftwareHost: a rectangle with an optional
// background colour, optional image content scaled to its frame, and
// children drawn on top in order.
//
// A Node with LayoutStack positions its children top to bottom, separated by
// its spacing, and ignores their Y coordinate.
type Node struct {
	// Name identifies the node in logs.
	Name string

	// Background fills the frame before content is drawn. Nil draws nothing.
	Background color.Color

	// Content is drawn scaled to the frame. Nil draws nothing.
	Content image.Image

	frame    Rect
	opacity  float64
	layout   Layout
	spacing  float64
	children []*Node
	parent   *Node
	overlay  bool
	recycled bool
}

// NewNode creates a free-layout node.
func NewNode(name string, frame Rect) *Node {
	return &Node{Name: name, frame: frame, opacity: 1}
}

// NewStack creates a node that stacks its children vertically.
func NewStack(name string, frame Rect, spacing float64) *Node {
	return &Node{Name: name, frame: frame, opacity: 1, layout: LayoutStack, spacing: spacing}
}

// Frame returns the node's frame in its parent's coordinates.
func (n *Node) Frame() Rect {
	return n.frame
}

// SetFrame moves or resizes the node. Inside a stack only X, W and H apply.
func (n *Node) SetFrame(r Rect) {
	n.frame = r
	if n.parent != nil {
		n.parent.relayout()
	}
}

// Parent returns the containing node, or nil when detached.
func (n *Node) Parent() Parent {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Layout returns how the node arranges its children.
func (n *Node) Layout() Layout {
	return n.layout
}

// Opacity returns the node's opacity in [0, 1].
func (n *Node) Opacity() float64 {
	return n.opacity
}

// SetOpacity sets the node's opacity, clamped to [0, 1].
func (n *Node) SetOpacity(o float64) {
	n.opacity = clamp01(o)
}

// IsOverlay reports whether the node was created by SoftwareHost.NewOverlay.
func (n *Node) IsOverlay() bool {
	return n.overlay
}

// Recycled reports whether the host recycled the node.
func (n *Node) Recycled() bool {
	return n.recycled
}

// Children returns the children in order.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Nodes returns the child nodes in order. The slice must not be modified.
func (n *Node) Nodes() []*Node {
	return n.children
}

// IndexOf returns the position of e among the children, or -1.
func (n *Node) IndexOf(e Element) int {
	c, ok := e.(*Node)
	if !ok {
		return -1
	}
	for i, child := range n.children {
		if child == c {
			return i
		}
	}
	return -1
}

// Insert places e at index i, clamped to the valid range. If e already has
// a parent it is detached from it first.
func (n *Node) Insert(i int, e Element) error {
	c, ok := e.(*Node)
	if !ok || c == nil {
		return ErrForeignElement
	}
	if c.parent != nil {
		c.parent.Remove(c)
	}

	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}

	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
	n.relayout()
	return nil
}

// Append adds e after the last child.
func (n *Node) Append(e Element) error {
	return n.Insert(len(n.children), e)
}

// Remove detaches e. It reports whether e was a child.
func (n *Node) Remove(e Element) bool {
	i := n.IndexOf(e)
	if i < 0 {
		return false
	}
	c := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.parent = nil
	n.relayout()
	return true
}

// relayout recomputes child positions of a stack.
func (n *Node) relayout() {
	if n.layout != LayoutStack {
		return
	}
	y := 0.0
	for _, c := range n.children {
		c.frame.Y = y
		y += c.frame.H + n.spacing
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

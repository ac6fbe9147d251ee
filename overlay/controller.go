// Package overlay swaps blurred snapshots in and out of a rendering host.
//
// A Controller tracks, per element, whether a blurred overlay currently
// stands in for it:
//
//	         ApplyBlur
//	Sharp ──────────────► Blurred
//	  ▲                      │
//	  │      RemoveBlur      │
//	  └──────────────────────┘
//
// Repeating a transition in the state it leads to is a no-op. The
// controller is not safe for concurrent use; call it from the goroutine that
// owns the host's UI state. Rasterizing and blurring happen synchronously
// inside ApplyBlur, so callers that need responsiveness must schedule the
// call themselves.
package overlay

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/viewblur"
	"github.com/gogpu/viewblur/surface"
)

var errNoSnapshot = errors.New("overlay: host returned no snapshot")

// State is the blur state of one element.
type State uint8

const (
	// StateSharp means no overlay is installed.
	StateSharp State = iota

	// StateBlurred means a blurred overlay stands in for the element.
	StateBlurred
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateSharp:
		return "sharp"
	case StateBlurred:
		return "blurred"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Controller during creation.
type Option func(*Controller)

// WithBlurrer sets the convolver used for snapshots. The default is a
// serial viewblur.Blurrer.
func WithBlurrer(b *viewblur.Blurrer) Option {
	return func(c *Controller) {
		if b != nil {
			c.blurrer = b
		}
	}
}

// Controller installs and removes blurred overlays on a surface.Host.
type Controller struct {
	host    surface.Host
	blurrer *viewblur.Blurrer

	// overlays maps each blurred element to the overlay standing in for it.
	overlays map[surface.Element]surface.Element

	// transitions holds the latest cross-fade started for each element.
	transitions map[surface.Element]surface.Transition
}

// New creates a Controller bound to host. If host implements
// surface.RecycleNotifier, recycled elements are forgotten automatically.
func New(host surface.Host, opts ...Option) *Controller {
	c := &Controller{
		host:        host,
		blurrer:     viewblur.NewBlurrer(),
		overlays:    make(map[surface.Element]surface.Element),
		transitions: make(map[surface.Element]surface.Transition),
	}
	for _, opt := range opts {
		opt(c)
	}
	if rn, ok := host.(surface.RecycleNotifier); ok {
		rn.OnRecycle(c.Forget)
	}
	return c
}

// ApplyBlur snapshots e, blurs the snapshot by radius and installs it in
// e's place, cross-fading over d when d > 0. It is a no-op when e is
// already blurred.
//
// A snapshot the convolver cannot address is installed unblurred. On any
// other failure nothing is installed, e stays sharp and the error is
// returned.
func (c *Controller) ApplyBlur(e surface.Element, radius float64, d time.Duration) error {
	const op = "overlay.ApplyBlur"
	log := viewblur.Logger()

	if e == nil {
		return hostError(op, surface.ErrDetached)
	}
	if _, ok := c.overlays[e]; ok {
		return nil
	}
	parent := e.Parent()
	if parent == nil {
		return hostError(op, surface.ErrDetached)
	}

	// A fade still running on e would leak its partial opacity into the snapshot.
	c.endTransition(e)

	raster, err := c.host.Rasterize(e)
	if err != nil {
		return hostError(op, err)
	}
	if raster == nil {
		return hostError(op, errNoSnapshot)
	}

	blurred, err := c.blurrer.Blur(raster, radius)
	if err != nil {
		if !viewblur.IsRecoverable(err) {
			return err
		}
		log.Warn("overlay: installing unblurred snapshot", "err", err)
	}
	if blurred == nil {
		blurred = raster
	}

	ov, err := c.host.NewOverlay(e.Frame(), blurred)
	if err != nil {
		return hostError(op, err)
	}
	if err := c.host.InstallOverlay(parent, e, ov); err != nil {
		c.host.ReleaseOverlay(ov)
		return hostError(op, err)
	}

	c.overlays[e] = ov
	if d > 0 {
		c.transitions[e] = c.host.CrossFade(e, ov, d)
	}

	log.Debug("overlay: blurred", "radius", radius, "duration", d, "stack", parent.Layout() == surface.LayoutStack)
	return nil
}

// RemoveBlur puts e back in place of its overlay, cross-fading over d when
// d > 0, and releases the overlay. It is a no-op when e is sharp.
//
// The tracked state is cleared before the swap starts. An overlay that was
// detached or replaced outside the controller is treated as already gone:
// it is released and RemoveBlur returns nil.
//
// With d > 0 the overlay is still drawn as the outgoing side of the fade, so
// the host may keep its pixels until the fade ends or is cancelled. With
// d <= 0 nothing of the overlay is retained once RemoveBlur returns.
func (c *Controller) RemoveBlur(e surface.Element, d time.Duration) error {
	const op = "overlay.RemoveBlur"
	log := viewblur.Logger()

	ov, ok := c.overlays[e]
	if !ok {
		return nil
	}
	delete(c.overlays, e)
	c.endTransition(e)

	parent := ov.Parent()
	if parent == nil {
		log.Warn("overlay: dropping stale overlay", "err", viewblur.ErrStaleOverlay)
		c.host.ReleaseOverlay(ov)
		return nil
	}

	if err := c.host.RestoreOriginal(parent, ov, e); err != nil {
		if errors.Is(err, surface.ErrNotChild) {
			log.Warn("overlay: dropping stale overlay", "err", viewblur.ErrStaleOverlay)
			c.host.ReleaseOverlay(ov)
			return nil
		}
		c.overlays[e] = ov
		return hostError(op, err)
	}

	if d > 0 {
		c.transitions[e] = c.host.CrossFade(ov, e, d)
	}
	c.host.ReleaseOverlay(ov)

	log.Debug("overlay: restored", "duration", d)
	return nil
}

// IsBlurred reports whether an overlay currently stands in for e.
// It only reads the controller's own state.
func (c *Controller) IsBlurred(e surface.Element) bool {
	_, ok := c.overlays[e]
	return ok
}

// State returns e's blur state.
func (c *Controller) State(e surface.Element) State {
	if c.IsBlurred(e) {
		return StateBlurred
	}
	return StateSharp
}

// Overlay returns the overlay standing in for e, if any.
func (c *Controller) Overlay(e surface.Element) (surface.Element, bool) {
	ov, ok := c.overlays[e]
	return ov, ok
}

// Len returns the number of blurred elements.
func (c *Controller) Len() int {
	return len(c.overlays)
}

// Forget drops all state held for e after the host tore it down or reused
// it. Any running transition ends and e's overlay is released. e may also be
// an overlay, in which case the element it stood in for becomes sharp.
func (c *Controller) Forget(e surface.Element) {
	c.endTransition(e)
	delete(c.transitions, e)

	if ov, ok := c.overlays[e]; ok {
		delete(c.overlays, e)
		c.host.ReleaseOverlay(ov)
		return
	}
	for orig, ov := range c.overlays {
		if ov == e {
			c.endTransition(orig)
			delete(c.overlays, orig)
			c.host.ReleaseOverlay(ov)
			return
		}
	}
}

// endTransition cancels the cross-fade last started for e, if still running.
func (c *Controller) endTransition(e surface.Element) {
	t, ok := c.transitions[e]
	if !ok {
		return
	}
	delete(c.transitions, e)
	if !t.Done() {
		t.Cancel()
	}
}

func hostError(op string, err error) error {
	return &viewblur.Error{Op: op, Kind: viewblur.KindHost, Err: err}
}

package viewblur

import (
	"fmt"
	"math"

	"github.com/gogpu/viewblur/internal/parallel"
)

// Blurrer approximates a Gaussian blur with repeated square box
// convolutions, using clamp-to-edge sampling at the borders.
//
// A Blurrer holds no per-request state; every call allocates its own
// working buffers. It is safe for concurrent use.
type Blurrer struct {
	opts blurrerOptions
	pool *parallel.WorkerPool
}

// NewBlurrer creates a Blurrer. Call Close when done if WithWorkers
// requested more than one worker.
func NewBlurrer(opts ...BlurrerOption) *Blurrer {
	o := defaultBlurrerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Blurrer{opts: o}
	if o.workers != 1 {
		b.pool = parallel.NewWorkerPool(o.workers)
	}
	return b
}

// Close releases the worker pool, if any. Close is idempotent.
// A closed Blurrer keeps working on the calling goroutine.
func (b *Blurrer) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

var defaultBlurrer = NewBlurrer()

// Blur blurs src with the shared serial Blurrer. See Blurrer.Blur.
func Blur(src *Pixmap, radius float64) (*Pixmap, error) {
	return defaultBlurrer.Blur(src, radius)
}

// Blur returns a new pixmap holding src blurred by radius (logical units).
//
// The result has the same width, height, format, scale and orientation as
// src, a dense stride, and shares no memory with src. src is not modified.
//
// If src is not four interleaved 8-bit channels, Blur returns src itself
// together with an error matching ErrUnsupportedFormat; callers may use the
// returned pixmap as an unblurred fallback. If working buffers cannot be
// allocated, Blur returns nil and an error matching ErrAllocation.
func (b *Blurrer) Blur(src *Pixmap, radius float64) (*Pixmap, error) {
	const op = "viewblur.Blur"
	log := Logger()

	if src == nil {
		return nil, newError(op, KindUnknown, ErrInvalidDimensions)
	}
	if !src.format.Convolvable() {
		log.Warn("viewblur: returning unblurred pixmap", "format", src.format)
		return src, newError(op, KindUnsupportedFormat, fmt.Errorf("%w: %s", ErrUnsupportedFormat, src.format))
	}

	k := NewBoxKernel(radius)
	ws, err := b.allocate(src)
	if err != nil {
		log.Error("viewblur: blur aborted", "width", src.width, "height", src.height, "err", err)
		return nil, newError(op, KindAllocation, err)
	}

	log.Debug("viewblur: blur",
		"radius", radius,
		"size", k.Size,
		"iterations", k.Iterations,
		"width", src.width,
		"height", src.height,
		"scale", src.scale)

	// Seed the first buffer with the source rows.
	for y := 0; y < src.height; y++ {
		copy(ws.src.RowBytes(y), src.RowBytes(y))
	}

	for range k.Iterations {
		b.convolve(ws, k)
		ws.src, ws.dst = ws.dst, ws.src
	}

	return ws.src, nil
}

// workspace holds the ping/pong pixmaps and the horizontal-pass sums of a
// single request.
type workspace struct {
	src  *Pixmap
	dst  *Pixmap
	sums []uint32
}

// workingBytes returns the memory a request on a width x height pixmap
// needs: 4 bytes per pixel for each pixmap, 16 for the uint32 sums.
func workingBytes(width, height int) (int, bool) {
	const perPixel = 4 + 4 + 16
	if width <= 0 || height <= 0 {
		return 0, false
	}
	if width > math.MaxInt/height/perPixel {
		return 0, false
	}
	return width * height * perPixel, true
}

func (b *Blurrer) allocate(src *Pixmap) (ws *workspace, err error) {
	need, ok := workingBytes(src.width, src.height)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrAllocation, src.width, src.height)
	}
	if need > b.opts.maxBytes {
		return nil, fmt.Errorf("%w: need %d bytes, budget %d", ErrAllocation, need, b.opts.maxBytes)
	}

	defer func() {
		if r := recover(); r != nil {
			ws = nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()

	newBuf := func() *Pixmap {
		pm := &Pixmap{
			data:        make([]byte, src.width*src.height*4),
			width:       src.width,
			height:      src.height,
			stride:      src.width * 4,
			format:      src.format,
			scale:       src.scale,
			orientation: src.orientation,
		}
		return pm
	}

	return &workspace{
		src:  newBuf(),
		dst:  newBuf(),
		sums: make([]uint32, src.width*src.height*4),
	}, nil
}

// convolve runs one k.Size x k.Size box pass from ws.src into ws.dst.
// The horizontal pass stores row-window sums; the vertical pass sums those
// over the column window and divides by the full area, so the result is the
// exact rounded mean of the square window.
func (b *Blurrer) convolve(ws *workspace, k BoxKernel) {
	w, h := ws.src.width, ws.src.height
	half := k.Half()
	area := uint64(k.Area())

	rows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			boxRow(ws.src.RowBytes(y), ws.sums[y*w*4:(y+1)*w*4], w, half)
		}
	}
	cols := func(x0, x1 int) {
		boxColumns(ws.sums, ws.dst, x0, x1, half, area)
	}

	if b.pool == nil {
		rows(0, h)
		cols(0, w)
		return
	}

	parts := b.pool.Workers()
	b.pool.ExecuteAll(bandWork(parallel.Bands(h, parts), rows))
	b.pool.ExecuteAll(bandWork(parallel.Bands(w, parts), cols))
}

func bandWork(bands [][2]int, fn func(start, end int)) []func() {
	work := make([]func(), len(bands))
	for i, band := range bands {
		work[i] = func() { fn(band[0], band[1]) }
	}
	return work
}

// boxRow writes, for every pixel and channel of row, the sum of the
// 2*half+1 horizontal neighbours with edge extension.
func boxRow(row []byte, out []uint32, width, half int) {
	last := width - 1
	for c := 0; c < 4; c++ {
		sum := 0
		for i := -half; i <= half; i++ {
			sum += int(row[clampIndex(i, last)*4+c])
		}
		for x := 0; x < width; x++ {
			out[x*4+c] = uint32(sum) //nolint:gosec // sum <= 255*MaxKernelSize
			add := x + half + 1
			if add > last {
				add = last
			}
			sub := x - half
			if sub < 0 {
				sub = 0
			}
			sum += int(row[add*4+c]) - int(row[sub*4+c])
		}
	}
}

// boxColumns sums row-window sums over the vertical window for columns
// [x0, x1) and writes the rounded mean into dst.
func boxColumns(sums []uint32, dst *Pixmap, x0, x1, half int, area uint64) {
	w, h := dst.width, dst.height
	last := h - 1
	rowLen := w * 4
	lo, hi := x0*4, x1*4

	col := make([]uint64, hi-lo)
	for i := -half; i <= half; i++ {
		row := sums[clampIndex(i, last)*rowLen:]
		for j := range col {
			col[j] += uint64(row[lo+j])
		}
	}

	round := area / 2
	for y := 0; y < h; y++ {
		out := dst.data[y*dst.stride+lo : y*dst.stride+hi]
		for j := range col {
			out[j] = byte((col[j] + round) / area)
		}

		add := y + half + 1
		if add > last {
			add = last
		}
		sub := y - half
		if sub < 0 {
			sub = 0
		}
		addRow := sums[add*rowLen:]
		subRow := sums[sub*rowLen:]
		for j := range col {
			col[j] += uint64(addRow[lo+j])
			col[j] -= uint64(subRow[lo+j])
		}
	}
}

func clampIndex(i, last int) int {
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}

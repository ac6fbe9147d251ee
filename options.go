package viewblur

// DefaultMaxBytes is the default working-memory budget of a single blur
// request: two ping/pong pixmaps plus the row-sum scratch buffer.
const DefaultMaxBytes = 1 << 30

// BlurrerOption configures a Blurrer during creation.
//
// Example:
//
//	// Serial blurrer with the default memory budget
//	b := viewblur.NewBlurrer()
//
//	// Fan bands out to four goroutines, cap working memory at 256 MiB
//	b := viewblur.NewBlurrer(viewblur.WithWorkers(4), viewblur.WithMaxBytes(256<<20))
//	defer b.Close()
type BlurrerOption func(*blurrerOptions)

type blurrerOptions struct {
	workers  int
	maxBytes int
}

func defaultBlurrerOptions() blurrerOptions {
	return blurrerOptions{
		workers:  1,
		maxBytes: DefaultMaxBytes,
	}
}

// WithWorkers sets how many goroutines run convolution bands.
// 1 (the default) runs everything on the calling goroutine; 0 or a negative
// value uses GOMAXPROCS. Blur still returns only once every band is done.
func WithWorkers(n int) BlurrerOption {
	return func(o *blurrerOptions) {
		o.workers = n
	}
}

// WithMaxBytes caps the working memory a single request may allocate.
// Requests that need more fail with ErrAllocation. Non-positive values
// restore DefaultMaxBytes.
func WithMaxBytes(n int) BlurrerOption {
	return func(o *blurrerOptions) {
		if n <= 0 {
			n = DefaultMaxBytes
		}
		o.maxBytes = n
	}
}

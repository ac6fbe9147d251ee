// Command blurdemo renders a list of message rows, hides some of them
// behind blurred snapshots and saves the result as a PNG.
//
// Settings come from blurdemo.yaml (see internal/config); flags override
// them:
//
//	blurdemo -radius 8 -duration 500ms -all -output out.png
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/viewblur"
	"github.com/gogpu/viewblur/internal/config"
	"github.com/gogpu/viewblur/overlay"
	"github.com/gogpu/viewblur/surface"
)

// frameInterval is the simulated frame clock used to run cross-fades.
const frameInterval = 16 * time.Millisecond

func main() {
	var (
		configPath = flag.String("config", "", "path to blurdemo.yaml (default: ./blurdemo.yaml if present)")
		output     = flag.String("output", "", "output PNG file")
		radius     = flag.Float64("radius", -1, "blur radius in logical units")
		duration   = flag.Duration("duration", -1, "cross-fade duration")
		all        = flag.Bool("all", false, "blur the whole list after the rows")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blurdemo: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Render.Output = *output
	}
	if *radius >= 0 {
		cfg.Blur.Radius = radius
	}
	if *duration >= 0 {
		cfg.Blur.Duration = duration.Seconds()
	}
	if *all {
		cfg.Blur.All = true
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	viewblur.SetLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("blurdemo failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadOptional(wd)
}

func run(cfg *config.Config, logger *slog.Logger) error {
	host := surface.NewSoftwareHost(cfg.Render.Scale)
	window, list := buildWindow(cfg)

	blurrer := viewblur.NewBlurrer(viewblur.WithWorkers(*cfg.Blur.Workers))
	defer blurrer.Close()
	ctrl := overlay.New(host, overlay.WithBlurrer(blurrer))

	d := cfg.TransitionDuration()
	rows := append([]*surface.Node(nil), list.Nodes()...)

	for _, i := range cfg.Blur.Rows {
		if err := toggleBlur(ctrl, rows[i], cfg.BlurRadius(), d); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		logger.Info("row toggled", "row", i, "blurred", ctrl.IsBlurred(rows[i]))
	}
	frames := animate(host)

	if cfg.Blur.All {
		if err := toggleBlur(ctrl, list, cfg.BlurRadius(), d); err != nil {
			return fmt.Errorf("list: %w", err)
		}
		frames += animate(host)
	}

	pm, err := host.Rasterize(window)
	if err != nil {
		return err
	}
	if err := savePNG(cfg.Render.Output, pm); err != nil {
		return err
	}

	logger.Info("saved",
		"output", cfg.Render.Output,
		"width", pm.Width(),
		"height", pm.Height(),
		"blurred", ctrl.Len(),
		"frames", frames)
	return nil
}

// toggleBlur flips e between sharp and blurred.
func toggleBlur(c *overlay.Controller, e surface.Element, radius float64, d time.Duration) error {
	if c.IsBlurred(e) {
		return c.RemoveBlur(e, d)
	}
	return c.ApplyBlur(e, radius, d)
}

// animate steps the host on a simulated frame clock until every
// cross-fade has finished and returns the number of frames drawn.
func animate(host *surface.SoftwareHost) int {
	start := time.Now()
	frames := 0
	for host.Step(start.Add(time.Duration(frames)*frameInterval)) > 0 {
		frames++
	}
	return frames
}

func savePNG(path string, pm *viewblur.Pixmap) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, pm.ToImage())
}

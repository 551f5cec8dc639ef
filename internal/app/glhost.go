//go:build glfw

package app

import (
	"log/slog"
	"time"

	"lifegl/internal/core"
	"lifegl/internal/gpu/gldevice"
	"lifegl/internal/ui"
	"lifegl/internal/universe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// glHost drives a universe from a GLFW event loop. Ticks are paced by a
// FixedStep clock; every loop iteration presents a frame.
type glHost struct {
	win      *gldevice.Window
	universe *universe.Universe
	input    *PanZoom
	stats    *ui.Stats
	logger   *slog.Logger

	paused   bool
	tickOnce bool
}

// RunGL opens a window and runs until it is closed. It must be called from
// the main thread with the OS thread locked.
func RunGL(cfg *Config, logger *slog.Logger) error {
	win, err := gldevice.Open(cfg.WindowWidth, cfg.WindowHeight, "lifegl")
	if err != nil {
		return errors.Wrap(err, "[app.RunGL]")
	}
	defer win.Close()

	stats := ui.NewStats()
	u, err := universe.New(win, cfg.Width, cfg.Height,
		universe.WithLogger(logger),
		universe.WithWorkers(cfg.Workers),
		universe.WithPattern(cfg.ParsedPattern(), cfg.Seed),
		universe.WithObserver(stats),
	)
	if err != nil {
		return errors.Wrap(err, "[app.RunGL]")
	}
	defer u.Destroy()

	h := &glHost{
		win:      win,
		universe: u,
		input:    NewPanZoom(u, cfg.ZoomMin, cfg.ZoomMax, cfg.ZoomStep),
		stats:    stats,
		logger:   logger,
	}
	h.bind()
	h.loop(core.NewFixedStep(cfg.TPS), cfg.ShowStats)
	return nil
}

func (h *glHost) bind() {
	w := h.win.Handle()
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyQ, glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeySpace:
			h.paused = !h.paused
		case glfw.KeyN:
			h.tickOnce = true
		case glfw.KeyR:
			h.universe.Reset()
		case glfw.KeyS:
			seed := time.Now().UnixNano()
			h.universe.Reseed(seed)
			h.logger.Info("reseeded", "seed", seed)
		}
	})
	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			h.input.Press(h.cursor(w.GetCursorPos()))
		case glfw.Release:
			h.input.Release()
		}
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.input.Move(h.cursor(x, y))
	})
	w.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		h.input.Wheel(dy)
	})
}

// cursor converts window coordinates to framebuffer pixels.
func (h *glHost) cursor(x, y float64) (float64, float64) {
	r := h.win.PixelRatio()
	return x * r, y * r
}

func (h *glHost) loop(clock *core.FixedStep, report bool) {
	h.logger.Debug("gl host running", "tick", clock.Interval(), "pixel_ratio", h.win.PixelRatio())
	lastReport := time.Now()
	for !h.win.ShouldClose() {
		if (!h.paused && clock.ShouldStep()) || h.tickOnce {
			h.universe.Frame()
			h.tickOnce = false
		} else {
			h.universe.Redraw()
		}
		h.win.Present()

		if report && time.Since(lastReport) >= time.Second {
			lastReport = time.Now()
			h.win.Handle().SetTitle(statsTitle(h.stats, h.universe))
		}
	}
}

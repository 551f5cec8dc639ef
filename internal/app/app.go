//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"lifegl/internal/gpu/ebitendevice"
	"lifegl/internal/ui"
	"lifegl/internal/universe"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
)

// Game adapts a universe to the ebiten.Game interface. Update ticks at the
// configured TPS; Draw paints whatever generation is current.
type Game struct {
	universe *universe.Universe
	surface  *ebitendevice.Surface
	input    *PanZoom
	overlay  *ui.Overlay
	logger   *slog.Logger

	paused   bool
	tickOnce bool
}

// New builds the universe on an ebiten surface.
func New(cfg *Config, logger *slog.Logger) (*Game, error) {
	surface := ebitendevice.NewSurface()
	stats := ui.NewStats()
	u, err := universe.New(surface, cfg.Width, cfg.Height,
		universe.WithLogger(logger),
		universe.WithWorkers(cfg.Workers),
		universe.WithPattern(cfg.ParsedPattern(), cfg.Seed),
		universe.WithObserver(stats),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[app.New]")
	}
	return &Game{
		universe: u,
		surface:  surface,
		input:    NewPanZoom(u, cfg.ZoomMin, cfg.ZoomMax, cfg.ZoomStep),
		overlay:  ui.NewOverlay(stats, u, cfg.ShowStats),
		logger:   logger,
	}, nil
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.universe.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		seed := time.Now().UnixNano()
		g.universe.Reseed(seed)
		g.logger.Info("reseeded", "seed", seed)
	}
	g.handlePointer()
	g.overlay.Update()

	if !g.paused || g.tickOnce {
		g.universe.Tick()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.input.Press(float64(x), float64(y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.input.Release()
	case g.input.Dragging():
		g.input.Move(float64(x), float64(y))
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.input.Wheel(wy)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Attach(screen)
	g.universe.Redraw()
	g.overlay.Draw(screen)
}

// Layout keeps one logical pixel per window pixel so pan offsets track the
// cursor exactly.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Close releases GPU resources.
func (g *Game) Close() { g.universe.Destroy() }

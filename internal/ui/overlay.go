//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Counters supplies the simulation figures shown next to the frame stats.
type Counters interface {
	Generation() int
	Population() int
	Zoom() float64
}

// Overlay draws frame statistics in the top-left corner. F toggles it.
type Overlay struct {
	stats    *Stats
	counters Counters
	visible  bool
	panel    *ebiten.Image
}

const (
	overlayWidth   = 190
	overlayHeight  = 62
	overlayPadding = 6
	lineHeight     = 14
)

// NewOverlay constructs an overlay reading from stats and counters.
func NewOverlay(stats *Stats, counters Counters, visible bool) *Overlay {
	return &Overlay{stats: stats, counters: counters, visible: visible}
}

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.visible = !o.visible
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.visible {
		return
	}
	if o.panel == nil {
		o.panel = ebiten.NewImage(overlayWidth, overlayHeight)
	}
	o.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})

	lines := []string{
		fmt.Sprintf("%5.1f fps  %5.2f ms", o.stats.FPS(), float64(o.stats.FrameTime().Microseconds())/1000),
		fmt.Sprintf("TPS %5.1f  frame %d", ebiten.ActualTPS(), o.stats.Frames()),
	}
	if o.counters != nil {
		lines = append(lines,
			fmt.Sprintf("gen %d  pop %d", o.counters.Generation(), o.counters.Population()),
			fmt.Sprintf("zoom %.2f", o.counters.Zoom()),
		)
	}

	face := basicfont.Face7x13
	y := overlayPadding + face.Ascent
	for _, line := range lines {
		text.Draw(o.panel, line, face, overlayPadding, y, color.RGBA{R: 200, G: 220, B: 200, A: 255})
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(overlayPadding, overlayPadding)
	screen.DrawImage(o.panel, op)
}

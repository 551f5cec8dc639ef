package app

// ViewTarget is the pan/zoom state a PanZoom drives.
type ViewTarget interface {
	Offset() (float64, float64)
	SetOffset(x, y float64)
	Zoom() float64
	SetZoom(z float64)
}

// PanZoom turns pointer drags into pan offsets and wheel notches into zoom.
// Coordinates are surface pixels with y growing downward; offsets grow upward,
// so vertical motion is inverted.
type PanZoom struct {
	target ViewTarget

	zoomMin, zoomMax, zoomStep float64

	dragging         bool
	startX, startY   float64
	originX, originY float64
}

// NewPanZoom clamps wheel zoom to [zoomMin, zoomMax].
func NewPanZoom(target ViewTarget, zoomMin, zoomMax, zoomStep float64) *PanZoom {
	return &PanZoom{target: target, zoomMin: zoomMin, zoomMax: zoomMax, zoomStep: zoomStep}
}

// Press starts a drag at (x, y).
func (p *PanZoom) Press(x, y float64) {
	p.dragging = true
	p.startX, p.startY = x, y
	p.originX, p.originY = p.target.Offset()
}

// Move pans by the distance from the drag start. It is ignored outside a drag.
func (p *PanZoom) Move(x, y float64) {
	if !p.dragging {
		return
	}
	p.target.SetOffset(p.originX+(x-p.startX), p.originY-(y-p.startY))
}

// Release ends the drag.
func (p *PanZoom) Release() { p.dragging = false }

// Dragging reports whether a drag is in progress.
func (p *PanZoom) Dragging() bool { return p.dragging }

// Wheel zooms by notches*step. Positive notches zoom in.
func (p *PanZoom) Wheel(notches float64) {
	if notches == 0 {
		return
	}
	z := p.target.Zoom() + notches*p.zoomStep
	p.target.SetZoom(min(max(z, p.zoomMin), p.zoomMax))
}

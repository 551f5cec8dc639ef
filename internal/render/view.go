package render

// View is the pan/zoom state applied in the vertex stage. Offsets are in
// surface pixels; Zoom is a plain multiplier.
type View struct {
	OffsetX, OffsetY float64
	Zoom             float64
}

// DefaultView is centered at zoom 1.
func DefaultView() View { return View{Zoom: 1} }

// Scale returns the scale uniform that keeps cells square on a surface of
// sw*sh pixels showing a gw*gh grid.
func (v View) Scale(sw, sh, gw, gh int) (float32, float32) {
	aspect := (float64(sw) / float64(sh)) * (float64(gh) / float64(gw))
	return float32((1 / aspect) * v.Zoom), float32(1 * v.Zoom)
}

// Translation converts the pixel offset into normalized device units.
func (v View) Translation(sw, sh int) (float32, float32) {
	return float32(v.OffsetX / float64(sw) * 2), float32(v.OffsetY / float64(sh) * 2)
}

package app

import (
	"fmt"

	"lifegl/internal/ui"
)

type titleCounters interface {
	Generation() int
	Population() int
}

// statsTitle formats frame statistics for a window title.
func statsTitle(stats *ui.Stats, c titleCounters) string {
	return fmt.Sprintf("lifegl  %.0f fps  %.2f ms  frame %d  gen %d  pop %d",
		stats.FPS(), float64(stats.FrameTime().Microseconds())/1000, stats.Frames(), c.Generation(), c.Population())
}

package ui

import "time"

// Stats measures frame time between Begin and End and keeps an exponential
// moving average. A nil *Stats ignores every call.
type Stats struct {
	now     func() time.Time
	start   time.Time
	last    time.Time
	frame   time.Duration
	avg     time.Duration
	between time.Duration
	frames  int
}

// smoothing weight of the newest sample in the moving averages.
const smoothing = 0.1

// NewStats returns a Stats driven by the wall clock.
func NewStats() *Stats { return &Stats{now: time.Now} }

// Begin marks the start of a frame.
func (s *Stats) Begin() {
	if s == nil {
		return
	}
	now := s.now()
	if !s.start.IsZero() {
		s.between = ema(s.between, now.Sub(s.start))
	}
	s.start = now
}

// End marks the end of the frame started by the last Begin.
func (s *Stats) End() {
	if s == nil || s.start.IsZero() {
		return
	}
	s.last = s.now()
	s.frame = s.last.Sub(s.start)
	s.avg = ema(s.avg, s.frame)
	s.frames++
}

func ema(avg, sample time.Duration) time.Duration {
	if avg == 0 {
		return sample
	}
	return time.Duration(float64(avg)*(1-smoothing) + float64(sample)*smoothing)
}

// Frames returns the number of completed frames.
func (s *Stats) Frames() int {
	if s == nil {
		return 0
	}
	return s.frames
}

// FrameTime returns the smoothed Begin-to-End duration.
func (s *Stats) FrameTime() time.Duration {
	if s == nil {
		return 0
	}
	return s.avg
}

// FPS returns the smoothed rate of Begin calls.
func (s *Stats) FPS() float64 {
	if s == nil || s.between <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.between)
}

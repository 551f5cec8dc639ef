//go:build ebiten

package ebitendevice

import (
	"lifegl/internal/gpu"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

var errNoDevice = errors.New("ebiten surface has no device")

// Surface exposes the screen image of the current ebiten frame as a
// gpu.Surface. Its size is zero until the first Attach.
type Surface struct {
	dev *Device
}

// NewSurface returns a surface with its own device.
func NewSurface() *Surface { return &Surface{dev: NewDevice()} }

// Attach binds the screen handed to ebiten.Game.Draw.
func (s *Surface) Attach(screen *ebiten.Image) { s.dev.Attach(screen) }

func (s *Surface) Device() (gpu.Device, error) {
	if s == nil || s.dev == nil {
		return nil, errors.Wrap(errNoDevice, "[ebitendevice.Surface.Device]")
	}
	return s.dev, nil
}

func (s *Surface) Size() (int, int) {
	if s == nil || s.dev == nil || s.dev.target == nil {
		return 0, 0
	}
	b := s.dev.target.Bounds()
	return b.Dx(), b.Dy()
}

//go:build glfw

package gldevice

import (
	"lifegl/internal/core"
	"lifegl/internal/gpu"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// Window is a GLFW window with an OpenGL 2.1 context, usable as a
// gpu.Surface. Open must be called from the main, OS-locked thread.
type Window struct {
	win     *glfw.Window
	dev     *Device
	initErr error
	closed  bool
}

// Open creates a resizable window and makes its context current.
func Open(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "[gldevice.Open] glfw init")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "[gldevice.Open] create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return &Window{win: win}, nil
}

// Device loads the GL entry points on first use.
func (w *Window) Device() (gpu.Device, error) {
	if w == nil || w.closed {
		return nil, errors.Wrap(core.ErrNoSurface, "[gldevice.Device] window closed")
	}
	if w.dev == nil && w.initErr == nil {
		if err := gl.Init(); err != nil {
			w.initErr = errors.Wrap(err, "[gldevice.Device] gl init")
		} else {
			w.dev = newDevice()
		}
	}
	if w.initErr != nil {
		return nil, w.initErr
	}
	return w.dev, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	if w == nil || w.closed {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// PixelRatio converts window coordinates (cursor positions) to framebuffer
// pixels.
func (w *Window) PixelRatio() float64 {
	fbW, _ := w.win.GetFramebufferSize()
	winW, _ := w.win.GetSize()
	if winW <= 0 || fbW <= 0 {
		return 1
	}
	return float64(fbW) / float64(winW)
}

// Handle exposes the GLFW window for input callbacks.
func (w *Window) Handle() *glfw.Window { return w.win }

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.closed || w.win.ShouldClose() }

// Present swaps buffers and processes pending events.
func (w *Window) Present() {
	w.win.SwapBuffers()
	glfw.PollEvents()
}

// Close destroys the window and terminates GLFW. It is safe to call twice.
func (w *Window) Close() {
	if w == nil || w.closed {
		return
	}
	w.closed = true
	w.win.Destroy()
	glfw.Terminate()
}

package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/glshader"
)

// WindowConfig describes the window and context to create.
type WindowConfig struct {
	Width, Height int
	Title         string
	VSync         bool
	Hidden        bool
}

// Window is a GLFW window whose OpenGL context is a glshader.Context.
// glfw.Init must have been called, and the window must be created and
// used on the main OS thread.
type Window struct {
	window *glfw.Window
	driver Driver
	cache  *glshader.ShaderCache

	onKey func(key glfw.Key)
}

var _ glshader.Context = (*Window)(nil)

// NewWindow creates a window with an OpenGL 4.1 core context, makes the
// context current and loads the GL function pointers. opts apply to every
// program created through the window's shader cache.
func NewWindow(cfg WindowConfig, opts ...glshader.ProgramOption) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	w := &Window{
		window: win,
		driver: NewDriver(),
	}
	w.cache = glshader.NewShaderCache(w.driver, opts...)
	win.SetKeyCallback(w.keyCallback)
	return w, nil
}

// GLFW returns the underlying GLFW window.
func (w *Window) GLFW() *glfw.Window { return w.window }

// Driver returns the OpenGL driver for this window's context.
func (w *Window) Driver() Driver { return w.driver }

// ShaderCache returns the program cache of this window's context.
func (w *Window) ShaderCache() *glshader.ShaderCache { return w.cache }

// MakeCurrent makes the window's context current on the calling thread.
func (w *Window) MakeCurrent() { w.window.MakeContextCurrent() }

// OnKey sets a handler for key presses.
func (w *Window) OnKey(fn func(key glfw.Key)) { w.onKey = fn }

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press || w.onKey == nil {
		return
	}
	w.onKey(key)
}

// Destroy releases every cached program while the context is still
// current, then destroys the window.
func (w *Window) Destroy() {
	if w.window == nil {
		return
	}
	w.window.MakeContextCurrent()
	w.cache.ReleaseGraphicsResources(w)
	w.window.Destroy()
	w.window = nil
}

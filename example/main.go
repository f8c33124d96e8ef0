// Example draws a spinning triangle through a cached shader program.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// With --manifest, the program named by --program is loaded from a YAML
// manifest and recompiled whenever one of its source files changes.
package main

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pborman/getopt"

	"github.com/go-theft-auto/glshader"
	"github.com/go-theft-auto/glshader/backend/opengl"
	"github.com/go-theft-auto/glshader/manifest"
)

const (
	defaultVertex = `#version 410 core
in vec3 position;
in vec4 color;
uniform mat4 mvp; // row-major
out vec4 vColor;
void main() {
    vColor = color;
    gl_Position = vec4(position, 1.0) * mvp;
}
`
	defaultFragment = `#version 410 core
in vec4 vColor;
uniform vec4 tint;
out vec4 FragColor;
void main() {
    FragColor = vColor * tint;
}
`
)

// vertex is the interleaved layout of the triangle buffer.
type vertex struct {
	Position [3]float32
	Color    [4]uint8
}

var triangle = []vertex{
	{Position: [3]float32{-0.6, -0.5, 0}, Color: [4]uint8{255, 64, 64, 255}},
	{Position: [3]float32{0.6, -0.5, 0}, Color: [4]uint8{64, 255, 64, 255}},
	{Position: [3]float32{0, 0.6, 0}, Color: [4]uint8{64, 64, 255, 255}},
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scene is the state that is rebuilt when the shader sources change.
type scene struct {
	window  *opengl.Window
	name    string
	sources manifest.Sources
	program *glshader.Program
	vao     *glshader.VertexArray
}

func run() error {
	manifestPath := getopt.StringLong("manifest", 'm', "", "YAML shader manifest")
	programName := getopt.StringLong("program", 'p', "triangle", "program to load from the manifest")
	width := getopt.IntLong("width", 'w', 800, "width of the window")
	height := getopt.IntLong("height", 'h', 600, "height of the window")
	verbose := getopt.BoolLong("verbose", 'v', "log every shader operation")
	getopt.Parse()

	glshader.SetVerbose(*verbose)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := opengl.NewWindow(opengl.WindowConfig{
		Width:  *width,
		Height: *height,
		Title:  "glshader example",
		VSync:  true,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	s := &scene{
		window:  window,
		name:    *programName,
		sources: manifest.Sources{Vertex: defaultVertex, Fragment: defaultFragment},
	}

	var changes <-chan string
	var m *manifest.Manifest
	if *manifestPath != "" {
		m, err = manifest.Load(*manifestPath)
		if err != nil {
			return err
		}
		if s.sources, err = m.Sources(*programName); err != nil {
			return err
		}
		watcher, err := manifest.NewWatcher(m)
		if err != nil {
			return err
		}
		defer watcher.Close()
		changes = watcher.Changes()
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	defer gl.DeleteBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(triangle)*int(unsafe.Sizeof(vertex{})), gl.Ptr(triangle), gl.STATIC_DRAW)

	if err := s.load(); err != nil {
		return err
	}
	defer s.vao.Delete()

	paused := false
	window.OnKey(func(key glfw.Key) {
		switch key {
		case glfw.KeyEscape:
			window.GLFW().SetShouldClose(true)
		case glfw.KeySpace:
			paused = !paused
		case glfw.KeyV:
			*verbose = !*verbose
			glshader.SetVerbose(*verbose)
		}
	})

	angle := float32(0)
	for !window.GLFW().ShouldClose() {
		glfw.PollEvents()

		select {
		case name := <-changes:
			if name != s.name {
				break
			}
			if err := s.reload(m, name); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		default:
		}

		w, h := window.GLFW().GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if !paused {
			angle += 0.01
		}
		p, err := window.ShaderCache().ReadyProgram(s.sources.Vertex, s.sources.Fragment, s.sources.Geometry)
		if err != nil {
			return err
		}
		aspect := float32(w) / float32(max(h, 1))
		proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 10)
		view := mgl32.LookAtV(mgl32.Vec3{0, 0, 2.5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
		model := mgl32.HomogRotate3DY(angle)
		// Missing uniforms are reported through LastError; keep drawing.
		_ = p.SetUniformMatrix4("mvp", proj.Mul4(view).Mul4(model))
		_ = p.SetUniform4uc("tint", [4]uint8{255, 255, 255, 255})

		s.vao.Bind()
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(triangle)))
		s.vao.Release()

		window.GLFW().SwapBuffers()
	}
	return nil
}

// load readies the program for the current sources and records its
// attribute layout in a fresh vertex array.
func (s *scene) load() error {
	p, err := s.window.ShaderCache().ReadyProgram(s.sources.Vertex, s.sources.Fragment, s.sources.Geometry)
	if err != nil {
		return err
	}
	if s.vao == nil {
		if s.vao, err = glshader.NewVertexArray(s.window.Driver()); err != nil {
			return err
		}
	}
	stride := int(unsafe.Sizeof(vertex{}))
	s.vao.Bind()
	defer s.vao.Release()
	if err := s.vao.AddAttribute(p, "position", 0, stride, glshader.TypeFloat, 3, glshader.NoNormalize); err != nil {
		return err
	}
	if err := s.vao.AddAttribute(p, "color", int(unsafe.Offsetof(vertex{}.Color)), stride,
		glshader.TypeUnsignedChar, 4, glshader.Normalize); err != nil {
		return err
	}
	s.program = p
	return nil
}

// reload swaps in the new sources of the named program. On failure the
// previous program keeps drawing.
func (s *scene) reload(m *manifest.Manifest, name string) error {
	src, err := m.Sources(name)
	if err != nil {
		return err
	}
	old, oldSources := s.program, s.sources
	s.sources = src
	if err := s.load(); err != nil {
		s.sources = oldSources
		s.window.ShaderCache().Evict(s.window, glshader.SourceHash(src.Vertex, src.Fragment, src.Geometry))
		return fmt.Errorf("reload %s: %w", name, err)
	}
	if old != nil && old != s.program {
		s.window.ShaderCache().Evict(s.window, old.Hash())
	}
	return nil
}

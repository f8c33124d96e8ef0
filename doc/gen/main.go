// Command gen compiles every program of a shader manifest offscreen, draws
// each over a full-viewport quad, and saves JPEG previews to doc/imgs/.
// Programs that fail to compile are listed with their numbered source and
// the command exits non-zero.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/ --manifest shaders.yaml
//
// Preview programs read a vec2 "position" attribute in [-1, 1]. The
// uniforms "resolution" (vec2) and "time" (float) are set when present.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pborman/getopt"

	"github.com/go-theft-auto/glshader"
	"github.com/go-theft-auto/glshader/backend/opengl"
	"github.com/go-theft-auto/glshader/manifest"
)

var quad = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type preview struct {
	name    string
	sources manifest.Sources
	width   int
	height  int
	time    float32
}

func run() error {
	manifestPath := getopt.StringLong("manifest", 'm', "shaders.yaml", "YAML shader manifest")
	outDir := getopt.StringLong("out", 'o', filepath.Join("doc", "imgs"), "output directory")
	width := getopt.IntLong("width", 'w', 320, "preview width")
	height := getopt.IntLong("height", 'h', 240, "preview height")
	at := getopt.IntLong("time", 't', 1000, "value of the time uniform, in milliseconds")
	verbose := getopt.BoolLong("verbose", 'v', "log every shader operation")
	getopt.Parse()

	glshader.SetVerbose(*verbose)

	m, err := manifest.Load(*manifestPath)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	// The hidden window stays at least as large as every preview.
	window, err := opengl.NewWindow(opengl.WindowConfig{
		Width:  max(*width, 800),
		Height: max(*height, 600),
		Title:  "shader-preview",
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	defer gl.DeleteBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	var failed []string
	for _, name := range m.Names() {
		src, err := m.Sources(name)
		if err != nil {
			return err
		}
		p := preview{
			name:    name,
			sources: src,
			width:   *width,
			height:  *height,
			time:    float32(*at) / 1000,
		}
		if err := capture(window, p, *outDir); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			failed = append(failed, name)
			continue
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", name, p.width, p.height)
	}

	fmt.Printf("\nGenerated %d previews in %s/\n", len(m.Names())-len(failed), *outDir)
	if len(failed) > 0 {
		return fmt.Errorf("%d programs failed: %v", len(failed), failed)
	}
	return nil
}

func capture(window *opengl.Window, p preview, outDir string) error {
	cache := window.ShaderCache()
	hash := glshader.SourceHash(p.sources.Vertex, p.sources.Fragment, p.sources.Geometry)
	defer cache.Evict(window, hash)
	prog, err := cache.ReadyProgram(p.sources.Vertex, p.sources.Fragment, p.sources.Geometry)
	if err != nil {
		return err
	}

	vao, err := glshader.NewVertexArray(window.Driver())
	if err != nil {
		return err
	}
	defer vao.Delete()
	vao.Bind()
	defer vao.Release()
	if err := vao.AddAttribute(prog, "position", 0, 0, glshader.TypeFloat, 2, glshader.NoNormalize); err != nil {
		return err
	}

	for _, set := range []error{
		prog.SetUniform2f("resolution", [2]float32{float32(p.width), float32(p.height)}),
		prog.SetUniformf("time", p.time),
	} {
		if set != nil && !errors.Is(set, glshader.ErrNoSuchUniform) {
			return set
		}
	}

	gl.Viewport(0, 0, int32(p.width), int32(p.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, int32(len(quad)/2))
	gl.Finish()

	// Read pixels
	pixels := make([]byte, p.width*p.height*4)
	gl.ReadPixels(0, 0, int32(p.width), int32(p.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := p.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < p.height/2; y++ {
		top := y * rowLen
		bot := (p.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, p.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

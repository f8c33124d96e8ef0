// Package opengl provides an OpenGL 4.1 core implementation of the
// glshader driver, and a GLFW window that serves as a rendering context.
package opengl

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glshader"
)

// Driver implements glshader.Driver using OpenGL.
// gl.Init must have been called with a current context.
type Driver struct{}

var _ glshader.Driver = Driver{}

// NewDriver returns an OpenGL driver.
func NewDriver() Driver {
	return Driver{}
}

var glShaderTypes = map[glshader.ShaderType]uint32{
	glshader.VertexShader:   gl.VERTEX_SHADER,
	glshader.FragmentShader: gl.FRAGMENT_SHADER,
	glshader.GeometryShader: gl.GEOMETRY_SHADER,
}

func (Driver) CreateShader(typ glshader.ShaderType) uint32 {
	xtype, ok := glShaderTypes[typ]
	if !ok {
		return 0
	}
	return gl.CreateShader(xtype)
}

func (Driver) CompileShader(shader uint32, source string) (bool, string) {
	csource, free := gl.Strs(cString(source))
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	return false, infoLog(logLength, func(buf *uint8) {
		gl.GetShaderInfoLog(shader, logLength, nil, buf)
	})
}

func (Driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (Driver) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (Driver) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	return false, infoLog(logLength, func(buf *uint8) {
		gl.GetProgramInfoLog(program, logLength, nil, buf)
	})
}

func (Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(cString(name)))
}

func (Driver) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(cString(name)))
}

func (Driver) Uniformiv(location int32, components int, v []int32) {
	if len(v) < components || components <= 0 {
		return
	}
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.Uniform1iv(location, count, &v[0])
	case 2:
		gl.Uniform2iv(location, count, &v[0])
	case 3:
		gl.Uniform3iv(location, count, &v[0])
	case 4:
		gl.Uniform4iv(location, count, &v[0])
	}
}

func (Driver) Uniformfv(location int32, components int, v []float32) {
	if len(v) < components || components <= 0 {
		return
	}
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.Uniform1fv(location, count, &v[0])
	case 2:
		gl.Uniform2fv(location, count, &v[0])
	case 3:
		gl.Uniform3fv(location, count, &v[0])
	case 4:
		gl.Uniform4fv(location, count, &v[0])
	}
}

func (Driver) UniformMatrix3fv(location int32, v []float32) {
	if len(v) < 9 {
		return
	}
	gl.UniformMatrix3fv(location, int32(len(v)/9), false, &v[0])
}

func (Driver) UniformMatrix4fv(location int32, v []float32) {
	if len(v) < 16 {
		return
	}
	gl.UniformMatrix4fv(location, int32(len(v)/16), false, &v[0])
}

func (Driver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (Driver) DisableVertexAttribArray(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (Driver) VertexAttribOffset(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (Driver) VertexAttribData(index uint32, size int32, xtype uint32, normalized bool, data unsafe.Pointer) {
	gl.VertexAttribPointer(index, size, xtype, normalized, 0, data)
}

func (Driver) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Driver) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (Driver) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

// cString returns s with the NUL terminator go-gl expects.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// infoLog reads a driver info log of the given length (including the
// terminator) and returns it without the terminator.
func infoLog(length int32, read func(buf *uint8)) string {
	if length <= 1 {
		return ""
	}
	buf := make([]byte, length+1)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

// Package fakegl provides an in-memory glshader.Driver that records every
// call, for tests that run without a GPU.
package fakegl

import (
	"strings"
	"unsafe"

	"github.com/go-theft-auto/glshader"
)

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []any
}

// Uniform is one recorded uniform upload.
type Uniform struct {
	Location   int32
	Components int
	Matrix     int // 3 or 4 for matrix uploads, 0 otherwise
	Ints       []int32
	Floats     []float32
}

// AttribPointer is one recorded vertex attribute pointer.
type AttribPointer struct {
	Index      uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
	Data       unsafe.Pointer
}

// Driver is a fake glshader.Driver. Configure the exported knobs before use.
type Driver struct {
	// NoCreateShader, NoCreateProgram and NoCreateVAO make the matching
	// create call return 0.
	NoCreateShader  bool
	NoCreateProgram bool
	NoCreateVAO     bool

	// CompileLogs maps a source substring to the info log of a failed compile.
	CompileLogs map[string]string
	// LinkLog, when non-empty, makes every link fail with that info log.
	LinkLog string

	// Uniforms and Attributes are the active variables of every linked program.
	Uniforms   map[string]int32
	Attributes map[string]int32

	Calls    []Call
	Current  uint32
	VAO      uint32
	Enabled  map[uint32]bool
	Attached map[uint32][]uint32
	Live     map[uint32]bool

	UniformUploads []Uniform
	AttribPointers []AttribPointer

	next uint32
}

var _ glshader.Driver = (*Driver)(nil)

// New returns a fake driver with no active variables.
func New() *Driver {
	return &Driver{
		CompileLogs: make(map[string]string),
		Uniforms:    make(map[string]int32),
		Attributes:  make(map[string]int32),
		Enabled:     make(map[uint32]bool),
		Attached:    make(map[uint32][]uint32),
		Live:        make(map[uint32]bool),
	}
}

func (d *Driver) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

// Count returns how many times the named call was made.
func (d *Driver) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and uploads, keeping object state.
func (d *Driver) Reset() {
	d.Calls = nil
	d.UniformUploads = nil
	d.AttribPointers = nil
}

func (d *Driver) alloc() uint32 {
	d.next++
	d.Live[d.next] = true
	return d.next
}

func (d *Driver) CreateShader(typ glshader.ShaderType) uint32 {
	d.record("CreateShader", typ)
	if d.NoCreateShader {
		return 0
	}
	return d.alloc()
}

func (d *Driver) CompileShader(shader uint32, source string) (bool, string) {
	d.record("CompileShader", shader)
	for frag, infoLog := range d.CompileLogs {
		if strings.Contains(source, frag) {
			return false, infoLog
		}
	}
	return true, ""
}

func (d *Driver) DeleteShader(shader uint32) {
	d.record("DeleteShader", shader)
	delete(d.Live, shader)
}

func (d *Driver) CreateProgram() uint32 {
	d.record("CreateProgram")
	if d.NoCreateProgram {
		return 0
	}
	return d.alloc()
}

func (d *Driver) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	delete(d.Live, program)
	delete(d.Attached, program)
}

func (d *Driver) AttachShader(program, shader uint32) {
	d.record("AttachShader", program, shader)
	d.Attached[program] = append(d.Attached[program], shader)
}

func (d *Driver) DetachShader(program, shader uint32) {
	d.record("DetachShader", program, shader)
	list := d.Attached[program]
	for i, s := range list {
		if s == shader {
			d.Attached[program] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

func (d *Driver) LinkProgram(program uint32) (bool, string) {
	d.record("LinkProgram", program)
	if d.LinkLog != "" {
		return false, d.LinkLog
	}
	return true, ""
}

func (d *Driver) UseProgram(program uint32) {
	d.record("UseProgram", program)
	d.Current = program
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", program, name)
	if loc, ok := d.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) AttribLocation(program uint32, name string) int32 {
	d.record("AttribLocation", program, name)
	if loc, ok := d.Attributes[name]; ok {
		return loc
	}
	return -1
}

func (d *Driver) Uniformiv(location int32, components int, v []int32) {
	d.record("Uniformiv", location, components)
	d.UniformUploads = append(d.UniformUploads, Uniform{
		Location: location, Components: components, Ints: append([]int32(nil), v...),
	})
}

func (d *Driver) Uniformfv(location int32, components int, v []float32) {
	d.record("Uniformfv", location, components)
	d.UniformUploads = append(d.UniformUploads, Uniform{
		Location: location, Components: components, Floats: append([]float32(nil), v...),
	})
}

func (d *Driver) UniformMatrix3fv(location int32, v []float32) {
	d.record("UniformMatrix3fv", location)
	d.UniformUploads = append(d.UniformUploads, Uniform{
		Location: location, Matrix: 3, Floats: append([]float32(nil), v...),
	})
}

func (d *Driver) UniformMatrix4fv(location int32, v []float32) {
	d.record("UniformMatrix4fv", location)
	d.UniformUploads = append(d.UniformUploads, Uniform{
		Location: location, Matrix: 4, Floats: append([]float32(nil), v...),
	})
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
	d.Enabled[index] = true
}

func (d *Driver) DisableVertexAttribArray(index uint32) {
	d.record("DisableVertexAttribArray", index)
	d.Enabled[index] = false
}

func (d *Driver) VertexAttribOffset(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribOffset", index)
	d.AttribPointers = append(d.AttribPointers, AttribPointer{
		Index: index, Size: size, Type: xtype, Normalized: normalized, Stride: stride, Offset: offset,
	})
}

func (d *Driver) VertexAttribData(index uint32, size int32, xtype uint32, normalized bool, data unsafe.Pointer) {
	d.record("VertexAttribData", index)
	d.AttribPointers = append(d.AttribPointers, AttribPointer{
		Index: index, Size: size, Type: xtype, Normalized: normalized, Data: data,
	})
}

func (d *Driver) CreateVertexArray() uint32 {
	d.record("CreateVertexArray")
	if d.NoCreateVAO {
		return 0
	}
	return d.alloc()
}

func (d *Driver) BindVertexArray(vao uint32) {
	d.record("BindVertexArray", vao)
	d.VAO = vao
}

func (d *Driver) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray", vao)
	delete(d.Live, vao)
}

// Context is a glshader.Context backed by a single ShaderCache.
type Context struct {
	Cache *glshader.ShaderCache
}

// NewContext returns a context with a fresh cache on d.
func NewContext(d *Driver) *Context {
	return &Context{Cache: glshader.NewShaderCache(d)}
}

func (c *Context) ShaderCache() *glshader.ShaderCache { return c.Cache }

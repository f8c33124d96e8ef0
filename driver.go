package glshader

import "unsafe"

// Driver is the interface to the native graphics API.
// The opengl backend implements it on top of go-gl; tests use an
// in-memory fake. All methods must be called on the thread that owns
// the current graphics context.
type Driver interface {
	// CreateShader returns a new shader object of the given type, or 0.
	CreateShader(typ ShaderType) uint32
	// CompileShader uploads source to the shader and compiles it.
	// On failure the driver's info log is returned.
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	DeleteShader(shader uint32)

	// CreateProgram returns a new program object, or 0.
	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	// LinkProgram links the program. On failure the driver's info log
	// is returned.
	LinkProgram(program uint32) (ok bool, infoLog string)
	// UseProgram makes program current; 0 means no program.
	UseProgram(program uint32)

	// UniformLocation and AttribLocation return -1 when name is not an
	// active variable of the linked program.
	UniformLocation(program uint32, name string) int32
	AttribLocation(program uint32, name string) int32

	// Uniformiv uploads len(v)/components vectors of the given width.
	Uniformiv(location int32, components int, v []int32)
	// Uniformfv uploads len(v)/components vectors of the given width.
	Uniformfv(location int32, components int, v []float32)
	UniformMatrix3fv(location int32, v []float32)
	UniformMatrix4fv(location int32, v []float32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	// VertexAttribOffset describes an attribute sourced from the bound
	// array buffer at the given byte offset.
	VertexAttribOffset(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	// VertexAttribData describes an attribute sourced from client memory.
	VertexAttribData(index uint32, size int32, xtype uint32, normalized bool, data unsafe.Pointer)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
}

// Native element type identifiers, matching the OpenGL enum values.
const (
	glByte          uint32 = 0x1400
	glUnsignedByte  uint32 = 0x1401
	glShort         uint32 = 0x1402
	glUnsignedShort uint32 = 0x1403
	glInt           uint32 = 0x1404
	glUnsignedInt   uint32 = 0x1405
	glFloat         uint32 = 0x1406
	glDouble        uint32 = 0x140A
)

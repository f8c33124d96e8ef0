package glshader

import (
	"fmt"
	"strconv"
	"strings"
)

// Stage is a compiled shader as seen by a Program: its native handle and kind.
// Programs keep only the handle of an attached stage, never the stage itself.
type Stage interface {
	Handle() uint32
	Type() ShaderType
}

// Shader is a single compilable stage of GLSL code.
// The native handle is non-zero only while the shader is compiled.
type Shader struct {
	driver Driver
	typ    ShaderType
	source string
	handle objectHandle
	err    string
}

// NewShader creates an empty shader of the given type.
func NewShader(d Driver, typ ShaderType) *Shader {
	return &Shader{driver: d, typ: typ}
}

// Type returns the stage kind.
func (s *Shader) Type() ShaderType { return s.typ }

// SetType changes the stage kind. It does not touch a compiled handle;
// call Cleanup first when changing the kind of a compiled shader.
func (s *Shader) SetType(typ ShaderType) { s.typ = typ }

// Source returns the GLSL source text.
func (s *Shader) Source() string { return s.source }

// SetSource replaces the GLSL source text. It takes effect on the next Compile.
func (s *Shader) SetSource(src string) { s.source = src }

// Handle returns the native shader handle, 0 if not compiled.
func (s *Shader) Handle() uint32 { return s.handle.ID() }

// LastError returns the message of the most recent failure.
func (s *Shader) LastError() string { return s.err }

// Compile compiles the current source, creating the native shader on first use.
// A failed compile deletes the native shader, leaving the handle at 0.
func (s *Shader) Compile() error {
	if s.source == "" || s.typ == ShaderUnknown {
		s.err = "Shader object was not initialized, cannot compile it."
		return fmt.Errorf("compile %s shader: %w", s.typ, ErrNotInitialized)
	}

	if !s.handle.Valid() {
		id := s.driver.CreateShader(s.typ)
		if id == 0 {
			s.err = "Could not create shader object."
			return fmt.Errorf("compile %s shader: %w", s.typ, ErrCreateShader)
		}
		s.handle.adopt(id, s.driver.DeleteShader)
	}

	ok, infoLog := s.driver.CompileShader(s.handle.ID(), s.source)
	if !ok {
		s.err = strings.TrimRight(infoLog, "\x00\n")
		s.handle.release()
		return fmt.Errorf("%w: %s shader: %s", ErrCompileFailed, s.typ, s.err)
	}
	s.err = ""
	return nil
}

// Cleanup deletes the native shader, if any.
func (s *Shader) Cleanup() {
	s.handle.release()
}

// numberedSource renders src with 1-based line numbers for diagnostics.
func numberedSource(src string) string {
	var sb strings.Builder
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	for i, line := range lines {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(": ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

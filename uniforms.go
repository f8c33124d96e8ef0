package glshader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// findUniform resolves a uniform location against the linked program.
// It returns -1 without consulting the driver when the program is not linked.
func (p *Program) findUniform(name string) int32 {
	if name == "" || !p.linked {
		return -1
	}
	loc := p.driver.UniformLocation(p.handle.ID(), name)
	if loc == -1 {
		p.err = "Uniform " + name + " not found in current shader program."
	}
	return loc
}

// uniform resolves name or returns the no-such-uniform failure.
func (p *Program) uniform(name string) (int32, error) {
	loc := p.findUniform(name)
	if loc == -1 {
		return -1, p.failMsg("Could not set uniform "+name+". No such uniform.",
			fmt.Errorf("could not set uniform %s: %w", name, ErrNoSuchUniform))
	}
	return loc, nil
}

// SetUniformi sets an int uniform.
func (p *Program) SetUniformi(name string, v int32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformiv(loc, 1, []int32{v})
	return nil
}

// SetUniformf sets a float uniform.
func (p *Program) SetUniformf(name string, v float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformfv(loc, 1, []float32{v})
	return nil
}

// SetUniform2i sets an ivec2 uniform.
func (p *Program) SetUniform2i(name string, v [2]int32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformiv(loc, 2, v[:])
	return nil
}

// SetUniform2f sets a vec2 uniform.
func (p *Program) SetUniform2f(name string, v [2]float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformfv(loc, 2, v[:])
	return nil
}

// SetUniform3f sets a vec3 uniform.
func (p *Program) SetUniform3f(name string, v [3]float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformfv(loc, 3, v[:])
	return nil
}

// SetUniform4f sets a vec4 uniform.
func (p *Program) SetUniform4f(name string, v [4]float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformfv(loc, 4, v[:])
	return nil
}

// SetUniform3uc sets a vec3 uniform from an 8-bit RGB color, mapping each
// channel to [0, 1].
func (p *Program) SetUniform3uc(name string, v [3]uint8) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformfv(loc, 3, normalizeColor(v[:]))
	return nil
}

// SetUniform4uc sets a vec4 uniform from an 8-bit RGBA color, mapping each
// channel to [0, 1].
func (p *Program) SetUniform4uc(name string, v [4]uint8) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformfv(loc, 4, normalizeColor(v[:]))
	return nil
}

// SetUniformMatrix3 uploads m with element i taken from row i/3, column i%3.
func (p *Program) SetUniformMatrix3(name string, m mgl32.Mat3) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	var data [9]float32
	for i := range data {
		data[i] = m.At(i/3, i%3)
	}
	p.driver.UniformMatrix3fv(loc, data[:])
	return nil
}

// SetUniformMatrix4 uploads m with element i taken from row i/4, column i%4.
func (p *Program) SetUniformMatrix4(name string, m mgl32.Mat4) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	var data [16]float32
	for i := range data {
		data[i] = m.At(i/4, i%4)
	}
	p.driver.UniformMatrix4fv(loc, data[:])
	return nil
}

// SetUniform1iv sets an int array uniform.
func (p *Program) SetUniform1iv(name string, v []int32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformiv(loc, 1, v)
	return nil
}

// SetUniform2iv sets an ivec2 array uniform.
func (p *Program) SetUniform2iv(name string, v [][2]int32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	flat := make([]int32, 0, 2*len(v))
	for _, e := range v {
		flat = append(flat, e[:]...)
	}
	p.driver.Uniformiv(loc, 2, flat)
	return nil
}

// SetUniform1fv sets a float array uniform.
func (p *Program) SetUniform1fv(name string, v []float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	p.driver.Uniformfv(loc, 1, v)
	return nil
}

// SetUniform3fv sets a vec3 array uniform.
func (p *Program) SetUniform3fv(name string, v [][3]float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	flat := make([]float32, 0, 3*len(v))
	for _, e := range v {
		flat = append(flat, e[:]...)
	}
	p.driver.Uniformfv(loc, 3, flat)
	return nil
}

// SetUniform4fv sets a vec4 array uniform.
func (p *Program) SetUniform4fv(name string, v [][4]float32) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	flat := make([]float32, 0, 4*len(v))
	for _, e := range v {
		flat = append(flat, e[:]...)
	}
	p.driver.Uniformfv(loc, 4, flat)
	return nil
}

// SetUniform3uv sets a vec3 array uniform from 8-bit RGB colors.
func (p *Program) SetUniform3uv(name string, v [][3]uint8) error {
	loc, err := p.uniform(name)
	if err != nil {
		return err
	}
	flat := make([]float32, 0, 3*len(v))
	for _, e := range v {
		flat = append(flat, normalizeColor(e[:])...)
	}
	p.driver.Uniformfv(loc, 3, flat)
	return nil
}

// normalizeColor maps 8-bit channels to [0, 1].
func normalizeColor(c []uint8) []float32 {
	out := make([]float32, len(c))
	for i, v := range c {
		out[i] = float32(v) / 255
	}
	return out
}

package glshader

import (
	"fmt"
	"unsafe"
)

// findAttribute resolves an attribute location, serving repeat lookups from
// the attribute cache. It returns -1 without consulting the driver when the
// program is not linked.
func (p *Program) findAttribute(name string) int32 {
	if name == "" || !p.linked {
		return -1
	}
	if loc, ok := p.attributes[name]; ok {
		return loc
	}
	loc := p.driver.AttribLocation(p.handle.ID(), name)
	if loc == -1 {
		p.err = "Specified attribute not found in current shader program: " + name
		return -1
	}
	p.attributes[name] = loc
	return loc
}

// AttributeLocation returns the location of the named vertex attribute in the
// linked program. It is the lookup used by VertexArray.
func (p *Program) AttributeLocation(name string) (int32, error) {
	loc := p.findAttribute(name)
	if loc == -1 {
		return -1, p.failMsg("Could not find attribute "+name+". No such attribute.",
			fmt.Errorf("could not find attribute %s: %w", name, ErrNoSuchAttribute))
	}
	return loc, nil
}

// EnableAttributeArray enables the named attribute array.
func (p *Program) EnableAttributeArray(name string) error {
	loc := p.findAttribute(name)
	if loc == -1 {
		return p.failMsg("Could not enable attribute "+name+". No such attribute.",
			fmt.Errorf("could not enable attribute %s: %w", name, ErrNoSuchAttribute))
	}
	p.driver.EnableVertexAttribArray(uint32(loc))
	return nil
}

// DisableAttributeArray disables the named attribute array.
func (p *Program) DisableAttributeArray(name string) error {
	loc := p.findAttribute(name)
	if loc == -1 {
		return p.failMsg("Could not disable attribute "+name+". No such attribute.",
			fmt.Errorf("could not disable attribute %s: %w", name, ErrNoSuchAttribute))
	}
	p.driver.DisableVertexAttribArray(uint32(loc))
	return nil
}

// UseAttributeArray sources the named attribute from the bound array buffer.
// offset and stride are in bytes; a stride of 0 means tightly packed.
// tupleSize is the number of elements per vertex.
func (p *Program) UseAttributeArray(name string, offset, stride int, typ ElementType, tupleSize int, normalize NormalizeOption) error {
	xtype, ok := typ.nativeType()
	if !ok {
		return p.failMsg("Unrecognized data type for attribute "+name+".",
			fmt.Errorf("use attribute %s: %w %d", name, ErrUnknownElementType, typ))
	}
	loc := p.findAttribute(name)
	if loc == -1 {
		return p.failMsg("Could not use attribute "+name+". No such attribute.",
			fmt.Errorf("could not use attribute %s: %w", name, ErrNoSuchAttribute))
	}
	p.driver.VertexAttribOffset(uint32(loc), int32(tupleSize), xtype, normalize == Normalize,
		int32(stride), uintptr(offset))
	return nil
}

// SetAttributeArray points the named attribute at tightly packed client data.
// The element type is derived from T. data must stay alive and unmoved for
// as long as draws read from it.
func SetAttributeArray[T Numeric](p *Program, name string, data []T, tupleSize int, normalize NormalizeOption) error {
	if len(data) == 0 {
		return p.failMsg("Refusing to upload empty array for attribute "+name+".",
			fmt.Errorf("set attribute %s: %w", name, ErrEmptyArray))
	}
	return p.setAttributeArray(name, unsafe.Pointer(unsafe.SliceData(data)), elementTypeOf[T](), tupleSize, normalize)
}

func (p *Program) setAttributeArray(name string, data unsafe.Pointer, typ ElementType, tupleSize int, normalize NormalizeOption) error {
	xtype, ok := typ.nativeType()
	if !ok {
		return p.failMsg("Unrecognized data type for attribute "+name+".",
			fmt.Errorf("set attribute %s: %w", name, ErrUnknownElementType))
	}
	loc := p.findAttribute(name)
	if loc == -1 {
		return p.failMsg("Could not set attribute "+name+". No such attribute.",
			fmt.Errorf("could not set attribute %s: %w", name, ErrNoSuchAttribute))
	}
	p.driver.VertexAttribData(uint32(loc), int32(tupleSize), xtype, normalize == Normalize, data)
	return nil
}

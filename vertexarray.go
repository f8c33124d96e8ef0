package glshader

import "fmt"

// VertexArray wraps a native vertex array object, recording how a
// program's attributes are sourced from the bound array buffer.
type VertexArray struct {
	driver Driver
	handle objectHandle
}

// NewVertexArray creates a vertex array object.
func NewVertexArray(d Driver) (*VertexArray, error) {
	id := d.CreateVertexArray()
	if id == 0 {
		return nil, ErrCreateVAO
	}
	va := &VertexArray{driver: d}
	va.handle.adopt(id, d.DeleteVertexArray)
	return va, nil
}

// Handle returns the native handle, 0 after Delete.
func (va *VertexArray) Handle() uint32 { return va.handle.ID() }

// Bind makes the vertex array current.
func (va *VertexArray) Bind() {
	va.driver.BindVertexArray(va.handle.ID())
}

// Release unbinds any vertex array.
func (va *VertexArray) Release() {
	va.driver.BindVertexArray(0)
}

// AddAttribute sources the named attribute of p from the bound array buffer
// and enables it. The vertex array must be bound and p linked.
func (va *VertexArray) AddAttribute(p *Program, name string, offset, stride int, typ ElementType, tupleSize int, normalize NormalizeOption) error {
	xtype, ok := typ.nativeType()
	if !ok {
		return fmt.Errorf("vertex array attribute %s: %w", name, ErrUnknownElementType)
	}
	loc, err := p.AttributeLocation(name)
	if err != nil {
		return err
	}
	va.driver.VertexAttribOffset(uint32(loc), int32(tupleSize), xtype, normalize == Normalize,
		int32(stride), uintptr(offset))
	va.driver.EnableVertexAttribArray(uint32(loc))
	return nil
}

// Delete frees the native vertex array.
func (va *VertexArray) Delete() {
	va.handle.release()
}

package glshader

import "fmt"

// objectHandle owns a single native object name and deletes it exactly once.
// The zero value holds nothing. Ownership is not transferable: adopting a
// new name while one is still held panics, since the old object would leak.
type objectHandle struct {
	id  uint32
	del func(uint32)
}

// adopt takes ownership of id, to be freed later with del.
func (h *objectHandle) adopt(id uint32, del func(uint32)) {
	if h.id != 0 {
		panic(fmt.Sprintf("glshader: handle %d adopted while still owning %d", id, h.id))
	}
	h.id = id
	h.del = del
}

// ID returns the native name, 0 when nothing is held.
func (h *objectHandle) ID() uint32 {
	return h.id
}

// Valid reports whether a native object is held.
func (h *objectHandle) Valid() bool {
	return h.id != 0
}

// release deletes the native object if one is held. Safe to call repeatedly.
func (h *objectHandle) release() {
	if h.id == 0 {
		return
	}
	if h.del != nil {
		h.del(h.id)
	}
	h.id = 0
	h.del = nil
}

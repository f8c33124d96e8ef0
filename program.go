package glshader

import (
	"errors"
	"fmt"
	"log/slog"
)

// Program combines vertex, fragment and optional geometry stages into an
// executable GPU program.
//
// The lifecycle is Uninitialized → stages attached → Linked → Bound.
// Attaching or detaching a stage drops the program back to unlinked, and
// ReleaseGraphicsResources returns it to Uninitialized.
//
// A Program is not safe for concurrent use: every method issues driver
// calls and must run on the thread owning the graphics context.
type Program struct {
	driver Driver
	logger *slog.Logger
	cache  *ShaderCache

	vertex   *Shader
	fragment *Shader
	geometry *Shader

	handle         objectHandle
	vertexHandle   uint32
	fragmentHandle uint32
	geometryHandle uint32

	linked   bool
	bound    bool
	compiled bool

	err  string
	hash string

	// attributes caches resolved attribute locations. It is only
	// populated while linked.
	attributes map[string]int32
}

// NewProgram creates an uninitialized program with empty vertex, fragment
// and geometry stages. No driver call is made until a stage is attached.
func NewProgram(d Driver, opts ...ProgramOption) *Program {
	o := applyProgramOptions(opts)
	return &Program{
		driver:     d,
		logger:     o.logger,
		cache:      o.cache,
		hash:       o.hash,
		vertex:     NewShader(d, VertexShader),
		fragment:   NewShader(d, FragmentShader),
		geometry:   NewShader(d, GeometryShader),
		attributes: make(map[string]int32),
	}
}

// VertexShader returns the program's own vertex stage.
func (p *Program) VertexShader() *Shader { return p.vertex }

// FragmentShader returns the program's own fragment stage.
func (p *Program) FragmentShader() *Shader { return p.fragment }

// GeometryShader returns the program's own geometry stage.
func (p *Program) GeometryShader() *Shader { return p.geometry }

// SetSources sets the source of the owned stages. An empty geometry source
// means the program has no geometry stage.
func (p *Program) SetSources(vertex, fragment, geometry string) {
	p.vertex.SetSource(vertex)
	p.fragment.SetSource(fragment)
	p.geometry.SetSource(geometry)
}

// Handle returns the native program handle, 0 if uninitialized.
func (p *Program) Handle() uint32 { return p.handle.ID() }

// LastError returns the message of the most recent failure.
// It is overwritten by each failure, never accumulated.
func (p *Program) LastError() string { return p.err }

// IsBound reports whether the program is the active program.
func (p *Program) IsBound() bool { return p.bound }

// IsLinked reports whether the attached stages are currently linked.
func (p *Program) IsLinked() bool { return p.linked }

// IsCompiled reports whether CompileShader has succeeded since the last
// resource release.
func (p *Program) IsCompiled() bool { return p.compiled }

// Hash returns the content hash used for cache lookups.
func (p *Program) Hash() string { return p.hash }

// SetHash sets the content hash used for cache lookups.
func (p *Program) SetHash(hash string) { p.hash = hash }

// fail records err as the last error and returns it.
func (p *Program) fail(err error) error {
	p.err = err.Error()
	return err
}

// failMsg records msg as the last error and returns err.
func (p *Program) failMsg(msg string, err error) error {
	p.err = msg
	return err
}

// unlink drops the link state and the attribute cache with it.
func (p *Program) unlink() {
	p.linked = false
	clear(p.attributes)
}

// slot returns the attached-handle slot for a stage kind.
func (p *Program) slot(typ ShaderType) *uint32 {
	switch typ {
	case VertexShader:
		return &p.vertexHandle
	case FragmentShader:
		return &p.fragmentHandle
	case GeometryShader:
		return &p.geometryHandle
	default:
		return nil
	}
}

// AttachShader attaches a compiled stage. A stage of the same kind that is
// already attached is detached first. The native program is created on
// the first attach.
func (p *Program) AttachShader(s Stage) error {
	if s.Handle() == 0 {
		return p.fail(fmt.Errorf("attach: %w, cannot attach it", ErrNotInitialized))
	}
	slot := p.slot(s.Type())
	if slot == nil {
		return p.fail(fmt.Errorf("attach: %w", ErrUnknownType))
	}

	if !p.handle.Valid() {
		id := p.driver.CreateProgram()
		if id == 0 {
			return p.fail(fmt.Errorf("attach: %w", ErrCreateProgram))
		}
		p.handle.adopt(id, p.driver.DeleteProgram)
		p.unlink()
		p.logger.Debug("created program", "program", id)
	}

	if *slot != 0 {
		p.driver.DetachShader(p.handle.ID(), *slot)
	}
	*slot = s.Handle()
	p.driver.AttachShader(p.handle.ID(), s.Handle())
	p.unlink()
	p.logger.Debug("attached shader", "program", p.handle.ID(), "stage", s.Type(), "shader", s.Handle())
	return nil
}

// DetachShader detaches a stage previously attached with AttachShader.
func (p *Program) DetachShader(s Stage) error {
	if s.Handle() == 0 {
		return p.fail(fmt.Errorf("detach: %w, cannot detach it", ErrNotInitialized))
	}
	slot := p.slot(s.Type())
	if slot == nil {
		return p.fail(fmt.Errorf("detach: %w", ErrUnknownType))
	}
	if !p.handle.Valid() || *slot != s.Handle() {
		return p.fail(fmt.Errorf("detach %s shader %d: %w", s.Type(), s.Handle(), ErrNotAttached))
	}

	p.driver.DetachShader(p.handle.ID(), s.Handle())
	*slot = 0
	p.unlink()
	p.logger.Debug("detached shader", "program", p.handle.ID(), "stage", s.Type(), "shader", s.Handle())
	return nil
}

// Link links the attached stages. It is a no-op if already linked.
func (p *Program) Link() error {
	if p.linked {
		return nil
	}
	if !p.handle.Valid() {
		return p.fail(fmt.Errorf("link: %w", ErrNoProgram))
	}

	ok, infoLog := p.driver.LinkProgram(p.handle.ID())
	if !ok {
		err := fmt.Errorf("%w: %s", ErrLinkFailed, infoLog)
		if infoLog == "" {
			err = fmt.Errorf("link program %d: %w", p.handle.ID(), ErrLinkFailed)
		}
		return p.fail(err)
	}
	p.linked = true
	clear(p.attributes)
	p.logger.Debug("linked program", "program", p.handle.ID())
	return nil
}

// Bind makes the program current, linking it first if needed.
func (p *Program) Bind() error {
	if !p.linked {
		if err := p.Link(); err != nil {
			return err
		}
	}
	p.driver.UseProgram(p.handle.ID())
	p.bound = true
	if p.cache != nil {
		p.cache.markBound(p)
	}
	return nil
}

// Release deactivates the current program. It is safe to call when not bound.
// No program is active afterwards, so the context's last bound program, if
// any, is unbound as well.
func (p *Program) Release() {
	p.driver.UseProgram(0)
	p.bound = false
	if p.cache != nil {
		p.cache.markBound(nil)
	}
}

// CompileShader compiles the owned stages, attaches them and links.
// The geometry stage takes part only when it has source; otherwise a
// geometry stage left from an earlier compile is detached and deleted.
//
// A compile failure reports the stage's error followed by its numbered
// source and leaves nothing attached. An attach or link failure rolls
// back: stages attached by this call are detached and the owned stages'
// native handles are deleted. The program is marked compiled only when
// every step succeeds. Each call redoes all steps.
func (p *Program) CompileShader() error {
	p.compiled = false

	stages := []*Shader{p.vertex, p.fragment}
	if p.geometry.Source() != "" {
		stages = append(stages, p.geometry)
	} else {
		p.dropGeometry()
	}

	for _, s := range stages {
		if err := s.Compile(); err != nil {
			p.err = s.LastError() + "\n" + numberedSource(s.Source())
			p.logger.Error("shader compile failed",
				"stage", s.Type(), "error", s.LastError(), "source", numberedSource(s.Source()))
			return fmt.Errorf("%w\n%s", err, numberedSource(s.Source()))
		}
	}

	var attached []*Shader
	for _, s := range stages {
		if err := p.AttachShader(s); err != nil {
			p.logger.Error("shader attach failed", "stage", s.Type(), "error", err)
			p.rollback(attached, stages)
			return err
		}
		attached = append(attached, s)
	}

	if err := p.Link(); err != nil {
		p.logger.Error("program link failed", "program", p.handle.ID(), "error", p.err)
		p.rollback(attached, stages)
		return err
	}

	p.compiled = true
	return nil
}

// dropGeometry detaches whatever fills the geometry slot and deletes the
// owned geometry stage, for a relink without one.
func (p *Program) dropGeometry() {
	if p.geometryHandle != 0 && p.handle.Valid() {
		p.driver.DetachShader(p.handle.ID(), p.geometryHandle)
		p.logger.Debug("detached geometry shader", "program", p.handle.ID(), "shader", p.geometryHandle)
		p.geometryHandle = 0
		p.unlink()
	}
	p.geometry.Cleanup()
}

// rollback undoes a partially completed CompileShader. The failure message
// already recorded is kept.
func (p *Program) rollback(attached, compiled []*Shader) {
	msg := p.err
	for _, s := range attached {
		if err := p.DetachShader(s); err != nil {
			p.logger.Warn("rollback detach failed", "stage", s.Type(), "error", err)
		}
	}
	for _, s := range compiled {
		s.Cleanup()
	}
	p.err = msg
}

// ReleaseGraphicsResources frees every native object the program owns and
// returns it to the uninitialized state. ctx is the rendering context the
// program was used with; its last-bound marker is cleared if it refers to
// this program. ctx may be nil. LastError is left unchanged.
func (p *Program) ReleaseGraphicsResources(ctx Context) {
	msg := p.err
	defer func() { p.err = msg }()

	p.Release()

	if p.compiled {
		for _, s := range []*Shader{p.vertex, p.fragment, p.geometry} {
			if s.Handle() == 0 {
				continue
			}
			if err := p.DetachShader(s); err != nil && !errors.Is(err, ErrNotAttached) {
				p.logger.Warn("release detach failed", "stage", s.Type(), "error", err)
			}
		}
		p.compiled = false
	}
	// Owned stages may have been compiled outside CompileShader.
	p.vertex.Cleanup()
	p.fragment.Cleanup()
	p.geometry.Cleanup()

	if ctx != nil {
		if c := ctx.ShaderCache(); c != nil && c.LastBound() == p {
			c.ClearLastBound()
		}
	}

	if p.handle.Valid() {
		p.logger.Debug("deleting program", "program", p.handle.ID())
		p.handle.release()
		p.vertexHandle, p.fragmentHandle, p.geometryHandle = 0, 0, 0
		p.unlink()
	}
}

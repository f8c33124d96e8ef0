package glshader

import (
	"crypto/md5"
	"encoding/hex"
	"log/slog"
)

// Context is the rendering context whose GPU objects programs live in.
type Context interface {
	// ShaderCache returns the context's program cache.
	ShaderCache() *ShaderCache
}

// ShaderCache tracks the programs of one rendering context: which program
// was bound last, and the compiled programs keyed by their content hash.
// It is owned by the context and, like Program, is confined to the
// context's thread.
type ShaderCache struct {
	driver    Driver
	logger    *slog.Logger
	opts      []ProgramOption
	lastBound *Program
	programs  map[string]*Program
}

// NewShaderCache creates an empty cache. opts are applied to every program
// the cache creates.
func NewShaderCache(d Driver, opts ...ProgramOption) *ShaderCache {
	return &ShaderCache{
		driver:   d,
		logger:   applyProgramOptions(opts).logger,
		opts:     opts,
		programs: make(map[string]*Program),
	}
}

// SourceHash returns the content hash of a set of stage sources.
func SourceHash(vertex, fragment, geometry string) string {
	h := md5.New()
	h.Write([]byte(vertex))
	h.Write([]byte{0})
	h.Write([]byte(fragment))
	h.Write([]byte{0})
	h.Write([]byte(geometry))
	return hex.EncodeToString(h.Sum(nil))
}

// LastBound returns the program most recently bound in this context, or nil.
func (c *ShaderCache) LastBound() *Program { return c.lastBound }

// ClearLastBound forgets the last bound program.
func (c *ShaderCache) ClearLastBound() { c.lastBound = nil }

// markBound records p as the active program, unbinding the previous one.
// A nil p means no program is active.
func (c *ShaderCache) markBound(p *Program) {
	if prev := c.lastBound; prev != nil && prev != p {
		prev.bound = false
	}
	c.lastBound = p
}

// Len returns the number of cached programs.
func (c *ShaderCache) Len() int { return len(c.programs) }

// Lookup returns the cached program with the given hash.
func (c *ShaderCache) Lookup(hash string) (*Program, bool) {
	p, ok := c.programs[hash]
	return p, ok
}

// ReadyProgram returns a compiled, bound program for the given sources.
// Identical sources share one program. Binding is skipped when the program
// is already the last one bound.
func (c *ShaderCache) ReadyProgram(vertex, fragment, geometry string) (*Program, error) {
	hash := SourceHash(vertex, fragment, geometry)
	p, ok := c.programs[hash]
	if !ok {
		opts := append([]ProgramOption{WithCache(c), WithHash(hash)}, c.opts...)
		p = NewProgram(c.driver, opts...)
		p.SetSources(vertex, fragment, geometry)
		c.programs[hash] = p
		c.logger.Debug("new cached program", "hash", hash)
	}
	if err := c.ReadyExisting(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadyExisting compiles p if needed and binds it unless it is already the
// last bound program.
func (c *ShaderCache) ReadyExisting(p *Program) error {
	if !p.IsCompiled() {
		if err := p.CompileShader(); err != nil {
			return err
		}
	}
	if c.lastBound == p && p.IsBound() {
		return nil
	}
	if err := p.Bind(); err != nil {
		return err
	}
	c.markBound(p)
	return nil
}

// Evict releases the program with the given hash and drops it from the cache.
func (c *ShaderCache) Evict(ctx Context, hash string) {
	p, ok := c.programs[hash]
	if !ok {
		return
	}
	p.ReleaseGraphicsResources(ctx)
	delete(c.programs, hash)
}

// ReleaseGraphicsResources releases every cached program. Call it when the
// owning context is about to be destroyed. Programs stay cached and are
// recompiled by the next ReadyProgram.
func (c *ShaderCache) ReleaseGraphicsResources(ctx Context) {
	for _, p := range c.programs {
		p.ReleaseGraphicsResources(ctx)
	}
	c.lastBound = nil
}

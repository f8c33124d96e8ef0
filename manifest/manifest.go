// Package manifest loads shader program definitions from a YAML file.
//
// A manifest maps program names to the files holding their stage sources:
//
//	programs:
//	  solid:
//	    vertex: shaders/solid.vert
//	    fragment: shaders/solid.frag
//	  wire:
//	    vertex: shaders/wire.vert
//	    geometry: shaders/wire.geom
//	    fragment: shaders/wire.frag
//
// Relative paths are resolved against the manifest's directory.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProgram is returned for a program name not in the manifest.
var ErrUnknownProgram = errors.New("unknown program")

// Program lists the source files of one program's stages.
type Program struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
	Geometry string `yaml:"geometry,omitempty"`
}

// Sources holds the stage sources of one program.
type Sources struct {
	Vertex, Fragment, Geometry string
}

// Manifest is a loaded program manifest.
type Manifest struct {
	Programs map[string]Program `yaml:"programs"`

	dir string
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(raw, filepath.Dir(path))
}

// Parse decodes a manifest whose relative paths resolve against dir.
func Parse(raw []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.dir = dir
	for name, p := range m.Programs {
		if p.Vertex == "" || p.Fragment == "" {
			return nil, fmt.Errorf("program %s: vertex and fragment stages are required", name)
		}
		p.Vertex = m.resolve(p.Vertex)
		p.Fragment = m.resolve(p.Fragment)
		if p.Geometry != "" {
			p.Geometry = m.resolve(p.Geometry)
		}
		m.Programs[name] = p
	}
	return &m, nil
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.dir, path)
}

// Names returns the program names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Programs))
	for name := range m.Programs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Files returns every source file referenced by the manifest, sorted.
func (m *Manifest) Files() []string {
	var files []string
	for _, p := range m.Programs {
		files = append(files, p.files()...)
	}
	slices.Sort(files)
	return slices.Compact(files)
}

// ProgramsUsing returns the sorted names of programs that read file.
func (m *Manifest) ProgramsUsing(file string) []string {
	file = filepath.Clean(file)
	var names []string
	for name, p := range m.Programs {
		if slices.Contains(p.files(), file) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Sources reads the stage sources of the named program.
func (m *Manifest) Sources(name string) (Sources, error) {
	p, ok := m.Programs[name]
	if !ok {
		return Sources{}, fmt.Errorf("%w: %s", ErrUnknownProgram, name)
	}
	var src Sources
	var err error
	if src.Vertex, err = readSource(p.Vertex); err != nil {
		return Sources{}, err
	}
	if src.Fragment, err = readSource(p.Fragment); err != nil {
		return Sources{}, err
	}
	if p.Geometry != "" {
		if src.Geometry, err = readSource(p.Geometry); err != nil {
			return Sources{}, err
		}
	}
	return src, nil
}

func (p Program) files() []string {
	files := []string{p.Vertex, p.Fragment}
	if p.Geometry != "" {
		files = append(files, p.Geometry)
	}
	return files
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader source: %w", err)
	}
	return string(b), nil
}

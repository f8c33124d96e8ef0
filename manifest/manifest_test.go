package manifest

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glshader"
)

const testManifest = `
programs:
  solid:
    vertex: shaders/solid.vert
    fragment: shaders/solid.frag
  wire:
    vertex: shaders/solid.vert
    geometry: shaders/wire.geom
    fragment: /abs/wire.frag
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte(testManifest), "/assets")
	require.NoError(t, err)

	assert.Equal(t, []string{"solid", "wire"}, m.Names())
	assert.Equal(t, Program{
		Vertex:   "/assets/shaders/solid.vert",
		Geometry: "/assets/shaders/wire.geom",
		Fragment: "/abs/wire.frag",
	}, m.Programs["wire"])
	assert.Equal(t, []string{
		"/abs/wire.frag",
		"/assets/shaders/solid.frag",
		"/assets/shaders/solid.vert",
		"/assets/shaders/wire.geom",
	}, m.Files())
}

func TestParseRequiresVertexAndFragment(t *testing.T) {
	_, err := Parse([]byte("programs:\n  bad:\n    vertex: a.vert\n"), ".")
	assert.ErrorContains(t, err, "program bad")

	_, err = Parse([]byte("programs: [1, 2"), ".")
	assert.ErrorContains(t, err, "parse manifest")
}

func TestProgramsUsing(t *testing.T) {
	m, err := Parse([]byte(testManifest), "/assets")
	require.NoError(t, err)

	assert.Equal(t, []string{"solid", "wire"}, m.ProgramsUsing("/assets/shaders/solid.vert"))
	assert.Equal(t, []string{"wire"}, m.ProgramsUsing("/assets/shaders/../shaders/wire.geom"))
	assert.Empty(t, m.ProgramsUsing("/assets/other.frag"))
}

func TestLoadAndSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shaders", "solid.vert"), "vertex")
	writeFile(t, filepath.Join(dir, "shaders", "solid.frag"), "fragment")
	writeFile(t, filepath.Join(dir, "shaders.yaml"), `
programs:
  solid:
    vertex: shaders/solid.vert
    fragment: shaders/solid.frag
  broken:
    vertex: shaders/solid.vert
    fragment: shaders/missing.frag
`)

	m, err := Load(filepath.Join(dir, "shaders.yaml"))
	require.NoError(t, err)

	src, err := m.Sources("solid")
	require.NoError(t, err)
	assert.Equal(t, Sources{Vertex: "vertex", Fragment: "fragment"}, src)

	_, err = m.Sources("broken")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = m.Sources("nope")
	assert.ErrorIs(t, err, ErrUnknownProgram)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "solid.vert")
	writeFile(t, vert, "v1")
	writeFile(t, filepath.Join(dir, "solid.frag"), "f1")

	m, err := Parse([]byte("programs:\n  solid:\n    vertex: solid.vert\n    fragment: solid.frag\n"), dir)
	require.NoError(t, err)

	w, err := NewWatcher(m)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, vert, "v2")
	select {
	case name := <-w.Changes():
		assert.Equal(t, "solid", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-w.Changes():
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherLogger(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vert"), "v")
	writeFile(t, filepath.Join(dir, "a.frag"), "f")
	m, err := Parse([]byte("programs:\n  a:\n    vertex: a.vert\n    fragment: a.frag\n"), dir)
	require.NoError(t, err)

	w, err := NewWatcher(m)
	require.NoError(t, err)
	assert.Same(t, glshader.Logger(), w.logger)
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	w, err = NewWatcher(m, WithLogger(l))
	require.NoError(t, err)
	defer w.Close()
	assert.Same(t, l, w.logger)
}

package glshader_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glshader"
	"github.com/go-theft-auto/glshader/internal/fakegl"
)

func uniformDriver() *fakegl.Driver {
	d := fakegl.New()
	d.Uniforms["scale"] = 1
	d.Uniforms["offset"] = 2
	d.Uniforms["tint"] = 3
	d.Uniforms["mvp"] = 4
	d.Uniforms["normalMatrix"] = 5
	d.Uniforms["lights"] = 6
	return d
}

func TestSetUniformNotLinked(t *testing.T) {
	d := uniformDriver()
	p := glshader.NewProgram(d)

	err := p.SetUniformf("scale", 2)
	assert.ErrorIs(t, err, glshader.ErrNoSuchUniform)
	assert.Zero(t, d.Count("UniformLocation"))
	assert.Empty(t, d.UniformUploads)
}

func TestSetUniformAfterRelinkInvalidated(t *testing.T) {
	d := uniformDriver()
	p := linkedProgram(t, d)
	require.NoError(t, p.SetUniformf("scale", 2))

	// A new attach drops the link; names valid before must now fail.
	require.NoError(t, p.AttachShader(compiledShader(t, d, glshader.FragmentShader, fragmentSource)))
	d.Reset()

	setters := map[string]func() error{
		"f":   func() error { return p.SetUniformf("scale", 1) },
		"i":   func() error { return p.SetUniformi("scale", 1) },
		"2f":  func() error { return p.SetUniform2f("offset", [2]float32{1, 2}) },
		"4uc": func() error { return p.SetUniform4uc("tint", [4]uint8{1, 2, 3, 4}) },
		"m4":  func() error { return p.SetUniformMatrix4("mvp", mgl32.Ident4()) },
		"3fv": func() error { return p.SetUniform3fv("lights", [][3]float32{{1, 2, 3}}) },
	}
	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, set(), glshader.ErrNoSuchUniform)
		})
	}
	assert.Empty(t, d.Calls)
}

func TestSetUniformEmptyName(t *testing.T) {
	d := uniformDriver()
	p := linkedProgram(t, d)
	d.Reset()

	assert.ErrorIs(t, p.SetUniformi("", 1), glshader.ErrNoSuchUniform)
	assert.Empty(t, d.Calls)
}

func TestSetUniformScalarsAndVectors(t *testing.T) {
	d := uniformDriver()
	p := linkedProgram(t, d)
	require.NoError(t, p.Bind())

	require.NoError(t, p.SetUniformi("scale", 7))
	require.NoError(t, p.SetUniformf("scale", 0.5))
	require.NoError(t, p.SetUniform2i("offset", [2]int32{3, 4}))
	require.NoError(t, p.SetUniform2f("offset", [2]float32{1.5, 2.5}))
	require.NoError(t, p.SetUniform3f("tint", [3]float32{0.1, 0.2, 0.3}))
	require.NoError(t, p.SetUniform4f("tint", [4]float32{0.1, 0.2, 0.3, 0.4}))

	want := []fakegl.Uniform{
		{Location: 1, Components: 1, Ints: []int32{7}},
		{Location: 1, Components: 1, Floats: []float32{0.5}},
		{Location: 2, Components: 2, Ints: []int32{3, 4}},
		{Location: 2, Components: 2, Floats: []float32{1.5, 2.5}},
		{Location: 3, Components: 3, Floats: []float32{0.1, 0.2, 0.3}},
		{Location: 3, Components: 4, Floats: []float32{0.1, 0.2, 0.3, 0.4}},
	}
	assert.Equal(t, want, d.UniformUploads)
}

func TestSetUniformArrays(t *testing.T) {
	d := uniformDriver()
	p := linkedProgram(t, d)

	require.NoError(t, p.SetUniform1iv("lights", []int32{1, 2, 3}))
	require.NoError(t, p.SetUniform2iv("lights", [][2]int32{{1, 2}, {3, 4}}))
	require.NoError(t, p.SetUniform1fv("lights", []float32{0.25, 0.75}))
	require.NoError(t, p.SetUniform3fv("lights", [][3]float32{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, p.SetUniform4fv("lights", [][4]float32{{1, 2, 3, 4}}))

	want := []fakegl.Uniform{
		{Location: 6, Components: 1, Ints: []int32{1, 2, 3}},
		{Location: 6, Components: 2, Ints: []int32{1, 2, 3, 4}},
		{Location: 6, Components: 1, Floats: []float32{0.25, 0.75}},
		{Location: 6, Components: 3, Floats: []float32{1, 2, 3, 4, 5, 6}},
		{Location: 6, Components: 4, Floats: []float32{1, 2, 3, 4}},
	}
	assert.Equal(t, want, d.UniformUploads)
}

func TestSetUniformMatrix4Order(t *testing.T) {
	d := uniformDriver()
	p := linkedProgram(t, d)

	var m mgl32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, float32(10*r+c))
		}
	}
	require.NoError(t, p.SetUniformMatrix4("mvp", m))

	require.Len(t, d.UniformUploads, 1)
	up := d.UniformUploads[0]
	assert.Equal(t, 4, up.Matrix)
	require.Len(t, up.Floats, 16)
	for i, v := range up.Floats {
		assert.Equal(t, m.At(i/4, i%4), v, "element %d", i)
		assert.Equal(t, float32(10*(i/4)+i%4), v, "element %d", i)
	}
}

func TestSetUniformMatrix3Order(t *testing.T) {
	d := uniformDriver()
	p := linkedProgram(t, d)

	m := mgl32.Mat3FromRows(
		mgl32.Vec3{1, 2, 3},
		mgl32.Vec3{4, 5, 6},
		mgl32.Vec3{7, 8, 9},
	)
	require.NoError(t, p.SetUniformMatrix3("normalMatrix", m))

	require.Len(t, d.UniformUploads, 1)
	assert.Equal(t, 3, d.UniformUploads[0].Matrix)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, d.UniformUploads[0].Floats)
}

func TestSetUniformColorNormalization(t *testing.T) {
	d := uniformDriver()
	p := linkedProgram(t, d)

	require.NoError(t, p.SetUniform3uc("tint", [3]uint8{255, 255, 255}))
	require.NoError(t, p.SetUniform4uc("tint", [4]uint8{0, 0, 0, 0}))
	require.NoError(t, p.SetUniform4uc("tint", [4]uint8{51, 102, 153, 204}))
	require.NoError(t, p.SetUniform3uv("tint", [][3]uint8{{255, 0, 255}, {0, 255, 0}}))

	require.Len(t, d.UniformUploads, 4)
	assert.Equal(t, []float32{1, 1, 1}, d.UniformUploads[0].Floats)
	assert.Equal(t, 3, d.UniformUploads[0].Components)
	assert.Equal(t, []float32{0, 0, 0, 0}, d.UniformUploads[1].Floats)
	assert.Equal(t, 4, d.UniformUploads[1].Components)
	assert.InDeltaSlice(t, []float32{0.2, 0.4, 0.6, 0.8}, d.UniformUploads[2].Floats, 1e-6)
	assert.Equal(t, []float32{1, 0, 1, 0, 1, 0}, d.UniformUploads[3].Floats)
}

package glshader_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/glshader"
	"github.com/go-theft-auto/glshader/internal/fakegl"
)

func attributeDriver() *fakegl.Driver {
	d := fakegl.New()
	d.Attributes["position"] = 0
	d.Attributes["color"] = 1
	d.Attributes["weight"] = 2
	return d
}

func TestSetAttributeArrayEmpty(t *testing.T) {
	d := attributeDriver()
	p := linkedProgram(t, d)
	d.Reset()

	err := glshader.SetAttributeArray(p, "position", []float32{}, 3, glshader.NoNormalize)
	require.ErrorIs(t, err, glshader.ErrEmptyArray)
	assert.Equal(t, "Refusing to upload empty array for attribute position.", p.LastError())
	assert.Empty(t, d.Calls)

	err = glshader.SetAttributeArray[float32](p, "position", nil, 3, glshader.NoNormalize)
	assert.ErrorIs(t, err, glshader.ErrEmptyArray)
	assert.Empty(t, d.Calls)
}

type weight int16

func TestSetAttributeArrayElementTypes(t *testing.T) {
	d := attributeDriver()
	p := linkedProgram(t, d)

	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	colors := []uint8{255, 0, 0, 255}
	weights := []weight{1, 2, 3}

	require.NoError(t, glshader.SetAttributeArray(p, "position", positions, 3, glshader.NoNormalize))
	require.NoError(t, glshader.SetAttributeArray(p, "color", colors, 4, glshader.Normalize))
	require.NoError(t, glshader.SetAttributeArray(p, "weight", weights, 1, glshader.NoNormalize))

	require.Len(t, d.AttribPointers, 3)
	assert.Equal(t, fakegl.AttribPointer{
		Index: 0, Size: 3, Type: 0x1406, Data: unsafe.Pointer(&positions[0]),
	}, d.AttribPointers[0])
	assert.Equal(t, fakegl.AttribPointer{
		Index: 1, Size: 4, Type: 0x1401, Normalized: true, Data: unsafe.Pointer(&colors[0]),
	}, d.AttribPointers[1])
	assert.Equal(t, uint32(0x1402), d.AttribPointers[2].Type)
}

func TestSetAttributeArrayNoSuchAttribute(t *testing.T) {
	d := attributeDriver()
	p := linkedProgram(t, d)

	err := glshader.SetAttributeArray(p, "normal", []float64{0, 0, 1}, 3, glshader.NoNormalize)
	assert.ErrorIs(t, err, glshader.ErrNoSuchAttribute)
	assert.Empty(t, d.AttribPointers)
}

func TestAttributeNotLinked(t *testing.T) {
	d := attributeDriver()
	p := glshader.NewProgram(d)

	assert.ErrorIs(t, p.EnableAttributeArray("position"), glshader.ErrNoSuchAttribute)
	assert.ErrorIs(t, p.DisableAttributeArray("position"), glshader.ErrNoSuchAttribute)
	assert.ErrorIs(t, glshader.SetAttributeArray(p, "position", []float32{1}, 1, glshader.NoNormalize),
		glshader.ErrNoSuchAttribute)
	_, err := p.AttributeLocation("position")
	assert.ErrorIs(t, err, glshader.ErrNoSuchAttribute)
	assert.Zero(t, d.Count("AttribLocation"))
}

func TestUseAttributeArray(t *testing.T) {
	d := attributeDriver()
	p := linkedProgram(t, d)

	require.NoError(t, p.UseAttributeArray("color", 12, 16, glshader.TypeUnsignedChar, 4, glshader.Normalize))
	require.Len(t, d.AttribPointers, 1)
	assert.Equal(t, fakegl.AttribPointer{
		Index: 1, Size: 4, Type: 0x1401, Normalized: true, Stride: 16, Offset: 12,
	}, d.AttribPointers[0])

	err := p.UseAttributeArray("missing", 0, 0, glshader.TypeFloat, 3, glshader.NoNormalize)
	assert.ErrorIs(t, err, glshader.ErrNoSuchAttribute)
	assert.Equal(t, "Could not use attribute missing. No such attribute.", p.LastError())
}

func TestUseAttributeArrayUnknownType(t *testing.T) {
	d := attributeDriver()
	p := linkedProgram(t, d)
	d.Reset()

	for _, typ := range []glshader.ElementType{glshader.TypeUnknown, glshader.ElementType(42)} {
		err := p.UseAttributeArray("position", 0, 0, typ, 3, glshader.NoNormalize)
		assert.ErrorIs(t, err, glshader.ErrUnknownElementType)
		assert.NotErrorIs(t, err, glshader.ErrNoSuchAttribute)
		assert.Equal(t, "Unrecognized data type for attribute position.", p.LastError())
	}
	assert.Empty(t, d.Calls)
}

func TestEnableDisableAttributeArray(t *testing.T) {
	d := attributeDriver()
	p := linkedProgram(t, d)

	require.NoError(t, p.EnableAttributeArray("color"))
	assert.True(t, d.Enabled[1])
	require.NoError(t, p.DisableAttributeArray("color"))
	assert.False(t, d.Enabled[1])

	err := p.EnableAttributeArray("missing")
	assert.ErrorIs(t, err, glshader.ErrNoSuchAttribute)
	assert.Equal(t, "Could not enable attribute missing. No such attribute.", p.LastError())
	err = p.DisableAttributeArray("missing")
	assert.ErrorIs(t, err, glshader.ErrNoSuchAttribute)
	assert.Equal(t, "Could not disable attribute missing. No such attribute.", p.LastError())
}

func TestAttributeLocationCache(t *testing.T) {
	d := attributeDriver()
	p := linkedProgram(t, d)

	loc, err := p.AttributeLocation("color")
	require.NoError(t, err)
	assert.Equal(t, int32(1), loc)
	require.NoError(t, p.EnableAttributeArray("color"))
	assert.Equal(t, 1, d.Count("AttribLocation"))

	// Relinking invalidates cached locations.
	require.NoError(t, p.AttachShader(compiledShader(t, d, glshader.VertexShader, vertexSource)))
	_, err = p.AttributeLocation("color")
	require.ErrorIs(t, err, glshader.ErrNoSuchAttribute)
	require.NoError(t, p.Link())
	_, err = p.AttributeLocation("color")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Count("AttribLocation"))
}

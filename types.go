package glshader

import "reflect"

// ShaderType identifies a pipeline stage.
type ShaderType int

const (
	ShaderUnknown ShaderType = iota // Never attachable
	VertexShader
	FragmentShader
	GeometryShader
)

// String returns the stage name.
func (t ShaderType) String() string {
	switch t {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case GeometryShader:
		return "geometry"
	default:
		return "unknown"
	}
}

// ElementType is the semantic tag of an attribute's element representation.
type ElementType int

const (
	TypeUnknown ElementType = iota
	TypeChar
	TypeUnsignedChar
	TypeShort
	TypeUnsignedShort
	TypeInt
	TypeUnsignedInt
	TypeFloat
	TypeDouble
)

// String returns the tag name.
func (t ElementType) String() string {
	switch t {
	case TypeChar:
		return "char"
	case TypeUnsignedChar:
		return "unsigned char"
	case TypeShort:
		return "short"
	case TypeUnsignedShort:
		return "unsigned short"
	case TypeInt:
		return "int"
	case TypeUnsignedInt:
		return "unsigned int"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	default:
		return "unknown"
	}
}

// nativeType translates a tag into the driver's numeric type identifier.
func (t ElementType) nativeType() (uint32, bool) {
	switch t {
	case TypeChar:
		return glByte, true
	case TypeUnsignedChar:
		return glUnsignedByte, true
	case TypeShort:
		return glShort, true
	case TypeUnsignedShort:
		return glUnsignedShort, true
	case TypeInt:
		return glInt, true
	case TypeUnsignedInt:
		return glUnsignedInt, true
	case TypeFloat:
		return glFloat, true
	case TypeDouble:
		return glDouble, true
	default:
		return 0, false
	}
}

// NormalizeOption selects how integer attribute data reaches the shader.
type NormalizeOption int

const (
	// Normalize maps unsigned values to [0, 1] and signed values to [-1, 1].
	// For example, unsigned char 255 becomes 1.0.
	Normalize NormalizeOption = iota
	// NoNormalize passes values through as-is.
	NoNormalize
)

// Numeric is the set of element types accepted by SetAttributeArray.
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

// elementTypeOf returns the tag for T based on its underlying kind.
func elementTypeOf[T Numeric]() ElementType {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Int8:
		return TypeChar
	case reflect.Uint8:
		return TypeUnsignedChar
	case reflect.Int16:
		return TypeShort
	case reflect.Uint16:
		return TypeUnsignedShort
	case reflect.Int32:
		return TypeInt
	case reflect.Uint32:
		return TypeUnsignedInt
	case reflect.Float32:
		return TypeFloat
	case reflect.Float64:
		return TypeDouble
	default:
		return TypeUnknown
	}
}

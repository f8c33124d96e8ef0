package glshader

import "errors"

// Precondition violations.
var (
	ErrNotInitialized = errors.New("shader object was not initialized")
	ErrUnknownType    = errors.New("shader object is of type unknown and cannot be used")
	ErrNotAttached    = errors.New("shader was not attached to this program")
	ErrNoProgram      = errors.New("program has not been initialized and/or does not have shaders")
)

// Native operation failures.
var (
	ErrCreateShader  = errors.New("could not create shader object")
	ErrCreateProgram = errors.New("could not create shader program")
	ErrCreateVAO     = errors.New("could not create vertex array object")
	ErrCompileFailed = errors.New("shader compilation failed")
	ErrLinkFailed    = errors.New("program link failed")
)

// Lookup failures.
var (
	ErrNoSuchUniform   = errors.New("no such uniform")
	ErrNoSuchAttribute = errors.New("no such attribute")
)

// Input validation failures.
var (
	ErrEmptyArray         = errors.New("refusing to upload empty array")
	ErrUnknownElementType = errors.New("unrecognized data type")
)

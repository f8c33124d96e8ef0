/*
Package glshader manages GPU shader programs: compiling shader stages,
linking them into programs, binding programs for drawing, and setting
their uniforms and vertex attributes.

# Overview

A Program owns a vertex, a fragment and an optional geometry Shader.
CompileShader compiles them, attaches them and links:

	prog := glshader.NewProgram(driver)
	prog.SetSources(vertexSrc, fragmentSrc, "")
	if err := prog.CompileShader(); err != nil {
	    log.Fatal(err) // includes the numbered source of a failing stage
	}

	if err := prog.Bind(); err != nil {
	    log.Fatal(err)
	}
	prog.SetUniformMatrix4("projection", proj)
	prog.SetUniform4uc("tint", [4]uint8{255, 128, 0, 255})

Stages compiled elsewhere can be attached directly with AttachShader; the
program only keeps their native handles.

# Lifecycle

	Uninitialized → stages attached → Linked → Bound

Attaching or detaching a stage drops the link. Bind links on demand.
ReleaseGraphicsResources deletes the native program and owned stages and
returns the program to Uninitialized; call it before the rendering context
goes away.

# Errors

Every failing method returns an error wrapping one of the package's
sentinel errors (ErrNotInitialized, ErrNoSuchUniform, ...), and keeps its
message available through LastError until the next failure.

# Threading

Native graphics calls are bound to the thread that owns the context.
Programs, shaders, vertex arrays and the ShaderCache must only be used from
that thread.

# Drivers

The package talks to the GPU through the Driver interface. The
backend/opengl package provides an OpenGL 4.1 core implementation.
*/
package glshader

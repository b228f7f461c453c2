// Package shader provides GLSL program loading, linking and hot reload.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Program build errors.
var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("shader link failed")
)

// CompileProgram compiles the stages of code and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(code Code) (uint32, error) {
	stages := []struct {
		src  string
		kind uint32
		name string
	}{
		{code.Vertex, gl.VERTEX_SHADER, "vertex"},
		{code.Geometry, gl.GEOMETRY_SHADER, "geometry"},
		{code.Fragment, gl.FRAGMENT_SHADER, "fragment"},
	}

	program := gl.CreateProgram()
	for _, st := range stages {
		if st.src == "" {
			continue
		}
		sh, err := compileShader(st.src, st.kind, st.name)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, sh)
		defer gl.DeleteShader(sh)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, log)
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrCompile, name, log)
	}

	return shader, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// Program is a linked GLSL program with a uniform location cache.
type Program struct {
	id       uint32
	src      Source
	lib      *Library
	err      error
	uniforms map[string]int32
	log      *zap.Logger
}

// NewProgram creates an unlinked program reading src through lib.
func NewProgram(lib *Library, src Source, log *zap.Logger) *Program {
	if log == nil {
		log = zap.NewNop()
	}
	return &Program{src: src, lib: lib, log: log}
}

// Link reads the sources and (re)links the program. On failure the program
// is invalid until the next successful link.
func (p *Program) Link() error {
	p.Release()

	code, err := p.lib.Load(p.src)
	if err == nil {
		p.id, err = CompileProgram(code)
	}
	if err != nil {
		p.err = err
		p.log.Error("program not linked", zap.Strings("sources", p.src.Paths()), zap.Error(err))
		return err
	}
	p.err = nil
	p.uniforms = make(map[string]int32)
	p.log.Debug("program linked", zap.Uint32("id", p.id), zap.Strings("sources", p.src.Paths()))
	return nil
}

// Valid reports whether the program is linked.
func (p *Program) Valid() bool { return p.id != 0 }

// Err returns the last link error.
func (p *Program) Err() error { return p.err }

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Source returns the stage files.
func (p *Program) Source() Source { return p.src }

// SetSource replaces the stage files. Call Link to apply.
func (p *Program) SetSource(src Source) { p.src = src }

// WatchPaths returns the on-disk files of the program.
func (p *Program) WatchPaths() []string { return p.lib.DiskPaths(p.src) }

// Use binds the program.
func (p *Program) Use() { gl.UseProgram(p.id) }

// Release deletes the GL program.
func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
	p.uniforms = nil
}

// Uniform returns the location of a uniform, -1 if inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if p.uniforms != nil {
		p.uniforms[name] = loc
	}
	return loc
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Uniform(name), i)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v math.Vec2) {
	gl.Uniform2f(p.Uniform(name), v.X, v.Y)
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.Uniform(name), v.X, v.Y, v.Z)
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

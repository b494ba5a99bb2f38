package gfx

import (
	"errors"
	"strings"
)

var errEmptySource = errors.New("empty source")

// Shader is one successfully compiled stage.
type Shader struct {
	ctx    Context
	kind   StageKind
	source string
	handle Object
}

func (s *Shader) Kind() StageKind {
	return s.kind
}

func (s *Shader) Handle() Object {
	return s.handle
}

// Source returns the text handed to the driver, after dialect adaptation.
func (s *Shader) Source() string {
	return s.source
}

// Release deletes the driver object. Safe to call more than once.
func (s *Shader) Release() {
	if s == nil || s.handle == 0 {
		return
	}
	s.ctx.DeleteShader(s.handle)
	s.handle = 0
}

// CompileShader compiles a single stage. When the driver rejects the source
// the partially created shader is deleted and a *ShaderCompileError holding
// the driver log is returned.
func CompileShader(ctx Context, kind StageKind, source string) (*Shader, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ShaderCompileError{Stage: kind, Log: errEmptySource.Error()}
	}
	source = adaptSource(source, ctx.ShadingLanguage())

	handle := ctx.CreateShader(kind)
	if handle == 0 {
		return nil, &ShaderCompileError{Stage: kind, Log: "unable to create shader"}
	}
	ctx.ShaderSource(handle, source)
	ctx.CompileShader(handle)

	if !ctx.ShaderCompiled(handle) {
		log := ctx.ShaderInfoLog(handle)
		ctx.DeleteShader(handle)
		return nil, &ShaderCompileError{Stage: kind, Log: log}
	}
	return &Shader{ctx: ctx, kind: kind, source: source, handle: handle}, nil
}

// adaptSource swaps the first #version directive for the one the backend
// accepts, or prepends it when the source has none.
func adaptSource(source, version string) string {
	if version == "" {
		return source
	}
	var sb strings.Builder
	sb.Grow(len(source) + len(version) + 1)

	rest := source
	for rest != "" {
		line, tail, found := strings.Cut(rest, "\n")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#version") {
			sb.WriteString(source[:len(source)-len(rest)])
			sb.WriteString(version)
			if found {
				sb.WriteString("\n")
			}
			sb.WriteString(tail)
			return sb.String()
		}
		// #version must precede everything but comments and blank lines.
		if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
			break
		}
		rest = tail
	}

	sb.WriteString(version)
	sb.WriteString("\n")
	sb.WriteString(source)
	return sb.String()
}

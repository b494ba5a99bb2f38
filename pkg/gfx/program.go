package gfx

import (
	"log/slog"
)

// Names the clock shaders are expected to declare.
const (
	PositionAttribute = "a_position"
	ResolutionUniform = "u_resolution"
	TimeUniform       = "u_timeInput"
)

// Program is a linked shader pipeline together with the locations the clock
// uses. It is immutable once returned by LinkProgram.
type Program struct {
	ctx    Context
	handle Object

	Position   Location
	Resolution Location
	Time       Location
}

func (p *Program) Handle() Object {
	return p.handle
}

func (p *Program) Use() {
	p.ctx.UseProgram(p.handle)
}

func (p *Program) Close() {
	if p == nil || p.handle == 0 {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.handle = 0
}

// LinkProgram links a vertex and a fragment stage. Names missing from the
// linked program resolve to NoLocation and are not an error.
func LinkProgram(ctx Context, vertex, fragment *Shader) (*Program, error) {
	if vertex == nil || vertex.handle == 0 || vertex.kind != VertexStage {
		return nil, &ProgramLinkError{Log: "a compiled vertex shader is required"}
	}
	if fragment == nil || fragment.handle == 0 || fragment.kind != FragmentStage {
		return nil, &ProgramLinkError{Log: "a compiled fragment shader is required"}
	}

	handle := ctx.CreateProgram()
	if handle == 0 {
		return nil, &ProgramLinkError{Log: "unable to create program"}
	}
	ctx.AttachShader(handle, vertex.handle)
	ctx.AttachShader(handle, fragment.handle)
	ctx.LinkProgram(handle)

	if !ctx.ProgramLinked(handle) {
		log := ctx.ProgramInfoLog(handle)
		ctx.DeleteProgram(handle)
		return nil, &ProgramLinkError{Log: log}
	}
	ctx.DetachShader(handle, vertex.handle)
	ctx.DetachShader(handle, fragment.handle)

	return &Program{
		ctx:        ctx,
		handle:     handle,
		Position:   ctx.AttribLocation(handle, PositionAttribute),
		Resolution: ctx.UniformLocation(handle, ResolutionUniform),
		Time:       ctx.UniformLocation(handle, TimeUniform),
	}, nil
}

// BuildProgram compiles both stages and links them. Linking is skipped when
// either stage fails. The stages are always released before returning.
// Failures are logged at debug only; reporting the returned error is left
// to the caller.
func BuildProgram(ctx Context, logger *slog.Logger, vertexSource, fragmentSource string) (*Program, error) {
	if logger == nil {
		logger = slog.Default()
	}

	vertex, err := CompileShader(ctx, VertexStage, vertexSource)
	if err != nil {
		logger.Debug("shader compile failed", "stage", VertexStage.String(), "err", err)
		return nil, err
	}
	defer vertex.Release()

	fragment, err := CompileShader(ctx, FragmentStage, fragmentSource)
	if err != nil {
		logger.Debug("shader compile failed", "stage", FragmentStage.String(), "err", err)
		return nil, err
	}
	defer fragment.Release()

	program, err := LinkProgram(ctx, vertex, fragment)
	if err != nil {
		logger.Debug("program link failed", "err", err)
		return nil, err
	}

	logger.Debug("program linked",
		"position", int32(program.Position),
		"resolution", int32(program.Resolution),
		"time", int32(program.Time),
	)
	for name, loc := range map[string]Location{
		PositionAttribute: program.Position,
		ResolutionUniform: program.Resolution,
		TimeUniform:       program.Time,
	} {
		if !loc.Valid() {
			logger.Warn("shader input not found", "name", name)
		}
	}
	return program, nil
}

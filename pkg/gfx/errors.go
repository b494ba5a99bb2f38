package gfx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShaderCompile = errors.New("shader compile failed")
	ErrProgramLink   = errors.New("program link failed")
)

// ShaderCompileError carries the driver's compile log for one stage.
type ShaderCompileError struct {
	Stage StageKind
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

func (e *ShaderCompileError) Is(target error) bool {
	return target == ErrShaderCompile
}

// ProgramLinkError carries the driver's link log.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("link program: %s", strings.TrimSpace(e.Log))
}

func (e *ProgramLinkError) Is(target error) bool {
	return target == ErrProgramLink
}

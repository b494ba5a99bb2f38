package gfx

// Object is a backend handle for a shader, program, buffer or vertex array.
// Zero is never a valid object.
type Object uint32

// Location is a resolved attribute or uniform location.
type Location int32

// NoLocation is returned for names the linked program does not expose.
// Uniform setters ignore it, like GL does for -1.
const NoLocation Location = -1

func (l Location) Valid() bool {
	return l >= 0
}

type StageKind int

const (
	VertexStage StageKind = iota
	FragmentStage
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Context is the subset of the GL / WebGL2 API the clock needs.
// Implementations are not safe for concurrent use; all calls must come from
// the thread that owns the GL context.
type Context interface {
	// ShadingLanguage returns the #version directive accepted by the backend.
	ShadingLanguage() string

	CreateShader(kind StageKind) Object
	ShaderSource(shader Object, source string)
	CompileShader(shader Object)
	ShaderCompiled(shader Object) bool
	ShaderInfoLog(shader Object) string
	DeleteShader(shader Object)

	CreateProgram() Object
	AttachShader(program, shader Object)
	DetachShader(program, shader Object)
	LinkProgram(program Object)
	ProgramLinked(program Object) bool
	ProgramInfoLog(program Object) string
	DeleteProgram(program Object)
	UseProgram(program Object)
	AttribLocation(program Object, name string) Location
	UniformLocation(program Object, name string) Location

	CreateBuffer() Object
	BindArrayBuffer(buffer Object)
	// BufferStaticData uploads data to the bound array buffer with STATIC_DRAW usage.
	BufferStaticData(data []float32)
	DeleteBuffer(buffer Object)

	CreateVertexArray() Object
	BindVertexArray(vao Object)
	DeleteVertexArray(vao Object)
	EnableVertexAttribArray(loc Location)
	// VertexAttribPointer describes float components of the bound array buffer.
	// Stride and offset are in floats.
	VertexAttribPointer(loc Location, size, stride, offset int)

	Uniform2f(loc Location, x, y float32)
	Uniform3f(loc Location, x, y, z float32)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawTriangles(first, count int)
}

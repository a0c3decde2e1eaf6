package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const solidVertexShader = `#version 410 core
layout(location = 0) in vec2 pos;
uniform vec2 uViewport;
void main() {
	gl_Position = vec4(2.0 * pos / uViewport, 0.0, 1.0);
}
` + "\x00"

const solidFragmentShader = `#version 410 core
uniform vec4 uColor;
out vec4 fragColor;
void main() {
	fragColor = uColor;
}
` + "\x00"

const textVertexShader = `#version 410 core
layout(location = 0) in vec2 pos;
layout(location = 1) in vec2 uv;
uniform vec2 uViewport;
out vec2 vUV;
void main() {
	vUV = uv;
	gl_Position = vec4(2.0 * pos / uViewport, 0.0, 1.0);
}
` + "\x00"

const textFragmentShader = `#version 410 core
in vec2 vUV;
uniform vec4 uColor;
uniform sampler2D uTex;
out vec4 fragColor;
void main() {
	fragColor = vec4(uColor.rgb, uColor.a * texture(uTex, vUV).a);
}
` + "\x00"

// Renderer owns the GL programs and streaming buffers for the scene.
type Renderer struct {
	solidProgram     uint32
	solidViewportLoc int32
	solidColorLoc    int32

	textProgram     uint32
	textViewportLoc int32
	textColorLoc    int32
	textSamplerLoc  int32

	solidVAO uint32
	solidVBO uint32
	textVAO  uint32
	textVBO  uint32

	clearColor [4]float32
}

// New compiles the programs and allocates the streaming vertex buffers.
func New(clearColor [4]float32) (*Renderer, error) {
	r := &Renderer{clearColor: clearColor}

	var err error
	r.solidProgram, err = newProgram(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("solid program: %w", err)
	}
	r.solidViewportLoc = gl.GetUniformLocation(r.solidProgram, gl.Str("uViewport\x00"))
	r.solidColorLoc = gl.GetUniformLocation(r.solidProgram, gl.Str("uColor\x00"))

	r.textProgram, err = newProgram(textVertexShader, textFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("text program: %w", err)
	}
	r.textViewportLoc = gl.GetUniformLocation(r.textProgram, gl.Str("uViewport\x00"))
	r.textColorLoc = gl.GetUniformLocation(r.textProgram, gl.Str("uColor\x00"))
	r.textSamplerLoc = gl.GetUniformLocation(r.textProgram, gl.Str("uTex\x00"))

	gl.GenVertexArrays(1, &r.solidVAO)
	gl.GenBuffers(1, &r.solidVBO)
	gl.BindVertexArray(r.solidVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	gl.GenVertexArrays(1, &r.textVAO)
	gl.GenBuffers(1, &r.textVBO)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.BindVertexArray(0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	return r, nil
}

// Draw renders the scene into the current framebuffer.
func (r *Renderer) Draw(scene *Scene, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	w, h := float32(width), float32(height)

	gl.UseProgram(r.solidProgram)
	gl.Uniform2f(r.solidViewportLoc, w, h)
	for _, q := range scene.Quads {
		if q.Hidden {
			continue
		}
		r.drawQuad(q)
	}
	for _, p := range scene.Polylines {
		if p.Hidden || len(p.Points) == 0 {
			continue
		}
		r.drawPolyline(p)
	}

	gl.UseProgram(r.textProgram)
	gl.Uniform2f(r.textViewportLoc, w, h)
	gl.Uniform1i(r.textSamplerLoc, 0)
	for _, l := range scene.Labels {
		if l.Hidden || l.Text == "" {
			continue
		}
		r.drawLabel(l)
	}
}

func (r *Renderer) drawQuad(q *Quad) {
	verts := []float32{
		q.Min.X, q.Min.Y,
		q.Max.X, q.Min.Y,
		q.Max.X, q.Max.Y,
		q.Min.X, q.Min.Y,
		q.Max.X, q.Max.Y,
		q.Min.X, q.Max.Y,
	}
	gl.Uniform4f(r.solidColorLoc, q.Color[0], q.Color[1], q.Color[2], q.Color[3])
	gl.BindVertexArray(r.solidVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawPolyline(p *Polyline) {
	verts := make([]float32, 0, len(p.Points)*2)
	for _, pt := range p.Points {
		verts = append(verts, pt.X, pt.Y)
	}
	gl.Uniform4f(r.solidColorLoc, p.Color[0], p.Color[1], p.Color[2], p.Color[3])
	gl.BindVertexArray(r.solidVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
	if len(p.Points) == 1 {
		gl.DrawArrays(gl.POINTS, 0, 1)
	} else {
		gl.DrawArrays(gl.LINE_STRIP, 0, int32(len(p.Points)))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) drawLabel(l *Label) {
	if l.tex == 0 || l.texText != l.Text {
		uploadLabel(l)
	}
	w, h := l.Measure()
	// top-left anchored quad, y grows up
	verts := []float32{
		l.X, l.Y - h, 0, 1,
		l.X + w, l.Y - h, 1, 1,
		l.X + w, l.Y, 1, 0,
		l.X, l.Y - h, 0, 1,
		l.X + w, l.Y, 1, 0,
		l.X, l.Y, 0, 0,
	}
	gl.Uniform4f(r.textColorLoc, l.Color[0], l.Color[1], l.Color[2], l.Color[3])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, l.tex)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("failed to link program: %v", infoLog)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}

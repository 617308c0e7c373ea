package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Locations match glmesh.DefaultBindings.
const vertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 3) in vec4 aColor;

uniform mat4 uViewProj;
uniform bool uHasNormals;
uniform bool uHasColors;

out vec3 vNormal;
out vec4 vColor;

void main() {
    gl_Position = uViewProj * vec4(aPosition, 1.0);
    gl_PointSize = 4.0;
    vNormal = uHasNormals ? aNormal : vec3(0.0, 1.0, 0.0);
    vColor = uHasColors ? aColor : vec4(0.85, 0.85, 0.8, 1.0);
}
`

const fragmentShader = `#version 410 core
in vec3 vNormal;
in vec4 vColor;

uniform bool uHasNormals;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
    float shade = 1.0;
    if (uHasNormals) {
        shade = 0.3 + 0.7 * max(dot(normalize(vNormal), -uLightDir), 0.0);
    }
    FragColor = vec4(vColor.rgb * shade, vColor.a);
}
`

// compileProgram compiles both stages and links them into a program.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}
	return program, nil
}

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
		log := make([]byte, max(logLen, 1))
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}
	return shader, nil
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

package main

import (
	"github.com/seqsense/pcdinspector/scene"
)

const vsPointsSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	layout (location = 1) in vec3 aVertexColor;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform float uPointSize;
	uniform float uPointScale;
	uniform vec3 uColor;
	uniform int uUseVertexColor;
	vec4 viewPosition;
	out lowp vec4 vColor;

	void main(void) {
		viewPosition = uModelViewMatrix * aVertexPosition;
		gl_Position = uProjectionMatrix * viewPosition;
		gl_PointSize = clamp(uPointSize * uPointScale / length(viewPosition), 1.0, 64.0);

		if (uUseVertexColor == 0) {
			vColor = vec4(uColor, 1.0);
		} else {
			vColor = vec4(aVertexColor * uColor, 1.0);
		}
	}
`

const vsMarkerSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform vec3 uColor;
	uniform float uOpacity;
	uniform float uSize;
	out lowp vec4 vColor;

	void main(void) {
		gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
		gl_PointSize = uSize;

		vColor = vec4(uColor, uOpacity);
	}
`

const vsAxesSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	layout (location = 1) in vec3 aVertexColor;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	out lowp vec4 vColor;

	void main(void) {
		gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
		vColor = vec4(aVertexColor, 1.0);
	}
`

const fsSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		outColor = vColor;
	}
`

const fsRoundSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		if (length(gl_PointCoord - vec2(0.5, 0.5)) > 0.5) {
			discard;
		}
		outColor = vColor;
	}
`

// fragmentSource returns the point fragment shader for the material.
func fragmentSource(m scene.Material) string {
	if m.RoundPoints() {
		return fsRoundSource
	}
	return fsSource
}

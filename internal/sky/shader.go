package sky

// Uniform names set by the renderer.
const (
	UniformTop      = "topColor"
	UniformBottom   = "bottomColor"
	UniformOffset   = "offset"
	UniformExponent = "exponent"
)

// VertexShader passes the world position of each dome vertex to the fragment stage.
const VertexShader = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 worldPosition;
void main() {
  vec4 wp = matModel * vec4(vertexPosition, 1.0);
  worldPosition = wp.xyz;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// FragmentShader evaluates the same gradient as Gradient.At.
const FragmentShader = `#version 330
in vec3 worldPosition;
uniform vec3 topColor;
uniform vec3 bottomColor;
uniform float offset;
uniform float exponent;
out vec4 finalColor;
void main() {
  float h = normalize(worldPosition + offset).y;
  finalColor = vec4(mix(bottomColor, topColor, max(pow(max(h, 0.0), exponent), 0.0)), 1.0);
}
`

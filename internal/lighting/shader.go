package lighting

// Uniform names used by the lit shader.
const (
	UniformAmbient       = "ambientColor"
	UniformLightDirs     = "lightDirs"
	UniformLightColors   = "lightColors"
	UniformHemiSky       = "hemiSky"
	UniformHemiGround    = "hemiGround"
	UniformHemiUp        = "hemiUp"
	UniformLightSpace    = "lightSpace"
	UniformShadowMap     = "shadowMap"
	UniformShadowBias    = "shadowBias"
	UniformShadowTexel   = "shadowTexel"
	UniformReceiveShadow = "receiveShadow"
	UniformExposure      = "exposure"
)

// LightCount is the size of the directional light arrays in LitFragmentShader.
// Index 0 is the shadow casting sun.
const LightCount = 3

// ToneMapGLSL is the GLSL counterpart of ACESFilmic and LinearToSRGB.
const ToneMapGLSL = `
vec3 RRTAndODTFit(vec3 v) {
  vec3 a = v * (v + 0.0245786) - 0.000090537;
  vec3 b = v * (0.983729 * v + 0.4329510) + 0.238081;
  return a / b;
}
vec3 ACESFilmic(vec3 color, float exposure) {
  const mat3 inputMat = mat3(
    vec3(0.59719, 0.07600, 0.02840),
    vec3(0.35458, 0.90834, 0.13383),
    vec3(0.04823, 0.01566, 0.83777));
  const mat3 outputMat = mat3(
    vec3(1.60475, -0.10208, -0.00327),
    vec3(-0.53108, 1.10813, -0.07276),
    vec3(-0.07367, -0.00605, 1.07602));
  color *= exposure / 0.6;
  color = inputMat * color;
  color = RRTAndODTFit(color);
  color = outputMat * color;
  return clamp(color, 0.0, 1.0);
}
vec3 LinearToSRGB(vec3 c) {
  return mix(pow(c, vec3(0.41666)) * 1.055 - vec3(0.055), c * 12.92, vec3(lessThanEqual(c, vec3(0.0031308))));
}
vec3 SRGBToLinear(vec3 c) {
  return mix(pow(c * 0.9478672986 + vec3(0.0521327014), vec3(2.4)), c * 0.0773993808, vec3(lessThanEqual(c, vec3(0.04045))));
}
`

// LitVertexShader transforms model vertices and projects them into light space.
const LitVertexShader = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
uniform mat4 lightSpace;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragNormal;
out vec4 fragLightPos;
void main() {
  vec4 wp = matModel * vec4(vertexPosition, 1.0);
  fragPosition = wp.xyz;
  fragTexCoord = vertexTexCoord;
  fragColor = vertexColor;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  fragLightPos = lightSpace * wp;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// LitFragmentShader shades with ambient, hemisphere and three directional
// lights, 3x3 PCF shadows from the sun, ACES tone mapping and sRGB output.
// Back faces flip their normal so double sided meshes light correctly.
const LitFragmentShader = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragNormal;
in vec4 fragLightPos;
uniform sampler2D texture0;
uniform sampler2D shadowMap;
uniform vec4 colDiffuse;
uniform vec3 ambientColor;
uniform vec3 lightDirs[3];
uniform vec3 lightColors[3];
uniform vec3 hemiSky;
uniform vec3 hemiGround;
uniform vec3 hemiUp;
uniform float shadowBias;
uniform float shadowTexel;
uniform float receiveShadow;
uniform float exposure;
out vec4 finalColor;
` + ToneMapGLSL + `
float sunVisibility() {
  if (receiveShadow < 0.5) return 1.0;
  vec3 p = fragLightPos.xyz / fragLightPos.w * 0.5 + 0.5;
  if (p.z > 1.0 || p.x < 0.0 || p.x > 1.0 || p.y < 0.0 || p.y > 1.0) return 1.0;
  float z = p.z + shadowBias;
  float lit = 0.0;
  for (int x = -1; x <= 1; x++) {
    for (int y = -1; y <= 1; y++) {
      float d = texture(shadowMap, p.xy + vec2(x, y) * shadowTexel).r;
      lit += z <= d ? 1.0 : 0.0;
    }
  }
  return lit / 9.0;
}
void main() {
  vec4 texel = texture(texture0, fragTexCoord);
  vec3 albedo = SRGBToLinear(texel.rgb) * colDiffuse.rgb * fragColor.rgb;
  float alpha = texel.a * colDiffuse.a * fragColor.a;
  vec3 n = normalize(fragNormal);
  if (!gl_FrontFacing) n = -n;
  vec3 irradiance = ambientColor;
  irradiance += mix(hemiGround, hemiSky, 0.5 * dot(n, hemiUp) + 0.5);
  float sun = sunVisibility();
  for (int i = 0; i < 3; i++) {
    float ndl = max(dot(n, lightDirs[i]), 0.0);
    irradiance += lightColors[i] * ndl * (i == 0 ? sun : 1.0);
  }
  vec3 color = ACESFilmic(albedo * irradiance, exposure);
  finalColor = vec4(LinearToSRGB(color), alpha);
}
`

// DepthVertexShader renders geometry from the sun for the shadow map.
const DepthVertexShader = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
void main() {
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// DepthFragmentShader writes depth only.
const DepthFragmentShader = `#version 330
out vec4 finalColor;
void main() {
  finalColor = vec4(1.0);
}
`

// Uniforms is the per-frame data uploaded to the lit shader, flattened for
// the GPU. Directions point toward each light.
type Uniforms struct {
	Ambient     [3]float32
	LightDirs   [LightCount * 3]float32
	LightColors [LightCount * 3]float32
	HemiSky     [3]float32
	HemiGround  [3]float32
	HemiUp      [3]float32
	ShadowBias  float32
	ShadowTexel float32
	Exposure    float32
}

// Uniforms flattens the rig for upload.
func (r Rig) Uniforms(exposure float32) Uniforms {
	var u Uniforms
	amb := r.AmbientColor.Mul(r.AmbientIntensity)
	copy(u.Ambient[:], amb[:])
	for i, d := range r.Directionals() {
		toLight := d.Direction().Mul(-1)
		rad := d.Radiance()
		copy(u.LightDirs[i*3:], toLight[:])
		copy(u.LightColors[i*3:], rad[:])
	}
	hs := r.Hemisphere.SkyColor.Mul(r.Hemisphere.Intensity)
	hg := r.Hemisphere.GroundColor.Mul(r.Hemisphere.Intensity)
	up := r.Hemisphere.Position
	if up.Len() > 0 {
		up = up.Normalize()
	}
	copy(u.HemiSky[:], hs[:])
	copy(u.HemiGround[:], hg[:])
	copy(u.HemiUp[:], up[:])
	u.ShadowBias = r.Shadow.Bias
	u.ShadowTexel = r.ShadowTexel()
	u.Exposure = exposure
	return u
}

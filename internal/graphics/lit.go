package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/lighting"
)

// litShader is the model shader with its uniform locations.
type litShader struct {
	shader rl.Shader

	ambient, lightDirs, lightColors     int32
	hemiSky, hemiGround, hemiUp         int32
	lightSpace, shadowBias, shadowTexel int32
	receiveShadow, exposure             int32
}

func loadLitShader() (litShader, error) {
	sh := rl.LoadShaderFromMemory(lighting.LitVertexShader, lighting.LitFragmentShader)
	if !rl.IsShaderValid(sh) {
		return litShader{}, fmt.Errorf("lit shader failed to compile")
	}
	loc := func(name string) int32 { return rl.GetShaderLocation(sh, name) }
	l := litShader{
		shader:        sh,
		ambient:       loc(lighting.UniformAmbient),
		lightDirs:     loc(lighting.UniformLightDirs),
		lightColors:   loc(lighting.UniformLightColors),
		hemiSky:       loc(lighting.UniformHemiSky),
		hemiGround:    loc(lighting.UniformHemiGround),
		hemiUp:        loc(lighting.UniformHemiUp),
		lightSpace:    loc(lighting.UniformLightSpace),
		shadowBias:    loc(lighting.UniformShadowBias),
		shadowTexel:   loc(lighting.UniformShadowTexel),
		receiveShadow: loc(lighting.UniformReceiveShadow),
		exposure:      loc(lighting.UniformExposure),
	}
	// DrawMesh binds material map i to the sampler at locs[MapDiffuse+i];
	// the shadow map rides in the BRDF slot.
	sh.UpdateLocation(rl.ShaderLocMapBrdf, loc(lighting.UniformShadowMap))
	return l, nil
}

// upload sends the light rig for this frame.
func (l *litShader) upload(rig lighting.Rig, exposure float32, shadows bool) {
	u := rig.Uniforms(exposure)
	sh := l.shader
	rl.SetShaderValue(sh, l.ambient, u.Ambient[:], rl.ShaderUniformVec3)
	rl.SetShaderValueV(sh, l.lightDirs, u.LightDirs[:], rl.ShaderUniformVec3, lighting.LightCount)
	rl.SetShaderValueV(sh, l.lightColors, u.LightColors[:], rl.ShaderUniformVec3, lighting.LightCount)
	rl.SetShaderValue(sh, l.hemiSky, u.HemiSky[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, l.hemiGround, u.HemiGround[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, l.hemiUp, u.HemiUp[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, l.exposure, []float32{u.Exposure}, rl.ShaderUniformFloat)
	if shadows {
		rl.SetShaderValueMatrix(sh, l.lightSpace, toMatrix(rig.LightSpace()))
		rl.SetShaderValue(sh, l.shadowBias, []float32{u.ShadowBias}, rl.ShaderUniformFloat)
		rl.SetShaderValue(sh, l.shadowTexel, []float32{u.ShadowTexel}, rl.ShaderUniformFloat)
	}
}

func (l *litShader) setReceiveShadow(on bool) {
	v := float32(0)
	if on {
		v = 1
	}
	rl.SetShaderValue(l.shader, l.receiveShadow, []float32{v}, rl.ShaderUniformFloat)
}

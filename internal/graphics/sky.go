package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/sky"
)

// skyDome is the GPU side of sky.Dome: an inverted sphere drawn with the
// gradient shader before anything else.
type skyDome struct {
	mesh     rl.Mesh
	material rl.Material
	shader   rl.Shader
	loaded   bool

	topLoc, bottomLoc, offsetLoc, exponentLoc int32
}

// load creates the sphere mesh and shader. It must run after the GL context exists.
func (d *skyDome) load(dome sky.Dome) bool {
	shader := rl.LoadShaderFromMemory(sky.VertexShader, sky.FragmentShader)
	if !rl.IsShaderValid(shader) {
		return false
	}
	d.shader = shader
	d.topLoc = rl.GetShaderLocation(shader, sky.UniformTop)
	d.bottomLoc = rl.GetShaderLocation(shader, sky.UniformBottom)
	d.offsetLoc = rl.GetShaderLocation(shader, sky.UniformOffset)
	d.exponentLoc = rl.GetShaderLocation(shader, sky.UniformExponent)

	d.mesh = rl.GenMeshSphere(dome.Radius, dome.HeightSegments, dome.WidthSegments)
	d.material = rl.LoadMaterialDefault()
	d.material.Shader = shader
	d.loaded = true
	return true
}

// draw renders the inside of the dome without writing depth, so the model
// always draws over it.
func (d *skyDome) draw(g sky.Gradient) {
	if !d.loaded {
		return
	}
	rl.SetShaderValue(d.shader, d.topLoc, g.Top[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.bottomLoc, g.Bottom[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(d.shader, d.offsetLoc, []float32{g.Offset}, rl.ShaderUniformFloat)
	rl.SetShaderValue(d.shader, d.exponentLoc, []float32{g.Exponent}, rl.ShaderUniformFloat)

	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	rl.DrawMesh(d.mesh, d.material, rl.MatrixIdentity())
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (d *skyDome) unload() {
	if !d.loaded {
		return
	}
	rl.UnloadMesh(&d.mesh)
	// UnloadMaterial also unloads the shader
	rl.UnloadMaterial(d.material)
	d.loaded = false
}

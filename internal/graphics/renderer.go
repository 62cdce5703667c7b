package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"model-viewer/internal/camera"
	"model-viewer/internal/lighting"
	"model-viewer/internal/logger"
	"model-viewer/internal/scene"
	"model-viewer/internal/surface"
)

// Renderer draws a scene.Scene with the sky gradient, the static light rig,
// a PCF shadow map from the sun and ACES tone mapping. It also uploads models
// (see Open). GPU resources are created lazily on the first Render.
type Renderer struct {
	Exposure float32
	// Shadows enables the sun's shadow map.
	Shadows bool

	surface *surface.Surface
	log     *logger.Logger

	loaded bool
	failed bool
	sky    skyDome
	lit    litShader
	depth  rl.Shader

	shadow   rl.RenderTexture2D
	hasShade bool

	target    rl.RenderTexture2D
	hasTarget bool
}

// NewRenderer returns a renderer that caps the pixel ratio at maxPixelRatio.
func NewRenderer(exposure, maxPixelRatio float32, log *logger.Logger) *Renderer {
	return &Renderer{
		Exposure: exposure,
		Shadows:  true,
		surface:  surface.New(maxPixelRatio),
		log:      log,
	}
}

// SetSize resizes the output surface in screen coordinates. The backing
// buffer is reallocated on the next Render.
func (r *Renderer) SetSize(width, height int) {
	r.surface.SetSize(width, height)
}

// Surface exposes the output size for overlays.
func (r *Renderer) Surface() *surface.Surface {
	return r.surface
}

// ensureLoaded runs the first time Render is called, after the window/GL context exists.
func (r *Renderer) ensureLoaded(s *scene.Scene) {
	if r.loaded || r.failed {
		return
	}
	if err := r.load(s); err != nil {
		r.failed = true
		r.log.Errorf("renderer: %v", err)
		return
	}
	r.loaded = true
}

func (r *Renderer) load(s *scene.Scene) error {
	if !r.sky.load(s.Sky) {
		return fmt.Errorf("sky shader failed to compile")
	}
	lit, err := loadLitShader()
	if err != nil {
		return err
	}
	r.lit = lit
	r.depth = rl.LoadShaderFromMemory(lighting.DepthVertexShader, lighting.DepthFragmentShader)
	if !rl.IsShaderValid(r.depth) {
		return fmt.Errorf("depth shader failed to compile")
	}
	if r.Shadows {
		size := s.Lights.Shadow.MapSize
		r.shadow, r.hasShade = loadShadowTarget(size)
		if !r.hasShade {
			r.log.Warnf("renderer: %dx%d shadow framebuffer incomplete, shadows off", size, size)
		}
	}
	return nil
}

// loadShadowTarget builds a depth-only framebuffer, following raylib's shadowmap example.
func loadShadowTarget(size int32) (rl.RenderTexture2D, bool) {
	var t rl.RenderTexture2D
	t.ID = rl.LoadFramebuffer()
	t.Texture.Width, t.Texture.Height = size, size
	if t.ID == 0 {
		return t, false
	}
	rl.EnableFramebuffer(t.ID)
	t.Depth.ID = rl.LoadTextureDepth(size, size, false)
	t.Depth.Width, t.Depth.Height = size, size
	t.Depth.Mipmaps = 1
	t.Depth.Format = rl.UncompressedR32
	rl.FramebufferAttach(t.ID, t.Depth.ID, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)
	ok := rl.FramebufferComplete(t.ID)
	rl.DisableFramebuffer()
	if !ok {
		rl.UnloadFramebuffer(t.ID)
	}
	return t, ok
}

// syncTarget reallocates the offscreen buffer when the surface changed. The
// window's own framebuffer is used when its density already matches the
// pixel ratio, which keeps MSAA.
func (r *Renderer) syncTarget() {
	r.surface.SetDevicePixelRatio(rl.GetWindowScaleDPI().X)
	if !r.surface.Changed() {
		return
	}
	if r.hasTarget {
		rl.UnloadRenderTexture(r.target)
		r.hasTarget = false
	}
	w, h := r.surface.DrawingBuffer()
	if w == 0 || h == 0 || (w == rl.GetRenderWidth() && h == rl.GetRenderHeight()) {
		return
	}
	r.target = rl.LoadRenderTexture(int32(w), int32(h))
	rl.SetTextureFilter(r.target.Texture, rl.FilterBilinear)
	r.hasTarget = true
	r.log.Debugf("renderer: drawing buffer %dx%d (pixel ratio %.2f)", w, h, r.surface.PixelRatio)
}

// Render draws one frame: shadow pass, sky, grid, model.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	r.ensureLoaded(s)
	r.syncTarget()
	model := s.Model()

	if r.loaded && r.hasShade && model != nil {
		r.renderShadowMap(s, model)
	}

	if r.hasTarget {
		rl.BeginTextureMode(r.target)
	}
	rl.ClearBackground(toColor(s.Sky.Gradient.Bottom))
	begin3D(cam.Projection(), cam.View())
	if r.loaded {
		r.sky.draw(s.Sky.Gradient)
	}
	if s.GridVisible {
		var maxDim float32
		if model != nil {
			maxDim = model.Bounds.MaxDim()
		}
		drawGrid(gridUnit(maxDim))
	}
	if r.loaded && model != nil {
		r.drawModel(s, model)
	}
	end3D()
	if r.hasTarget {
		rl.EndTextureMode()
		src := rl.NewRectangle(0, 0, float32(r.target.Texture.Width), -float32(r.target.Texture.Height))
		dst := rl.NewRectangle(0, 0, float32(r.surface.Width), float32(r.surface.Height))
		rl.DrawTexturePro(r.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
	}
}

func (r *Renderer) renderShadowMap(s *scene.Scene, model *scene.Model) {
	h, ok := model.Handle.(*modelHandle)
	if !ok {
		return
	}
	rl.BeginTextureMode(r.shadow)
	rl.ClearBackground(rl.White)
	begin3D(s.Lights.LightProjection(), s.Lights.LightView())
	rl.DisableBackfaceCulling()
	r.drawCasters(h, model)
	rl.EnableBackfaceCulling()
	end3D()
	rl.EndTextureMode()
}

func (r *Renderer) drawCasters(h *modelHandle, model *scene.Model) {
	meshes := h.model.GetMeshes()
	materials := h.model.GetMaterials()
	transform := modelTransform(h, model)
	for i := range meshes {
		if i < len(model.Meshes) && !model.Meshes[i].CastShadow {
			continue
		}
		mat := materials[h.meshMaterial(i)]
		mat.Shader = r.depth
		rl.DrawMesh(meshes[i], mat, transform)
	}
}

func (r *Renderer) drawModel(s *scene.Scene, model *scene.Model) {
	h, ok := model.Handle.(*modelHandle)
	if !ok {
		return
	}
	r.lit.upload(s.Lights, r.Exposure, r.hasShade)
	meshes := h.model.GetMeshes()
	materials := h.model.GetMaterials()
	transform := modelTransform(h, model)
	for i := range meshes {
		flags := scene.Mesh{}
		if i < len(model.Meshes) {
			flags = *model.Meshes[i]
		}
		r.lit.setReceiveShadow(flags.ReceiveShadow && r.hasShade)
		if flags.DoubleSided {
			rl.DisableBackfaceCulling()
		}
		mat := materials[h.meshMaterial(i)]
		mat.Shader = r.lit.shader
		if r.hasShade {
			h.bindShadowMap(mat, r.shadow.Depth)
		}
		rl.DrawMesh(meshes[i], mat, transform)
		rl.EnableBackfaceCulling()
	}
}

func modelTransform(h *modelHandle, model *scene.Model) rl.Matrix {
	return rl.MatrixMultiply(h.model.Transform, toMatrix(mgl32.Translate3D(model.Position[0], model.Position[1], model.Position[2])))
}

// Close releases GPU resources. The attached model is released with Unload.
func (r *Renderer) Close() {
	if r.hasTarget {
		rl.UnloadRenderTexture(r.target)
		r.hasTarget = false
	}
	if r.hasShade {
		rl.UnloadFramebuffer(r.shadow.ID)
		r.hasShade = false
	}
	if !r.loaded {
		return
	}
	r.sky.unload()
	rl.UnloadShader(r.lit.shader)
	rl.UnloadShader(r.depth)
	r.loaded = false
}

// begin3D is BeginMode3D with explicit matrices.
func begin3D(projection, view mgl32.Mat4) {
	rl.DrawRenderBatchActive()
	rl.MatrixMode(rl.Projection)
	rl.PushMatrix()
	rl.LoadIdentity()
	rl.SetMatrixProjection(toMatrix(projection))
	rl.MatrixMode(rl.Modelview)
	rl.LoadIdentity()
	rl.SetMatrixModelview(toMatrix(view))
	rl.EnableDepthTest()
}

func end3D() {
	rl.DrawRenderBatchActive()
	rl.MatrixMode(rl.Projection)
	rl.PopMatrix()
	rl.MatrixMode(rl.Modelview)
	rl.LoadIdentity()
	rl.DisableDepthTest()
}

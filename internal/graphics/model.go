package graphics

import (
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/framing"
	"model-viewer/internal/scene"
)

// modelHandle is the GPU resource behind scene.Model.Handle.
type modelHandle struct {
	model rl.Model
}

func (h *modelHandle) meshMaterial(i int) int32 {
	if h.model.MeshMaterial == nil {
		return 0
	}
	idx := unsafe.Slice(h.model.MeshMaterial, h.model.MeshCount)[i]
	if idx < 0 || idx >= h.model.MaterialCount {
		return 0
	}
	return idx
}

// bindShadowMap puts the shadow depth texture in the material's BRDF slot.
// Unload detaches it again before raylib frees the material textures.
func (h *modelHandle) bindShadowMap(mat rl.Material, depth rl.Texture2D) {
	mat.GetMap(rl.MapBrdf).Texture = depth
}

// Open uploads the glTF/GLB file at path. raylib bakes node transforms into
// the mesh vertices, so the bounding box covers the whole hierarchy.
func (r *Renderer) Open(path string) (*scene.Model, error) {
	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) || m.MeshCount == 0 {
		if m.MeshCount > 0 {
			rl.UnloadModel(m)
		}
		return nil, fmt.Errorf("graphics: load %s: no drawable meshes", filepath.Base(path))
	}
	bb := rl.GetModelBoundingBox(m)

	out := &scene.Model{
		Name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Bounds: framing.NewBox(fromVector3(bb.Min), fromVector3(bb.Max)),
		Handle: &modelHandle{model: m},
	}
	for i, mesh := range m.GetMeshes() {
		out.Meshes = append(out.Meshes, &scene.Mesh{Name: fmt.Sprintf("mesh_%d", i)})
		out.Triangles += int(mesh.TriangleCount)
	}
	r.log.Infof("uploaded %s: %d meshes, %d materials, %d triangles", out.Name, m.MeshCount, m.MaterialCount, out.Triangles)
	return out, nil
}

// Unload frees the GPU resources of a model returned by Open.
func (r *Renderer) Unload(m *scene.Model) {
	if m == nil {
		return
	}
	h, ok := m.Handle.(*modelHandle)
	if !ok {
		return
	}
	mats := h.model.GetMaterials()
	for i := range mats {
		mats[i].GetMap(rl.MapBrdf).Texture = rl.Texture2D{}
	}
	rl.UnloadModel(h.model)
	m.Handle = nil
}

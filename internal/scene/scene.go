// Package scene is the container the renderer draws: the sky dome, the light
// rig and at most one loaded model. It holds no GPU state of its own; the
// model's Handle is owned by whichever renderer uploaded it.
package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"model-viewer/internal/framing"
	"model-viewer/internal/lighting"
	"model-viewer/internal/sky"
)

// ErrModelAttached is returned when a second model is attached.
var ErrModelAttached = errors.New("scene: model already attached")

// Mesh carries the per-mesh render flags.
type Mesh struct {
	Name          string
	CastShadow    bool
	ReceiveShadow bool
	DoubleSided   bool
}

// Model is a loaded model hierarchy, flattened to its meshes.
type Model struct {
	Name string
	// Position is the root translation applied when drawing.
	Position mgl32.Vec3
	// Bounds is the axis aligned box of all meshes in model space.
	Bounds framing.Box
	Meshes []*Mesh
	// Triangles is informational, shown by the stats overlay.
	Triangles int
	// Handle is the renderer's GPU resource for the model.
	Handle any
}

// WorldBounds returns Bounds translated by Position.
func (m *Model) WorldBounds() framing.Box {
	return m.Bounds.Translate(m.Position)
}

// Traverse calls fn for every mesh in the model.
func (m *Model) Traverse(fn func(*Mesh)) {
	for _, mesh := range m.Meshes {
		fn(mesh)
	}
}

// Scene holds everything the renderer draws.
type Scene struct {
	Sky         sky.Dome
	Lights      lighting.Rig
	GridVisible bool

	model *Model
}

// New returns a scene with the default sky and light rig and no model.
func New() *Scene {
	return &Scene{
		Sky:    sky.DefaultDome(),
		Lights: lighting.Default(),
	}
}

// SetGridVisible sets whether the ground grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// AttachModel adds m to the scene. Only one model may ever be attached.
func (s *Scene) AttachModel(m *Model) error {
	if s.model != nil {
		return ErrModelAttached
	}
	s.model = m
	return nil
}

// Model returns the attached model, or nil.
func (s *Scene) Model() *Model {
	return s.model
}

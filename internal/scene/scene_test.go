package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-viewer/internal/framing"
)

func TestNewSceneHasSkyAndLightsButNoModel(t *testing.T) {
	s := New()
	assert.Nil(t, s.Model())
	assert.Equal(t, float32(10000), s.Sky.Radius)
	assert.Equal(t, float32(1.5), s.Lights.Sun.Intensity)
	assert.False(t, s.GridVisible)
	s.SetGridVisible(true)
	assert.True(t, s.GridVisible)
}

func TestAttachModelOnce(t *testing.T) {
	s := New()
	first := &Model{Name: "first"}
	require.NoError(t, s.AttachModel(first))
	assert.ErrorIs(t, s.AttachModel(&Model{Name: "second"}), ErrModelAttached)
	assert.Same(t, first, s.Model())
}

func TestTraverseAndWorldBounds(t *testing.T) {
	m := &Model{
		Bounds:   framing.NewBox(mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1}),
		Position: mgl32.Vec3{0, -1, 0},
		Meshes:   []*Mesh{{Name: "a"}, {Name: "b"}},
	}
	m.Traverse(func(mesh *Mesh) {
		mesh.CastShadow = true
	})
	for _, mesh := range m.Meshes {
		assert.True(t, mesh.CastShadow, mesh.Name)
	}
	wb := m.WorldBounds()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, wb.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, wb.Max)
}

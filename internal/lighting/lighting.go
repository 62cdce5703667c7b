// Package lighting defines the viewer's static light rig and the shadow
// projection for the sun. Nothing in the rig changes after construction.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"model-viewer/internal/sky"
)

// Directional is a light shining from Position toward the origin.
type Directional struct {
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
}

// Direction returns the unit vector the light travels along (toward the origin).
func (d Directional) Direction() mgl32.Vec3 {
	if d.Position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Position.Mul(-1).Normalize()
}

// Hemisphere blends SkyColor for upward facing normals and GroundColor for downward ones.
type Hemisphere struct {
	SkyColor    mgl32.Vec3
	GroundColor mgl32.Vec3
	Intensity   float32
	Position    mgl32.Vec3
}

// Shadow describes the sun's orthographic shadow camera.
type Shadow struct {
	MapSize int32
	Extent  float32 // half width/height of the ortho frustum
	Near    float32
	Far     float32
	Bias    float32
}

// Rig is the complete light setup.
type Rig struct {
	AmbientColor     mgl32.Vec3
	AmbientIntensity float32

	Sun      Directional
	TopFill  Directional
	SideFill Directional

	Hemisphere Hemisphere
	Shadow     Shadow
}

var white = mgl32.Vec3{1, 1, 1}

// Default returns the studio rig: ambient, a shadow-casting sun, a top fill,
// a side fill and a sky/ground hemisphere light.
func Default() Rig {
	return Rig{
		AmbientColor:     white,
		AmbientIntensity: 0.6,
		Sun:              Directional{Color: white, Intensity: 1.5, Position: mgl32.Vec3{50, 150, 50}},
		TopFill:          Directional{Color: white, Intensity: 0.8, Position: mgl32.Vec3{0, 200, 0}},
		SideFill:         Directional{Color: white, Intensity: 0.5, Position: mgl32.Vec3{-100, 80, -100}},
		Hemisphere: Hemisphere{
			SkyColor:    sky.HexColor(0x87ceeb),
			GroundColor: sky.HexColor(0x556b2f),
			Intensity:   0.7,
			Position:    mgl32.Vec3{0, 100, 0},
		},
		Shadow: Shadow{
			MapSize: 4096,
			Extent:  200,
			Near:    1,
			Far:     1000,
			Bias:    -0.0001,
		},
	}
}

// Directionals returns the directional lights in shader order.
func (r Rig) Directionals() []Directional {
	return []Directional{r.Sun, r.TopFill, r.SideFill}
}

// LightView is the sun's view matrix, looking from its position at the origin.
func (r Rig) LightView() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	dir := r.Sun.Direction()
	if mgl32.Abs(dir.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(r.Sun.Position, mgl32.Vec3{}, up)
}

// LightProjection is the sun's orthographic shadow frustum.
func (r Rig) LightProjection() mgl32.Mat4 {
	e := r.Shadow.Extent
	return mgl32.Ortho(-e, e, -e, e, r.Shadow.Near, r.Shadow.Far)
}

// LightSpace maps world positions into the sun's clip space.
func (r Rig) LightSpace() mgl32.Mat4 {
	return r.LightProjection().Mul4(r.LightView())
}

// ShadowTexel is the size of one shadow map texel in UV units.
func (r Rig) ShadowTexel() float32 {
	if r.Shadow.MapSize <= 0 {
		return 0
	}
	return 1 / float32(r.Shadow.MapSize)
}

// Radiance returns color*intensity for a directional light, as uploaded to the shader.
func (d Directional) Radiance() mgl32.Vec3 {
	return d.Color.Mul(d.Intensity)
}

// Irradiance evaluates the hemisphere light for a world-space normal.
func (h Hemisphere) Irradiance(normal mgl32.Vec3) mgl32.Vec3 {
	up := h.Position
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	w := 0.5*normal.Normalize().Dot(up.Normalize()) + 0.5
	c := h.GroundColor.Add(h.SkyColor.Sub(h.GroundColor).Mul(w))
	return c.Mul(h.Intensity)
}

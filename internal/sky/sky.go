// Package sky describes the gradient sky dome: a large inverted sphere whose
// color blends from Bottom at the horizon to Top at the zenith by world height.
package sky

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Gradient holds the sky shader parameters. Colors are linear RGB in [0,1].
type Gradient struct {
	Top      mgl32.Vec3
	Bottom   mgl32.Vec3
	Offset   float32
	Exponent float32
}

// Dome is the sphere the gradient is drawn on. It is large enough relative to
// the scene that the gradient looks independent of the camera position.
type Dome struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
	Gradient       Gradient
}

// DefaultGradient returns the light blue sky: top #88b4d8, bottom #c8d8e8, offset 33, exponent 0.4.
func DefaultGradient() Gradient {
	return Gradient{
		Top:      HexColor(0x88b4d8),
		Bottom:   HexColor(0xc8d8e8),
		Offset:   33,
		Exponent: 0.4,
	}
}

// DefaultDome returns a radius 10000 sphere with 32x15 segments.
func DefaultDome() Dome {
	return Dome{
		Radius:         10000,
		WidthSegments:  32,
		HeightSegments: 15,
		Gradient:       DefaultGradient(),
	}
}

// HexColor converts 0xRRGGBB to a [0,1] RGB vector.
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// RGBA converts a [0,1] RGB vector to an opaque 8-bit color.
func RGBA(c mgl32.Vec3) color.RGBA {
	to8 := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255}
}

// Height returns the normalized height used by the shader: normalize(p + offset).y,
// with the scalar offset added to every component.
func (g Gradient) Height(worldPos mgl32.Vec3) float32 {
	p := worldPos.Add(mgl32.Vec3{g.Offset, g.Offset, g.Offset})
	if p.Len() == 0 {
		return 0
	}
	return p.Normalize()[1]
}

// Mix returns the sky color for a normalized height h:
// mix(Bottom, Top, max(pow(max(h, 0), Exponent), 0)). Heights at or below the
// horizon give Bottom.
func (g Gradient) Mix(h float32) mgl32.Vec3 {
	t := math32.Max(math32.Pow(math32.Max(h, 0), g.Exponent), 0)
	return g.Bottom.Add(g.Top.Sub(g.Bottom).Mul(t))
}

// At evaluates the gradient at a world position on the dome.
func (g Gradient) At(worldPos mgl32.Vec3) mgl32.Vec3 {
	return g.Mix(g.Height(worldPos))
}

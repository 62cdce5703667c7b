package sky

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMixAboveHorizon(t *testing.T) {
	g := DefaultGradient()
	for _, h := range []float32{0, 0.1, 0.5, 0.9, 1} {
		w := float32(math.Pow(float64(h), 0.4))
		want := g.Bottom.Mul(1 - w).Add(g.Top.Mul(w))
		assert.True(t, g.Mix(h).ApproxEqualThreshold(want, 1e-5), "h=%v", h)
	}
	assert.True(t, g.Mix(1).ApproxEqualThreshold(g.Top, 1e-6))
}

func TestMixBelowHorizonIsBottom(t *testing.T) {
	g := DefaultGradient()
	for _, h := range []float32{-0.01, -0.5, -1} {
		assert.Equal(t, g.Bottom, g.Mix(h), "h=%v", h)
	}
	assert.Equal(t, g.Bottom, g.Mix(0))
}

func TestHeightAddsScalarOffset(t *testing.T) {
	g := DefaultGradient()
	// (0,-33,0) + 33 on every axis = (33, 0, 33): on the horizon.
	assert.InDelta(t, 0, g.Height(mgl32.Vec3{0, -33, 0}), 1e-6)
	// Straight up on the dome is close to, but not exactly, the zenith.
	h := g.Height(mgl32.Vec3{0, 10000, 0})
	assert.Greater(t, h, float32(0.99))
	assert.Less(t, h, float32(1))
	// Far below is below the horizon and yields the bottom color.
	assert.Equal(t, g.Bottom, g.At(mgl32.Vec3{0, -10000, 0}))
}

func TestHeightAtOriginOffsetOnly(t *testing.T) {
	g := Gradient{Offset: 0}
	assert.Equal(t, float32(0), g.Height(mgl32.Vec3{}))
}

func TestHexAndRGBA(t *testing.T) {
	c := HexColor(0x88b4d8)
	assert.InDelta(t, 0x88/255.0, c[0], 1e-6)
	assert.InDelta(t, 0xb4/255.0, c[1], 1e-6)
	assert.InDelta(t, 0xd8/255.0, c[2], 1e-6)
	assert.Equal(t, color.RGBA{R: 0x88, G: 0xb4, B: 0xd8, A: 255}, RGBA(c))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, RGBA(mgl32.Vec3{2, -1, 0}))
}

func TestDefaultDome(t *testing.T) {
	d := DefaultDome()
	assert.Equal(t, float32(10000), d.Radius)
	assert.Equal(t, 32, d.WidthSegments)
	assert.Equal(t, 15, d.HeightSegments)
	assert.Equal(t, float32(33), d.Gradient.Offset)
	assert.Equal(t, float32(0.4), d.Gradient.Exponent)
}

package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultExposure is the tone mapping exposure of the viewer.
const DefaultExposure = 1.4

// ACES fitted input and output matrices, column major.
var (
	acesInput = mgl32.Mat3{
		0.59719, 0.07600, 0.02840,
		0.35458, 0.90834, 0.13383,
		0.04823, 0.01566, 0.83777,
	}
	acesOutput = mgl32.Mat3{
		1.60475, -0.10208, -0.00327,
		-0.53108, 1.10813, -0.07276,
		-0.07367, -0.00605, 1.07602,
	}
)

func rrtAndODTFit(v float32) float32 {
	a := v*(v+0.0245786) - 0.000090537
	b := v*(0.983729*v+0.4329510) + 0.238081
	return a / b
}

// ACESFilmic maps a linear HDR color to [0,1]. It matches ToneMapGLSL.
func ACESFilmic(c mgl32.Vec3, exposure float32) mgl32.Vec3 {
	c = c.Mul(exposure / 0.6)
	c = acesInput.Mul3x1(c)
	c = mgl32.Vec3{rrtAndODTFit(c[0]), rrtAndODTFit(c[1]), rrtAndODTFit(c[2])}
	c = acesOutput.Mul3x1(c)
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return c
}

// LinearToSRGB encodes one linear channel for display.
func LinearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 0.41666) - 0.055
}

// SRGBToLinear decodes one sRGB channel.
func SRGBToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v * 0.0773993808
	}
	return math32.Pow(v*0.9478672986+0.0521327014, 2.4)
}

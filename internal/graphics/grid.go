package graphics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// gridUnit picks a power of ten for the minor grid step so the grid spans a
// model of the given size. Without a model the unit is 1.
func gridUnit(maxDim float32) float32 {
	if maxDim <= 0 {
		return 1
	}
	return math32.Pow(10, math32.Ceil(math32.Log10(maxDim/gridExtent*2)))
}

// drawGrid draws a grid on the XZ plane (Y=0) with major/minor lines and axis
// lines, each minor cell unit wide.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid(unit float32) {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	ext := float32(gridExtent) * unit
	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		p := float32(i) * unit
		start.X, start.Y, start.Z = p, 0, -ext
		end.X, end.Y, end.Z = p, 0, ext
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -ext, 0, p
		end.X, end.Y, end.Z = ext, 0, p
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = -ext, 0, 0
	end.X, end.Y, end.Z = ext, 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, -ext, 0
	end.X, end.Y, end.Z = 0, ext, 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, -ext
	end.X, end.Y, end.Z = 0, 0, ext
	rl.DrawLine3D(start, end, axisZ)
}

// Package framing places a freshly loaded model on the ground plane and picks a
// camera pose and orbit limits that fit it in view.
package framing

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyBounds is returned when a model has no geometry to frame.
var ErrEmptyBounds = errors.New("framing: model bounds are empty")

// Params are the tuning constants of the framing heuristic. They are aesthetic
// choices ("looks right for typical models"), not derived values.
type Params struct {
	// Margin scales the fit distance (1.2 = 20% extra room).
	Margin float32
	// Direction is the camera offset per unit of distance; the camera sits at Direction*d.
	Direction mgl32.Vec3
	// TargetHeight is the look-at height as a fraction of the model height.
	TargetHeight float32
	// MinDistanceRatio and MaxDistanceRatio scale the orbit limits by the largest model extent.
	MinDistanceRatio float32
	MaxDistanceRatio float32
}

// Default returns the viewer's framing constants: 1.2 margin, elevated 3/4 view
// (0.7, 0.4, 0.7), look-at at 30% of the model height, orbit limits 5% and 5x of maxDim.
func Default() Params {
	return Params{
		Margin:           1.2,
		Direction:        mgl32.Vec3{0.7, 0.4, 0.7},
		TargetHeight:     0.3,
		MinDistanceRatio: 0.05,
		MaxDistanceRatio: 5,
	}
}

// Result is the placement computed for one model.
type Result struct {
	// ModelPosition is the placement offset for the model root: horizontally centered,
	// resting on y = 0. The model's own pivot is untouched.
	ModelPosition mgl32.Vec3
	Size          mgl32.Vec3
	MaxDim        float32
	// Distance is the camera distance scale (camera = Direction * Distance).
	Distance       float32
	CameraPosition mgl32.Vec3
	Target         mgl32.Vec3
	MinDistance    float32
	MaxDistance    float32
}

// FitDistance returns |maxDim / tan(fov/2)| * margin for a vertical field of view in degrees.
func FitDistance(maxDim, fovDegrees, margin float32) float32 {
	fov := mgl32.DegToRad(fovDegrees)
	return math32.Abs(maxDim/math32.Tan(fov/2)) * margin
}

// Compute frames box (the model's bounds before placement) for a camera with the
// given vertical field of view in degrees.
func (p Params) Compute(box Box, fovDegrees float32) (Result, error) {
	if box.IsEmpty() {
		return Result{}, ErrEmptyBounds
	}
	center := box.Center()
	size := box.Size()
	maxDim := box.MaxDim()
	if maxDim <= 0 {
		return Result{}, ErrEmptyBounds
	}

	d := FitDistance(maxDim, fovDegrees, p.Margin)
	return Result{
		ModelPosition:  mgl32.Vec3{-center[0], -box.Min[1], -center[2]},
		Size:           size,
		MaxDim:         maxDim,
		Distance:       d,
		CameraPosition: p.Direction.Mul(d),
		Target:         mgl32.Vec3{0, size[1] * p.TargetHeight, 0},
		MinDistance:    maxDim * p.MinDistanceRatio,
		MaxDistance:    maxDim * p.MaxDistanceRatio,
	}, nil
}

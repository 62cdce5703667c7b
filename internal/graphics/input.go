package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"model-viewer/internal/orbit"
)

// PollInput maps the mouse to orbit controls: left drag rotates, right or
// middle drag (or shift + left drag) pans, and the wheel zooms.
func PollInput() orbit.Input {
	in := orbit.Input{ViewportHeight: float32(rl.GetScreenHeight())}
	delta := rl.GetMouseDelta()
	d := mgl32.Vec2{delta.X, delta.Y}
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonLeft) && !shift:
		in.Rotate = d
	case rl.IsMouseButtonDown(rl.MouseButtonLeft),
		rl.IsMouseButtonDown(rl.MouseButtonRight),
		rl.IsMouseButtonDown(rl.MouseButtonMiddle):
		in.Pan = d
	}
	in.Zoom = rl.GetMouseWheelMove()
	return in
}

// KeyPressed reports a key press this frame.
func KeyPressed(key int32) bool {
	return rl.IsKeyPressed(key)
}

// Keys the viewer binds.
const (
	KeyToggleStats = rl.KeyF3
	KeyToggleGrid  = rl.KeyG
)

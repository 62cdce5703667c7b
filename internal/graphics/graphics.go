// Package graphics is the raylib side of the viewer: the window and main
// loop, the renderer, GPU model upload, pointer input and overlay drawing.
// Every function here must run on the main goroutine, which raylib locks to
// the main OS thread.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// WindowConfig describes the native window.
type WindowConfig struct {
	Title         string
	Width, Height int32
	TargetFPS     int32
	MSAA          bool
	HighDPI       bool
}

func (c WindowConfig) flags() uint32 {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if c.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	if c.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	return flags
}

// Run opens the window and runs the main loop until the window is closed.
// Each frame it calls update (input, resize), then begins drawing, clears
// the screen and calls draw. setup runs once after the GL context exists and
// teardown runs before the window closes.
func Run(cfg WindowConfig, setup func(), update, draw func(), teardown func()) {
	rl.SetConfigFlags(cfg.flags())
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	defer rl.CloseWindow()

	rl.SetWindowMinSize(320, 240)
	rl.SetTargetFPS(cfg.TargetFPS)

	if setup != nil {
		setup()
	}
	if teardown != nil {
		defer teardown()
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}

// ScreenSize returns the window size in screen coordinates.
func ScreenSize() (width, height int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Resized reports whether the window was resized since the previous frame.
func Resized() bool {
	return rl.IsWindowResized()
}

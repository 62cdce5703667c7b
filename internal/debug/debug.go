// Package debug draws the stats overlay: frame rate, heap, and what the viewer has loaded.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats is a snapshot of the viewer the overlay reports on.
type Stats struct {
	State          string
	Meshes         int
	Triangles      int
	BufferWidth    int
	BufferHeight   int
	CameraDistance float32
}

// Lines formats s for display.
func (s Stats) Lines() []string {
	out := []string{"State: " + s.State}
	if s.Meshes > 0 {
		out = append(out,
			fmt.Sprintf("Meshes: %d", s.Meshes),
			fmt.Sprintf("Triangles: %d", s.Triangles),
		)
	}
	out = append(out,
		fmt.Sprintf("Buffer: %dx%d", s.BufferWidth, s.BufferHeight),
		fmt.Sprintf("Distance: %.2f", s.CameraDistance),
	)
	return out
}

// Debug holds the stats overlay. Hidden by default.
type Debug struct {
	Visible    bool
	ShowMemory bool
	font       rl.Font // optional; zero texture ID uses the raylib default
	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a hidden overlay that reports memory once shown.
func New() *Debug {
	return &Debug{ShowMemory: true}
}

// Toggle flips visibility.
func (d *Debug) Toggle() {
	d.Visible = !d.Visible
	d.lines = nil
}

// SetFont sets the font used for the overlay text.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// refresh reports whether the text is due for a rebuild on this frame.
func (d *Debug) refresh() bool {
	d.frameCount++
	return d.lines == nil || d.frameCount%updateInterval == 0
}

func (d *Debug) build(fps int32, s Stats) []string {
	out := []string{fmt.Sprintf("FPS: %d", fps)}
	if d.ShowMemory {
		runtime.ReadMemStats(&d.memStats)
		out = append(out, fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)))
	}
	return append(out, s.Lines()...)
}

// Draw renders the overlay right-aligned at the top of the screen in green.
// stats is only called when the text is rebuilt.
func (d *Debug) Draw(stats func() Stats) {
	if !d.Visible {
		return
	}
	if d.refresh() {
		d.lines = d.build(rl.GetFPS(), stats())
	}

	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			sz := float32(fontSize)
			pos := rl.NewVector2(screenW-rl.MeasureTextEx(d.font, text, sz, 1).X-padding, y)
			rl.DrawTextEx(d.font, text, pos, sz, 1, rl.Green)
		} else {
			x := int32(screenW) - rl.MeasureText(text, fontSize) - padding
			rl.DrawText(text, x, int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}

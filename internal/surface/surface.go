// Package surface tracks the size of the drawing surface in window
// coordinates and the backing buffer size after pixel ratio scaling.
package surface

import "github.com/chewxy/math32"

// DefaultMaxPixelRatio caps the device pixel ratio on very dense displays.
const DefaultMaxPixelRatio = 2

// Surface is the renderer's output size. It is only touched from the render goroutine.
type Surface struct {
	Width, Height int
	// PixelRatio is min(device pixel ratio, MaxPixelRatio).
	PixelRatio    float32
	MaxPixelRatio float32

	dirty bool
}

// New returns a 0x0 surface with pixel ratio 1.
func New(maxPixelRatio float32) *Surface {
	if maxPixelRatio < 1 {
		maxPixelRatio = 1
	}
	return &Surface{PixelRatio: 1, MaxPixelRatio: maxPixelRatio, dirty: true}
}

// SetSize sets the size in window coordinates. Negative sizes clamp to zero.
func (s *Surface) SetSize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.Width && height == s.Height {
		return
	}
	s.Width, s.Height = width, height
	s.dirty = true
}

// SetDevicePixelRatio applies the cap. Non-positive ratios count as 1.
func (s *Surface) SetDevicePixelRatio(dpr float32) {
	if dpr <= 0 {
		dpr = 1
	}
	pr := math32.Min(dpr, s.MaxPixelRatio)
	if pr == s.PixelRatio {
		return
	}
	s.PixelRatio = pr
	s.dirty = true
}

// DrawingBuffer returns the backing buffer size, Width*PixelRatio by Height*PixelRatio.
func (s *Surface) DrawingBuffer() (width, height int) {
	return int(math32.Floor(float32(s.Width) * s.PixelRatio)), int(math32.Floor(float32(s.Height) * s.PixelRatio))
}

// Aspect returns Width/Height, or 1 for an empty surface.
func (s *Surface) Aspect() float32 {
	if s.Width == 0 || s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Changed reports whether the size or pixel ratio changed since the last
// call, and clears the flag.
func (s *Surface) Changed() bool {
	d := s.dirty
	s.dirty = false
	return d
}

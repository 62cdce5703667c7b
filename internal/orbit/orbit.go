// Package orbit implements damped orbit/zoom/pan camera controls around a target point.
//
// Input is accumulated with Apply and integrated once per frame by Update, which
// writes the camera position and target. With damping enabled the accumulated
// deltas decay by (1 - DampingFactor) each frame, so a single drag keeps easing
// the camera for a while after the pointer stops.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"model-viewer/internal/camera"
)

const eps = 1e-6

// Input is one frame of pointer input in screen pixels.
type Input struct {
	// Rotate is the drag delta for orbiting (x = azimuth, y = polar).
	Rotate mgl32.Vec2
	// Pan is the drag delta for panning.
	Pan mgl32.Vec2
	// Zoom is the wheel movement; positive moves toward the target.
	Zoom float32
	// ViewportHeight converts pixel deltas into angles and distances.
	ViewportHeight float32
}

// IsZero reports whether the input carries no motion.
func (in Input) IsZero() bool {
	return in.Rotate == (mgl32.Vec2{}) && in.Pan == (mgl32.Vec2{}) && in.Zoom == 0
}

// Controls binds a camera to a target point.
type Controls struct {
	cam *camera.Perspective

	Target mgl32.Vec3

	EnableDamping bool
	DampingFactor float32

	EnableZoom   bool
	EnablePan    bool
	EnableRotate bool
	ZoomSpeed    float32
	PanSpeed     float32
	RotateSpeed  float32

	AutoRotate      bool
	AutoRotateSpeed float32 // 30 seconds per orbit at 60 fps when 2.0

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  mgl32.Vec3
}

// Option configures Controls at construction.
type Option func(*Controls)

// WithDamping enables damping with the given factor (0 < f <= 1).
func WithDamping(f float32) Option {
	return func(c *Controls) {
		c.EnableDamping = f > 0
		c.DampingFactor = f
	}
}

// WithDistanceLimits sets the orbit radius bounds.
func WithDistanceLimits(min, max float32) Option {
	return func(c *Controls) {
		c.MinDistance = min
		c.MaxDistance = max
	}
}

// WithTarget sets the initial orbit target.
func WithTarget(t mgl32.Vec3) Option {
	return func(c *Controls) {
		c.Target = t
	}
}

// WithAutoRotate turns on automatic azimuth rotation.
func WithAutoRotate(speed float32) Option {
	return func(c *Controls) {
		c.AutoRotate = true
		c.AutoRotateSpeed = speed
	}
}

// New returns controls for cam with zoom, pan and rotate enabled, no damping,
// and the target at the origin. The camera is pointed at the target immediately.
func New(cam *camera.Perspective, opts ...Option) *Controls {
	c := &Controls{
		cam:             cam,
		DampingFactor:   0.05,
		EnableZoom:      true,
		EnablePan:       true,
		EnableRotate:    true,
		ZoomSpeed:       1,
		PanSpeed:        1,
		RotateSpeed:     1,
		AutoRotateSpeed: 2,
		MinDistance:     0,
		MaxDistance:     math32.Inf(1),
		MinPolarAngle:   0,
		MaxPolarAngle:   math32.Pi,
		scale:           1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cam.LookAt(c.Target)
	return c
}

// SetTarget moves the orbit target and keeps the camera looking at it.
func (c *Controls) SetTarget(t mgl32.Vec3) {
	c.Target = t
	c.cam.LookAt(t)
}

// Distance returns the current camera-to-target distance.
func (c *Controls) Distance() float32 {
	return c.cam.Position.Sub(c.Target).Len()
}

// Apply accumulates one frame of pointer input. It does not move the camera; Update does.
func (c *Controls) Apply(in Input) {
	h := in.ViewportHeight
	if h <= 0 {
		h = 1
	}
	if c.EnableRotate && in.Rotate != (mgl32.Vec2{}) {
		c.rotateLeft(2 * math32.Pi * in.Rotate[0] / h * c.RotateSpeed)
		c.rotateUp(2 * math32.Pi * in.Rotate[1] / h * c.RotateSpeed)
	}
	if c.EnablePan && in.Pan != (mgl32.Vec2{}) {
		c.pan(in.Pan[0]*c.PanSpeed, in.Pan[1]*c.PanSpeed, h)
	}
	if c.EnableZoom && in.Zoom != 0 {
		s := math32.Pow(c.zoomScale(), math32.Abs(in.Zoom))
		if in.Zoom > 0 {
			c.dollyIn(s)
		} else {
			c.dollyOut(s)
		}
	}
}

// Update integrates the pending deltas into the camera. It returns true when the
// camera moved noticeably.
func (c *Controls) Update() bool {
	offset := c.cam.Position.Sub(c.Target)
	radius, theta, phi := toSpherical(offset)

	if c.AutoRotate {
		c.rotateLeft(2 * math32.Pi / 60 / 60 * c.AutoRotateSpeed)
	}

	if c.EnableDamping {
		theta += c.deltaTheta * c.DampingFactor
		phi += c.deltaPhi * c.DampingFactor
	} else {
		theta += c.deltaTheta
		phi += c.deltaPhi
	}

	phi = mgl32.Clamp(phi, c.MinPolarAngle, c.MaxPolarAngle)
	phi = mgl32.Clamp(phi, eps, math32.Pi-eps)

	radius *= c.scale
	radius = mgl32.Clamp(radius, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	prev := c.cam.Position
	c.cam.Position = c.Target.Add(fromSpherical(radius, theta, phi))
	c.cam.LookAt(c.Target)

	if c.EnableDamping {
		k := 1 - c.DampingFactor
		c.deltaTheta *= k
		c.deltaPhi *= k
		c.panOffset = c.panOffset.Mul(k)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1

	return c.cam.Position.Sub(prev).LenSqr() > eps
}

func (c *Controls) rotateLeft(angle float32) { c.deltaTheta -= angle }
func (c *Controls) rotateUp(angle float32)   { c.deltaPhi -= angle }

func (c *Controls) zoomScale() float32 {
	return math32.Pow(0.95, c.ZoomSpeed)
}

func (c *Controls) dollyIn(s float32)  { c.scale *= s }
func (c *Controls) dollyOut(s float32) { c.scale /= s }

// pan moves the target in the camera's screen plane. Distances are scaled so a
// drag across the full viewport height moves the view by the visible height at
// the target distance.
func (c *Controls) pan(dx, dy, viewportHeight float32) {
	offset := c.cam.Position.Sub(c.Target)
	targetDistance := offset.Len() * math32.Tan(mgl32.DegToRad(c.cam.FOV)/2)

	right, up := c.screenAxes()
	left := right.Mul(-2 * dx * targetDistance / viewportHeight)
	upward := up.Mul(2 * dy * targetDistance / viewportHeight)
	c.panOffset = c.panOffset.Add(left).Add(upward)
}

// screenAxes returns the camera's right and up unit vectors in world space.
func (c *Controls) screenAxes() (right, up mgl32.Vec3) {
	back := c.cam.Position.Sub(c.Target)
	if back.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	back = back.Normalize()
	right = c.cam.Up.Cross(back)
	if right.Len() == 0 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = back.Cross(right).Normalize()
	return right, up
}

// toSpherical converts an offset to (radius, theta, phi) with +Y up: theta is the
// azimuth from +Z toward +X, phi the polar angle from +Y.
func toSpherical(v mgl32.Vec3) (radius, theta, phi float32) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(v[0], v[2])
	phi = math32.Acos(mgl32.Clamp(v[1]/radius, -1, 1))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float32) mgl32.Vec3 {
	sinPhi := math32.Sin(phi) * radius
	return mgl32.Vec3{
		sinPhi * math32.Sin(theta),
		math32.Cos(phi) * radius,
		sinPhi * math32.Cos(theta),
	}
}

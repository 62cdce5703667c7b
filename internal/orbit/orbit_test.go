package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"model-viewer/internal/camera"
)

func newCamera() *camera.Perspective {
	cam := camera.NewPerspective(45, 1, 0.1, 50000)
	cam.Position = mgl32.Vec3{0, 0, 10}
	return cam
}

func TestNewPointsCameraAtTarget(t *testing.T) {
	cam := newCamera()
	c := New(cam, WithTarget(mgl32.Vec3{1, 2, 3}))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Target)
	assert.True(t, c.EnableZoom && c.EnablePan && c.EnableRotate)
	assert.False(t, c.AutoRotate)
}

func TestUpdateKeepsCameraTargetInSync(t *testing.T) {
	cam := newCamera()
	c := New(cam, WithDamping(0.05))
	c.SetTarget(mgl32.Vec3{0, 1, 0})
	c.Apply(Input{Rotate: mgl32.Vec2{30, 10}, Pan: mgl32.Vec2{5, 5}, ViewportHeight: 600})
	for i := 0; i < 10; i++ {
		c.Update()
		assert.Equal(t, c.Target, cam.Target)
	}
}

func TestUndampedRotationAppliesImmediately(t *testing.T) {
	cam := newCamera()
	c := New(cam)
	// A drag of half the viewport height is a half turn of azimuth.
	c.Apply(Input{Rotate: mgl32.Vec2{300, 0}, ViewportHeight: 600})
	c.Update()

	assert.InDelta(t, 10, c.Distance(), 1e-3)
	assert.InDelta(t, 0, cam.Position[0], 1e-3)
	assert.InDelta(t, -10, cam.Position[2], 1e-3)

	// Deltas are consumed.
	assert.False(t, c.Update())
}

func TestDampingEasesTowardFullRotation(t *testing.T) {
	cam := newCamera()
	c := New(cam, WithDamping(0.05))
	c.Apply(Input{Rotate: mgl32.Vec2{150, 0}, ViewportHeight: 600}) // quarter turn

	c.Update()
	_, first, _ := toSpherical(cam.Position)
	assert.InDelta(t, -math32.Pi/2*0.05, first, 1e-4)

	for i := 0; i < 600; i++ {
		c.Update()
	}
	_, theta, _ := toSpherical(cam.Position)
	assert.InDelta(t, -math32.Pi/2, theta, 1e-3)
	assert.False(t, c.Update())
}

func TestZoomRespectsDistanceLimits(t *testing.T) {
	cam := newCamera()
	c := New(cam, WithDistanceLimits(2, 20))

	c.Apply(Input{Zoom: 1, ViewportHeight: 600})
	c.Update()
	assert.InDelta(t, 9.5, c.Distance(), 1e-3)

	c.Apply(Input{Zoom: 200, ViewportHeight: 600})
	c.Update()
	assert.InDelta(t, 2, c.Distance(), 1e-3)

	c.Apply(Input{Zoom: -200, ViewportHeight: 600})
	c.Update()
	assert.InDelta(t, 20, c.Distance(), 1e-3)
}

func TestDisabledZoomIgnoresWheel(t *testing.T) {
	cam := newCamera()
	c := New(cam)
	c.EnableZoom = false
	c.Apply(Input{Zoom: 5, ViewportHeight: 600})
	c.Update()
	assert.InDelta(t, 10, c.Distance(), 1e-4)
}

func TestPanMovesCameraAndTargetTogether(t *testing.T) {
	cam := newCamera()
	c := New(cam)
	before := cam.Position.Sub(c.Target)

	c.Apply(Input{Pan: mgl32.Vec2{100, 0}, ViewportHeight: 600})
	c.Update()

	assert.Less(t, c.Target[0], float32(0), "dragging right moves the view left")
	assert.InDelta(t, 0, c.Target[1], 1e-4)
	assert.True(t, cam.Position.Sub(c.Target).ApproxEqualThreshold(before, 1e-3))
}

func TestPolarAngleStaysOffThePoles(t *testing.T) {
	cam := newCamera()
	c := New(cam)
	c.Apply(Input{Rotate: mgl32.Vec2{0, -10000}, ViewportHeight: 600})
	c.Update()
	_, _, phi := toSpherical(cam.Position)
	assert.Greater(t, phi, float32(0))
	assert.InDelta(t, 10, c.Distance(), 1e-3)
}

func TestSphericalRoundTrip(t *testing.T) {
	v := mgl32.Vec3{3, 4, -5}
	r, theta, phi := toSpherical(v)
	assert.True(t, fromSpherical(r, theta, phi).ApproxEqualThreshold(v, 1e-4))
}

func TestInputIsZero(t *testing.T) {
	assert.True(t, Input{ViewportHeight: 100}.IsZero())
	assert.False(t, Input{Zoom: 1}.IsZero())
}

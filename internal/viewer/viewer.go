// Package viewer wires the scene, camera, orbit controls, renderer and model
// loader together and drives them from the render loop. It is free of any
// graphics API; the window layer supplies a Renderer, an Opener and an
// Indicator.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"model-viewer/internal/camera"
	"model-viewer/internal/framing"
	"model-viewer/internal/loader"
	"model-viewer/internal/logger"
	"model-viewer/internal/orbit"
	"model-viewer/internal/scene"
)

// Camera and control defaults used before a model is framed.
const (
	FOV             = 45
	Near            = 0.1
	Far             = 50000
	DampingFactor   = 0.05
	InitMinDistance = 0.5
	InitMaxDistance = 5000
)

// InitialCameraPosition is where the camera starts before a model is framed.
var InitialCameraPosition = mgl32.Vec3{5, 3, 5}

// LoadErrorMessage is shown in the loading indicator when the load fails.
const LoadErrorMessage = "Error loading model"

// Renderer draws the scene from the camera into a surface of the given size.
type Renderer interface {
	SetSize(width, height int)
	Render(s *scene.Scene, cam *camera.Perspective)
}

// Opener turns a prepared model file into a drawable model.
type Opener interface {
	Open(path string) (*scene.Model, error)
	Unload(m *scene.Model)
}

// Indicator is the loading indicator of the host document.
type Indicator interface {
	Hide()
	ShowError(msg string)
}

// Source starts the single model load.
type Source interface {
	Load(ctx context.Context) (<-chan loader.Result, error)
}

// State is the model load state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the logger. Without one nothing is logged.
func WithLogger(l *logger.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithFraming overrides the framing constants.
func WithFraming(p framing.Params) Option {
	return func(v *Viewer) { v.framing = p }
}

// Viewer owns the scene, camera and controls. All methods must be called
// from the render goroutine.
type Viewer struct {
	Scene    *scene.Scene
	Camera   *camera.Perspective
	Controls *orbit.Controls

	renderer  Renderer
	opener    Opener
	indicator Indicator
	source    Source
	framing   framing.Params
	log       *logger.Logger

	width, height int
	started       bool
	state         State
	loadErr       error
	pending       <-chan loader.Result
	framed        framing.Result
}

// New builds the scene, camera and controls for a width x height viewport
// and sizes the renderer to match.
func New(width, height int, r Renderer, op Opener, ind Indicator, src Source, opts ...Option) *Viewer {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	cam := camera.NewPerspective(FOV, aspect, Near, Far)
	cam.Position = InitialCameraPosition

	v := &Viewer{
		Scene:     scene.New(),
		Camera:    cam,
		renderer:  r,
		opener:    op,
		indicator: ind,
		source:    src,
		framing:   framing.Default(),
		width:     width,
		height:    height,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.Controls = orbit.New(cam,
		orbit.WithDamping(DampingFactor),
		orbit.WithDistanceLimits(InitMinDistance, InitMaxDistance),
	)
	v.renderer.SetSize(width, height)
	return v
}

// Start begins the model load. Only the first call has any effect.
func (v *Viewer) Start(ctx context.Context) {
	if v.started {
		return
	}
	v.started = true
	v.state = StateLoading
	ch, err := v.source.Load(ctx)
	if err != nil {
		v.handleFailed(err)
		return
	}
	v.pending = ch
}

// Resize updates the camera aspect and the renderer surface.
func (v *Viewer) Resize(width, height int) {
	v.width, v.height = width, height
	v.Camera.SetViewport(width, height)
	v.renderer.SetSize(width, height)
}

// Size returns the viewport size from the last Resize.
func (v *Viewer) Size() (width, height int) {
	return v.width, v.height
}

// Frame runs one iteration of the render loop: it consumes a finished load,
// applies pointer input, steps the damped controls and renders.
func (v *Viewer) Frame(in orbit.Input) {
	v.poll()
	if !in.IsZero() {
		v.Controls.Apply(in)
	}
	v.Controls.Update()
	v.renderer.Render(v.Scene, v.Camera)
}

// State reports the load state.
func (v *Viewer) State() State {
	return v.state
}

// Err returns the load error once State is StateFailed.
func (v *Viewer) Err() error {
	return v.loadErr
}

// Framing returns the placement computed for the loaded model.
func (v *Viewer) Framing() framing.Result {
	return v.framed
}

func (v *Viewer) poll() {
	if v.pending == nil {
		return
	}
	select {
	case res, ok := <-v.pending:
		v.pending = nil
		if !ok {
			v.handleFailed(errors.New("viewer: load ended without a result"))
			return
		}
		if res.Err != nil {
			v.handleFailed(res.Err)
			return
		}
		v.handleLoaded(res)
	default:
	}
}

func (v *Viewer) handleLoaded(res loader.Result) {
	model, err := v.opener.Open(res.Path)
	if err != nil {
		v.handleFailed(err)
		return
	}
	fit, err := v.framing.Compute(model.Bounds, v.Camera.FOV)
	if err != nil {
		v.opener.Unload(model)
		v.handleFailed(err)
		return
	}

	model.Traverse(func(m *scene.Mesh) {
		m.CastShadow = true
		m.ReceiveShadow = true
		m.DoubleSided = true
	})
	model.Position = fit.ModelPosition

	v.Camera.Position = fit.CameraPosition
	v.Controls.SetTarget(fit.Target)
	v.Controls.Update()
	v.Controls.MinDistance = fit.MinDistance
	v.Controls.MaxDistance = fit.MaxDistance

	if err := v.Scene.AttachModel(model); err != nil {
		v.opener.Unload(model)
		v.handleFailed(err)
		return
	}
	v.framed = fit
	v.state = StateLoaded
	v.indicator.Hide()
	v.log.Infof("model %q framed: size %.2f x %.2f x %.2f, distance %.2f",
		model.Name, fit.Size[0], fit.Size[1], fit.Size[2], fit.Distance)
}

func (v *Viewer) handleFailed(err error) {
	v.state = StateFailed
	v.loadErr = err
	v.log.Errorf("error loading model: %v", err)
	v.indicator.ShowError(LoadErrorMessage)
}

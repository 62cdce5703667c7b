package main

import (
	"context"
	"flag"
	"os"

	"github.com/muesli/termenv"
	"github.com/xlab/closer"

	"model-viewer/internal/asset"
	"model-viewer/internal/commands"
	"model-viewer/internal/config"
	"model-viewer/internal/debug"
	"model-viewer/internal/download"
	"model-viewer/internal/fonts"
	"model-viewer/internal/graphics"
	"model-viewer/internal/loader"
	"model-viewer/internal/logger"
	"model-viewer/internal/prefs"
	"model-viewer/internal/ui"
	"model-viewer/internal/viewer"
)

func registerRun(reg *commands.Registry) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cfgPath := fs.String("config", config.ConfigPath, "config file (.yaml or .toml)")
	model := fs.String("model", "", "model URL or local path")
	grid := fs.Bool("grid", false, "show the ground grid")
	stats := fs.Bool("stats", false, "show the stats overlay")
	reg.Register("run", "open the viewer window", fs, func() error {
		cfg := loadConfig(*cfgPath, termenv.NewOutput(os.Stderr))
		if p, ok := prefs.Load(prefs.Path); ok {
			cfg.ShowFPS = p.ShowStats
			cfg.ShowGrid = p.GridVisible
		}
		if *model != "" {
			cfg.ModelURL = *model
		}
		cfg.ShowGrid = cfg.ShowGrid || *grid
		cfg.ShowFPS = cfg.ShowFPS || *stats
		return runViewer(cfg)
	})
}

// loadConfig reads path and the VIEWER_* environment. Problems are reported
// on out and the affected settings keep their defaults.
func loadConfig(path string, out *termenv.Output) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		warn(out, err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		warn(out, err)
	}
	return cfg
}

func newLogger(cfg config.Config) *logger.Logger {
	return logger.New(
		logger.WithPath(cfg.LogFile),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithEcho(os.Stderr),
	)
}

// newLoader builds the single model load described by cfg.
func newLoader(cfg config.Config, log *logger.Logger) (*loader.Loader, error) {
	dir, err := cfg.ResolvedCacheDir()
	if err != nil {
		return nil, err
	}
	decompressors := asset.NewRegistry()
	if cfg.DecoderCommand != "" {
		decompressors.Register(asset.NewCommandDecompressor(asset.ExtDraco, cfg.DecoderCommand))
	}
	return &loader.Loader{
		Source:        cfg.ModelURL,
		CacheDir:      dir,
		Fetcher:       &download.Fetcher{Reuse: cfg.ReuseCache},
		Decompressors: decompressors,
		Timeout:       cfg.Timeout(),
		Log:           log,
	}, nil
}

// app is the window's frame callbacks around a Viewer.
type app struct {
	cfg       config.Config
	log       *logger.Logger
	load      *loader.Loader
	doc       *ui.Document
	indicator *ui.LoadingIndicator

	renderer *graphics.Renderer
	overlay  *graphics.Overlay
	stats    *debug.Debug
	viewer   *viewer.Viewer
}

func runViewer(cfg config.Config) error {
	log := newLogger(cfg)
	ld, err := newLoader(cfg, log)
	if err != nil {
		return err
	}
	doc, err := ui.NewDefaultDocument()
	if err != nil {
		return err
	}
	ind, err := ui.NewLoadingIndicator(doc)
	if err != nil {
		return err
	}
	a := &app{cfg: cfg, log: log, load: ld, doc: doc, indicator: ind}

	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)
	defer cancel()

	graphics.RouteTraceLog(log)
	win := graphics.WindowConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		TargetFPS: cfg.Window.TargetFPS,
		MSAA:      cfg.Window.MSAA,
		HighDPI:   cfg.Window.HighDPI,
	}
	log.Infof("viewer: opening %s", cfg.ModelURL)
	graphics.Run(win, func() { a.setup(ctx) }, a.update, a.draw, func() {
		cancel()
		a.teardown()
	})
	return nil
}

func (a *app) setup(ctx context.Context) {
	a.renderer = graphics.NewRenderer(a.cfg.Exposure, a.cfg.MaxPixelRatio, a.log)
	a.overlay = graphics.NewOverlay(a.doc)
	a.stats = debug.New()
	a.stats.Visible = a.cfg.ShowFPS
	a.loadFont()

	w, h := graphics.ScreenSize()
	a.viewer = viewer.New(w, h, a.renderer, a.renderer, a.indicator, a.load, viewer.WithLogger(a.log))
	a.viewer.Scene.SetGridVisible(a.cfg.ShowGrid)
	a.viewer.Start(ctx)
}

func (a *app) loadFont() {
	if a.cfg.Font == "" {
		return
	}
	path, err := fonts.Resolve(a.cfg.Font)
	if err != nil {
		a.log.Warnf("font %q not found, using default", a.cfg.Font)
		return
	}
	if err := a.overlay.LoadFont(path); err != nil {
		a.log.Warnf("font: %v", err)
		return
	}
	if f, ok := a.overlay.Font(); ok {
		a.stats.SetFont(f)
	}
}

func (a *app) update() {
	if graphics.Resized() {
		a.viewer.Resize(graphics.ScreenSize())
	}
	toggled := false
	if graphics.KeyPressed(graphics.KeyToggleStats) {
		a.stats.Toggle()
		toggled = true
	}
	if graphics.KeyPressed(graphics.KeyToggleGrid) {
		a.viewer.Scene.SetGridVisible(!a.viewer.Scene.GridVisible)
		toggled = true
	}
	if toggled {
		a.savePrefs()
	}
}

func (a *app) savePrefs() {
	p := prefs.Prefs{ShowStats: a.stats.Visible, GridVisible: a.viewer.Scene.GridVisible}
	if err := prefs.Save(prefs.Path, p); err != nil {
		a.log.Warnf("%v", err)
	}
}

func (a *app) draw() {
	a.viewer.Frame(graphics.PollInput())
	a.overlay.Draw(graphics.ScreenSize())
	a.stats.Draw(a.snapshot)
}

func (a *app) snapshot() debug.Stats {
	s := debug.Stats{
		State:          a.viewer.State().String(),
		CameraDistance: a.viewer.Controls.Distance(),
	}
	s.BufferWidth, s.BufferHeight = a.renderer.Surface().DrawingBuffer()
	if m := a.viewer.Scene.Model(); m != nil {
		s.Meshes = len(m.Meshes)
		s.Triangles = m.Triangles
	}
	return s
}

func (a *app) teardown() {
	if a.viewer == nil {
		return
	}
	if m := a.viewer.Scene.Model(); m != nil {
		a.renderer.Unload(m)
	}
	a.overlay.Unload()
	a.renderer.Close()
}

// Package loader resolves the configured model into a local, uncompressed
// glTF file on a background goroutine.
package loader

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mitchellh/go-homedir"

	"model-viewer/internal/archive"
	"model-viewer/internal/asset"
	"model-viewer/internal/download"
	"model-viewer/internal/logger"
)

var (
	// ErrAlreadyStarted is returned by a second call to Load.
	ErrAlreadyStarted = errors.New("loader: already started")
	// ErrUnsupportedFormat is returned when the payload is not glTF, GLB or zip.
	ErrUnsupportedFormat = errors.New("loader: unsupported model format")
	// ErrUnsupportedSource is returned for URL schemes other than http, https and file.
	ErrUnsupportedSource = errors.New("loader: unsupported source")
)

// Stage names the step a load is in.
type Stage int

const (
	StageFetch Stage = iota
	StageExtract
	StageInspect
	StageDecompress
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageFetch:
		return "fetch"
	case StageExtract:
		return "extract"
	case StageInspect:
		return "inspect"
	case StageDecompress:
		return "decompress"
	case StageDone:
		return "done"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Progress is reported while a load runs. Loaded and Total are byte counts
// during StageFetch; Total is -1 when the server did not send a length.
type Progress struct {
	Stage  Stage
	Loaded int64
	Total  int64
}

// Result is delivered exactly once per Load.
type Result struct {
	Path string
	Info *asset.Info
	Err  error
}

// Loader fetches Source into CacheDir and prepares it for GPU upload.
type Loader struct {
	// Source is an http(s) URL, a file:// URL or a local path.
	Source   string
	CacheDir string
	Fetcher  *download.Fetcher
	// Decompressors handles assets that require a compression extension.
	// A nil registry rejects every compressed asset.
	Decompressors *asset.Registry
	// Timeout bounds the whole load. Zero waits forever.
	Timeout time.Duration
	// OnProgress is called from the loading goroutine.
	OnProgress func(Progress)
	Log        *logger.Logger

	started atomic.Bool
}

// Load starts the single load attempt and returns the channel its Result
// arrives on. The channel is buffered and closed after the Result is sent.
func (l *Loader) Load(ctx context.Context) (<-chan Result, error) {
	if !l.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyStarted
	}
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- l.run(ctx)
	}()
	return ch, nil
}

// Run performs the load on the calling goroutine. It does not count as the
// single Load attempt; command line tools use it directly.
func (l *Loader) Run(ctx context.Context) Result {
	return l.run(ctx)
}

func (l *Loader) run(ctx context.Context) Result {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	start := time.Now()
	info, err := l.resolve(ctx)
	if err != nil {
		l.Log.Errorf("load %s: %v", l.Source, err)
		return Result{Err: err}
	}
	l.Log.Infof("loaded %s in %s (%d meshes, %d vertices)", info.Path, time.Since(start).Round(time.Millisecond), info.Meshes, info.Vertices)
	l.report(Progress{Stage: StageDone})
	return Result{Path: info.Path, Info: info}
}

func (l *Loader) resolve(ctx context.Context) (*asset.Info, error) {
	path, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	format, err := asset.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == asset.FormatUnknown {
		format = formatFromExt(path)
	}
	switch format {
	case asset.FormatZip:
		l.report(Progress{Stage: StageExtract})
		dir := strings.TrimSuffix(path, filepath.Ext(path)) + "_extracted"
		path, err = archive.ExtractModel(path, dir)
		if err != nil {
			return nil, err
		}
		l.Log.Debugf("extracted %s", path)
	case asset.FormatGLB, asset.FormatGLTF:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	l.report(Progress{Stage: StageInspect})
	info, err := asset.Inspect(path)
	if err != nil {
		return nil, err
	}
	if ext := info.Compression(); ext != "" {
		l.report(Progress{Stage: StageDecompress})
		l.Log.Infof("decompressing %s (%s)", filepath.Base(path), ext)
		reg := l.Decompressors
		if reg == nil {
			reg = asset.NewRegistry()
		}
		return reg.Prepare(ctx, info)
	}
	return info, nil
}

// fetch returns a local path for Source, downloading it when it is remote.
func (l *Loader) fetch(ctx context.Context) (string, error) {
	if local, ok, err := localPath(l.Source); err != nil || ok {
		return local, err
	}
	f := download.Fetcher{}
	if l.Fetcher != nil {
		f = *l.Fetcher
	}
	user := f.OnProgress
	f.OnProgress = func(p download.Progress) {
		if user != nil {
			user(p)
		}
		l.report(Progress{Stage: StageFetch, Loaded: p.Loaded, Total: p.Total})
	}
	l.report(Progress{Stage: StageFetch, Total: -1})
	l.Log.Infof("fetching %s", l.Source)
	return f.Fetch(ctx, l.Source, l.CacheDir)
}

func (l *Loader) report(p Progress) {
	if l.OnProgress != nil {
		l.OnProgress(p)
	}
}

// localPath reports whether source names a file on disk.
func localPath(source string) (string, bool, error) {
	u, err := url.Parse(source)
	if err == nil && u.Scheme == "file" {
		return filepath.FromSlash(u.Path), true, nil
	}
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return "", false, nil
	}
	// Windows drive letters parse as a one-letter scheme.
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		p, err := homedir.Expand(source)
		if err != nil {
			return "", true, fmt.Errorf("loader: %w", err)
		}
		return p, true, nil
	}
	return "", true, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
}

func formatFromExt(path string) asset.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		return asset.FormatGLB
	case ".gltf":
		return asset.FormatGLTF
	case ".zip":
		return asset.FormatZip
	}
	return asset.FormatUnknown
}

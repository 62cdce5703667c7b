package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"
)

// ErrNoDecompressor is returned when an asset requires a compression
// extension no registered Decompressor handles.
var ErrNoDecompressor = errors.New("asset: no decompressor for extension")

// Decompressor rewrites a compressed glTF file into one without the
// compression extension.
type Decompressor interface {
	// Extension is the glTF extension name the decompressor handles.
	Extension() string
	Decompress(ctx context.Context, src, dst string) error
}

// Registry maps compression extensions to decompressors.
type Registry struct {
	mu sync.RWMutex
	m  map[string]Decompressor
}

// NewRegistry returns a registry holding ds.
func NewRegistry(ds ...Decompressor) *Registry {
	r := &Registry{m: make(map[string]Decompressor)}
	for _, d := range ds {
		r.Register(d)
	}
	return r
}

// Register adds d, replacing any decompressor for the same extension.
func (r *Registry) Register(d Decompressor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[d.Extension()] = d
}

// Lookup returns the decompressor for ext.
func (r *Registry) Lookup(ext string) (Decompressor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.m[ext]
	return d, ok
}

// Prepare returns a path the GPU loader can read. Uncompressed assets are
// returned as is. Compressed ones are decoded next to the source and the
// result is inspected again.
func (r *Registry) Prepare(ctx context.Context, info *Info) (*Info, error) {
	ext := info.Compression()
	if ext == "" {
		return info, nil
	}
	d, ok := r.Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoDecompressor, ext)
	}
	dst := decodedPath(info.Path)
	if err := d.Decompress(ctx, info.Path, dst); err != nil {
		return nil, fmt.Errorf("asset: decompress %s: %w", ext, err)
	}
	out, err := Inspect(dst)
	if err != nil {
		return nil, err
	}
	if still := out.Compression(); still != "" {
		return nil, fmt.Errorf("asset: %s still requires %s after decompression", dst, still)
	}
	return out, nil
}

func decodedPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + ".decoded" + ext
}

// DefaultDecoderCommand decodes Draco meshes with gltf-pipeline.
const DefaultDecoderCommand = "gltf-pipeline -i {in} -o {out}"

// CommandDecompressor runs an external tool. Command is split like a shell
// would split it; {in} and {out} are replaced by the source and destination paths.
type CommandDecompressor struct {
	Ext     string
	Command string
}

// NewCommandDecompressor returns a decompressor for ext running command.
func NewCommandDecompressor(ext, command string) *CommandDecompressor {
	return &CommandDecompressor{Ext: ext, Command: command}
}

func (c *CommandDecompressor) Extension() string { return c.Ext }

// Args returns the argv for one run.
func (c *CommandDecompressor) Args(src, dst string) ([]string, error) {
	args, err := shellwords.Parse(c.Command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", c.Command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty decoder command")
	}
	for i, a := range args {
		a = strings.ReplaceAll(a, "{in}", src)
		args[i] = strings.ReplaceAll(a, "{out}", dst)
	}
	return args, nil
}

func (c *CommandDecompressor) Decompress(ctx context.Context, src, dst string) error {
	args, err := c.Args(src, dst)
	if err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

package asset

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainGLTF = `{
  "asset": {"version": "2.0", "generator": "test"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"children": [1], "translation": [10, 0, 0]}, {"mesh": 0, "scale": [2, 2, 2]}],
  "meshes": [{"name": "box", "primitives": [{"attributes": {"POSITION": 0}}]}],
  "accessors": [{"componentType": 5126, "count": 8, "type": "VEC3", "min": [-1, 0, -1], "max": [1, 1, 1]}],
  "materials": [{"name": "m"}]
}`

const dracoGLTF = `{
  "asset": {"version": "2.0"},
  "extensionsUsed": ["KHR_draco_mesh_compression"],
  "extensionsRequired": ["KHR_draco_mesh_compression"],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "extensions": {"KHR_draco_mesh_compression": {"bufferView": 0, "attributes": {"POSITION": 0}}}}]}],
  "accessors": [{"componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 1]}]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// glb wraps a JSON document in a binary glTF container with no BIN chunk.
func glb(jsonDoc string) []byte {
	body := []byte(jsonDoc)
	for len(body)%4 != 0 {
		body = append(body, ' ')
	}
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, []uint32{
		0x46546c67, 2, uint32(12 + 8 + len(body)),
		uint32(len(body)), 0x4e4f534a,
	})
	buf.Write(body)
	return buf.Bytes()
}

func TestInspectPlainGLTF(t *testing.T) {
	info, err := Inspect(writeFile(t, "model.gltf", plainGLTF))
	require.NoError(t, err)

	assert.Equal(t, "2.0", info.Version)
	assert.Equal(t, "test", info.Generator)
	assert.Equal(t, 1, info.Meshes)
	assert.Equal(t, 1, info.Primitives)
	assert.Equal(t, 2, info.Nodes)
	assert.Equal(t, 1, info.Materials)
	assert.Equal(t, 8, info.Vertices)
	assert.Empty(t, info.Compression())

	// child scale 2 then parent translation 10 on x
	assert.True(t, info.Bounds.Min.ApproxEqual(mgl32.Vec3{8, 0, -2}), "%v", info.Bounds.Min)
	assert.True(t, info.Bounds.Max.ApproxEqual(mgl32.Vec3{12, 2, 2}), "%v", info.Bounds.Max)
}

func TestInspectGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.glb")
	require.NoError(t, os.WriteFile(path, glb(plainGLTF), 0o644))
	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Meshes)
	assert.Equal(t, path, info.Path)
}

func TestInspectDetectsRequiredCompression(t *testing.T) {
	info, err := Inspect(writeFile(t, "draco.gltf", dracoGLTF))
	require.NoError(t, err)
	assert.Equal(t, ExtDraco, info.Compression())
}

func TestCompressionIgnoresOptionalExtensions(t *testing.T) {
	info := &Info{ExtensionsUsed: []string{ExtMeshopt}}
	assert.Empty(t, info.Compression())
	info.ExtensionsRequired = []string{ExtMeshopt}
	assert.Equal(t, ExtMeshopt, info.Compression())
}

func TestInspectRejectsOtherVersions(t *testing.T) {
	_, err := Inspect(writeFile(t, "old.gltf", `{"asset": {"version": "1.0"}}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.glb"))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()

	glbPath := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(glbPath, glb(plainGLTF), 0o644))
	f, err := DetectFormat(glbPath)
	require.NoError(t, err)
	assert.Equal(t, FormatGLB, f)

	f, err = DetectFormat(writeFile(t, "b.bin", plainGLTF))
	require.NoError(t, err)
	assert.Equal(t, FormatGLTF, f)

	var zbuf bytes.Buffer
	zw := zip.NewWriter(&zbuf)
	w, err := zw.Create("model.glb")
	require.NoError(t, err)
	_, _ = w.Write(glb(plainGLTF))
	require.NoError(t, zw.Close())
	zipPath := filepath.Join(dir, "c.bin")
	require.NoError(t, os.WriteFile(zipPath, zbuf.Bytes(), 0o644))
	f, err = DetectFormat(zipPath)
	require.NoError(t, err)
	assert.Equal(t, FormatZip, f)
	assert.Equal(t, ".zip", f.Ext())

	f, err = DetectFormat(writeFile(t, "d.bin", "<html>not found</html>"))
	require.NoError(t, err)
	assert.Equal(t, FormatUnknown, f)
	assert.Empty(t, f.Ext())
}

type copyDecompressor struct {
	ext     string
	content string
	calls   int
}

func (c *copyDecompressor) Extension() string { return c.ext }

func (c *copyDecompressor) Decompress(_ context.Context, _, dst string) error {
	c.calls++
	return os.WriteFile(dst, []byte(c.content), 0o644)
}

func TestPrepareUncompressedIsPassthrough(t *testing.T) {
	info, err := Inspect(writeFile(t, "model.gltf", plainGLTF))
	require.NoError(t, err)
	d := &copyDecompressor{ext: ExtDraco, content: plainGLTF}
	out, err := NewRegistry(d).Prepare(context.Background(), info)
	require.NoError(t, err)
	assert.Same(t, info, out)
	assert.Zero(t, d.calls)
}

func TestPrepareDecompresses(t *testing.T) {
	src := writeFile(t, "draco.gltf", dracoGLTF)
	info, err := Inspect(src)
	require.NoError(t, err)

	d := &copyDecompressor{ext: ExtDraco, content: plainGLTF}
	out, err := NewRegistry(d).Prepare(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, 1, d.calls)
	assert.Equal(t, filepath.Join(filepath.Dir(src), "draco.decoded.gltf"), out.Path)
	assert.Empty(t, out.Compression())
}

func TestPrepareWithoutDecompressor(t *testing.T) {
	info, err := Inspect(writeFile(t, "draco.gltf", dracoGLTF))
	require.NoError(t, err)
	_, err = NewRegistry().Prepare(context.Background(), info)
	assert.ErrorIs(t, err, ErrNoDecompressor)
}

func TestPrepareRejectsIneffectiveDecompressor(t *testing.T) {
	info, err := Inspect(writeFile(t, "draco.gltf", dracoGLTF))
	require.NoError(t, err)
	d := &copyDecompressor{ext: ExtDraco, content: dracoGLTF}
	_, err = NewRegistry(d).Prepare(context.Background(), info)
	assert.ErrorContains(t, err, "still requires")
}

func TestRegistryLookupAndReplace(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup(ExtDraco)
	assert.False(t, ok)

	a := &copyDecompressor{ext: ExtDraco}
	b := &copyDecompressor{ext: ExtDraco}
	r.Register(a)
	r.Register(b)
	got, ok := r.Lookup(ExtDraco)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestCommandDecompressorArgs(t *testing.T) {
	c := NewCommandDecompressor(ExtDraco, `tool --in={in} -o "{out}" --flag`)
	args, err := c.Args("/tmp/my model.glb", "/tmp/out dir/x.glb")
	require.NoError(t, err)
	assert.Equal(t, []string{"tool", "--in=/tmp/my model.glb", "-o", "/tmp/out dir/x.glb", "--flag"}, args)

	_, err = NewCommandDecompressor(ExtDraco, "").Args("a", "b")
	assert.Error(t, err)
	_, err = NewCommandDecompressor(ExtDraco, `tool "unterminated`).Args("a", "b")
	assert.Error(t, err)
}

func TestCommandDecompressorRuns(t *testing.T) {
	if _, err := os.Stat("/bin/cp"); err != nil {
		t.Skip("cp not available")
	}
	src := writeFile(t, "in.gltf", plainGLTF)
	dst := filepath.Join(t.TempDir(), "out.gltf")
	c := NewCommandDecompressor(ExtDraco, "/bin/cp {in} {out}")
	require.NoError(t, c.Decompress(context.Background(), src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, plainGLTF, string(data))

	missing := NewCommandDecompressor(ExtDraco, "/bin/cp {in} {out}")
	assert.Error(t, missing.Decompress(context.Background(), filepath.Join(t.TempDir(), "none"), dst))
}

package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestUnzipExtractsAndSkipsEscapes(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"scene/model.gltf":  "{}",
		"scene/model.bin":   "bin",
		"../outside.txt":    "nope",
		"textures/wood.png": "png",
	})
	dest := filepath.Join(t.TempDir(), "out")
	extracted, err := Unzip(zipPath, dest)
	require.NoError(t, err)
	assert.Len(t, extracted, 3)

	data, err := os.ReadFile(filepath.Join(dest, "scene", "model.bin"))
	require.NoError(t, err)
	assert.Equal(t, "bin", string(data))

	_, err = os.Stat(filepath.Join(filepath.Dir(dest), "outside.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestUnzipRejectsNonZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	_, err := Unzip(path, t.TempDir())
	assert.Error(t, err)
}

func TestFindModelPrefersShallowGLB(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"a/b/deep.glb":          "glTF",
		"top.gltf":              "{}",
		"a/shallow.glb":         "glTF",
		"__MACOSX/a/._hide.glb": "junk",
	})
	dest := t.TempDir()
	got, err := ExtractModel(zipPath, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "a", "shallow.glb"), got)
}

func TestFindModelNone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644))
	_, err := FindModel(dir)
	assert.ErrorIs(t, err, ErrNoModel)
}

package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSetsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`# viewer settings
VIEWER_TEST_URL="https://example.com/a.glb"
export VIEWER_TEST_EXPOSURE=1.2
VIEWER_TEST_KEEP=from-file
not a pair
=novalue
VIEWER_TEST_QUOTED='single'
`), 0o644))
	t.Setenv("VIEWER_TEST_KEEP", "from-process")
	t.Setenv("VIEWER_TEST_URL", "")
	os.Unsetenv("VIEWER_TEST_URL")
	t.Setenv("VIEWER_TEST_EXPOSURE", "")
	os.Unsetenv("VIEWER_TEST_EXPOSURE")
	t.Setenv("VIEWER_TEST_QUOTED", "")
	os.Unsetenv("VIEWER_TEST_QUOTED")

	require.NoError(t, Load(path))
	assert.Equal(t, "https://example.com/a.glb", os.Getenv("VIEWER_TEST_URL"))
	assert.Equal(t, "1.2", os.Getenv("VIEWER_TEST_EXPOSURE"))
	assert.Equal(t, "from-process", os.Getenv("VIEWER_TEST_KEEP"))
	assert.Equal(t, "single", os.Getenv("VIEWER_TEST_QUOTED"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}

func TestTypedLookups(t *testing.T) {
	t.Setenv("VIEWER_TEST_BOOL", "true")
	t.Setenv("VIEWER_TEST_FLOAT", "1.5")
	t.Setenv("VIEWER_TEST_INT", "144")
	t.Setenv("VIEWER_TEST_DUR", "30s")
	t.Setenv("VIEWER_TEST_BAD", "maybe")
	t.Setenv("VIEWER_TEST_EMPTY", "  ")

	b, ok, err := Bool("VIEWER_TEST_BOOL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)

	f, _, err := Float("VIEWER_TEST_FLOAT")
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	i, _, err := Int("VIEWER_TEST_INT")
	require.NoError(t, err)
	assert.Equal(t, 144, i)

	d, _, err := Duration("VIEWER_TEST_DUR")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	_, ok, err = Bool("VIEWER_TEST_BAD")
	assert.True(t, ok)
	assert.ErrorContains(t, err, "VIEWER_TEST_BAD")

	_, ok = String("VIEWER_TEST_EMPTY")
	assert.False(t, ok)
	_, ok, err = Float("VIEWER_TEST_UNSET_XYZ")
	assert.False(t, ok)
	assert.NoError(t, err)
}

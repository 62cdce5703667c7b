package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-viewer/internal/loader"
)

func TestStatusText(t *testing.T) {
	cases := []struct {
		p    loader.Progress
		want string
	}{
		{loader.Progress{Stage: loader.StageFetch, Total: -1}, "Loading model..."},
		{loader.Progress{Stage: loader.StageFetch, Loaded: 25, Total: 100}, "Loading model... 25%"},
		{loader.Progress{Stage: loader.StageFetch, Loaded: 3 << 20, Total: -1}, "Loading model... 3.0 MB"},
		{loader.Progress{Stage: loader.StageExtract}, "Extracting archive..."},
		{loader.Progress{Stage: loader.StageInspect}, "Reading model..."},
		{loader.Progress{Stage: loader.StageDecompress}, "Decompressing meshes..."},
		{loader.Progress{Stage: loader.StageDone}, "Loading model..."},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusText(c.p))
	}
}

func TestArgumentsFallBackToEnv(t *testing.T) {
	t.Setenv(ArgsEnv, `fetch -model "my model.glb"`)
	args, err := arguments(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "-model", "my model.glb"}, args)

	args, err = arguments([]string{"inspect", "a.glb"})
	require.NoError(t, err)
	assert.Equal(t, []string{"inspect", "a.glb"}, args)
}

func TestRegistryDefaultsToRun(t *testing.T) {
	reg := newRegistry()
	assert.Equal(t, []string{"fetch", "inspect", "run"}, reg.Names())
	assert.ErrorContains(t, reg.Execute([]string{"inspect"}), "expected one file")
}

package commands

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(got *string) *Registry {
	r := NewRegistry()
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	url := fs.String("url", "", "model url")
	r.Register("fetch", "download a model", fs, func() error {
		*got = "fetch " + *url
		return nil
	})
	run := flag.NewFlagSet("run", flag.ContinueOnError)
	cfg := run.String("config", "config/viewer.yaml", "config path")
	r.Register("run", "open the viewer window", run, func() error {
		*got = "run " + *cfg
		return nil
	})
	return r
}

func TestExecuteDispatchesWithFlags(t *testing.T) {
	var got string
	r := newTestRegistry(&got)
	require.NoError(t, r.Execute([]string{"fetch", "-url", "https://example.com/a.glb"}))
	assert.Equal(t, "fetch https://example.com/a.glb", got)
}

func TestExecuteFallsBackToDefault(t *testing.T) {
	var got string
	r := newTestRegistry(&got)
	assert.EqualError(t, r.Execute(nil), "missing subcommand")

	r.SetDefault("run")
	require.NoError(t, r.Execute(nil))
	assert.Equal(t, "run config/viewer.yaml", got)
	require.NoError(t, r.Execute([]string{"-config", "other.toml"}))
	assert.Equal(t, "run other.toml", got)
}

func TestExecuteUnknown(t *testing.T) {
	var got string
	err := newTestRegistry(&got).Execute([]string{"paint"})
	assert.ErrorIs(t, err, ErrUnknown)
	assert.ErrorContains(t, err, "paint")
}

func TestUsageListsSortedNames(t *testing.T) {
	var got string
	r := newTestRegistry(&got)
	assert.Equal(t, []string{"fetch", "run"}, r.Names())

	var buf bytes.Buffer
	r.Usage(&buf, "viewer")
	out := buf.String()
	assert.Contains(t, out, "usage: viewer <command>")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("fetch")), bytes.Index(buf.Bytes(), []byte("run ")))
	assert.Contains(t, out, "open the viewer window")
}

func TestSplitKeepsQuotedArgs(t *testing.T) {
	args, err := Split(`fetch -url "https://example.com/my model.glb"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "-url", "https://example.com/my model.glb"}, args)

	_, err = Split(`fetch "unterminated`)
	assert.Error(t, err)
}

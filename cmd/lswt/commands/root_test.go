package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlkit/lswt/internal/config"
	"github.com/wlkit/lswt/internal/render"
)

func TestResolveOptions_FlagsWin(t *testing.T) {
	cfg := &config.Config{Format: "json"}

	opts, err := resolveOptions(cfg, false, false, ",ta")
	require.NoError(t, err)
	assert.Equal(t, render.ModeCustom, opts.Mode)
	assert.Equal(t, byte(','), opts.Custom.Delim)

	opts, err = resolveOptions(&config.Config{Format: "human"}, true, false, "")
	require.NoError(t, err)
	assert.Equal(t, render.ModeJSON, opts.Mode)

	opts, err = resolveOptions(&config.Config{Format: "json"}, false, true, "")
	require.NoError(t, err)
	assert.Equal(t, render.ModeTSV, opts.Mode)
}

func TestResolveOptions_ConfigDefaults(t *testing.T) {
	opts, err := resolveOptions(&config.Config{Format: "json"}, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, render.ModeJSON, opts.Mode)

	opts, err = resolveOptions(&config.Config{Format: "tsv"}, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, render.ModeTSV, opts.Mode)

	opts, err = resolveOptions(&config.Config{Format: "custom", CustomFormat: "\tta"}, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, render.ModeCustom, opts.Mode)
	assert.Equal(t, byte('\t'), opts.Custom.Delim)

	opts, err = resolveOptions(&config.Config{Format: "human"}, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, render.ModeHuman, opts.Mode)
}

func TestResolveOptions_InvalidCustomIsFatal(t *testing.T) {
	// A delimiter with no field codes must fail before any connection is
	// attempted.
	_, err := resolveOptions(&config.Config{Format: "human"}, false, false, "|")
	assert.ErrorIs(t, err, render.ErrNoFields)

	_, err = resolveOptions(&config.Config{Format: "custom", CustomFormat: ",zz"}, false, false, "")
	assert.Error(t, err)
}

func TestRootCmd_FlagsAreMutuallyExclusive(t *testing.T) {
	for _, args := range [][]string{
		{"--json", "--custom", ",ta"},
		{"--json", "--tsv"},
		{"--tsv", "--custom", ",ta"},
	} {
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		assert.Error(t, err, "args %v", args)
	}
	rootCmd.SetArgs(nil)
}

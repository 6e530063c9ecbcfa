package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "nmlcell", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "morph.cell.nml")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"verbose", "v", "false"},
		{"config", "c", ""},
		{"workdir", "w", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestRootCmd_NotConfigured(t *testing.T) {
	Configure(nil)

	_, err := execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "producer not configured")
}

func TestRootCmd_RunsDefault(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute()

	require.NoError(t, err)
	assert.Contains(t, out, "cell KC")
	assert.Contains(t, out, "written: KC.cell.nml")
	assert.Contains(t, out, "* Cell: KC")
	_, err = store.Head(context.Background(), "KC.cell.nml")
	assert.NoError(t, err)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute("KC")

	assert.Error(t, err)
}

func TestRootCmd_Bootstrap(t *testing.T) {
	Configure(nil)
	var got Options
	SetBootstrap(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return nil, errors.New("no config")
	})
	defer SetBootstrap(nil)

	_, err := execute("--workdir", "/tmp/models", "recipes")
	defer func() { workdir = "." }()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup: no config")
	assert.Equal(t, "/tmp/models", got.Workdir)
}

func TestRootCmd_BootstrapSkippedWhenConfigured(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	called := false
	SetBootstrap(func(context.Context, Options) (*Services, error) {
		called = true
		return nil, nil
	})
	defer SetBootstrap(nil)

	_, err := execute("recipes")

	require.NoError(t, err)
	assert.False(t, called)
}

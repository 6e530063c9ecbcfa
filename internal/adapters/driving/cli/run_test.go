package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
)

func TestRunCmd_Use(t *testing.T) {
	assert.Equal(t, "run [recipe...]", runCmd.Use)
	assert.Contains(t, runCmd.Long, "run.default")
}

func TestRunCmd_NamedRecipes(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute("run", "na_channel", "KC")

	require.NoError(t, err)
	assert.Contains(t, out, "channel na_channel")
	assert.Contains(t, out, "written: HH_example_na_channel.nml")
	assert.Contains(t, out, "cell KC")
	keys, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestRunCmd_StopsAtFirstError(t *testing.T) {
	store, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute("run", "KC", "GGN", "na_channel")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, out, "cell KC")
	assert.NotContains(t, out, "na_channel")
	_, err = store.Head(context.Background(), "HH_example_na_channel.nml")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunCmd_UnknownRecipe(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute("run", "purkinje")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

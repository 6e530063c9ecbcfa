package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipesCmd_Short(t *testing.T) {
	assert.Equal(t, "List available recipes", recipesCmd.Short)
}

func TestRecipesCmd_ListsWithDefaultMarker(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute("recipes")

	require.NoError(t, err)
	assert.Contains(t, out, "Recipes")
	assert.Contains(t, out, "  GGN ")
	assert.Contains(t, out, "* KC ")
	assert.Contains(t, out, "  na_channel ")
	assert.Contains(t, out, "channel")
	assert.NotContains(t, out, "recipe file:")
}

func TestRecipesCmd_ShowsRecipeFile(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	app.RecipeFile = "/models/recipes.toml"

	out, err := execute("recipes")

	require.NoError(t, err)
	assert.Contains(t, out, "recipe file: /models/recipes.toml")
}

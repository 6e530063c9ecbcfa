package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List available recipes",
	Long: `Lists the built-in recipes and those loaded from the recipe file.
Recipes in the default run are marked with *.`,
	Args: cobra.NoArgs,
	RunE: runRecipes,
}

func init() {
	rootCmd.AddCommand(recipesCmd)
}

func runRecipes(cmd *cobra.Command, _ []string) error {
	p, err := producer()
	if err != nil {
		return err
	}
	infos := p.Recipes()
	if len(infos) == 0 {
		cmd.Println("No recipes.")
		return nil
	}
	out := newPrinter(cmd)
	out.title("Recipes")
	for _, info := range infos {
		mark := " "
		if info.Default {
			mark = "*"
		}
		cmd.Printf("%s %-16s %s\n", mark, info.Name, out.render(mutedStyle, string(info.Kind)))
	}
	if app.RecipeFile != "" {
		out.muted(fmt.Sprintf("recipe file: %s", app.RecipeFile))
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cellMorph bool

var cellCmd = &cobra.Command{
	Use:   "cell <recipe>",
	Short: "Produce one cell and describe it",
	Long: `Produces a single cell recipe and prints its biophysics.
With --morph the written file is read back and every segment and
segment group is listed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runCell,
}

func init() {
	cellCmd.Flags().BoolVarP(&cellMorph, "morph", "m", false, "also print the morphology")
	rootCmd.AddCommand(cellCmd)
}

func runCell(cmd *cobra.Command, args []string) error {
	p, err := producer()
	if err != nil {
		return err
	}
	if app.Recipes == nil {
		return errors.New("recipe store not configured")
	}
	recipe, err := app.Recipes.Cell(args[0])
	if err != nil {
		return err
	}

	artifact, err := p.ProduceCell(cmd.Context(), recipe)
	if err != nil {
		return fmt.Errorf("cell %s: %w", recipe.Name, err)
	}
	out := newPrinter(cmd)
	if !cellMorph {
		out.artifact(artifact)
		return nil
	}

	if app.Serializer == nil {
		return errors.New("serializer not configured")
	}
	doc, err := app.Serializer.Parse(cmd.Context(), artifact.Key)
	if err != nil {
		return err
	}
	cell, err := doc.FirstCell()
	if err != nil {
		return err
	}
	artifact.Summary = cell.Summary(true, true)
	out.artifact(artifact)
	return nil
}

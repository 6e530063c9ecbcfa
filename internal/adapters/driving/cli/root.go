// Package cli provides the nmlcell command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driving"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// Services holds everything the commands use.
type Services struct {
	Producer   driving.Producer
	Recipes    driven.RecipeStore
	Serializer driven.ModelSerializer
	Store      driven.ArtifactStore

	// Workdir is where inputs are read and, on the fs driver, outputs written.
	Workdir string

	// RecipeFile is the optional TOML recipe file, watched by "watch".
	RecipeFile string

	// ReloadRecipes re-reads RecipeFile. Optional.
	ReloadRecipes func() error
}

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigPath string
	Workdir    string
	Verbose    bool
}

// BootstrapFunc builds the services once flags are parsed.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	app       *Services
	bootstrap BootstrapFunc

	verbose    bool
	configPath string
	workdir    string
)

// Configure injects services directly, bypassing the bootstrap function.
func Configure(s *Services) {
	app = s
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

var rootCmd = &cobra.Command{
	Use:   "nmlcell",
	Short: "Build and annotate NeuroML cell models",
	Long: `nmlcell produces NeuroML v2 cell and channel models from recipes.

Cells are either loaded from an exported morphology (<name>.morph.cell.nml)
and normalised, or built from a single soma segment. Biophysical properties
are then attached and the validated model is written as <name>.cell.nml.

Run without arguments to produce the default recipes.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runDefault,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each stage to stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default <workdir>/nmlcell.toml)")
	rootCmd.PersistentFlags().StringVarP(&workdir, "workdir", "w", ".", "directory holding input morphologies")
}

// Execute runs the root command with output on stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())
	if app != nil || bootstrap == nil {
		return nil
	}
	s, err := bootstrap(cmd.Context(), Options{
		ConfigPath: configPath,
		Workdir:    workdir,
		Verbose:    verbose,
	})
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	app = s
	return nil
}

func producer() (driving.Producer, error) {
	if app == nil || app.Producer == nil {
		return nil, errors.New("producer not configured")
	}
	return app.Producer, nil
}

func runDefault(cmd *cobra.Command, _ []string) error {
	return produce(cmd)
}

// produce runs the named recipes, or the default run, and prints each artifact.
func produce(cmd *cobra.Command, names ...string) error {
	p, err := producer()
	if err != nil {
		return err
	}
	artifacts, err := p.Run(cmd.Context(), names...)
	out := newPrinter(cmd)
	for i := range artifacts {
		out.artifact(&artifacts[i])
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}

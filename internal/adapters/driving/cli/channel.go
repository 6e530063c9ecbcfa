package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/kinetics"
)

var channelVoltage string

var channelCmd = &cobra.Command{
	Use:   "channel <recipe>",
	Short: "Produce one channel and tabulate its gates",
	Long: `Produces a single channel recipe, then evaluates each gate at --voltage
and prints alpha, beta, the steady state and the time constant.`,
	Args: cobra.ExactArgs(1),
	RunE: runChannel,
}

func init() {
	channelCmd.Flags().StringVarP(&channelVoltage, "voltage", "V", "-65mV", "membrane potential for the gate table")
	rootCmd.AddCommand(channelCmd)
}

func runChannel(cmd *cobra.Command, args []string) error {
	p, err := producer()
	if err != nil {
		return err
	}
	if app.Recipes == nil {
		return errors.New("recipe store not configured")
	}
	v, err := domain.ParseQuantityOf(channelVoltage, domain.DimensionVoltage)
	if err != nil {
		return fmt.Errorf("--voltage: %w", err)
	}
	mv, err := kinetics.MilliVolts(v)
	if err != nil {
		return fmt.Errorf("--voltage: %w", err)
	}
	recipe, err := app.Recipes.Channel(args[0])
	if err != nil {
		return err
	}

	artifact, err := p.ProduceChannel(cmd.Context(), recipe)
	if err != nil {
		return fmt.Errorf("channel %s: %w", recipe.Name, err)
	}
	out := newPrinter(cmd)
	out.artifact(artifact)

	ch, err := channelFromRecipe(cmd, recipe, artifact.Key)
	if err != nil {
		return err
	}
	states, open, err := kinetics.SteadyState(ch, mv)
	if err != nil {
		return err
	}
	out.title(fmt.Sprintf("Gates at %s", v))
	cmd.Printf("  %-6s %12s %12s %10s %10s\n", "gate", "alpha/ms", "beta/ms", "inf", "tau ms")
	for _, s := range states {
		cmd.Printf("  %-6s %12.5g %12.5g %10.4f %10.4g\n", s.ID, s.Alpha, s.Beta, s.Inf, s.Tau)
	}
	out.field("open fraction", fmt.Sprintf("%.4g", open))
	return nil
}

// channelFromRecipe reads the written document back and finds the channel.
func channelFromRecipe(cmd *cobra.Command, recipe domain.ChannelRecipe, key string) (*domain.IonChannelHH, error) {
	if app.Serializer == nil {
		return nil, errors.New("serializer not configured")
	}
	doc, err := app.Serializer.Parse(cmd.Context(), key)
	if err != nil {
		return nil, err
	}
	for _, ch := range doc.IonChannels {
		if ch.ID == recipe.ChannelID {
			return ch, nil
		}
	}
	return nil, fmt.Errorf("%w: channel %s not in %s", domain.ErrNotFound, recipe.ChannelID, key)
}

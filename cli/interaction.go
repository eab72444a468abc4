package cli

import (
	"github.com/spf13/cobra"

	"melv-core/domain"
)

func (a *app) newIFactorCmd() *cobra.Command {
	var (
		input      domain.InteractionInput
		bootstrapN int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "ifactor",
		Short: "Calculate the interaction factor i = overlap / differentiation",
		Long: `Calculate the i-factor and classify the regime.

Example: melv ifactor --overlap 0.3 --differentiation 0.85 --uncertainty 0.05 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("bootstrap-n") {
				input.BootstrapN = &bootstrapN
			}
			if cmd.Flags().Changed("seed") {
				input.RandomSeed = &seed
			}

			report, err := a.analyzer.AnalyzeInteraction(cmd.Context(), domain.InteractionPair{Input: input})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), report.Result, report.Interpretation)
		},
	}

	cmd.Flags().Float64Var(&input.Overlap, "overlap", 0, "Resource overlap coefficient in [0, 1]")
	cmd.Flags().Float64Var(&input.Differentiation, "differentiation", 0, "Service differentiation coefficient in (0, 1]")
	cmd.Flags().Float64Var(&input.Uncertainty, "uncertainty", 0, "Absolute standard deviation of input noise; enables the bootstrap interval")
	cmd.Flags().IntVar(&bootstrapN, "bootstrap-n", 0, "Number of bootstrap trials (default from configuration)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for a reproducible interval")
	markRequired(cmd, "overlap", "differentiation")

	return cmd
}

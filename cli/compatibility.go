package cli

import (
	"github.com/spf13/cobra"

	"melv-core/domain"
)

func addCompatibilityFlags(cmd *cobra.Command, in *domain.CompatibilityInput) {
	cmd.Flags().Float64Var(&in.Physical, "physical", 0, "Physical compatibility in [0, 1]")
	cmd.Flags().Float64Var(&in.Service, "service", 0, "Service exchange quality in [0, 1]")
	cmd.Flags().Float64Var(&in.Temporal, "temporal", 0, "Temporal coordination in [0, 1]")
	cmd.Flags().Float64Var(&in.Perpetuity, "perpetuity", 0, "Perpetuity (sustainability) φ in [0, 1]")
	markRequired(cmd, "physical", "service", "temporal", "perpetuity")
}

func (a *app) newBetaCmd() *cobra.Command {
	var input domain.CompatibilityInput

	cmd := &cobra.Command{
		Use:   "beta",
		Short: "Calculate the compatibility factor β and the cooperation potential φ × β",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.analyzer.Compatibility(input)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), result, a.analyzer.Interpreter().Compatibility(result))
		},
	}
	addCompatibilityFlags(cmd, &input)

	return cmd
}

func (a *app) newCombinedCmd() *cobra.Command {
	var input domain.CombinedInput

	cmd := &cobra.Command{
		Use:   "combined",
		Short: "Predict the interaction outcome from an i-factor, β and perpetuity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.analyzer.Combined(input)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), result, a.analyzer.Interpreter().Combined(input, result))
		},
	}

	cmd.Flags().Float64Var(&input.IFactor, "i-factor", 0, "Interaction factor (>= 0)")
	cmd.Flags().Float64Var(&input.Beta, "beta", 0, "Compatibility factor in [0, 1]")
	cmd.Flags().Float64Var(&input.Perpetuity, "perpetuity", 0, "Perpetuity φ in [0, 1]")
	markRequired(cmd, "i-factor", "beta", "perpetuity")

	return cmd
}

func (a *app) newAssessCmd() *cobra.Command {
	var (
		interaction   domain.InteractionInput
		compatibility domain.CompatibilityInput
		seed          uint64
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run the full pipeline: i-factor, β and the combined prediction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				interaction.RandomSeed = &seed
			}
			assessment, err := a.analyzer.Assess(cmd.Context(), interaction, compatibility)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), assessment, assessment.Interpretation)
		},
	}

	cmd.Flags().Float64Var(&interaction.Overlap, "overlap", 0, "Resource overlap coefficient in [0, 1]")
	cmd.Flags().Float64Var(&interaction.Differentiation, "differentiation", 0, "Service differentiation coefficient in (0, 1]")
	cmd.Flags().Float64Var(&interaction.Uncertainty, "uncertainty", 0, "Absolute standard deviation of input noise")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for a reproducible interval")
	markRequired(cmd, "overlap", "differentiation")
	addCompatibilityFlags(cmd, &compatibility)

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"melv-core/domain"
)

func (a *app) newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate overlap and differentiation from usage patterns, then the i-factor",
	}

	cmd.AddCommand(
		a.newEstimateVectorCmd("resources", "Estimate from two resource-usage vectors", a.estimator.FromResources),
		a.newEstimateVectorCmd("temporal", "Estimate from two activity time series", a.estimator.FromTemporal),
		a.newEstimateSpatialCmd(),
	)
	return cmd
}

func (a *app) newEstimateVectorCmd(
	use, short string,
	estimate func(x, y []float64) (domain.Coefficients, error),
) *cobra.Command {
	var x, y []float64

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coeffs, err := estimate(x, y)
			if err != nil {
				return err
			}
			return a.renderEstimate(cmd, coeffs)
		},
	}
	cmd.Flags().Float64SliceVar(&x, "a", nil, "Pattern of the first entity (comma-separated)")
	cmd.Flags().Float64SliceVar(&y, "b", nil, "Pattern of the second entity (comma-separated)")
	markRequired(cmd, "a", "b")

	return cmd
}

func (a *app) newEstimateSpatialCmd() *cobra.Command {
	var (
		x, y []float64
		rows int
	)

	cmd := &cobra.Command{
		Use:   "spatial",
		Short: "Estimate from two spatial density grids given row-major",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gx, err := grid(x, rows)
			if err != nil {
				return fmt.Errorf("--a: %w", err)
			}
			gy, err := grid(y, rows)
			if err != nil {
				return fmt.Errorf("--b: %w", err)
			}
			coeffs, err := a.estimator.FromSpatial(gx, gy)
			if err != nil {
				return err
			}
			return a.renderEstimate(cmd, coeffs)
		},
	}
	cmd.Flags().Float64SliceVar(&x, "a", nil, "Density grid of the first entity, row-major")
	cmd.Flags().Float64SliceVar(&y, "b", nil, "Density grid of the second entity, row-major")
	cmd.Flags().IntVar(&rows, "rows", 1, "Number of grid rows")
	markRequired(cmd, "a", "b")

	return cmd
}

func (a *app) renderEstimate(cmd *cobra.Command, coeffs domain.Coefficients) error {
	report, err := a.analyzer.AnalyzeInteraction(cmd.Context(), domain.InteractionPair{
		Method: coeffs.Method,
		Input:  coeffs.Input(),
	})
	if err != nil {
		return err
	}
	return a.render(cmd.OutOrStdout(), report, report.Interpretation)
}

func grid(data []float64, rows int) (*mat.Dense, error) {
	if rows < 1 || len(data) == 0 || len(data)%rows != 0 {
		return nil, fmt.Errorf("%d values cannot form %d rows", len(data), rows)
	}
	return mat.NewDense(rows, len(data)/rows, data), nil
}

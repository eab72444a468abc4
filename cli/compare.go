package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"melv-core/repository"
)

func (a *app) newCompareCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a batch of interactions, most cooperative first",
		Long: `Compare the interactions listed in a YAML, XLSX or CSV file.

Tabular files need a header row with overlap and differentiation columns;
entity1, entity2, method, uncertainty, bootstrap_n and random_seed are optional.

Example: melv compare --file community.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := repository.LoadInteractionPairs(file)
			if err != nil {
				return err
			}
			reports, err := a.analyzer.CompareInteractions(cmd.Context(), pairs)
			if err != nil {
				return err
			}

			var b strings.Builder
			for i, r := range reports {
				fmt.Fprintf(&b, "%d. %s ↔ %s: i = %.2f (%s)\n", i+1, r.Entity1, r.Entity2, r.Result.IFactor, r.Result.Regime)
			}
			return a.render(cmd.OutOrStdout(), reports, strings.TrimRight(b.String(), "\n"))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Batch file (.yaml, .yml, .xlsx or .csv)")
	markRequired(cmd, "file")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"melv-core/service"
)

const (
	outputJSON = "json"
	outputText = "text"
)

type app struct {
	analyzer  *service.Analyzer
	estimator *service.Estimator
	output    string
}

// NewRootCmd builds the melv command tree around an analyzer.
func NewRootCmd(analyzer *service.Analyzer) *cobra.Command {
	a := &app{
		analyzer:  analyzer,
		estimator: service.NewEstimator(),
	}

	rootCmd := &cobra.Command{
		Use:           "melv",
		Short:         "Interaction (i) and compatibility (β) factor calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.output != outputJSON && a.output != outputText {
				return fmt.Errorf("invalid --output %q (use json or text)", a.output)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "Output format: json or text")

	rootCmd.AddCommand(
		a.newIFactorCmd(),
		a.newBetaCmd(),
		a.newCombinedCmd(),
		a.newAssessCmd(),
		a.newEstimateCmd(),
		a.newCompareCmd(),
	)

	return rootCmd
}

// render writes v as indented JSON, or the text explanation in text mode.
func (a *app) render(w io.Writer, v any, text string) error {
	if a.output == outputText {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, n := range names {
		if err := cmd.MarkFlagRequired(n); err != nil {
			panic(fmt.Sprintf("%s: %v", cmd.Name(), err))
		}
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/ocr"
)

func (a *app) newBaselineCmd() *cobra.Command {
	var (
		split   string
		details bool
	)

	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Run Tesseract over a split's patches and score it against labels.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.layout()
			if err != nil {
				return err
			}

			recognizer := &ocr.Tesseract{Language: a.cfg.Language}
			report, err := ocr.ScoreLedger(cmd.Context(), l.SplitDir(split, a.cfg.SelectData), recognizer, a.logger)
			if err != nil {
				return err
			}
			if !details {
				report.Predictions = nil
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&split, "split", "validation", "Split to score (training or validation)")
	cmd.Flags().BoolVar(&details, "details", false, "Include every prediction in the output")
	return cmd
}

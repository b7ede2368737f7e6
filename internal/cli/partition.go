package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
)

func (a *app) newPartitionCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Sample the training, validation and evaluation splits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			splits, err := a.partition()
			if err != nil {
				return err
			}

			if list {
				return writeJSON(cmd.OutOrStdout(), splits)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed: %d\n", splits.Seed)
			for _, s := range []dataset.Split{splits.Training, splits.Validation, splits.Evaluation} {
				fmt.Fprintf(out, "%s: %d\n", s.Name, len(s.Images))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Print the sampled image paths as JSON")
	return cmd
}

func (a *app) partition() (*dataset.Splits, error) {
	l, err := a.layout()
	if err != nil {
		return nil, err
	}
	training, validation, err := a.loadPools(l)
	if err != nil {
		return nil, err
	}
	return dataset.Partition(training, validation, a.cfg.Counts(), a.cfg.Seed)
}

package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/archive"
	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
)

type prepareOptions struct {
	unzip      bool
	training   bool
	validation bool
	evaluation bool
}

func (a *app) newPrepareCmd() *cobra.Command {
	var opts prepareOptions

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Run the full preparation: unzip, partition, extract patches, copy the evaluation set",
		Long: "Partition the unzipped pools with the configured seed, then write patches and labels.csv for the selected splits " +
			"under <parent>/training_and_validation_set and copy evaluation pages to <parent>/evaluation_set. " +
			"Re-running skips patches that already exist.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.unzip, "unzip", false, "Extract the dataset archives first")
	cmd.Flags().BoolVar(&opts.training, "training", false, "Extract training patches")
	cmd.Flags().BoolVar(&opts.validation, "validation", false, "Extract validation patches")
	cmd.Flags().BoolVar(&opts.evaluation, "evaluation", false, "Copy evaluation pages")
	return cmd
}

func (a *app) prepare(cmd *cobra.Command, opts prepareOptions) error {
	ctx := cmd.Context()
	l, err := a.layout()
	if err != nil {
		return err
	}

	if opts.unzip {
		if _, err := archive.NewNormalizer(a.logger).Normalize(ctx, a.cfg.DatasetDir, l.UnzippedDir()); err != nil {
			return err
		}
	}

	splits, err := a.partition()
	if err != nil {
		return err
	}

	report := dataset.NewRunReport(splits.Seed, a.cfg.SelectData, a.cfg.Counts())
	extractor := dataset.NewExtractor(a.cfg.PatchExt, a.logger)

	for _, step := range []struct {
		enabled bool
		split   dataset.Split
	}{
		{opts.training, splits.Training},
		{opts.validation, splits.Validation},
	} {
		if !step.enabled {
			continue
		}
		summary, err := extractor.ExtractSplit(ctx, step.split, l.SplitDir(step.split.Name, a.cfg.SelectData))
		if err != nil {
			return err
		}
		report.Record(summary)
	}

	if opts.evaluation {
		copied, err := dataset.PrepareEvaluationSet(ctx, splits.Evaluation, l.PoolDir(dataset.Validation), l.EvaluationDir(), a.logger)
		if err != nil {
			return err
		}
		report.EvaluationCopied = copied.Copied
	}

	if err := report.Write(filepath.Join(l.PatchesDir(), dataset.ReportName)); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

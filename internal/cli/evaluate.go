package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
	"github.com/ironsheep/ocr-dataset-prep/internal/evaluation"
	"github.com/ironsheep/ocr-dataset-prep/internal/imaging"
)

func (a *app) newEvaluateCmd() *cobra.Command {
	var (
		mapsDir   string
		imagesDir string
		iou       float64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score word boxes from saved score maps against the evaluation set",
		Long:  "For every page image, load <maps>/<stem>_text.png and <stem>_link.png, build word boxes and match them to the page annotations by IoU.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if imagesDir == "" {
				l, err := a.layout()
				if err != nil {
					return err
				}
				imagesDir = filepath.Join(l.EvaluationDir(), "images")
			}

			pool, err := dataset.LoadPool(dataset.Evaluation, imagesDir)
			if err != nil {
				return err
			}

			cache := imaging.NewImageCache()
			pages := make([]evaluation.Page, 0, pool.Len())
			for _, img := range pool.Images() {
				page, err := evaluation.LoadPage(cache, mapsDir, img)
				if err != nil {
					a.logger.WithField("file", img).WithError(err).Warn("Skipping page")
					continue
				}
				pages = append(pages, page)
			}

			report, err := evaluation.Evaluate(pages, iou, a.cfg.AreaThreshold)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&mapsDir, "maps", "", "Directory holding <stem>_text.png and <stem>_link.png score maps")
	cmd.Flags().StringVar(&imagesDir, "images", "", "Page images directory (default: <parent>/evaluation_set/images)")
	cmd.Flags().Float64Var(&iou, "iou", evaluation.DefaultIoUThreshold, "Minimum IoU for a match")
	cmd.MarkFlagRequired("maps")
	return cmd
}

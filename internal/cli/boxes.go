package cli

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
	"github.com/ironsheep/ocr-dataset-prep/internal/detection"
	"github.com/ironsheep/ocr-dataset-prep/internal/imaging"
)

type boxesOptions struct {
	textMap       string
	linkMap       string
	image         string
	debugDir      string
	areaThreshold int
}

func (a *app) newBoxesCmd() *cobra.Command {
	var opts boxesOptions

	cmd := &cobra.Command{
		Use:   "boxes",
		Short: "Build word boxes from a text/link score map pair",
		Long:  "Threshold the text and link score maps, label connected word blobs and print the expanded word boxes as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("area-threshold") {
				opts.areaThreshold = a.cfg.AreaThreshold
			}
			return a.boxes(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.textMap, "text-map", "", "Text score map image")
	cmd.Flags().StringVar(&opts.linkMap, "link-map", "", "Link score map image")
	cmd.Flags().StringVar(&opts.image, "image", "", "Page image used for clipping and debug overlays (default: map size)")
	cmd.Flags().StringVar(&opts.debugDir, "debug-dir", "", "Write box overlay and colorized component images here")
	cmd.Flags().IntVar(&opts.areaThreshold, "area-threshold", detection.DefaultAreaThreshold, "Minimum blob pixel count (default from config)")
	cmd.MarkFlagRequired("text-map")
	cmd.MarkFlagRequired("link-map")
	return cmd
}

func (a *app) boxes(cmd *cobra.Command, opts boxesOptions) error {
	textMap, err := imaging.LoadScoreMap(opts.textMap)
	if err != nil {
		return err
	}
	linkMap, err := imaging.LoadScoreMap(opts.linkMap)
	if err != nil {
		return err
	}

	var page image.Image = textMap
	if opts.image != "" {
		if page, err = imaging.Decode(opts.image); err != nil {
			return err
		}
	}
	width, height := page.Bounds().Dx(), page.Bounds().Dy()

	result, labels, err := detection.BuildWordBoxesWithLabels(textMap, linkMap, width, height, opts.areaThreshold)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		a.logger.WithField("file", opts.textMap).Warn(w.Error())
	}

	if opts.debugDir != "" {
		if err := writeDebugImages(opts.debugDir, dataset.Stem(opts.textMap), page, result, labels); err != nil {
			return err
		}
		a.logger.WithField("dir", opts.debugDir).Info("Wrote debug images")
	}

	return writeJSON(cmd.OutOrStdout(), result)
}

func writeDebugImages(dir, stem string, page image.Image, result *detection.WordBoxesResult, labels *detection.LabelMap) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create debug directory: %w", err)
	}

	rects := make([]image.Rectangle, len(result.Boxes))
	for i, b := range result.Boxes {
		rects[i] = b.Rect()
	}
	overlay := imaging.DrawBoxes(page, rects, "#FF0000", 2)
	if err := imaging.SavePatch(overlay, filepath.Join(dir, stem+"_boxes.png")); err != nil {
		return err
	}

	colored, err := imaging.ColorizeLabels(labels.Labels, labels.Width, labels.Height)
	if err != nil {
		return err
	}
	return imaging.SavePatch(colored, filepath.Join(dir, stem+"_components.png"))
}

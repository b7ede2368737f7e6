package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/archive"
)

func (a *app) newUnzipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unzip",
		Short: "Extract the dataset archives into the unzipped/ tree",
		Long:  "Extract every .zip under the dataset directory into <parent>/unzipped, decoding EUC-KR member names and renaming source and label directories to images/ and labels/.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.layout()
			if err != nil {
				return err
			}

			result, err := archive.NewNormalizer(a.logger).Normalize(cmd.Context(), a.cfg.DatasetDir, l.UnzippedDir())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

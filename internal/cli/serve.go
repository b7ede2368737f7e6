package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP tool server on stdin/stdout",
		Long:  "Serve word_boxes, dataset_partition, extract_patches, ocr_patch and image_dimensions over the MCP protocol (JSON-RPC 2.0, one request per line).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := server.Defaults{
				Seed:          a.cfg.Seed,
				AreaThreshold: a.cfg.AreaThreshold,
				PatchExt:      a.cfg.PatchExt,
				Language:      a.cfg.Language,
			}

			a.logger.WithField("version", a.build.Version).Debug("Starting MCP server")
			srv := server.New(a.logger, defaults, a.build.Version)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

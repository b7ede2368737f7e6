// Package cli wires the pipeline into the ocr-dataset-prep command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/ocr-dataset-prep/internal/config"
	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
	"github.com/ironsheep/ocr-dataset-prep/internal/logging"
)

// BuildInfo is the version information set by ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app is the state shared by all commands once the root pre-run has loaded
// the configuration.
type app struct {
	build BuildInfo

	configPath string
	datasetDir string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd(build BuildInfo) *cobra.Command {
	a := &app{build: build}

	root := &cobra.Command{
		Use:           "ocr-dataset-prep",
		Short:         "Prepare OCR training data from annotated document images",
		Long:          "Unpack annotated document archives, sample reproducible splits, cut word patches with a label ledger, and evaluate word-box detection.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.datasetDir, "dataset", "", "Directory holding the original archives (overrides dataset_dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log_level)")

	root.AddCommand(
		a.newUnzipCmd(),
		a.newPartitionCmd(),
		a.newPrepareCmd(),
		a.newBoxesCmd(),
		a.newEvaluateCmd(),
		a.newBaselineCmd(),
		a.newServeCmd(),
		a.newVersionCmd(),
	)
	return root
}

func (a *app) setup(logOutput io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.datasetDir != "" {
		cfg.DatasetDir = a.datasetDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger, err := logging.NewWithOutput(cfg.LogLevel, logOutput)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// layout returns the dataset layout, failing when no dataset directory is set.
func (a *app) layout() (dataset.Layout, error) {
	if a.cfg.DatasetDir == "" {
		return dataset.Layout{}, fmt.Errorf("no dataset directory: set --dataset, dataset_dir or %sDATASET_DIR", config.EnvPrefix)
	}
	return dataset.NewLayout(a.cfg.DatasetDir), nil
}

// loadPools enumerates the training and validation pools of a layout.
func (a *app) loadPools(l dataset.Layout) (*dataset.ImagePool, *dataset.ImagePool, error) {
	training, err := dataset.LoadPool(dataset.Training, l.PoolImagesDir(dataset.Training))
	if err != nil {
		return nil, nil, err
	}
	validation, err := dataset.LoadPool(dataset.Validation, l.PoolImagesDir(dataset.Validation))
	if err != nil {
		return nil, nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"training":   training.Len(),
		"validation": validation.Len(),
	}).Debug("Loaded image pools")
	return training, validation, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

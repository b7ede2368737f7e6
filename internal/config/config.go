// Package config loads pipeline settings from a YAML file, a .env file and
// OCR_PREP_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
	"github.com/ironsheep/ocr-dataset-prep/internal/detection"
	"github.com/ironsheep/ocr-dataset-prep/internal/imaging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OCR_PREP_"

// Config holds pipeline settings.
type Config struct {
	// Seed drives every random draw of a partition.
	Seed int64 `yaml:"seed"`

	// Split sizes.
	TrainImages int `yaml:"train_images"`
	ValImages   int `yaml:"val_images"`
	EvalImages  int `yaml:"eval_images"`

	// SelectData names the patch set under each split directory.
	SelectData string `yaml:"select_data"`

	// AreaThreshold is the minimum component pixel count kept as a word.
	// Zero or a negative value keeps every component.
	AreaThreshold int `yaml:"area_threshold"`

	// PatchExt is the patch file extension, including the dot.
	PatchExt string `yaml:"patch_ext"`

	LogLevel string `yaml:"log_level"`

	// DatasetDir is the directory holding the original archives.
	DatasetDir string `yaml:"dataset_dir"`

	// Language is the tesseract language used by the OCR baseline.
	Language string `yaml:"language"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Seed:          42,
		SelectData:    "words",
		AreaThreshold: detection.DefaultAreaThreshold,
		PatchExt:      ".jpg",
		LogLevel:      "info",
		Language:      "kor",
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment overrides apply. A .env file in the working
// directory is loaded first if present; variables already set win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.Seed, err = getEnvAsInt64OrDefault("SEED", c.Seed); err != nil {
		return err
	}
	if c.TrainImages, err = getEnvAsIntOrDefault("TRAIN_IMAGES", c.TrainImages); err != nil {
		return err
	}
	if c.ValImages, err = getEnvAsIntOrDefault("VAL_IMAGES", c.ValImages); err != nil {
		return err
	}
	if c.EvalImages, err = getEnvAsIntOrDefault("EVAL_IMAGES", c.EvalImages); err != nil {
		return err
	}
	if c.AreaThreshold, err = getEnvAsIntOrDefault("AREA_THRESHOLD", c.AreaThreshold); err != nil {
		return err
	}
	c.SelectData = getEnvOrDefault("SELECT_DATA", c.SelectData)
	c.PatchExt = getEnvOrDefault("PATCH_EXT", c.PatchExt)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.DatasetDir = getEnvOrDefault("DATASET_DIR", c.DatasetDir)
	c.Language = getEnvOrDefault("LANGUAGE", c.Language)
	return nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.TrainImages < 0 || c.ValImages < 0 || c.EvalImages < 0 {
		return fmt.Errorf("image counts must not be negative, got train=%d val=%d eval=%d",
			c.TrainImages, c.ValImages, c.EvalImages)
	}

	if strings.TrimSpace(c.SelectData) == "" {
		return fmt.Errorf("select_data is required")
	}

	if !imaging.SupportedPatchExt(c.PatchExt) {
		return fmt.Errorf("unsupported patch_ext %q", c.PatchExt)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	return nil
}

// Counts returns the configured split sizes.
func (c *Config) Counts() dataset.Counts {
	return dataset.Counts{Train: c.TrainImages, Val: c.ValImages, Eval: c.EvalImages}
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(EnvPrefix + key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s%s must be an integer, got %q", EnvPrefix, key, valueStr)
	}
	return value, nil
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) (int64, error) {
	valueStr := os.Getenv(EnvPrefix + key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s%s must be an integer, got %q", EnvPrefix, key, valueStr)
	}
	return value, nil
}

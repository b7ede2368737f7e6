package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Seed != 42 || cfg.AreaThreshold != 300 || cfg.PatchExt != ".jpg" || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
seed: 7
train_images: 100
val_images: 20
eval_images: 10
select_data: printed
area_threshold: 150
patch_ext: .png
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Seed != 7 || cfg.SelectData != "printed" || cfg.AreaThreshold != 150 || cfg.PatchExt != ".png" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	counts := cfg.Counts()
	if counts.Train != 100 || counts.Val != 20 || counts.Eval != 10 {
		t.Errorf("Counts = %+v", counts)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unset keys should keep defaults, LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "seed: 7\ntrain_images: 100\n")
	t.Setenv("OCR_PREP_SEED", "99")
	t.Setenv("OCR_PREP_TRAIN_IMAGES", "5")
	t.Setenv("OCR_PREP_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Seed != 99 || cfg.TrainImages != 5 || cfg.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{"unknown key", "seeds: 1\n", nil, "seeds"},
		{"negative count", "val_images: -1\n", nil, "negative"},
		{"empty select_data", "select_data: \"\"\n", nil, "select_data"},
		{"bad extension", "patch_ext: .xyz\n", nil, "patch_ext"},
		{"bad level", "log_level: loud\n", nil, "log_level"},
		{"bad env int", "", map[string]string{"OCR_PREP_SEED": "abc"}, "OCR_PREP_SEED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate_NegativeAreaThresholdAllowed(t *testing.T) {
	cfg := Default()
	cfg.AreaThreshold = -1
	if err := cfg.Validate(); err != nil {
		t.Errorf("negative area_threshold should be accepted: %v", err)
	}
}

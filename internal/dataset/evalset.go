package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// CopySummary counts the pages copied into the evaluation set.
type CopySummary struct {
	Copied int `json:"copied"`
	Failed int `json:"failed"`
}

// PrepareEvaluationSet copies every image of the evaluation split, and its
// annotation file, from under poolDir into dstDir. Paths relative to poolDir
// are preserved, so dstDir gets the same images/ and labels/ trees.
//
// A page whose image or annotation cannot be copied is logged and counted;
// the remaining pages are still copied.
func PrepareEvaluationSet(ctx context.Context, split Split, poolDir, dstDir string, logger logrus.FieldLogger) (*CopySummary, error) {
	logger.WithField("images", len(split.Images)).Info("Preparing evaluation set")

	summary := &CopySummary{}
	for _, imagePath := range split.Images {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := copyPage(imagePath, poolDir, dstDir); err != nil {
			summary.Failed++
			logger.WithField("file", imagePath).WithError(err).Warn("Failed to copy evaluation page")
			continue
		}
		summary.Copied++
	}

	logger.WithField("copied", summary.Copied).Info("Completed preparing evaluation set")
	return summary, nil
}

func copyPage(imagePath, poolDir, dstDir string) error {
	labelPath := LabelPathFor(imagePath)
	for _, src := range []string{labelPath, imagePath} {
		rel, err := filepath.Rel(poolDir, src)
		if err != nil {
			return fmt.Errorf("%s is not under %s: %w", src, poolDir, err)
		}
		if err := copyFile(src, filepath.Join(dstDir, rel)); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

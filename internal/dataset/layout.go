package dataset

import (
	"path/filepath"
	"strings"
)

// Pool names, also used as split names.
const (
	Training   = "training"
	Validation = "validation"
	Evaluation = "evaluation"
)

// Layout resolves the fixed directory convention around a dataset directory.
type Layout struct {
	// Root is the parent of the dataset directory.
	Root string
}

// NewLayout returns the layout for the dataset directory that holds the
// original archives.
func NewLayout(datasetDir string) Layout {
	return Layout{Root: filepath.Dir(filepath.Clean(datasetDir))}
}

// UnzippedDir is where normalized archives are extracted.
func (l Layout) UnzippedDir() string {
	return filepath.Join(l.Root, "unzipped")
}

// PoolDir is the root of one pool, holding its images/ and labels/ trees.
func (l Layout) PoolDir(pool string) string {
	return filepath.Join(l.UnzippedDir(), pool)
}

// PoolImagesDir is the images/ tree of one pool.
func (l Layout) PoolImagesDir(pool string) string {
	return filepath.Join(l.PoolDir(pool), "images")
}

// PatchesDir is the output root for training and validation patches.
func (l Layout) PatchesDir() string {
	return filepath.Join(l.Root, "training_and_validation_set")
}

// SplitDir is the output directory of one split for a selectData label.
func (l Layout) SplitDir(split, selectData string) string {
	return filepath.Join(l.PatchesDir(), split, selectData)
}

// EvaluationDir is where evaluation pages are copied.
func (l Layout) EvaluationDir() string {
	return filepath.Join(l.Root, "evaluation_set")
}

// LabelPathFor returns the annotation path paired with an image path: the
// nearest "images" directory segment becomes "labels" and the extension
// becomes ".json".
func LabelPathFor(imagePath string) string {
	return swapTree(imagePath, "images", "labels", ".json")
}

// ImagePathFor is the inverse of LabelPathFor for ".jpg" images.
func ImagePathFor(labelPath string) string {
	return swapTree(labelPath, "labels", "images", ".jpg")
}

func swapTree(path, from, to, ext string) string {
	dir, file := filepath.Split(filepath.Clean(path))
	segments := strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == from {
			segments[i] = to
			break
		}
	}
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	return filepath.Join(filepath.FromSlash(strings.Join(segments, "/")), stem+ext)
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

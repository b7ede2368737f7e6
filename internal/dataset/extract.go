package dataset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-dataset-prep/internal/imaging"
)

// LedgerName is the file name of a split's label ledger.
const LedgerName = "labels.csv"

// Status is the result of processing one annotation.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the explicit result of one annotation record.
type Outcome struct {
	Record PatchRecord
	Status Status
	Err    error
}

// Summary aggregates the outcomes of one split.
type Summary struct {
	Split string `json:"split"`

	// Images is the number of page images visited.
	Images int `json:"images"`

	// MissingLabels counts images without an annotation file.
	MissingLabels int `json:"missing_labels"`

	// FilesFailed counts annotation files that could not be parsed.
	FilesFailed int `json:"files_failed"`

	Written int `json:"written"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Add counts one outcome.
func (s *Summary) Add(o Outcome) {
	switch o.Status {
	case StatusWritten:
		s.Written++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// PatchFilename derives the patch file name from the source stem and the
// clamped box, so identical inputs always map to the same file.
func PatchFilename(stem string, xmin, ymin, xmax, ymax int, ext string) string {
	return fmt.Sprintf("%s_%d-%d-%d-%d%s", stem, xmin, ymin, xmax, ymax, ext)
}

// Extractor crops ground-truth word boxes into patch files and records them
// in a split ledger. It processes one page at a time.
type Extractor struct {
	// PatchExt is the patch file extension, including the dot.
	PatchExt string

	Cache  *imaging.ImageCache
	Logger logrus.FieldLogger
}

// NewExtractor creates an extractor writing patches with the given extension.
func NewExtractor(patchExt string, logger logrus.FieldLogger) *Extractor {
	return &Extractor{
		PatchExt: patchExt,
		Cache:    imaging.NewImageCache(),
		Logger:   logger,
	}
}

// ExtractSplit extracts the patches of every image of a split into outDir.
//
// Patches go to outDir/images and rows to outDir/labels.csv. Images without
// an annotation file are skipped, malformed annotation files are logged and
// skipped, and per-record failures are counted without stopping the batch.
// Only a ledger that cannot be opened, or a cancelled context, ends the split
// early.
func (e *Extractor) ExtractSplit(ctx context.Context, split Split, outDir string) (*Summary, error) {
	log := e.Logger.WithField("split", split.Name)
	log.WithField("images", len(split.Images)).Info("Generating image patches")

	ledger, err := OpenLedger(filepath.Join(outDir, LedgerName))
	if err != nil {
		return nil, err
	}
	patchDir := filepath.Join(outDir, "images")

	summary := &Summary{Split: split.Name}
	for _, imagePath := range split.Images {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Images++

		labelPath := LabelPathFor(imagePath)
		if _, err := os.Stat(labelPath); err != nil {
			summary.MissingLabels++
			log.WithField("file", labelPath).Debug("No annotation file, skipping image")
			continue
		}

		outcomes, err := e.ExtractImage(imagePath, labelPath, patchDir, ledger)
		if err != nil {
			summary.FilesFailed++
			log.WithField("file", labelPath).WithError(err).Warn("Skipping annotation file")
			continue
		}
		for _, o := range outcomes {
			summary.Add(o)
		}
	}

	log.WithFields(logrus.Fields{
		"written": summary.Written,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	}).Info("Completed generating image patches")
	return summary, nil
}

// ExtractImage writes one patch per annotation of a page.
//
// The returned error is an *AnnotationParseError when the annotation file is
// unusable; in that case no record is processed. Otherwise every annotation
// yields exactly one Outcome, in file order.
func (e *Extractor) ExtractImage(imagePath, labelPath, patchDir string, ledger *Ledger) ([]Outcome, error) {
	annotations, err := LoadAnnotations(labelPath)
	if err != nil {
		return nil, err
	}

	img, loadErr := e.Cache.Load(imagePath)
	defer e.Cache.Evict(imagePath)

	stem := Stem(labelPath)
	outcomes := make([]Outcome, 0, len(annotations))
	for _, a := range annotations {
		xmin := max(0, a.XMin)
		ymin := max(0, a.YMin)
		filename := PatchFilename(stem, xmin, ymin, a.XMax, a.YMax, e.PatchExt)
		rec := PatchRecord{Filename: filename, Text: a.Text}

		var o Outcome
		if loadErr != nil {
			o = Outcome{Record: rec, Status: StatusFailed, Err: &PatchWriteError{Filename: filename, Cause: loadErr}}
		} else {
			o = e.writePatch(img, rec, xmin, ymin, a.XMax, a.YMax, filepath.Join(patchDir, filename), ledger)
		}

		if o.Err != nil {
			e.Logger.WithField("patch", filename).WithError(o.Err).Warn("Failed to save patch")
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

func (e *Extractor) writePatch(img image.Image, rec PatchRecord, xmin, ymin, xmax, ymax int, savePath string, ledger *Ledger) Outcome {
	if _, err := os.Stat(savePath); err == nil {
		return Outcome{Record: rec, Status: StatusSkipped}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Outcome{Record: rec, Status: StatusFailed, Err: &PatchWriteError{Filename: rec.Filename, Cause: err}}
	}

	patch, err := imaging.CropPatch(img, xmin, ymin, xmax, ymax)
	if err != nil {
		return Outcome{Record: rec, Status: StatusFailed, Err: &PatchWriteError{Filename: rec.Filename, Cause: err}}
	}
	if err := imaging.SavePatch(patch, savePath); err != nil {
		return Outcome{Record: rec, Status: StatusFailed, Err: &PatchWriteError{Filename: rec.Filename, Cause: err}}
	}

	// A patch without its ledger row would be skipped forever on re-run.
	if err := ledger.Append(rec); err != nil {
		os.Remove(savePath)
		return Outcome{Record: rec, Status: StatusFailed, Err: &PatchWriteError{Filename: rec.Filename, Cause: err}}
	}

	return Outcome{Record: rec, Status: StatusWritten}
}

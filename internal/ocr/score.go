package ocr

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
)

// Prediction is the recognition result of one ledger row.
type Prediction struct {
	Filename  string  `json:"filename"`
	Reference string  `json:"reference"`
	Predicted string  `json:"predicted"`
	CER       float64 `json:"cer"`
}

// BaselineReport summarizes recognition over a ledger.
type BaselineReport struct {
	Ledger      string       `json:"ledger"`
	Patches     int          `json:"patches"`
	Recognized  int          `json:"recognized"`
	Failed      int          `json:"failed"`
	ExactMatch  int          `json:"exact_match"`
	Accuracy    float64      `json:"accuracy"`
	MeanCER     float64      `json:"mean_cer"`
	Predictions []Prediction `json:"predictions,omitempty"`
}

// ScoreLedger recognizes every patch of a split directory (the directory
// holding labels.csv and images/) and compares the output to the ledger.
func ScoreLedger(ctx context.Context, splitDir string, r Recognizer, logger logrus.FieldLogger) (*BaselineReport, error) {
	ledgerPath := filepath.Join(splitDir, dataset.LedgerName)
	records, err := dataset.ReadLedger(ledgerPath)
	if err != nil {
		return nil, err
	}

	report := &BaselineReport{Ledger: ledgerPath, Patches: len(records)}
	cers := make([]float64, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		predicted, err := r.Recognize(filepath.Join(splitDir, "images", rec.Filename))
		if err != nil {
			report.Failed++
			logger.WithField("patch", rec.Filename).WithError(err).Warn("Recognition failed")
			continue
		}

		p := Prediction{
			Filename:  rec.Filename,
			Reference: rec.Text,
			Predicted: predicted,
			CER:       CER(rec.Text, predicted),
		}
		if normalize(p.Predicted) == normalize(p.Reference) {
			report.ExactMatch++
		}
		cers = append(cers, p.CER)
		report.Predictions = append(report.Predictions, p)
	}

	report.Recognized = len(cers)
	if report.Recognized > 0 {
		report.Accuracy = float64(report.ExactMatch) / float64(report.Recognized)
		report.MeanCER = stat.Mean(cers, nil)
	}
	return report, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CER returns the character error rate of predicted against reference:
// the rune-level edit distance divided by the reference length. An empty
// reference gives 0 for an empty prediction and 1 otherwise.
func CER(reference, predicted string) float64 {
	ref := []rune(normalize(reference))
	hyp := []rune(normalize(predicted))
	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return 1
	}
	return float64(editDistance(ref, hyp)) / float64(len(ref))
}

// editDistance is the Levenshtein distance using two rolling rows.
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

package ocr

import (
	"context"
	"errors"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
)

func TestCER(t *testing.T) {
	tests := []struct {
		ref, hyp string
		want     float64
	}{
		{"안녕하세요", "안녕하세요", 0},
		{"안녕하세요", "안녕하세오", 0.2},
		{"word", "", 1},
		{"", "", 0},
		{"", "x", 1},
		{"abc", "abcd", 1.0 / 3.0},
		{"kitten", "sitting", 0.5},
		{" spaced  out ", "spaced out", 0},
	}

	for _, tt := range tests {
		t.Run(tt.ref+"/"+tt.hyp, func(t *testing.T) {
			if got := CER(tt.ref, tt.hyp); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CER(%q, %q) = %v, want %v", tt.ref, tt.hyp, got, tt.want)
			}
		})
	}
}

func writeLedger(t *testing.T, records []dataset.PatchRecord) string {
	t.Helper()
	dir := t.TempDir()
	ledger, err := dataset.OpenLedger(filepath.Join(dir, dataset.LedgerName))
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range records {
		if err := ledger.Append(rec); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScoreLedger(t *testing.T) {
	dir := writeLedger(t, []dataset.PatchRecord{
		{Filename: "a.jpg", Text: "가나"},
		{Filename: "b.jpg", Text: "다라마바"},
		{Filename: "c.jpg", Text: "사"},
	})

	outputs := map[string]string{"a.jpg": "가나", "b.jpg": "다라마"}
	r := RecognizerFunc(func(path string) (string, error) {
		if filepath.Dir(path) != filepath.Join(dir, "images") {
			t.Errorf("unexpected patch path %s", path)
		}
		if out, ok := outputs[filepath.Base(path)]; ok {
			return out, nil
		}
		return "", errors.New("unreadable patch")
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	report, err := ScoreLedger(context.Background(), dir, r, logger)
	if err != nil {
		t.Fatalf("ScoreLedger failed: %v", err)
	}

	if report.Patches != 3 || report.Recognized != 2 || report.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", report.Patches, report.Recognized, report.Failed)
	}
	if report.ExactMatch != 1 || report.Accuracy != 0.5 {
		t.Errorf("ExactMatch = %d, Accuracy = %v", report.ExactMatch, report.Accuracy)
	}
	if math.Abs(report.MeanCER-0.125) > 1e-9 {
		t.Errorf("MeanCER = %v, want 0.125", report.MeanCER)
	}
}

func TestScoreLedger_MissingLedger(t *testing.T) {
	r := RecognizerFunc(func(string) (string, error) { return "", nil })
	if _, err := ScoreLedger(context.Background(), t.TempDir(), r, logrus.New()); err == nil {
		t.Error("expected error for missing ledger")
	}
}

func TestScoreLedger_Cancelled(t *testing.T) {
	dir := writeLedger(t, []dataset.PatchRecord{{Filename: "a.jpg", Text: "x"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := RecognizerFunc(func(string) (string, error) { return "x", nil })
	if _, err := ScoreLedger(ctx, dir, r, logrus.New()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

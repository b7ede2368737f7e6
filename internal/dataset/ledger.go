package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// LedgerHeader is the first row of every label ledger.
var LedgerHeader = []string{"filename", "words"}

// PatchRecord is one ledger row: a patch file name and its transcription.
type PatchRecord struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// Ledger is the append-only CSV label ledger of one split.
//
// The file is opened in append mode for every row, so no handle outlives a
// write. Appends are serialized by a mutex; a Ledger value must be shared by
// every writer of the same file.
type Ledger struct {
	mu   sync.Mutex
	path string
}

// OpenLedger returns the ledger at path, creating it with its header row
// when the file is missing or empty. Existing rows are kept.
func OpenLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0):
		if err := writeRows(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, LedgerHeader); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to stat ledger: %w", err)
	}

	return &Ledger{path: path}, nil
}

// Path returns the ledger file path.
func (l *Ledger) Path() string { return l.path }

// Append writes one row to the end of the ledger.
func (l *Ledger) Append(rec PatchRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return writeRows(l.path, os.O_APPEND|os.O_WRONLY, []string{rec.Filename, rec.Text})
}

func writeRows(path string, flag int, rows ...[]string) error {
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write ledger row: %w", err)
	}
	return f.Close()
}

// ReadLedger returns the records of a ledger file, without its header.
func ReadLedger(path string) ([]PatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(LedgerHeader)

	records := make([]PatchRecord, 0)
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger %s: %w", path, err)
		}
		if first {
			first = false
			if row[0] == LedgerHeader[0] && row[1] == LedgerHeader[1] {
				continue
			}
		}
		records = append(records, PatchRecord{Filename: row[0], Text: row[1]})
	}

	return records, nil
}

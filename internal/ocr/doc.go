// Package ocr runs a Tesseract baseline over word patches and scores it
// against the label ledger.
//
// Recognition uses gosseract/v2 in single-line page segmentation mode, since
// every patch holds one word. Tesseract and the language data for the
// configured language must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-kor
//   - macOS: brew install tesseract tesseract-lang
//
// # Scoring
//
// ScoreLedger recognizes every patch listed in a split's labels.csv and
// reports exact-match accuracy and the mean character error rate (edit
// distance over runes divided by the reference length). Patches that fail
// recognition are counted and excluded from both figures.
//
// The Recognizer interface decouples scoring from Tesseract so a ledger can
// be scored with any recognition backend.
package ocr

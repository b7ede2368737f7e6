package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer reads the text of one patch file.
type Recognizer interface {
	Recognize(path string) (string, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(path string) (string, error)

// Recognize calls f(path).
func (f RecognizerFunc) Recognize(path string) (string, error) { return f(path) }

// Tesseract recognizes single-line patches with the given language.
type Tesseract struct {
	Language string
}

// Recognize performs OCR on a patch file.
func (t *Tesseract) Recognize(path string) (string, error) {
	return Recognize(path, t.Language)
}

// Recognize performs single-line OCR on an image file and returns the
// recognized text with surrounding whitespace removed.
//
// Parameters:
//   - path: image file path. Supports PNG, JPEG, TIFF, BMP.
//   - language: Tesseract language code (e.g., "kor"). The language data
//     must be installed on the system.
func Recognize(path string, language string) (string, error) {
	client, err := newClient(language)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	return text(client)
}

// RecognizeImage performs single-line OCR on an in-memory image.
// The image is PNG-encoded and handed to Tesseract without a temp file.
func RecognizeImage(img image.Image, language string) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client, err := newClient(language)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	return text(client)
}

func newClient(language string) (*gosseract.Client, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return client, nil
}

func text(client *gosseract.Client) (string, error) {
	out, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

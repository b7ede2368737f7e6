package detection

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blend"
)

const (
	// TextThreshold is the intensity above which a text-map pixel is foreground.
	TextThreshold uint8 = 120

	// LinkThreshold is the intensity above which a link-map pixel is foreground.
	LinkThreshold uint8 = 160
)

// Threshold binarizes a score map. Pixels strictly greater than level become
// 255, all others 0. The returned mask has its origin at (0, 0).
func Threshold(scoreMap *image.Gray, level uint8) *image.Gray {
	bounds := scoreMap.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	mask := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		src := scoreMap.Pix[y*scoreMap.Stride : y*scoreMap.Stride+width]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x, v := range src {
			if v > level {
				dst[x] = 255
			}
		}
	}

	return mask
}

// CombineMasks adds two binary masks. The sum saturates, so a pixel is
// foreground whenever either input is foreground.
func CombineMasks(a, b *image.Gray) (*image.Gray, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return nil, fmt.Errorf("mask sizes differ: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}

	sum := blend.Add(a, b)
	bounds := sum.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	mask := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		row := sum.Pix[y*sum.Stride : y*sum.Stride+width*4]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x := range dst {
			if row[x*4] != 0 {
				dst[x] = 255
			}
		}
	}

	return mask, nil
}

// WordMask thresholds the text and link maps at their fixed levels and
// merges them into a single foreground mask.
func WordMask(textMap, linkMap *image.Gray) (*image.Gray, error) {
	return CombineMasks(Threshold(textMap, TextThreshold), Threshold(linkMap, LinkThreshold))
}

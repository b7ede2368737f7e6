package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// PatchJPEGQuality is the JPEG quality used for patch files.
const PatchJPEGQuality = 100

// CropPatch extracts the region [x1,x2) x [y1,y2) from an image.
//
// The region follows array-slice semantics: the parts of the rectangle that
// fall outside the image are cut off, and only a region with no pixels left
// is an error. Callers clamp the lower corner before cropping.
func CropPatch(img image.Image, x1, y1, x2, y2 int) (image.Image, error) {
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region (%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2",
			x1, y1, x2, y2)
	}

	bounds := img.Bounds()
	region := image.Rect(x1, y1, x2, y2).Add(bounds.Min).Intersect(bounds)
	if region.Empty() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			x1, y1, x2, y2, bounds.Dx(), bounds.Dy())
	}

	return imaging.Crop(img, region), nil
}

// SupportedPatchExt reports whether patches can be written with the given
// file extension (including the leading dot).
func SupportedPatchExt(ext string) bool {
	_, err := imaging.FormatFromExtension(strings.TrimPrefix(strings.ToLower(ext), "."))
	return err == nil && ext != ""
}

// SavePatch encodes a patch to path, creating parent directories as needed.
// The format follows the file extension; JPEG output uses PatchJPEGQuality.
func SavePatch(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create patch directory: %w", err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(PatchJPEGQuality)); err != nil {
		return fmt.Errorf("failed to save patch %s: %w", path, err)
	}
	return nil
}

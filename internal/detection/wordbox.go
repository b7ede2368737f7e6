package detection

import (
	"fmt"
	"image"
	"math"
)

// DefaultAreaThreshold is the minimum pixel count of a word blob.
const DefaultAreaThreshold = 300

// marginScale converts the fill/squareness ratio of a blob into pixels.
const marginScale = 2.2

// WordBox is a word-level bounding box in pixel coordinates.
// XMin/YMin are inclusive, XMax/YMax exclusive.
type WordBox struct {
	XMin int `json:"xmin"`
	XMax int `json:"xmax"`
	YMin int `json:"ymin"`
	YMax int `json:"ymax"`
}

// Rect returns the box as an image.Rectangle.
func (b WordBox) Rect() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax)
}

// DegenerateComponentWarning reports a component with zero width or height.
// Such components have no defined margin and are dropped.
type DegenerateComponentWarning struct {
	Component Component
}

func (w *DegenerateComponentWarning) Error() string {
	return fmt.Sprintf("degenerate component %d: %dx%d at (%d,%d)",
		w.Component.Label, w.Component.Width, w.Component.Height, w.Component.XMin, w.Component.YMin)
}

// WordBoxesResult contains the boxes built from one pair of score maps.
type WordBoxesResult struct {
	// Boxes are in label-discovery order.
	Boxes []WordBox `json:"boxes"`
	Count int       `json:"count"`

	// Components is the number of labeled blobs before filtering.
	Components int `json:"components"`

	// BelowThreshold is the number of blobs dropped by the area filter.
	BelowThreshold int `json:"below_threshold"`

	// Warnings lists the degenerate components that were dropped.
	Warnings []*DegenerateComponentWarning `json:"-"`
}

// BuildWordBoxes converts a text map and a link map into word boxes.
//
// Parameters:
//   - textMap, linkMap: score maps with values 0-255, same size as the page.
//   - width, height: page size used to clip the expanded boxes.
//   - areaThreshold: blobs with fewer pixels are discarded. Values <= 0
//     disable the filter.
//
// Each surviving blob is expanded on every side by Margin and clipped to
// [0,width] x [0,height]. All-zero maps produce an empty result, not an error.
// Maps whose size differs from each other or from the page are rejected.
func BuildWordBoxes(textMap, linkMap *image.Gray, width, height, areaThreshold int) (*WordBoxesResult, error) {
	result, _, err := BuildWordBoxesWithLabels(textMap, linkMap, width, height, areaThreshold)
	return result, err
}

// BuildWordBoxesWithLabels is BuildWordBoxes that also returns the label
// map of the combined mask, for debug rendering.
func BuildWordBoxesWithLabels(textMap, linkMap *image.Gray, width, height, areaThreshold int) (*WordBoxesResult, *LabelMap, error) {
	if textMap.Bounds().Dx() != width || textMap.Bounds().Dy() != height {
		return nil, nil, fmt.Errorf("text map is %dx%d, page is %dx%d",
			textMap.Bounds().Dx(), textMap.Bounds().Dy(), width, height)
	}

	mask, err := WordMask(textMap, linkMap)
	if err != nil {
		return nil, nil, err
	}

	components, labels := LabelComponents(mask)
	return BoxesFromComponents(components, width, height, areaThreshold), labels, nil
}

// BoxesFromComponents applies the area filter, margin expansion and clipping
// to already labeled components, preserving their order.
func BoxesFromComponents(components []Component, width, height, areaThreshold int) *WordBoxesResult {
	result := &WordBoxesResult{
		Boxes:      make([]WordBox, 0, len(components)),
		Components: len(components),
	}

	for _, c := range components {
		if c.PixelCount < areaThreshold {
			result.BelowThreshold++
			continue
		}

		margin, ok := Margin(c)
		if !ok {
			result.Warnings = append(result.Warnings, &DegenerateComponentWarning{Component: c})
			continue
		}

		result.Boxes = append(result.Boxes, WordBox{
			XMin: max(0, c.XMin-margin),
			YMin: max(0, c.YMin-margin),
			XMax: min(width, c.XMin+c.Width+margin),
			YMax: min(height, c.YMin+c.Height+margin),
		})
	}

	result.Count = len(result.Boxes)
	return result
}

// Margin returns the adaptive margin of a component:
//
//	floor(sqrt(PixelCount * min(Width, Height) / (Width * Height)) * 2.2)
//
// Dense, square blobs get a larger margin than sparse, elongated ones.
// ok is false for components with zero width or height.
func Margin(c Component) (margin int, ok bool) {
	raw, ok := rawMargin(c)
	if !ok {
		return 0, false
	}
	return int(math.Floor(raw)), true
}

func rawMargin(c Component) (float64, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return 0, false
	}
	ratio := float64(c.PixelCount) * float64(min(c.Width, c.Height)) / float64(c.Width*c.Height)
	return math.Sqrt(ratio) * marginScale, true
}

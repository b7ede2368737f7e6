// Package evaluation scores word boxes built from score maps against
// ground-truth annotations.
package evaluation

import (
	"fmt"
	"image"
	"path/filepath"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/ocr-dataset-prep/internal/dataset"
	"github.com/ironsheep/ocr-dataset-prep/internal/detection"
	"github.com/ironsheep/ocr-dataset-prep/internal/imaging"
)

// DefaultIoUThreshold is the minimum IoU for a prediction to count as a hit.
const DefaultIoUThreshold = 0.5

// Page is one evaluation page: its score maps, size and ground truth.
type Page struct {
	Name        string
	TextMap     *image.Gray
	LinkMap     *image.Gray
	Width       int
	Height      int
	GroundTruth []detection.WordBox
}

// PageResult holds the scores of one page.
type PageResult struct {
	Name        string  `json:"name"`
	Predicted   int     `json:"predicted"`
	GroundTruth int     `json:"ground_truth"`
	Matched     int     `json:"matched"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	HMean       float64 `json:"hmean"`
}

// Report aggregates page results. Precision, Recall and HMean are computed
// from the summed counts; MeanIoU averages every accepted match.
type Report struct {
	IoUThreshold float64      `json:"iou_threshold"`
	Pages        []PageResult `json:"pages"`
	Predicted    int          `json:"predicted"`
	GroundTruth  int          `json:"ground_truth"`
	Matched      int          `json:"matched"`
	Precision    float64      `json:"precision"`
	Recall       float64      `json:"recall"`
	HMean        float64      `json:"hmean"`
	MeanIoU      float64      `json:"mean_iou"`

	// MeanPageHMean is the unweighted mean of the per-page H-means.
	MeanPageHMean float64 `json:"mean_page_hmean"`
}

// Evaluate builds word boxes for every page and matches them to the
// ground truth.
func Evaluate(pages []Page, iouThreshold float64, areaThreshold int) (*Report, error) {
	report := &Report{
		IoUThreshold: iouThreshold,
		Pages:        make([]PageResult, 0, len(pages)),
	}

	var ious, hmeans []float64
	for _, page := range pages {
		boxes, err := detection.BuildWordBoxes(page.TextMap, page.LinkMap, page.Width, page.Height, areaThreshold)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Name, err)
		}

		matches := detection.MatchBoxes(boxes.Boxes, page.GroundTruth, iouThreshold)
		for _, m := range matches {
			ious = append(ious, m.IoU)
		}

		result := PageResult{
			Name:        page.Name,
			Predicted:   len(boxes.Boxes),
			GroundTruth: len(page.GroundTruth),
			Matched:     len(matches),
		}
		result.Precision, result.Recall, result.HMean = scores(result.Matched, result.Predicted, result.GroundTruth)
		hmeans = append(hmeans, result.HMean)

		report.Pages = append(report.Pages, result)
		report.Predicted += result.Predicted
		report.GroundTruth += result.GroundTruth
		report.Matched += result.Matched
	}

	report.Precision, report.Recall, report.HMean = scores(report.Matched, report.Predicted, report.GroundTruth)
	if len(ious) > 0 {
		report.MeanIoU = stat.Mean(ious, nil)
	}
	if len(hmeans) > 0 {
		report.MeanPageHMean = stat.Mean(hmeans, nil)
	}
	return report, nil
}

// scores returns precision, recall and their harmonic mean. An empty side
// scores 1 when the other side is empty too, and 0 otherwise.
func scores(matched, predicted, groundTruth int) (precision, recall, hmean float64) {
	precision = ratio(matched, predicted, groundTruth == 0)
	recall = ratio(matched, groundTruth, predicted == 0)
	if precision+recall > 0 {
		hmean = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, hmean
}

func ratio(n, d int, emptyOK bool) float64 {
	if d == 0 {
		if emptyOK {
			return 1
		}
		return 0
	}
	return float64(n) / float64(d)
}

// MapPaths returns the text and link score map paths of a page stem.
func MapPaths(mapsDir, stem string) (text, link string) {
	return filepath.Join(mapsDir, stem+"_text.png"), filepath.Join(mapsDir, stem+"_link.png")
}

// LoadPage assembles an evaluation page from a page image, its score maps
// under mapsDir and its annotation file.
func LoadPage(cache *imaging.ImageCache, mapsDir, imagePath string) (Page, error) {
	stem := dataset.Stem(imagePath)
	textPath, linkPath := MapPaths(mapsDir, stem)

	textMap, err := imaging.LoadScoreMap(textPath)
	if err != nil {
		return Page{}, err
	}
	linkMap, err := imaging.LoadScoreMap(linkPath)
	if err != nil {
		return Page{}, err
	}

	dims, err := imaging.GetDimensions(cache, imagePath)
	if err != nil {
		return Page{}, err
	}
	cache.Evict(imagePath)

	annotations, err := dataset.LoadAnnotations(dataset.LabelPathFor(imagePath))
	if err != nil {
		return Page{}, err
	}

	return Page{
		Name:        stem,
		TextMap:     textMap,
		LinkMap:     linkMap,
		Width:       dims.Width,
		Height:      dims.Height,
		GroundTruth: GroundTruthBoxes(annotations),
	}, nil
}

// GroundTruthBoxes converts annotations to word boxes.
func GroundTruthBoxes(annotations []dataset.Annotation) []detection.WordBox {
	boxes := make([]detection.WordBox, len(annotations))
	for i, a := range annotations {
		boxes[i] = detection.WordBox{XMin: a.XMin, XMax: a.XMax, YMin: a.YMin, YMax: a.YMax}
	}
	return boxes
}

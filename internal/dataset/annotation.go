package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Annotation is one ground-truth word: its box and transcription.
// XMax and YMax are exclusive.
type Annotation struct {
	XMin int    `json:"xmin"`
	YMin int    `json:"ymin"`
	XMax int    `json:"xmax"`
	YMax int    `json:"ymax"`
	Text string `json:"text"`
}

type annotationFile struct {
	Annotations []struct {
		BBox []float64 `json:"annotation.bbox"`
		Text *string   `json:"annotation.text"`
	} `json:"annotations"`
}

// LoadAnnotations reads an annotation file and converts each
// [x, y, width, height] box to (XMin, YMin, XMax, YMax).
//
// Any structural problem (unreadable file, invalid JSON, a missing
// "annotations" list, a bbox without exactly four integral numbers, a missing
// text) yields an *AnnotationParseError and no annotations.
func LoadAnnotations(path string) ([]Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AnnotationParseError{Path: path, Message: "cannot read file", Cause: err}
	}
	return ParseAnnotations(path, data)
}

// ParseAnnotations parses annotation JSON; path is only used in errors.
func ParseAnnotations(path string, data []byte) ([]Annotation, error) {
	var file annotationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &AnnotationParseError{Path: path, Message: "invalid JSON", Cause: err}
	}
	if file.Annotations == nil {
		return nil, &AnnotationParseError{Path: path, Message: `missing "annotations" list`}
	}

	annotations := make([]Annotation, 0, len(file.Annotations))
	for i, a := range file.Annotations {
		if len(a.BBox) != 4 {
			return nil, &AnnotationParseError{
				Path:    path,
				Message: fmt.Sprintf("annotation %d: bbox has %d values, want 4", i, len(a.BBox)),
			}
		}
		var box [4]int
		for j, v := range a.BBox {
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return nil, &AnnotationParseError{
					Path:    path,
					Message: fmt.Sprintf("annotation %d: bbox value %v is not an integer", i, v),
				}
			}
			box[j] = int(v)
		}
		if a.Text == nil {
			return nil, &AnnotationParseError{Path: path, Message: fmt.Sprintf("annotation %d: missing text", i)}
		}

		annotations = append(annotations, Annotation{
			XMin: box[0],
			YMin: box[1],
			XMax: box[0] + box[2],
			YMax: box[1] + box[3],
			Text: *a.Text,
		})
	}

	return annotations, nil
}

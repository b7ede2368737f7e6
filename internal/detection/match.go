package detection

import "sort"

// IoU returns the intersection-over-union of two boxes, 0 when they do not overlap.
func IoU(a, b WordBox) float64 {
	ix := min(a.XMax, b.XMax) - max(a.XMin, b.XMin)
	iy := min(a.YMax, b.YMax) - max(a.YMin, b.YMin)
	if ix <= 0 || iy <= 0 {
		return 0
	}
	inter := ix * iy
	union := area(a) + area(b) - inter
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func area(b WordBox) int {
	if b.XMax <= b.XMin || b.YMax <= b.YMin {
		return 0
	}
	return (b.XMax - b.XMin) * (b.YMax - b.YMin)
}

// Match pairs a predicted box with a ground-truth box.
type Match struct {
	Predicted   int     `json:"predicted"`
	GroundTruth int     `json:"ground_truth"`
	IoU         float64 `json:"iou"`
}

// MatchBoxes greedily matches predictions to ground truth one-to-one.
//
// All pairs with IoU >= threshold are considered in descending IoU order
// (ties broken by prediction index, then ground-truth index) and a pair is
// accepted when neither side is matched yet.
func MatchBoxes(predicted, groundTruth []WordBox, threshold float64) []Match {
	candidates := make([]Match, 0)
	for i, p := range predicted {
		for j, g := range groundTruth {
			if iou := IoU(p, g); iou >= threshold && iou > 0 {
				candidates = append(candidates, Match{Predicted: i, GroundTruth: j, IoU: iou})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].IoU > candidates[j].IoU
	})

	usedPred := make(map[int]bool)
	usedGT := make(map[int]bool)
	matches := make([]Match, 0)
	for _, c := range candidates {
		if usedPred[c.Predicted] || usedGT[c.GroundTruth] {
			continue
		}
		usedPred[c.Predicted] = true
		usedGT[c.GroundTruth] = true
		matches = append(matches, c)
	}

	return matches
}

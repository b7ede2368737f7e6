// Package detection turns text-detection score maps into word bounding boxes.
//
// A text-detection network produces two probability maps per page: a "text"
// channel that lights up on character strokes and a "link" channel that
// lights up on the gaps between characters of the same word. This package
// binarizes both channels, merges them into a single word mask, labels the
// 4-connected blobs of that mask and converts every sufficiently large blob
// into a margin-expanded, image-clipped WordBox.
//
// # Pipeline
//
//  1. Threshold: text map at 120, link map at 160 (strictly greater is foreground)
//  2. CombineMasks: pixelwise sum of both masks, any non-zero pixel is foreground
//  3. LabelComponents: raster-order 4-connectivity labeling with per-blob stats
//  4. BuildWordBoxes: area filter, adaptive margin, expand and clip
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - XMin/YMin are inclusive, XMax/YMax are exclusive
//
// # Ordering
//
// Boxes are returned in label-discovery order, which is the raster-scan order
// of the first pixel of every blob. No other sort is applied, so the output
// is reproducible for identical inputs.
//
// # Evaluation
//
// IoU and MatchBoxes compare predicted boxes against ground-truth boxes for
// detection evaluation.
package detection

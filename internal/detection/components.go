package detection

import "image"

// Component is a maximal set of foreground pixels connected under
// 4-adjacency, described by its bounding box and pixel count.
type Component struct {
	// Label is the 1-based label assigned in discovery order. Label 0 is the
	// background and is never reported.
	Label int `json:"label"`

	XMin   int `json:"xmin"`
	YMin   int `json:"ymin"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// PixelCount is the number of foreground pixels in the blob.
	PixelCount int `json:"pixel_count"`
}

// LabelMap holds the per-pixel label of a labeled mask, row-major.
type LabelMap struct {
	Width  int
	Height int
	Labels []int32
}

// At returns the label at (x, y), or 0 outside the map.
func (m *LabelMap) At(x, y int) int {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return int(m.Labels[y*m.Width+x])
}

type pixel struct{ x, y int }

// LabelComponents labels the 4-connected foreground blobs of a binary mask.
//
// Any non-zero pixel is foreground. The mask is scanned in raster order and
// each unlabeled foreground pixel starts a new component, so labels (and the
// returned slice) follow the order in which blobs are first met.
func LabelComponents(mask *image.Gray) ([]Component, *LabelMap) {
	bounds := mask.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	lm := &LabelMap{
		Width:  width,
		Height: height,
		Labels: make([]int32, width*height),
	}

	components := make([]Component, 0)
	stack := make([]pixel, 0, 64)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.Pix[y*mask.Stride+x] == 0 || lm.Labels[y*width+x] != 0 {
				continue
			}
			label := len(components) + 1
			components = append(components, fillComponent(mask, lm, x, y, label, stack[:0]))
		}
	}

	return components, lm
}

// fillComponent flood-fills one blob from its first pixel and collects its
// statistics. The stack is explicit so large blobs cannot overflow the
// goroutine stack.
func fillComponent(mask *image.Gray, lm *LabelMap, startX, startY, label int, stack []pixel) Component {
	width, height := lm.Width, lm.Height
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	count := 0

	lm.Labels[startY*width+startX] = int32(label)
	stack = append(stack, pixel{startX, startY})

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}

		for _, n := range [4]pixel{{p.x - 1, p.y}, {p.x + 1, p.y}, {p.x, p.y - 1}, {p.x, p.y + 1}} {
			if n.x < 0 || n.x >= width || n.y < 0 || n.y >= height {
				continue
			}
			idx := n.y*width + n.x
			if lm.Labels[idx] != 0 || mask.Pix[n.y*mask.Stride+n.x] == 0 {
				continue
			}
			lm.Labels[idx] = int32(label)
			stack = append(stack, n)
		}
	}

	return Component{
		Label:      label,
		XMin:       minX,
		YMin:       minY,
		Width:      maxX - minX + 1,
		Height:     maxY - minY + 1,
		PixelCount: count,
	}
}

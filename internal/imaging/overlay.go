package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DrawBoxes renders rectangles and their 0-based index labels on a copy of img.
//
// boxColorHex is a "#RRGGBB" or "#RRGGBBAA" color; an invalid value falls
// back to opaque red. thickness below 1 is treated as 1.
func DrawBoxes(img image.Image, boxes []image.Rectangle, boxColorHex string, thickness int) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	boxColor, err := parseHexColor(boxColorHex)
	if err != nil {
		boxColor = color.RGBA{255, 0, 0, 255}
	}
	if thickness < 1 {
		thickness = 1
	}

	labelColor := color.RGBA{255, 255, 255, 255}
	bgColor := color.RGBA{0, 0, 0, 180}

	for i, r := range boxes {
		strokeRect(result, r, boxColor, thickness)
		drawLabel(result, r.Min.X+1, r.Min.Y+1, strconv.Itoa(i), labelColor, bgColor)
	}

	return result
}

// strokeRect draws the outline of r, thickness pixels wide, inside r.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for t := 0; t < thickness; t++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, r.Min.Y+t, c)
			img.SetRGBA(x, r.Max.Y-1-t, c)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.SetRGBA(r.Min.X+t, y, c)
			img.SetRGBA(r.Max.X-1-t, y, c)
		}
	}
}

// ColorizeLabels renders a component label map, one color per label.
//
// labels is row-major with width*height entries. Label 0 (background) is
// black; other labels cycle through hues spaced by the golden angle so that
// neighbouring labels get distinct colors.
func ColorizeLabels(labels []int32, width, height int) (*image.RGBA, error) {
	if len(labels) != width*height {
		return nil, fmt.Errorf("label map has %d entries, want %dx%d", len(labels), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	palette := make(map[int32]color.RGBA)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			label := labels[y*width+x]
			if label == 0 {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
				continue
			}
			c, ok := palette[label]
			if !ok {
				c = labelColor(label)
				palette[label] = c
			}
			img.SetRGBA(x, y, c)
		}
	}

	return img, nil
}

func labelColor(label int32) color.RGBA {
	hue := math.Mod(float64(label)*137.508, 360)
	r, g, b := colorful.Hsv(hue, 0.75, 0.95).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// drawLabel draws a digit label with a 3x5 pixel font at the given position
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(bounds) {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if image.Pt(px, py).In(bounds) {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}

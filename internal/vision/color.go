package vision

import (
	"context"
	"image"
	"image/color"
	"sort"

	"github.com/nfnt/resize"
)

const (
	colorSampleSize = 150
	dominantColors  = 5
	colorConfidence = 0.5
	colorMaxResults = 5
)

type paletteEntry struct {
	rgb         [3]int
	ingredients []string
}

// palette is searched in order; the first entry at the smallest distance wins.
var palette = []paletteEntry{
	{[3]int{255, 0, 0}, []string{"tomato", "red pepper", "strawberry"}},
	{[3]int{200, 0, 0}, []string{"tomato", "red chili"}},
	{[3]int{0, 255, 0}, []string{"lettuce", "spinach", "green pepper"}},
	{[3]int{0, 128, 0}, []string{"broccoli", "green beans", "cucumber"}},
	{[3]int{255, 165, 0}, []string{"carrot", "orange", "pumpkin"}},
	{[3]int{255, 140, 0}, []string{"carrot", "sweet potato"}},
	{[3]int{255, 255, 0}, []string{"corn", "banana", "lemon"}},
	{[3]int{255, 215, 0}, []string{"corn", "squash"}},
	{[3]int{139, 69, 19}, []string{"potato", "onion", "mushroom"}},
	{[3]int{160, 82, 45}, []string{"bread", "wheat", "rice"}},
	{[3]int{255, 255, 255}, []string{"rice", "flour", "milk", "egg"}},
}

// ColorAnalyzer guesses ingredients from an image's dominant colors. It needs
// no credentials and is the last resort when remote providers are missing or
// failing.
type ColorAnalyzer struct{}

// NewColorAnalyzer returns the local color heuristic.
func NewColorAnalyzer() *ColorAnalyzer {
	return &ColorAnalyzer{}
}

func (ColorAnalyzer) Name() string     { return "color" }
func (ColorAnalyzer) Configured() bool { return true }

// Identify maps each of the five most frequent colors to its nearest palette
// entry and returns up to five distinct ingredients at fixed confidence.
func (ColorAnalyzer) Identify(ctx context.Context, img *Image) ([]Ingredient, error) {
	var found []Ingredient
	for _, c := range DominantColors(img.Decoded, dominantColors) {
		for _, name := range nearest(c).ingredients {
			found = append(found, Ingredient{Name: name, Confidence: colorConfidence, Source: "color_analysis"})
		}
	}

	found = Dedupe(found)
	if len(found) > colorMaxResults {
		found = found[:colorMaxResults]
	}
	return found, nil
}

// DominantColors returns up to n colors of img ordered by pixel count, after
// scaling img to a fixed sample size.
func DominantColors(img image.Image, n int) [][3]int {
	sample := resize.Resize(colorSampleSize, colorSampleSize, img, resize.NearestNeighbor)

	counts := map[[3]int]int{}
	b := sample.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(sample.At(x, y)).(color.RGBA)
			counts[[3]int{int(c.R), int(c.G), int(c.B)}]++
		}
	}

	colors := make([][3]int, 0, len(counts))
	for c := range counts {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool {
		if counts[colors[i]] != counts[colors[j]] {
			return counts[colors[i]] > counts[colors[j]]
		}
		return lessRGB(colors[i], colors[j])
	})

	if len(colors) > n {
		colors = colors[:n]
	}
	return colors
}

func nearest(c [3]int) paletteEntry {
	best, bestDist := palette[0], -1
	for _, p := range palette {
		d := 0
		for i := range 3 {
			diff := c[i] - p.rgb[i]
			d += diff * diff
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func lessRGB(a, b [3]int) bool {
	for i := range 3 {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

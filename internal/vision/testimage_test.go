package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// stripes builds a PNG whose left share of columns is left and the rest right.
func stripes(t *testing.T, w, h, leftCols int, left, right color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < leftCols {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solid(t *testing.T, w, h int, c color.RGBA) []byte {
	return stripes(t, w, h, w, c, c)
}

var (
	red    = color.RGBA{R: 250, A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	orange = color.RGBA{R: 255, G: 160, A: 255}
)

package motor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb33f/glam/catgen"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderThumbnail_Dimensions(t *testing.T) {
	data := solidPNG(t, 40, 40, color.NRGBA{R: 0xff, A: 0xff})

	rendered, err := RenderThumbnail(data, 10, 5)
	require.NoError(t, err)

	lines := strings.Split(rendered, "\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 10, strings.Count(line, upperHalfBlock))
	}
}

func TestRenderThumbnail_KeepsAspect(t *testing.T) {
	// a wide image fits the width, leaving fewer rows
	data := solidPNG(t, 80, 20, color.White)

	rendered, err := RenderThumbnail(data, 8, 8)
	require.NoError(t, err)

	lines := strings.Split(rendered, "\n")
	assert.Len(t, lines, 1)
	assert.Equal(t, 8, strings.Count(lines[0], upperHalfBlock))
}

func TestRenderThumbnail_Errors(t *testing.T) {
	_, err := RenderThumbnail([]byte("not an image"), 4, 4)
	assert.Error(t, err)

	_, err = RenderThumbnail(nil, 4, 4)
	assert.Error(t, err)

	_, err = RenderThumbnail(solidPNG(t, 2, 2, color.White), 0, 4)
	assert.Error(t, err)
}

func TestRenderThumbnail_Swatch(t *testing.T) {
	data, err := catgen.SwatchPNG(1, 32)
	require.NoError(t, err)

	rendered, err := RenderThumbnailFunc(6, 3)(data)
	require.NoError(t, err)
	assert.NotEmpty(t, rendered)
}

func TestAverageColor(t *testing.T) {
	avg, err := AverageColor(solidPNG(t, 4, 4, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}))
	require.NoError(t, err)
	assert.Equal(t, "#123456", avg)

	// fully transparent pixels composite to white
	avg, err = AverageColor(solidPNG(t, 4, 4, color.NRGBA{}))
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", avg)
}

package catgen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"
)

// SwatchPNG renders a deterministic colour swatch for a product id: a vertical
// gradient between two shades picked from the id, useful as a stand-in product shot.
func SwatchPNG(id, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid swatch size %d", size)
	}

	top := swatchColor(id)
	bottom := color.NRGBA{R: top.R / 2, G: top.G / 2, B: top.B / 2, A: 0xff}

	img := imaging.New(size, size, top)
	for y := 0; y < size; y++ {
		t := float64(y) / float64(lo.Max([]int{size - 1, 1}))
		row := color.NRGBA{
			R: mix(top.R, bottom.R, t),
			G: mix(top.G, bottom.G, t),
			B: mix(top.B, bottom.B, t),
			A: 0xff,
		}
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, row)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, image.Image(img), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}
	return buf.Bytes(), nil
}

// makeup-ish palette: reds, pinks, nudes, plums
var swatchPalette = []color.NRGBA{
	{R: 0xc2, G: 0x1e, B: 0x56, A: 0xff},
	{R: 0xe8, G: 0x8f, B: 0xa5, A: 0xff},
	{R: 0xd2, G: 0xa6, B: 0x8c, A: 0xff},
	{R: 0x8e, G: 0x44, B: 0x5a, A: 0xff},
	{R: 0xb5, G: 0x65, B: 0x1d, A: 0xff},
	{R: 0xf4, G: 0xc2, B: 0xc2, A: 0xff},
	{R: 0x5d, G: 0x3a, B: 0x60, A: 0xff},
	{R: 0xff, G: 0x6f, B: 0x61, A: 0xff},
}

func swatchColor(id int) color.NRGBA {
	if id < 0 {
		id = -id
	}
	return swatchPalette[id%len(swatchPalette)]
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

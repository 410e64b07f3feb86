package motor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const upperHalfBlock = "▀"

// DecodeImage decodes PNG, JPEG, GIF or WebP bytes, honouring EXIF orientation.
func DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// RenderThumbnail fits the image into width x height terminal cells, using one
// upper-half block per cell so each cell carries two vertical pixels.
func RenderThumbnail(data []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid thumbnail size %dx%d", width, height)
	}

	img, err := DecodeImage(data)
	if err != nil {
		return "", err
	}

	fitted := imaging.Fit(img, width, height*2, imaging.Lanczos)
	bounds := fitted.Bounds()

	var out strings.Builder
	out.Grow(bounds.Dx() * bounds.Dy() * 24)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := flatten(fitted.At(x, y))
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = flatten(fitted.At(x, y+1))
			}
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			out.WriteString(cell.Render(upperHalfBlock))
		}
		if y+2 < bounds.Max.Y {
			out.WriteString("\n")
		}
	}

	return out.String(), nil
}

// RenderThumbnailFunc adapts RenderThumbnail to a ThumbnailRenderer of a fixed size.
func RenderThumbnailFunc(width, height int) ThumbnailRenderer {
	return func(data []byte) (string, error) {
		return RenderThumbnail(data, width, height)
	}
}

// AverageColor returns the mean colour of the image as "#rrggbb".
func AverageColor(data []byte) (string, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return "", err
	}

	// a 1x1 resize is a box average over the whole image
	pixel := imaging.Resize(img, 1, 1, imaging.Box)
	return hexColor(flatten(pixel.At(0, 0))), nil
}

// flatten composites a pixel over white so transparent product shots stay legible.
func flatten(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return n
	}
	a := uint32(n.A)
	blend := func(v uint8) uint8 {
		return uint8((uint32(v)*a + 0xff*(0xff-a)) / 0xff)
	}
	return color.NRGBA{R: blend(n.R), G: blend(n.G), B: blend(n.B), A: 0xff}
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

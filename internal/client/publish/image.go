package publish

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// writeBlankImage writes a single-colour PNG of the given size. Used as the
// placeholder preview when a first publish has no image to show.
func writeBlankImage(path string, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0x2b, G: 0x2d, B: 0x31, A: 0xff}}, image.Point{}, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

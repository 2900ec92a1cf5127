// Public domain.

// Package calib turns a published probability figure into a probability
// grid.
//
// A figure is read as a raster image together with a narrow colorbar
// swatch.  Map converts pixel colors to probabilities through the colorbar,
// marking overlay text and similar artifacts as unknown, and an Inpainter
// fills the unknown cells from their neighbors.
package calib

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// RGB is a color sample with 8 bit channel values held as floats.
type RGB [3]float64

// ReadImage decodes a PNG, JPEG, BMP or TIFF file.
func ReadImage(fn string) (image.Image, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", fn)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, errors.Errorf("%s: empty %s image", fn, format)
	}
	return img, nil
}

// rgbAt returns the non-premultiplied color of img at (x, y).  Alpha is
// dropped.
func rgbAt(img image.Image, x, y int) RGB {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return RGB{float64(c.R), float64(c.G), float64(c.B)}
}

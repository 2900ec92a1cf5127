// Public domain.

package calib

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// WhiteLuminance is the luminance, on a 0 to 100 scale, above which a pixel
// is taken to be overlay text or a boundary line rather than data.
const WhiteLuminance = 90

// Luminance returns the mean channel value of c scaled to 0..100.
func Luminance(c RGB) float64 {
	return (c[0] + c[1] + c[2]) / 3 / 255 * 100
}

// Map converts img to a probability grid with one cell per pixel, rows
// top to bottom.
//
// Pixels brighter than WhiteLuminance, and their eight neighbors, are
// unknown and hold NaN.  Every other cell gets the probability of the
// nearest colorbar sample.
func Map(img image.Image, cb *Colorbar) (*mat.Dense, error) {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	if rows == 0 || cols == 0 {
		return nil, errors.New("empty calibration image")
	}
	px := make([]RGB, rows*cols)
	white := make([]bool, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := rgbAt(img, b.Min.X+c, b.Min.Y+r)
			px[r*cols+c] = p
			white[r*cols+c] = Luminance(p) > WhiteLuminance
		}
	}
	unknown := dilate(white, rows, cols)
	m := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if unknown[r*cols+c] {
				m.Set(r, c, math.NaN())
			} else {
				m.Set(r, c, cb.Probability(px[r*cols+c]))
			}
		}
	}
	return m, nil
}

// dilate grows a mask by one cell in all eight directions.
func dilate(mask []bool, rows, cols int) []bool {
	out := make([]bool, len(mask))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !mask[r*cols+c] {
				continue
			}
			for i := max(r-1, 0); i <= min(r+1, rows-1); i++ {
				for j := max(c-1, 0); j <= min(c+1, cols-1); j++ {
					out[i*cols+j] = true
				}
			}
		}
	}
	return out
}

// Unknown counts the NaN cells of m.
func Unknown(m mat.Matrix) int {
	rows, cols := m.Dims()
	n := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if math.IsNaN(m.At(r, c)) {
				n++
			}
		}
	}
	return n
}

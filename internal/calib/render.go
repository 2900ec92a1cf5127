// Public domain.

package calib

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Render draws a probability grid with the colors of cb, the inverse of
// Map.  Unknown cells are white.
func Render(m mat.Matrix, cb *Colorbar) *image.NRGBA {
	rows, cols := m.Dims()
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if math.IsNaN(v) {
				img.SetNRGBA(c, r, color.NRGBA{255, 255, 255, 255})
				continue
			}
			s := cb.Colors[cb.index(v)]
			img.SetNRGBA(c, r, color.NRGBA{
				uint8(math.Round(s[0])), uint8(math.Round(s[1])), uint8(math.Round(s[2])), 255})
		}
	}
	return img
}

// index returns the sample with probability nearest p.
func (cb *Colorbar) index(p float64) int {
	n := len(cb.Probs)
	top := cb.Probs[0]
	if n == 1 || top == 0 {
		return 0
	}
	i := int(math.RoundToEven((top - p) / top * float64(n-1)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

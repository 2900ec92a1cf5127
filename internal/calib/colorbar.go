// Public domain.

package calib

import (
	"image"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Colorbar associates color samples, top to bottom, with probabilities
// falling linearly from a maximum at the top to zero at the bottom.
type Colorbar struct {
	Colors []RGB
	Probs  []float64
}

// NewColorbar returns a Colorbar for colors ordered top to bottom.
func NewColorbar(colors []RGB, maxProb float64) (*Colorbar, error) {
	if len(colors) == 0 {
		return nil, errors.New("colorbar has no samples")
	}
	probs := make([]float64, len(colors))
	if len(probs) == 1 {
		probs[0] = maxProb
	} else {
		floats.Span(probs, maxProb, 0)
	}
	return &Colorbar{Colors: colors, Probs: probs}, nil
}

// ColorbarFromSwatch samples the center column of a colorbar swatch image.
func ColorbarFromSwatch(img image.Image, maxProb float64) (*Colorbar, error) {
	b := img.Bounds()
	x := b.Min.X + b.Dx()/2
	colors := make([]RGB, 0, b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		colors = append(colors, rgbAt(img, x, y))
	}
	return NewColorbar(colors, maxProb)
}

// Nearest returns the index of the sample closest to c in RGB space.  Ties
// go to the lowest index, the highest probability.
func (cb *Colorbar) Nearest(c RGB) int {
	best, bestD := 0, dist2(cb.Colors[0], c)
	for i := 1; i < len(cb.Colors); i++ {
		if d := dist2(cb.Colors[i], c); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// Probability returns the probability of the sample nearest to c.
func (cb *Colorbar) Probability(c RGB) float64 {
	return cb.Probs[cb.Nearest(c)]
}

func dist2(a, b RGB) float64 {
	r, g, bl := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return r*r + g*g + bl*bl
}

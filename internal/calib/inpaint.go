// Public domain.

package calib

import (
	"context"
	"image"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Inpainting defaults.
const (
	MaxPasses = 20
	Window    = 1    // half width of the neighborhood
	MinKnown  = .3   // fraction of the full window that must be known
	WeightEps = 1e-8 // added to every neighbor weight
)

// Inpainter fills unknown (NaN) cells of a grid from known neighbors.
//
// Each pass looks at the (2*Window+1)² neighborhood of every unknown cell,
// clipped at the grid edges.  When more than MinKnown of the full
// neighborhood size is known, the cell becomes the weighted mean of the
// known neighbors with weight -d²/2 + WeightEps for a neighbor at distance
// d.  All cells of a pass are computed from the grid as it stood at the
// start of the pass.
//
// Note the weight is negative for every neighbor, which weights distant
// neighbors more heavily than near ones.  Existing grids were built with
// this weight.
type Inpainter struct {
	MaxPasses int                // zero means MaxPasses
	Log       logrus.FieldLogger // nil means logrus.StandardLogger()
}

// Result reports the work done by Fill.
type Result struct {
	Passes     int // passes that filled at least one cell
	Unresolved int // cells still unknown
}

type fill struct {
	r, c int
	v    float64
}

// Fill inpaints m in place.
//
// Passes stop when no unknown cells remain, when a pass fills nothing, or
// after MaxPasses.  Cells left unknown are reported in Result and logged
// at Warn level; they are not an error.  ctx is checked between passes.
func (p Inpainter) Fill(ctx context.Context, m *mat.Dense) (Result, error) {
	maxPasses := p.MaxPasses
	if maxPasses <= 0 {
		maxPasses = MaxPasses
	}
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	rows, cols := m.Dims()
	var unknown [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if math.IsNaN(m.At(r, c)) {
				unknown = append(unknown, [2]int{r, c})
			}
		}
	}
	side := 2*Window + 1
	need := float64(side*side) * MinKnown
	var res Result
	values := make([]float64, 0, side*side)
	weights := make([]float64, 0, side*side)
	for len(unknown) > 0 && res.Passes < maxPasses {
		if err := ctx.Err(); err != nil {
			res.Unresolved = len(unknown)
			return res, errors.Wrapf(err, "inpainting stopped after %d passes",
				res.Passes)
		}
		var filled []fill
		remain := unknown[:0]
		for _, u := range unknown {
			r, c := u[0], u[1]
			values, weights = values[:0], weights[:0]
			for i := max(r-Window, 0); i <= min(r+Window, rows-1); i++ {
				for j := max(c-Window, 0); j <= min(c+Window, cols-1); j++ {
					v := m.At(i, j)
					if math.IsNaN(v) {
						continue
					}
					di, dj := float64(i-r), float64(j-c)
					values = append(values, v)
					weights = append(weights, -(di*di+dj*dj)/2+WeightEps)
				}
			}
			if float64(len(values)) > need {
				filled = append(filled, fill{r, c, stat.Mean(values, weights)})
			} else {
				remain = append(remain, u)
			}
		}
		if len(filled) == 0 {
			break
		}
		for _, f := range filled {
			m.Set(f.r, f.c, f.v)
		}
		unknown = remain
		res.Passes++
		log.WithFields(logrus.Fields{
			"pass":    res.Passes,
			"unknown": len(unknown),
		}).Debug("inpainting pass")
	}
	res.Unresolved = len(unknown)
	if res.Unresolved > 0 {
		log.WithFields(logrus.Fields{
			"passes":     res.Passes,
			"unresolved": res.Unresolved,
		}).Warn("inpainting left unknown cells")
	}
	return res, nil
}

// Calibrate maps img through cb and inpaints the result.
func Calibrate(ctx context.Context, img image.Image, cb *Colorbar, p Inpainter) (*mat.Dense, Result, error) {
	m, err := Map(img, cb)
	if err != nil {
		return nil, Result{}, err
	}
	res, err := p.Fill(ctx, m)
	return m, res, err
}

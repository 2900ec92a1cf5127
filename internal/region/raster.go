// Public domain.

package region

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/pkg/errors"

	"github.com/jdep/jdep/internal/dambin"
)

// Definition is a region outline in image pixel coordinates, X to the
// right and Y down.
type Definition struct {
	Name    string
	Bit     uint8
	Polygon []geom.Point
}

// Validate checks that d can be rasterized.
func (d Definition) Validate() error {
	if len(d.Polygon) < 3 {
		return errors.Wrapf(ErrInvalidInput, "region %s: %d vertices, need at least 3",
			d.Name, len(d.Polygon))
	}
	if d.Bit == 0 || d.Bit > 64 || d.Bit&(d.Bit-1) != 0 {
		return errors.Wrapf(ErrInvalidInput, "region %s: bit %d is not a power of two in 1..64",
			d.Name, d.Bit)
	}
	return nil
}

// Rasterize ORs the bit of each definition into every cell of a rows×cols
// grid whose pixel coordinates (column, row) fall inside or on the edge of
// the definition's polygon.  Regions may overlap.
//
// All definitions are validated before any is rasterized.
func Rasterize(defs []Definition, rows, cols int) (*dambin.BitmaskGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "grid size %dx%d", rows, cols)
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	g := dambin.NewBitmaskGrid(rows, cols)
	for _, d := range defs {
		poly := geom.Polygon{d.Polygon}
		b := poly.Bounds()
		r0 := max(int(math.Ceil(b.Min.Y)), 0)
		r1 := min(int(math.Floor(b.Max.Y)), rows-1)
		c0 := max(int(math.Ceil(b.Min.X)), 0)
		c1 := min(int(math.Floor(b.Max.X)), cols-1)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				p := geom.Point{X: float64(c), Y: float64(r)}
				if p.Within(poly) != geom.Outside {
					g.Or(r, c, d.Bit)
				}
			}
		}
	}
	return g, nil
}

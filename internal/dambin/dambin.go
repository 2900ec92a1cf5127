// Public domain.

// Package dambin defines the lookup grids used by jdep and the two builder
// programs mkmap and mkregions.
//
// Grids are indexed by (row, column) with columns spanning central meridian
// longitude 0 to 360 degrees left to right, and rows spanning satellite
// phase 360 to 0 degrees top to bottom, the orientation of the published
// figures.
package dambin

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Asset file names within a data directory.
const (
	AllFile            = "probability_map_all.gob"
	NonIoFile          = "probability_map_nonio.gob"
	IoRegionFile       = "region_bitmask_io.gob"
	GanymedeRegionFile = "region_bitmask_nonio.gob"
)

var (
	// ErrDimensions is returned when grids used together differ in size or
	// a grid is internally inconsistent.
	ErrDimensions = errors.New("grid dimensions")
	// ErrUnresolved is returned for a probability grid holding unknown cells.
	ErrUnresolved = errors.New("unresolved grid cells")
)

// Project maps a central meridian longitude and a phase, both in degrees,
// to the nearest cell of a rows×cols grid.  The cell is clamped to the grid.
func Project(rows, cols int, cml, phase float64) (r, c int) {
	c = int(math.RoundToEven(cml / 360 * float64(cols-1)))
	r = int(math.RoundToEven((1 - phase/360) * float64(rows-1)))
	return clamp(r, rows), clamp(c, cols)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Median3 returns the median of the 3×3 window centered on (r, c).
// Indexes outside the grid are clamped to the nearest edge, so the median
// is always taken over nine values.
func Median3(at func(r, c int) float64, rows, cols, r, c int) float64 {
	var w [9]float64
	n := 0
	for i := r - 1; i <= r+1; i++ {
		for j := c - 1; j <= c+1; j++ {
			w[n] = at(clamp(i, rows), clamp(j, cols))
			n++
		}
	}
	sort.Float64s(w[:])
	return stat.Quantile(.5, stat.Empirical, w[:], nil)
}

// CMLAxis returns the central meridian longitude of each of n columns.
func CMLAxis(n int) []float64 {
	return axis(n, 0, 360)
}

// PhaseAxis returns the phase of each of n rows.
func PhaseAxis(n int) []float64 {
	return axis(n, 360, 0)
}

func axis(n int, l, u float64) []float64 {
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{l}
	}
	return floats.Span(make([]float64, n), l, u)
}

// ProbabilityGrid holds emission probabilities in percent.  All cells are
// resolved.
type ProbabilityGrid struct {
	m *mat.Dense
}

// NewProbabilityGrid wraps m.  It is an error for m to hold NaN cells.
// m must not be modified afterward.
func NewProbabilityGrid(m *mat.Dense) (*ProbabilityGrid, error) {
	rows, cols := m.Dims()
	n := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if math.IsNaN(m.At(r, c)) {
				n++
			}
		}
	}
	if n > 0 {
		return nil, errors.Wrapf(ErrUnresolved, "%d of %d cells", n, rows*cols)
	}
	return &ProbabilityGrid{m}, nil
}

// Dims returns the grid size.
func (g *ProbabilityGrid) Dims() (rows, cols int) { return g.m.Dims() }

// At returns the probability of cell (r, c).
func (g *ProbabilityGrid) At(r, c int) float64 { return g.m.At(r, c) }

// Matrix returns a read only view of the grid.
func (g *ProbabilityGrid) Matrix() mat.Matrix { return g.m }

// Sample returns the windowed median probability at (cml, phase).
func (g *ProbabilityGrid) Sample(cml, phase float64) float64 {
	rows, cols := g.m.Dims()
	r, c := Project(rows, cols, cml, phase)
	return Median3(g.m.At, rows, cols, r, c)
}

// CMLAxis returns the central meridian longitude of each column.
func (g *ProbabilityGrid) CMLAxis() []float64 {
	_, cols := g.m.Dims()
	return CMLAxis(cols)
}

// PhaseAxis returns the phase of each row.
func (g *ProbabilityGrid) PhaseAxis() []float64 {
	rows, _ := g.m.Dims()
	return PhaseAxis(rows)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (g *ProbabilityGrid) MarshalBinary() ([]byte, error) {
	return g.m.MarshalBinary()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (g *ProbabilityGrid) UnmarshalBinary(data []byte) error {
	var m mat.Dense
	if err := m.UnmarshalBinary(data); err != nil {
		return errors.Wrap(ErrDimensions, err.Error())
	}
	p, err := NewProbabilityGrid(&m)
	if err != nil {
		return err
	}
	*g = *p
	return nil
}

// BitmaskGrid holds region membership bits, row major.
type BitmaskGrid struct {
	Rows, Cols int
	Bits       []uint8
}

// NewBitmaskGrid allocates a zeroed grid.
func NewBitmaskGrid(rows, cols int) *BitmaskGrid {
	return &BitmaskGrid{rows, cols, make([]uint8, rows*cols)}
}

// Dims returns the grid size.
func (g *BitmaskGrid) Dims() (rows, cols int) { return g.Rows, g.Cols }

// At returns the bits of cell (r, c).
func (g *BitmaskGrid) At(r, c int) uint8 { return g.Bits[r*g.Cols+c] }

// Or sets bits in cell (r, c).
func (g *BitmaskGrid) Or(r, c int, bits uint8) { g.Bits[r*g.Cols+c] |= bits }

// Sample returns the windowed median bitmask at (cml, phase), rounded to
// the nearest integer.
func (g *BitmaskGrid) Sample(cml, phase float64) uint8 {
	r, c := Project(g.Rows, g.Cols, cml, phase)
	m := Median3(func(r, c int) float64 { return float64(g.At(r, c)) },
		g.Rows, g.Cols, r, c)
	return uint8(math.RoundToEven(m))
}

func (g *BitmaskGrid) validate() error {
	if g.Rows <= 0 || g.Cols <= 0 || len(g.Bits) != g.Rows*g.Cols {
		return errors.Wrapf(ErrDimensions, "bitmask %dx%d with %d cells",
			g.Rows, g.Cols, len(g.Bits))
	}
	return nil
}

// Dataset is the set of grids used together to answer queries.  A Dataset
// is read only and safe for concurrent use.
type Dataset struct {
	AllEmission     *ProbabilityGrid // all emission, indexed by Io phase
	NonIoEmission   *ProbabilityGrid // non-Io emission, by Ganymede phase
	IoRegions       *BitmaskGrid
	GanymedeRegions *BitmaskGrid
}

// NewDataset checks that the four grids agree in size.
func NewDataset(all, nonIo *ProbabilityGrid, io, ganymede *BitmaskGrid) (*Dataset, error) {
	if all == nil || nonIo == nil || io == nil || ganymede == nil {
		return nil, errors.New("dataset needs all four grids")
	}
	for _, b := range []*BitmaskGrid{io, ganymede} {
		if err := b.validate(); err != nil {
			return nil, err
		}
	}
	rows, cols := all.Dims()
	nr, nc := nonIo.Dims()
	for _, d := range []struct {
		name       string
		rows, cols int
	}{
		{"non-Io probability", nr, nc},
		{"Io regions", io.Rows, io.Cols},
		{"Ganymede regions", ganymede.Rows, ganymede.Cols},
	} {
		if d.rows != rows || d.cols != cols {
			return nil, errors.Wrapf(ErrDimensions, "%s grid is %dx%d, want %dx%d",
				d.name, d.rows, d.cols, rows, cols)
		}
	}
	return &Dataset{all, nonIo, io, ganymede}, nil
}

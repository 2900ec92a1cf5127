// Public domain.

package dambin_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/jdep/jdep/internal/dambin"
)

func probGrid(t *testing.T, rows, cols int, f func(r, c int) float64) *dambin.ProbabilityGrid {
	m := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, f(r, c))
		}
	}
	g, err := dambin.NewProbabilityGrid(m)
	require.NoError(t, err)
	return g
}

func TestProject(t *testing.T) {
	r, c := dambin.Project(801, 801, 180, 90)
	assert.Equal(t, 600, r)
	assert.Equal(t, 400, c)
	r, c = dambin.Project(801, 801, 0, 0)
	assert.Equal(t, 800, r)
	assert.Equal(t, 0, c)
	// halves round to even
	_, c = dambin.Project(3, 3, 90, 0)
	assert.Equal(t, 0, c)
	_, c = dambin.Project(3, 3, 270, 0)
	assert.Equal(t, 2, c)
}

func TestMedianOutlier(t *testing.T) {
	g := probGrid(t, 5, 5, func(r, c int) float64 {
		if r == 2 && c == 2 {
			return 99
		}
		return 7
	})
	assert.Equal(t, 7., g.Sample(180, 180))
}

func TestMedianEdge(t *testing.T) {
	g := probGrid(t, 4, 4, func(r, c int) float64 { return float64(r*4 + c) })
	// 0 0 0 0 1 1 4 4 5
	assert.Equal(t, 1., dambin.Median3(g.At, 4, 4, 0, 0))
	// 10 11 11 14 14 15 15 15 15
	assert.Equal(t, 14., g.Sample(359.9, 0))
}

func TestBitmaskSample(t *testing.T) {
	g := dambin.NewBitmaskGrid(5, 5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if r != 2 || c != 2 {
				g.Or(r, c, 1)
				g.Or(r, c, 32)
			}
		}
	}
	assert.Equal(t, uint8(0), g.At(2, 2))
	assert.Equal(t, uint8(33), g.Sample(180, 180))
}

func TestUnresolved(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, math.NaN(), 3, math.NaN()})
	_, err := dambin.NewProbabilityGrid(m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dambin.ErrUnresolved))
	assert.Contains(t, err.Error(), "2 of 4")
}

func TestDatasetDims(t *testing.T) {
	p := probGrid(t, 4, 4, func(r, c int) float64 { return 0 })
	small := probGrid(t, 4, 3, func(r, c int) float64 { return 0 })
	b := dambin.NewBitmaskGrid(4, 4)

	_, err := dambin.NewDataset(p, p, b, b)
	assert.NoError(t, err)

	_, err = dambin.NewDataset(p, small, b, b)
	assert.True(t, errors.Is(err, dambin.ErrDimensions))
	_, err = dambin.NewDataset(p, p, b, dambin.NewBitmaskGrid(3, 4))
	assert.True(t, errors.Is(err, dambin.ErrDimensions))
	_, err = dambin.NewDataset(p, p, b, &dambin.BitmaskGrid{Rows: 4, Cols: 4})
	assert.True(t, errors.Is(err, dambin.ErrDimensions))
	_, err = dambin.NewDataset(p, nil, b, b)
	assert.Error(t, err)
}

func TestAxes(t *testing.T) {
	assert.Equal(t, []float64{0, 90, 180, 270, 360}, dambin.CMLAxis(5))
	assert.Equal(t, []float64{360, 180, 0}, dambin.PhaseAxis(3))
	g := probGrid(t, 3, 5, func(r, c int) float64 { return 0 })
	assert.Len(t, g.CMLAxis(), 5)
	assert.Len(t, g.PhaseAxis(), 3)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	all := probGrid(t, 3, 4, func(r, c int) float64 { return float64(r*10 + c) })
	nonIo := probGrid(t, 3, 4, func(r, c int) float64 { return .5 })
	io := dambin.NewBitmaskGrid(3, 4)
	io.Or(1, 2, 8)
	ga := dambin.NewBitmaskGrid(3, 4)
	ga.Or(0, 0, 64)
	ds, err := dambin.NewDataset(all, nonIo, io, ga)
	require.NoError(t, err)
	require.NoError(t, dambin.WriteDir(dir, ds))

	got, err := dambin.ReadDir(dir)
	require.NoError(t, err)
	assert.True(t, mat.Equal(all.Matrix(), got.AllEmission.Matrix()))
	assert.True(t, mat.Equal(nonIo.Matrix(), got.NonIoEmission.Matrix()))
	assert.Equal(t, io, got.IoRegions)
	assert.Equal(t, ga, got.GanymedeRegions)

	_, err = dambin.ReadBitmaskFile(filepath.Join(dir, dambin.AllFile))
	assert.Error(t, err)
	_, err = dambin.ReadProbabilityFile(filepath.Join(dir, "missing.gob"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

// The published assets are not part of the source tree.
func TestPublishedAssets(t *testing.T) {
	dir := filepath.Join("..", "..", "data")
	if _, err := os.Stat(filepath.Join(dir, dambin.AllFile)); err != nil {
		t.Skip("no published assets in", dir)
	}
	ds, err := dambin.ReadDir(dir)
	require.NoError(t, err)
	rows, cols := ds.AllEmission.Dims()
	for _, g := range []*dambin.ProbabilityGrid{ds.AllEmission, ds.NonIoEmission} {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				v := g.At(r, c)
				require.True(t, v >= 0 && v <= 100, "(%d,%d) %v", r, c, v)
			}
		}
	}
}

// Public domain.

package region_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdep/jdep/internal/region"
)

func ExampleDecode() {
	fmt.Println(region.Decode(1 | 32))
	fmt.Println(region.Decode(32 | 1))
	fmt.Println(len(region.Decode(0)))
	// Output:
	// [A C]
	// [A C]
	// 0
}

func TestDecodeOrder(t *testing.T) {
	assert.Equal(t, []string{"A", "A'", `A"`, "B", "B'", "C", "D"}, region.Decode(255))
	assert.Equal(t, []string{"B", "B'"}, region.Decode(16|8))
	assert.Empty(t, region.Decode(128))
}

func TestLookup(t *testing.T) {
	r, ok := region.Lookup(`A"`)
	require.True(t, ok)
	assert.Equal(t, uint8(4), r.Bit)
	_, ok = region.Lookup("E")
	assert.False(t, ok)
}

func rect(name string, bit uint8, x0, y0, x1, y1 float64) region.Definition {
	return region.Definition{Name: name, Bit: bit, Polygon: []geom.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
}

func TestRasterizeOverlap(t *testing.T) {
	g, err := region.Rasterize([]region.Definition{
		rect("A", 1, 2, 1, 5, 3),
		rect("C", 32, 4, 2, 7, 6),
	}, 8, 10)
	require.NoError(t, err)
	for r := 0; r < 8; r++ {
		for c := 0; c < 10; c++ {
			var want uint8
			if c >= 2 && c <= 5 && r >= 1 && r <= 3 {
				want |= 1
			}
			if c >= 4 && c <= 7 && r >= 2 && r <= 6 {
				want |= 32
			}
			assert.Equal(t, want, g.At(r, c), "(%d,%d)", r, c)
		}
	}
	assert.Equal(t, []string{"A", "C"}, region.Decode(g.At(3, 5)))
}

func TestRasterizeTriangle(t *testing.T) {
	g, err := region.Rasterize([]region.Definition{{
		Name: "D", Bit: 64,
		Polygon: []geom.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8}},
	}}, 10, 10)
	require.NoError(t, err)
	n := 0
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			in := g.At(r, c) == 64
			assert.Equal(t, r+c <= 8, in, "(%d,%d)", r, c)
			if in {
				n++
			}
		}
	}
	assert.Equal(t, 45, n)
}

func TestRasterizeClipped(t *testing.T) {
	g, err := region.Rasterize([]region.Definition{rect("B", 8, -5, -5, 1, 1)}, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint8{8, 8, 0, 8, 8, 0, 0, 0, 0}, g.Bits)
}

func TestRasterizeInvalid(t *testing.T) {
	ok := rect("A", 1, 0, 0, 2, 2)
	for _, c := range []struct {
		name string
		defs []region.Definition
		rows int
	}{
		{"two vertices", []region.Definition{ok, {Name: "B", Bit: 8,
			Polygon: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}}, 4},
		{"bit 3", []region.Definition{rect("C", 3, 0, 0, 2, 2)}, 4},
		{"bit 128", []region.Definition{rect("C", 128, 0, 0, 2, 2)}, 4},
		{"bit 0", []region.Definition{rect("C", 0, 0, 0, 2, 2)}, 4},
		{"no rows", []region.Definition{ok}, 0},
	} {
		g, err := region.Rasterize(c.defs, c.rows, 4)
		assert.Nil(t, g, c.name)
		require.Error(t, err, c.name)
		assert.True(t, errors.Is(err, region.ErrInvalidInput), c.name)
	}
}

func TestFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "io.toml")
	require.NoError(t, os.WriteFile(fn, []byte(`
tag = "io"
rows = 8
cols = 10

[[region]]
name = "A"
vertices = [[2.0, 1.0], [5.0, 1.0], [5.0, 3.0], [2.0, 3.0]]

[[region]]
name = "C"
bit = 32
vertices = [[4.0, 2.0], [7.0, 2.0], [7.0, 6.0], [4.0, 6.0]]
`), 0o644))
	f, err := region.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "io", f.Tag)
	defs := f.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, rect("A", 1, 2, 1, 5, 3), defs[0])
	assert.Equal(t, rect("C", 32, 4, 2, 7, 6), defs[1])

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("tag = \"io\"\ncolumns = 3\n"), 0o644))
	_, err = region.ReadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

// Public domain.

package region

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/geom"
	"github.com/pkg/errors"
)

// File is the content of a region definition file, a TOML document such as
//
//	tag = "io"
//	rows = 800
//	cols = 800
//
//	[[region]]
//	name = "A"
//	vertices = [[10.0, 20.0], [40.0, 20.0], [40.0, 60.0]]
//
// Grid size comes from rows and cols, or else from the size of the
// reference image.  A region's bit may be omitted for names in Table.
type File struct {
	Tag       string       `toml:"tag"`
	Rows      int          `toml:"rows"`
	Cols      int          `toml:"cols"`
	Reference string       `toml:"reference"`
	Regions   []FileRegion `toml:"region"`
}

// FileRegion is one [[region]] table of a File.
type FileRegion struct {
	Name     string       `toml:"name"`
	Bit      uint8        `toml:"bit"`
	Vertices [][2]float64 `toml:"vertices"`
}

// ReadFile reads a region definition file.  Unknown keys are an error.
func ReadFile(fn string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(fn, &f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", fn)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("%s: unknown keys %s", fn, strings.Join(keys, ", "))
	}
	return &f, nil
}

// Definitions converts the regions of f.  The result is not validated.
func (f *File) Definitions() []Definition {
	defs := make([]Definition, len(f.Regions))
	for i, fr := range f.Regions {
		d := Definition{Name: fr.Name, Bit: fr.Bit}
		if d.Bit == 0 {
			if r, ok := Lookup(fr.Name); ok {
				d.Bit = r.Bit
			}
		}
		for _, v := range fr.Vertices {
			d.Polygon = append(d.Polygon, geom.Point{X: v[0], Y: v[1]})
		}
		defs[i] = d
	}
	return defs
}

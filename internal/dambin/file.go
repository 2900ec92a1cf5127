// Public domain.

package dambin

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Each asset file holds a kind string followed by one gob encoded grid.
const (
	probabilityKind = "jdep probability grid"
	bitmaskKind     = "jdep region bitmask"
)

// WriteProbabilityFile writes g to fn.
func WriteProbabilityFile(fn string, g *ProbabilityGrid) error {
	return writeFile(fn, probabilityKind, g)
}

// WriteBitmaskFile writes g to fn.
func WriteBitmaskFile(fn string, g *BitmaskGrid) error {
	if err := g.validate(); err != nil {
		return err
	}
	return writeFile(fn, bitmaskKind, g)
}

func writeFile(fn, kind string, g interface{}) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	enc := gob.NewEncoder(f)
	if err = enc.Encode(kind); err == nil {
		err = enc.Encode(g)
	}
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	return errors.Wrapf(err, "writing %s", fn)
}

// ReadProbabilityFile reads a grid written by WriteProbabilityFile.
func ReadProbabilityFile(fn string) (*ProbabilityGrid, error) {
	var g ProbabilityGrid
	if err := readFile(fn, probabilityKind, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ReadBitmaskFile reads a grid written by WriteBitmaskFile.
func ReadBitmaskFile(fn string) (*BitmaskGrid, error) {
	var g BitmaskGrid
	if err := readFile(fn, bitmaskKind, &g); err != nil {
		return nil, err
	}
	if err := g.validate(); err != nil {
		return nil, errors.Wrap(err, fn)
	}
	return &g, nil
}

func readFile(fn, kind string, g interface{}) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := gob.NewDecoder(f)
	var k string
	if err = dec.Decode(&k); err != nil {
		return errors.Wrapf(err, "reading %s", fn)
	}
	if k != kind {
		return errors.Errorf("%s holds a %s, want a %s", fn, k, kind)
	}
	return errors.Wrapf(dec.Decode(g), "reading %s", fn)
}

// ReadDir reads the four asset files from directory dir.
func ReadDir(dir string) (*Dataset, error) {
	all, err := ReadProbabilityFile(filepath.Join(dir, AllFile))
	if err != nil {
		return nil, err
	}
	nonIo, err := ReadProbabilityFile(filepath.Join(dir, NonIoFile))
	if err != nil {
		return nil, err
	}
	io, err := ReadBitmaskFile(filepath.Join(dir, IoRegionFile))
	if err != nil {
		return nil, err
	}
	ganymede, err := ReadBitmaskFile(filepath.Join(dir, GanymedeRegionFile))
	if err != nil {
		return nil, err
	}
	return NewDataset(all, nonIo, io, ganymede)
}

// WriteDir writes the four grids of ds to directory dir.
func WriteDir(dir string, ds *Dataset) error {
	if err := WriteProbabilityFile(filepath.Join(dir, AllFile), ds.AllEmission); err != nil {
		return err
	}
	if err := WriteProbabilityFile(filepath.Join(dir, NonIoFile), ds.NonIoEmission); err != nil {
		return err
	}
	if err := WriteBitmaskFile(filepath.Join(dir, IoRegionFile), ds.IoRegions); err != nil {
		return err
	}
	return WriteBitmaskFile(filepath.Join(dir, GanymedeRegionFile), ds.GanymedeRegions)
}

// Public domain.

// Package region holds the emission region table of Zarka et al. 2018
// and turns region polygons into bitmask grids.
package region

import "github.com/pkg/errors"

// Region is a named emission region with its bit in a bitmask grid.
type Region struct {
	Bit   uint8
	Label string
}

// Table lists the regions in decoding order.
var Table = []Region{
	{1, "A"},
	{2, "A'"},
	{4, `A"`},
	{8, "B"},
	{16, "B'"},
	{32, "C"},
	{64, "D"},
}

// ErrInvalidInput is returned for a region definition that cannot be
// rasterized.
var ErrInvalidInput = errors.New("invalid input")

// Decode returns the labels of the bits set in mask, in Table order.
// Bits not in Table are ignored.
func Decode(mask uint8) []string {
	var labels []string
	for _, r := range Table {
		if mask&r.Bit != 0 {
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// Lookup returns the Table entry with label name.
func Lookup(name string) (Region, bool) {
	for _, r := range Table {
		if r.Label == name {
			return r, true
		}
	}
	return Region{}, false
}

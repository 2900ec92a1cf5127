// Public domain.

// Package dam predicts Jupiter decametric emission.
//
// Predictions are lookups in the occurrence probability maps and emission
// region maps of Zarka et al. 2018, A&A 618, A84, indexed by the central
// meridian longitude of Jupiter and the orbital phase of Io or Ganymede.
package dam

import (
	"github.com/pkg/errors"

	"github.com/jdep/jdep/internal/dambin"
	"github.com/jdep/jdep/internal/ephem"
	"github.com/jdep/jdep/internal/region"
)

// Emission selects a kind of emission.
type Emission string

// Emission selectors.  Probability accepts All and NonIo, Regions accepts
// all three.
const (
	All   Emission = "all"
	Io    Emission = "io"
	NonIo Emission = "non-io"
)

// ErrInvalidArgument is returned for an unknown emission selector.
var ErrInvalidArgument = errors.New("invalid argument")

// ParseEmission validates s as an emission selector.
func ParseEmission(s string) (Emission, error) {
	switch e := Emission(s); e {
	case All, Io, NonIo:
		return e, nil
	}
	return "", errors.Wrapf(ErrInvalidArgument, "unknown emission type %q", s)
}

// Geometry is the sky geometry at an instant, in degrees.
type Geometry struct {
	CML, IoPhase, GanymedePhase float64
}

// Engine answers emission queries against a Dataset.  An Engine is safe
// for concurrent use.
type Engine struct {
	ds     *dambin.Dataset
	coords *ephem.Provider
}

// New creates an Engine.  A nil coords uses a new ephem.Provider with the
// default ephemeris.
func New(ds *dambin.Dataset, coords *ephem.Provider) *Engine {
	if coords == nil {
		coords = ephem.NewProvider(nil)
	}
	return &Engine{ds, coords}
}

// Coords returns the coordinate provider of e.
func (e *Engine) Coords() *ephem.Provider { return e.coords }

// Geometry returns the central meridian longitude and the phases of Io and
// Ganymede for in.
func (e *Engine) Geometry(in ephem.Input) (g Geometry, err error) {
	if g.CML, err = e.coords.CML(in); err != nil {
		return
	}
	if g.IoPhase, err = e.coords.Phase(in, ephem.Io); err != nil {
		return
	}
	g.GanymedePhase, err = e.coords.Phase(in, ephem.Ganymede)
	return
}

// Probability returns the probability in percent of emission of kind em
// at in.  All emission is looked up by Io phase, non-Io emission by
// Ganymede phase.
func (e *Engine) Probability(in ephem.Input, em Emission) (float64, error) {
	if em != All && em != NonIo {
		return 0, errors.Wrapf(ErrInvalidArgument,
			"emission type %q, want %q or %q", em, All, NonIo)
	}
	g, err := e.Geometry(in)
	if err != nil {
		return 0, err
	}
	return e.probability(g, em), nil
}

func (e *Engine) probability(g Geometry, em Emission) float64 {
	if em == All {
		return e.ds.AllEmission.Sample(g.CML, g.IoPhase)
	}
	return e.ds.NonIoEmission.Sample(g.CML, g.GanymedePhase)
}

// Regions returns labels of the emission regions likely active at in.
//
// Io selects Io regions, NonIo selects non-Io regions, All selects both,
// Io regions first.  Labels are the emission type followed by the region,
// "Io A" or "non-Io B'" for example.  When the probability of the
// selected emission is under the gate for em the result is empty.  When
// no region is found the result is the single label "non-Io", emission
// outside of any labeled region.
func (e *Engine) Regions(in ephem.Input, em Emission) ([]string, error) {
	if _, err := ParseEmission(string(em)); err != nil {
		return nil, err
	}
	g, err := e.Geometry(in)
	if err != nil {
		return nil, err
	}
	if gated(em, e.probability(g, All), e.probability(g, NonIo)) {
		return []string{}, nil
	}
	var labels []string
	if em != NonIo {
		labels = appendLabels(labels, "Io",
			e.ds.IoRegions.Sample(g.CML, g.IoPhase))
	}
	if em != Io {
		labels = appendLabels(labels, "non-Io",
			e.ds.GanymedeRegions.Sample(g.CML, g.GanymedePhase))
	}
	if len(labels) == 0 {
		return []string{"non-Io"}, nil
	}
	return labels, nil
}

func appendLabels(labels []string, kind string, mask uint8) []string {
	for _, r := range region.Decode(mask) {
		labels = append(labels, kind+" "+r)
	}
	return labels
}

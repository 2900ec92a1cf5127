// Public domain.

package ephem

import (
	"math"
	"strconv"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/unit"
)

// Body identifies a Galilean satellite.
type Body int

const (
	Io Body = iota + 1
	Europa
	Ganymede
	Callisto
)

func (b Body) String() string {
	switch b {
	case Io:
		return "Io"
	case Europa:
		return "Europa"
	case Ganymede:
		return "Ganymede"
	case Callisto:
		return "Callisto"
	}
	return "Body(" + strconv.Itoa(int(b)) + ")"
}

// Ephemeris supplies satellite positions relative to Jupiter.
//
// Position returns the position of b at instant t in Jupiter equatorial
// radii, with X positive toward celestial east, Y positive toward
// celestial north, and Z positive toward the Earth.
type Ephemeris interface {
	Position(b Body, t Instant) coord.Cart
}

// Phase returns the orbital phase of a satellite at position p, in degrees
// in the range [0, 360).  Phase is zero at superior conjunction, with the
// satellite behind Jupiter.
func Phase(p coord.Cart) float64 {
	return wrap360(math.Atan2(p.X, -p.Z) * 180 / math.Pi)
}

// Meeus is an Ephemeris using the lower accuracy theory of chapter 44 of
// Meeus, Astronomical Algorithms.  Positions are good to a fraction of a
// degree of orbital phase, well inside the resolution of the lookup grids.
//
// The Julian date of the instant is used as the dynamical time; the
// difference of about a minute moves Io by less than 0.2 degrees.
type Meeus struct{}

// Position implements Ephemeris.
func (Meeus) Position(b Body, t Instant) coord.Cart {
	var s [5]sat
	positions(t.JD(), &s)
	if b < Io || b > Callisto {
		return coord.Cart{}
	}
	return s[b].cart()
}

// sat holds the corrected angle u, measured from inferior conjunction,
// and the distance r in Jupiter radii.
type sat struct {
	u, r float64 // degrees, radii
	de   float64 // planetocentric declination of the Earth, degrees
}

func (s sat) cart() coord.Cart {
	u := unit.AngleFromDeg(s.u)
	su, cu := u.Sin(), u.Cos()
	return coord.Cart{
		X: -s.r * su,
		Y: -s.r * cu * unit.AngleFromDeg(s.de).Sin(),
		Z: s.r * cu,
	}
}

// positions fills s[Io] through s[Callisto] for Julian date jd.
func positions(jd float64, s *[5]sat) {
	d := jd - base.J2000
	sin := func(deg float64) float64 { return unit.AngleFromDeg(deg).Sin() }
	cos := func(deg float64) float64 { return unit.AngleFromDeg(deg).Cos() }

	V := 172.74 + .00111588*d
	M := 357.529 + .9856003*d
	sV := sin(V)
	N := 20.020 + .0830853*d + .329*sV
	J := 66.115 + .9025179*d - .329*sV
	A := 1.915*sin(M) + .020*sin(2*M)
	B := 5.555*sin(N) + .168*sin(2*N)
	K := J + A - B
	R := 1.00014 - .01671*cos(M) - .00014*cos(2*M)
	r := 5.20872 - .25208*cos(N) - .00611*cos(2*N)
	Δ := math.Sqrt(r*r + R*R - 2*r*R*cos(K))
	ψ := math.Asin(R/Δ*sin(K)) * 180 / math.Pi
	λ := 34.35 + .083091*d + .329*sV + B
	De := 3.12 * sin(λ+42.8)

	// light time correction
	dl := d - Δ/173
	u1 := 163.8069 + 203.4058646*dl + ψ - B
	u2 := 358.4140 + 101.2916335*dl + ψ - B
	u3 := 5.7176 + 50.2345180*dl + ψ - B
	u4 := 224.8092 + 21.4879800*dl + ψ - B
	G := 331.18 + 50.310482*dl
	H := 87.45 + 21.569231*dl

	s[Io] = sat{u1 + .473*sin(2*(u1-u2)), 5.9057 - .0244*cos(2*(u1-u2)), De}
	s[Europa] = sat{u2 + 1.065*sin(2*(u2-u3)), 9.3966 - .0882*cos(2*(u2-u3)), De}
	s[Ganymede] = sat{u3 + .165*sin(G), 14.9883 - .0216*cos(G), De}
	s[Callisto] = sat{u4 + .843*sin(H), 26.3627 - .1939*cos(H), De}
}

// wrap360 reduces degrees to [0, 360).
func wrap360(deg float64) float64 {
	if deg = unit.PMod(deg, 360); deg >= 360 {
		return 0
	}
	return deg
}

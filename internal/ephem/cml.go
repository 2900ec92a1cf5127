// Public domain.

package ephem

import "github.com/soniakeys/unit"

// CML computes the System III central meridian longitude of Jupiter,
// in degrees in the range [0, 360), for a Julian date.
//
// The formula is the periodic approximation published by Project Pluto
// (https://www.projectpluto.com/grs_form.htm) with the equation of center
// applied a second time, which brings results closer to the values of the
// Nançay probability tool.
func CML(jd float64) float64 {
	jupMean := unit.AngleFromDeg((jd - 2455636.938) * 360 / 4332.89709)
	eqnCenter := 5.55 * jupMean.Sin()
	angle := unit.AngleFromDeg((jd-2451870.628)*360/398.884 - eqnCenter)
	correction := 11*angle.Sin() + 5*angle.Cos() -
		1.25*jupMean.Cos() - eqnCenter
	return wrap360(138.41 + 870.4535567*jd + correction - eqnCenter)
}

// Public domain.

// Package ephem computes the sky geometry used by the emission lookup:
// Jupiter's System III central meridian longitude and the orbital phases
// of Io and Ganymede.
package ephem

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// ErrParse is returned for date input that matches none of the accepted
// layouts.
var ErrParse = errors.New("parse error")

// ISOLayouts are the accepted layouts for string input, tried in order.
// "/" in the input is read as "-" before parsing.  A fractional seconds
// field is accepted after the seconds field.
var ISOLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type inputKind uint8

const (
	isoInput inputKind = iota + 1
	civilInput
	naiveInput
	mjdInput
)

// Input is a date as supplied by a caller, before normalization.
//
// Inputs are comparable and are used directly as cache keys, so two
// different representations of the same instant are distinct keys.
type Input struct {
	kind inputKind
	text string
	sec  int64
	nsec int32
	off  int32 // zone offset, seconds east of UTC
	mjd  float64
}

// ISO returns an Input for an ISO 8601 string such as "2024-10-08 18:31:00"
// or "2024/10/08T18:31:00".  The time is UTC.
func ISO(s string) Input {
	return Input{kind: isoInput, text: s}
}

// Civil returns an Input for a zone-aware time.
func Civil(t time.Time) Input {
	_, off := t.Zone()
	return Input{kind: civilInput, sec: t.Unix(), nsec: int32(t.Nanosecond()),
		off: int32(off)}
}

// Naive returns an Input for a time with no zone.  The wall clock reading
// of t is taken as UTC and its location is ignored.
func Naive(t time.Time) Input {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	u := time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)
	return Input{kind: naiveInput, sec: u.Unix(), nsec: int32(u.Nanosecond())}
}

// MJD returns an Input for a Modified Julian Date in the UTC scale.
func MJD(mjd float64) Input {
	return Input{kind: mjdInput, mjd: mjd}
}

// String returns the input as the caller gave it.
func (in Input) String() string {
	switch in.kind {
	case isoInput:
		return in.text
	case civilInput:
		return time.Unix(in.sec, int64(in.nsec)).
			In(time.FixedZone("", int(in.off))).Format(time.RFC3339Nano)
	case naiveInput:
		return time.Unix(in.sec, int64(in.nsec)).UTC().
			Format("2006-01-02 15:04:05.999999999")
	case mjdInput:
		return "MJD " + strconv.FormatFloat(in.mjd, 'f', -1, 64)
	}
	return "<empty input>"
}

// Instant normalizes the input to UTC.
func (in Input) Instant() (Instant, error) {
	switch in.kind {
	case isoInput:
		return parseISO(in.text)
	case civilInput, naiveInput:
		return Instant{time.Unix(in.sec, int64(in.nsec)).UTC()}, nil
	case mjdInput:
		if math.IsNaN(in.mjd) || math.IsInf(in.mjd, 0) {
			return Instant{}, errors.Wrapf(ErrParse,
				"MJD %v is not a finite number", in.mjd)
		}
		return Instant{julian.JDToTime(in.mjd + base.JMod).UTC()}, nil
	}
	return Instant{}, errors.Wrap(ErrParse, "empty date input")
}

func parseISO(s string) (Instant, error) {
	d := strings.TrimSpace(strings.Replace(s, "/", "-", -1))
	for _, layout := range ISOLayouts {
		if t, err := time.ParseInLocation(layout, d, time.UTC); err == nil {
			return Instant{t}, nil
		}
	}
	return Instant{}, errors.Wrapf(ErrParse,
		"cannot parse %q as either an ISO or ISO-T time (layouts %s)",
		s, strings.Join(ISOLayouts, ", "))
}

// Instant is a point in time in UTC.  All computation in this package is
// done on Instants.
type Instant struct {
	t time.Time
}

// At returns the Instant for t.
func At(t time.Time) Instant {
	return Instant{t.UTC()}
}

// Time returns the instant as a UTC time.Time.
func (i Instant) Time() time.Time { return i.t }

// JD returns the Julian date of the instant in the UTC scale.
func (i Instant) JD() float64 { return julian.TimeToJD(i.t) }

// MJD returns the Modified Julian date of the instant.
func (i Instant) MJD() float64 { return i.JD() - base.JMod }

// String formats the instant to the nearest second.
func (i Instant) String() string {
	return i.t.Round(time.Second).Format("2006-01-02 15:04:05")
}

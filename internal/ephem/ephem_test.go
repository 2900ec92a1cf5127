// Public domain.

package ephem_test

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/jupitermoons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdep/jdep/internal/ephem"
)

// Reference geometry read from the Nançay Jupiter probability tool.  The
// tool's axes are offset from System III CML and from phase measured from
// superior conjunction; the offsets are applied here.
var geometryCases = []struct {
	date               string
	cml, io, ganymede float64
}{
	{"2024/10/08 18:31:00", 315.53 - 60, 360 - (97.96 - 10), 360 - (35.08 - 10)},
	{"2024/10/10 09:31:00", 290.26 - 60, 360 - (127.1 - 10), 360 - (313.47 - 10)},
	{"2024/10/12 03:31:00", 373.83 - 60, 360 - (130.93 - 10), 360 - (225.56 - 10)},
	{"2025/03/08 22:31:00", 157.16 - 60, 360 - (289.25 - 10), 360 - (340.27 - 10)},
	{"2025/03/08 23:31:00", 193.42 - 60, 360 - (280.79 - 10), 360 - (338.38 - 10)},
	{"2025/03/09 13:31:00", 341.13 - 60, 360 - (162.72 - 10), 360 - (309.15 - 10)},
}

// angleDiff returns the absolute difference of two angles in degrees,
// accounting for wrap around.
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}

func TestReferenceGeometry(t *testing.T) {
	p := ephem.NewProvider(nil)
	for _, c := range geometryCases {
		in := ephem.ISO(c.date)
		cml, err := p.CML(in)
		require.NoError(t, err)
		io, err := p.Phase(in, ephem.Io)
		require.NoError(t, err)
		ga, err := p.Phase(in, ephem.Ganymede)
		require.NoError(t, err)
		assert.Less(t, angleDiff(cml, c.cml), 3., "CML %s: %.2f", c.date, cml)
		assert.Less(t, angleDiff(io, c.io), 3., "Io %s: %.2f", c.date, io)
		assert.Less(t, angleDiff(ga, c.ganymede), 3., "Ganymede %s: %.2f", c.date, ga)
	}
}

func TestRange(t *testing.T) {
	p := ephem.NewProvider(nil)
	t0 := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2000; i++ {
		in := ephem.Civil(t0.Add(time.Duration(i) * 97 * time.Hour))
		cml, err := p.CML(in)
		require.NoError(t, err)
		assert.True(t, cml >= 0 && cml < 360, "CML %v", cml)
		for _, b := range []ephem.Body{ephem.Io, ephem.Ganymede} {
			ph, err := p.Phase(in, b)
			require.NoError(t, err)
			assert.True(t, ph >= 0 && ph < 360, "%v phase %v", b, ph)
		}
	}
}

// Example 44.a, Meeus, Astronomical Algorithms.  Meeus X is positive
// toward the west.
func TestMeeusExample(t *testing.T) {
	in := ephem.MJD(2448972.50068 - 2400000.5)
	at, err := in.Instant()
	require.NoError(t, err)
	want := map[ephem.Body]float64{
		ephem.Io:       -3.44,
		ephem.Europa:   7.44,
		ephem.Ganymede: 1.24,
		ephem.Callisto: 7.08,
	}
	for b, x := range want {
		p := ephem.Meeus{}.Position(b, at)
		assert.InDelta(t, x, -p.X, .01, "%v", b)
	}
}

func TestMeeusAgreesWithJupitermoons(t *testing.T) {
	for _, c := range geometryCases {
		at, err := ephem.ISO(c.date).Instant()
		require.NoError(t, err)
		pI, _, pIII, _ := jupitermoons.Positions(at.JD())
		io := ephem.Meeus{}.Position(ephem.Io, at)
		ga := ephem.Meeus{}.Position(ephem.Ganymede, at)
		assert.InDelta(t, pI.X, -io.X, .05, c.date)
		assert.InDelta(t, pIII.X, -ga.X, .05, c.date)
	}
}

func TestPhase(t *testing.T) {
	// behind Jupiter
	assert.InDelta(t, 0, ephem.Phase(coord.Cart{Z: -5}), 1e-12)
	// east elongation
	assert.InDelta(t, 90, ephem.Phase(coord.Cart{X: 5}), 1e-12)
	// in front of Jupiter
	assert.InDelta(t, 180, ephem.Phase(coord.Cart{Z: 5}), 1e-12)
	// west elongation
	assert.InDelta(t, 270, ephem.Phase(coord.Cart{X: -5}), 1e-12)
}

func TestInputForms(t *testing.T) {
	want := time.Date(2024, 10, 8, 18, 31, 0, 0, time.UTC)
	for _, in := range []ephem.Input{
		ephem.ISO("2024-10-08 18:31:00"),
		ephem.ISO("2024/10/08 18:31:00"),
		ephem.ISO("2024-10-08T18:31:00"),
		ephem.ISO("2024/10/08T18:31"),
		ephem.ISO("2024-10-08 18:31:00.000"),
		ephem.Civil(want.In(time.FixedZone("MDT", -6*3600))),
		ephem.Naive(time.Date(2024, 10, 8, 18, 31, 0, 0, time.FixedZone("X", 3600))),
		ephem.MJD(60591.77152777778),
	} {
		at, err := in.Instant()
		require.NoError(t, err, in.String())
		assert.WithinDuration(t, want, at.Time(), time.Millisecond, in.String())
		assert.Equal(t, time.UTC, at.Time().Location())
	}
	at, err := ephem.ISO("2024-10-08").Instant()
	require.NoError(t, err)
	assert.InDelta(t, 60591, at.MJD(), 1e-6)
	assert.InDelta(t, 2460591.5, at.JD(), 1e-6)
}

func TestParseError(t *testing.T) {
	for _, s := range []string{"", "yesterday", "2024-13-45 00:00:00", "08/10/2024"} {
		_, err := ephem.ISO(s).Instant()
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, ephem.ErrParse), s)
		assert.Contains(t, err.Error(), s)
		assert.Contains(t, err.Error(), "2006-01-02T15:04:05")
	}
	_, err := ephem.MJD(math.NaN()).Instant()
	assert.True(t, errors.Is(err, ephem.ErrParse))

	p := ephem.NewProvider(nil)
	_, err = p.CML(ephem.ISO("not a date"))
	assert.True(t, errors.Is(err, ephem.ErrParse))
	assert.Equal(t, 0, p.Stats().CML.Len, "parse failures are not cached")
}

func TestUnsupportedBody(t *testing.T) {
	p := ephem.NewProvider(nil)
	_, err := p.Phase(ephem.ISO("2024-10-08 18:31:00"), ephem.Europa)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ephem.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "Europa")
}

// countingEphemeris counts calls to Position.
type countingEphemeris struct {
	calls int
}

func (c *countingEphemeris) Position(b ephem.Body, t ephem.Instant) coord.Cart {
	c.calls++
	return ephem.Meeus{}.Position(b, t)
}

func TestMemoization(t *testing.T) {
	ce := &countingEphemeris{}
	p := ephem.NewProvider(ce)
	in := ephem.ISO("2024-10-10 09:31:00")

	a, err := p.Phase(in, ephem.Io)
	require.NoError(t, err)
	b, err := p.Phase(in, ephem.Io)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, ce.calls)

	c1, err := p.CML(in)
	require.NoError(t, err)
	c2, err := p.CML(in)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
	st := p.Stats()
	assert.Equal(t, ephem.CacheStats{Hits: 1, Misses: 1, Len: 1}, st.CML)
	assert.Equal(t, ephem.CacheStats{Hits: 1, Misses: 1, Len: 1}, st.Io)
	assert.Equal(t, ephem.CacheStats{}, st.Ganymede)

	// same instant, different raw representation: separate slot
	_, err = p.Phase(ephem.ISO("2024/10/10 09:31:00"), ephem.Io)
	require.NoError(t, err)
	assert.Equal(t, 2, ce.calls)
}

func TestEviction(t *testing.T) {
	ce := &countingEphemeris{}
	p := ephem.NewProvider(ce)
	t0 := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	in := func(h int) ephem.Input { return ephem.Civil(t0.Add(time.Duration(h) * time.Hour)) }

	for h := 0; h < ephem.CacheSize; h++ {
		_, err := p.Phase(in(h), ephem.Ganymede)
		require.NoError(t, err)
	}
	assert.Equal(t, ephem.CacheSize, ce.calls)

	// touch 0 so that 1 is least recently used, then overflow by one
	_, err := p.Phase(in(0), ephem.Ganymede)
	require.NoError(t, err)
	_, err = p.Phase(in(ephem.CacheSize), ephem.Ganymede)
	require.NoError(t, err)
	assert.Equal(t, ephem.CacheSize+1, ce.calls)
	assert.Equal(t, ephem.CacheSize, p.Stats().Ganymede.Len)

	_, err = p.Phase(in(0), ephem.Ganymede)
	require.NoError(t, err)
	assert.Equal(t, ephem.CacheSize+1, ce.calls, "0 survived eviction")
	_, err = p.Phase(in(1), ephem.Ganymede)
	require.NoError(t, err)
	assert.Equal(t, ephem.CacheSize+2, ce.calls, "1 was evicted")
}

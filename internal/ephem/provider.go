// Public domain.

package ephem

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// CacheSize is the capacity of each coordinate cache.
const CacheSize = 8

// ErrInvalidArgument is returned for a body the provider does not serve.
var ErrInvalidArgument = errors.New("invalid argument")

// Provider computes coordinates for date inputs, memoizing each coordinate
// function separately.
//
// Each cache holds the CacheSize most recently used inputs and evicts the
// least recently used one when full.  Caches are keyed on the Input as
// given by the caller, so ISO("2024-10-08 18:31:00") and
// ISO("2024/10/08 18:31:00") occupy separate slots even though they name
// the same instant.  Input is normalized before the cache is consulted;
// unparseable input is never cached.
//
// A Provider is safe for concurrent use.
type Provider struct {
	eph      Ephemeris
	cml      *memo
	io       *memo
	ganymede *memo
}

// NewProvider returns a Provider using eph for satellite positions.
// A nil eph selects Meeus.
func NewProvider(eph Ephemeris) *Provider {
	if eph == nil {
		eph = Meeus{}
	}
	return &Provider{
		eph:      eph,
		cml:      newMemo(),
		io:       newMemo(),
		ganymede: newMemo(),
	}
}

// CML returns the central meridian longitude in degrees for in.
func (p *Provider) CML(in Input) (float64, error) {
	t, err := in.Instant()
	if err != nil {
		return 0, err
	}
	return p.cml.get(in, func() float64 { return CML(t.JD()) }), nil
}

// Phase returns the orbital phase of b in degrees for in.  Io and Ganymede
// are served.
func (p *Provider) Phase(in Input, b Body) (float64, error) {
	var m *memo
	switch b {
	case Io:
		m = p.io
	case Ganymede:
		m = p.ganymede
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "satellite %v", b)
	}
	t, err := in.Instant()
	if err != nil {
		return 0, err
	}
	return m.get(in, func() float64 { return Phase(p.eph.Position(b, t)) }), nil
}

// Stats reports cache activity of a Provider.  Misses count computations
// actually performed.
type Stats struct {
	CML, Io, Ganymede CacheStats
}

// CacheStats counts lookups of one coordinate cache.
type CacheStats struct {
	Hits, Misses, Len int
}

// Stats returns cache counters.
func (p *Provider) Stats() Stats {
	return Stats{p.cml.stats(), p.io.stats(), p.ganymede.stats()}
}

// memo is a bounded LRU memo of one coordinate function.  The mutex
// covers lookup, computation and insertion together so a value is
// computed at most once per slot.
type memo struct {
	mu           sync.Mutex
	c            *lru.Cache[Input, float64]
	hits, misses int
}

func newMemo() *memo {
	c, err := lru.New[Input, float64](CacheSize)
	if err != nil {
		panic(err) // only for size <= 0
	}
	return &memo{c: c}
}

func (m *memo) get(in Input, compute func() float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.c.Get(in); ok {
		m.hits++
		return v
	}
	m.misses++
	v := compute()
	m.c.Add(in, v)
	return v
}

func (m *memo) stats() CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CacheStats{Hits: m.hits, Misses: m.misses, Len: m.c.Len()}
}

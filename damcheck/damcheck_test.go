// Public domain.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/jdep/jdep/internal/dam"
	"github.com/jdep/jdep/internal/dambin"
)

// engine returns an Engine over uniform grids.
func engine(t *testing.T, all, nonIo float64) *dam.Engine {
	const n = 21
	prob := func(v float64) *dambin.ProbabilityGrid {
		d := make([]float64, n*n)
		for i := range d {
			d[i] = v
		}
		g, err := dambin.NewProbabilityGrid(mat.NewDense(n, n, d))
		require.NoError(t, err)
		return g
	}
	bits := dambin.NewBitmaskGrid(n, n)
	ds, err := dambin.NewDataset(prob(all), prob(nonIo), bits, bits)
	require.NoError(t, err)
	return dam.New(ds, nil)
}

const obsLog = `# session 1
2024-10-08 18:30:00 1
2024-10-08 18:45:00 1
2024/10/08T19:00 0

2024-10-09 02:00 1
2024-10-09 02:15 0
2024-10-09 02:30 2
yesterday 1
2024-10-09 03:00
`

func TestCheck(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := engine(t, 60, 8)

	c, err := check(strings.NewReader(obsLog), e, dam.All, 30, log)
	require.NoError(t, err)
	assert.Equal(t, counts{TP: 3, FP: 2, Ignored: 3}, c)
	assert.Len(t, hook.AllEntries(), 0, "debug entries are not logged at info level")

	c, err = check(strings.NewReader(obsLog), e, dam.All, 60.5, log)
	require.NoError(t, err)
	assert.Equal(t, counts{FN: 3, TN: 2, Ignored: 3}, c)

	c, err = check(strings.NewReader(obsLog), e, dam.NonIo, 8, log)
	require.NoError(t, err)
	assert.Equal(t, counts{TP: 3, FP: 2, Ignored: 3}, c)

	_, err = check(strings.NewReader(obsLog), e, dam.Io, 30, log)
	assert.Error(t, err)
}

func TestMCC(t *testing.T) {
	assert.InDelta(t, 64/93.466, counts{TP: 6, FN: 2, FP: 1, TN: 11}.MCC(), 1e-4)
	assert.Equal(t, 1., counts{TP: 4, TN: 5}.MCC())
	assert.Equal(t, -1., counts{FN: 4, FP: 5}.MCC())
	assert.Equal(t, 0., counts{TP: 3, FP: 2}.MCC())
}

func TestReport(t *testing.T) {
	var b bytes.Buffer
	report(&b, "obs.txt", dam.NonIo, 12.5, 1, counts{TP: 6, FN: 2, FP: 1, TN: 11, Ignored: 4})
	s := b.String()
	assert.Contains(t, s, "Observation log:    obs.txt\n")
	assert.Contains(t, s, "Emission type:      non-io\n")
	assert.Contains(t, s, "Total observations: 20\n")
	assert.Contains(t, s, "Lines ignored:      4\n")
	assert.Contains(t, s, "Threshold:          12.5%\n")
	assert.Contains(t, s, "Detected                    6             2\n")
	assert.Contains(t, s, "Not detected                1            11\n")
	assert.True(t, strings.HasSuffix(s, "Matthews correlation coefficient: 0.68\n"))

	b.Reset()
	report(&b, "obs.txt", dam.All, 30, 0, counts{TP: 1})
	assert.NotContains(t, b.String(), "ignored")
}

func TestParseThreshold(t *testing.T) {
	v, p, err := parseThreshold("12.50")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)
	assert.Equal(t, 2, p)
	v, p, err = parseThreshold("30")
	require.NoError(t, err)
	assert.Equal(t, 30., v)
	assert.Equal(t, 0, p)
	_, _, err = parseThreshold("high")
	assert.Error(t, err)
}

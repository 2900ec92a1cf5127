// Public domain.

package damprog

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
	"github.com/spf13/cobra"

	"github.com/jdep/jdep/internal/dam"
	"github.com/jdep/jdep/internal/ephem"
)

func newAtCmd(opt *options) *cobra.Command {
	var mjd bool
	cmd := &cobra.Command{
		Use:   "at TIME...",
		Short: "Show geometry, probabilities and regions at given times",
		Long: `at shows, for each UTC time given, the central meridian longitude,
the phases of Io and Ganymede, the probabilities of all and of non-Io
emission, and the likely emission regions.

Times are ISO 8601, "2024-10-08 18:31:00" or "2024-10-08T18:31:00", with
"/" accepted in place of "-".  "now" is the current time.  With --mjd,
times are Modified Julian Dates.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins := make([]ephem.Input, len(args))
			for i, a := range args {
				in, err := parseInput(a, mjd)
				if err != nil {
					return err
				}
				ins[i] = in
			}
			e, err := opt.engine()
			if err != nil {
				return err
			}
			for _, in := range ins {
				if err := report(cmd.OutOrStdout(), e, in); err != nil {
					return err
				}
			}
			logStats(e.Coords())
			return nil
		},
	}
	cmd.Flags().BoolVar(&mjd, "mjd", false, "times are Modified Julian Dates")
	return cmd
}

func parseInput(a string, mjd bool) (ephem.Input, error) {
	switch {
	case a == "now":
		return ephem.Civil(time.Now()), nil
	case mjd:
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return ephem.Input{}, errors.Wrapf(ephem.ErrParse, "MJD %q", a)
		}
		return ephem.MJD(v), nil
	}
	in := ephem.ISO(a)
	_, err := in.Instant()
	return in, err
}

// report writes one line for in.
func report(w io.Writer, e *dam.Engine, in ephem.Input) error {
	at, err := in.Instant()
	if err != nil {
		return err
	}
	g, err := e.Geometry(in)
	if err != nil {
		return err
	}
	all, err := e.Probability(in, dam.All)
	if err != nil {
		return err
	}
	nonIo, err := e.Probability(in, dam.NonIo)
	if err != nil {
		return err
	}
	regions, err := e.Regions(in, dam.All)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s  CML %.0d  Io %.0d  Ganymede %.0d  all %.0f%%  non-Io %.0f%%  %s\n",
		at, deg(g.CML), deg(g.IoPhase), deg(g.GanymedePhase),
		all, nonIo, strings.Join(regions, ", "))
	return err
}

func deg(d float64) *sexa.Angle {
	return sexa.FmtAngle(unit.AngleFromDeg(d))
}

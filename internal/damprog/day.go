// Public domain.

package damprog

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jdep/jdep/internal/dam"
	"github.com/jdep/jdep/internal/ephem"
)

// Default probability thresholds, percent, for reporting a time.
const (
	AllThreshold   = 30
	NonIoThreshold = 10
)

type sweepOptions struct {
	nonIo     bool
	step      time.Duration
	threshold float64
	workers   int
}

func newDayCmd(opt *options) *cobra.Command {
	so := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "day DATE",
		Short: "List times of likely emission on a UTC date",
		Long: `day evaluates the emission probability over a UTC date, YYYY-MM-DD or
YYYY/MM/DD, and lists the times where it reaches the threshold along
with the likely emission regions.

By default all emission is considered, with Io regions.  With --non-io,
non-Io emission and non-Io regions are considered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") && so.nonIo {
				so.threshold = NonIoThreshold
			}
			e, err := opt.engine()
			if err != nil {
				return err
			}
			day, err := ephem.ISO(args[0]).Instant()
			if err != nil {
				return err
			}
			err = sweep(cmd.OutOrStdout(), e, day.Time(), so)
			logStats(e.Coords())
			return err
		},
	}
	f := cmd.Flags()
	f.BoolVar(&so.nonIo, "non-io", false, "consider non-Io emission only")
	f.DurationVar(&so.step, "step", 15*time.Minute, "time between evaluations")
	f.Float64Var(&so.threshold, "threshold", AllThreshold,
		fmt.Sprintf("minimum probability, percent (%d with --non-io)", NonIoThreshold))
	f.IntVar(&so.workers, "workers", runtime.GOMAXPROCS(0), "concurrent evaluations")
	return cmd
}

// sample is one evaluation time.
type sample struct {
	t   time.Time
	rch chan string // result line, empty for a time under the threshold
	ech chan error
}

// sweep evaluates the day starting at day0 and writes report lines to w in
// time order.
func sweep(w io.Writer, e *dam.Engine, day0 time.Time, so *sweepOptions) error {
	if so.step <= 0 {
		return errors.Errorf("step %v must be positive", so.step)
	}
	probEm, regionEm := dam.All, dam.Io
	if so.nonIo {
		probEm, regionEm = dam.NonIo, dam.NonIo
	}
	maxWorkers := so.workers
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	// prCh keeps samples in submission order.  it is buffered so a fast
	// worker can drop off its result without waiting for workers ahead of
	// it; the buffer must hold at least maxWorkers.
	prCh := make(chan *sample, maxWorkers*2)
	seqCh := make(chan *sample)

	// dispatcher: attach result channels to each time, queue it for a
	// worker, and queue it for printing.
	go func() {
		for t := day0; t.Before(day0.AddDate(0, 0, 1)); t = t.Add(so.step) {
			s := &sample{t, make(chan string, 1), make(chan error, 1)}
			seqCh <- s
			prCh <- s
		}
		close(seqCh)
		close(prCh)
	}()

	// start workers only as the dispatcher calls for them.
	go func() {
		for n := 0; n < maxWorkers; n++ {
			s, ok := <-seqCh
			if !ok {
				return
			}
			go evaluate(e, s, seqCh, probEm, regionEm, so.threshold)
		}
	}()

	var firstErr error
	found := false
	for s := range prCh {
		select {
		case err := <-s.ech:
			if firstErr == nil {
				firstErr = err
			}
		case line := <-s.rch:
			if line > "" && firstErr == nil {
				fmt.Fprintln(w, line)
				found = true
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}
	if !found {
		fmt.Fprintf(w, "Nothing found with an emission probability above %.0f%%\n",
			so.threshold)
	}
	return nil
}

// evaluate is a worker.  The first sample is s; more come on seqCh until
// it is closed.
func evaluate(e *dam.Engine, s *sample, seqCh chan *sample,
	probEm, regionEm dam.Emission, threshold float64) {
	for ok := true; ok; s, ok = <-seqCh {
		in := ephem.Civil(s.t)
		p, err := e.Probability(in, probEm)
		if err != nil {
			s.ech <- err
			continue
		}
		if p < threshold {
			s.rch <- ""
			continue
		}
		regions, err := e.Regions(in, regionEm)
		if err != nil {
			s.ech <- err
			continue
		}
		s.rch <- fmt.Sprintf("%s with %.0f%% from %s",
			s.t.Format("2006-01-02 15:04:05"), p, strings.Join(regions, ", "))
	}
}

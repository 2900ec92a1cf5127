// Public domain.

// Package damprog is the jdep program.  It is kept out of package main so
// it can be tested.
package damprog

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"

	"github.com/jdep/jdep/internal/dam"
	"github.com/jdep/jdep/internal/dambin"
	"github.com/jdep/jdep/internal/ephem"
)

const versionString = "jdep version 0.3 Go source."
const copyrightString = "Public domain."

// Main runs jdep with the command line arguments of the process.
func Main() {
	defer exit.Handler()
	if err := NewRoot().Execute(); err != nil {
		exit.Log(err)
	}
}

type options struct {
	data    string
	verbose bool
}

// NewRoot returns the jdep command with its subcommands.
func NewRoot() *cobra.Command {
	opt := &options{}
	root := &cobra.Command{
		Use:   "jdep",
		Short: "Predict Jupiter decametric emission",
		Long: `jdep predicts Jupiter decametric emission from the occurrence
probability maps of Zarka et al. 2018, A&A 618, A84.`,
		Version:       versionString + "\n" + copyrightString,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opt.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opt.data, "data", defaultData(),
		"directory holding the probability and region grids")
	pf.BoolVarP(&opt.verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(newDayCmd(opt), newAtCmd(opt))
	return root
}

// defaultData is $JDEP_DATA, or "data".
func defaultData() string {
	if d := os.Getenv("JDEP_DATA"); d > "" {
		return d
	}
	return "data"
}

// engine reads the dataset in opt.data.
func (opt *options) engine() (*dam.Engine, error) {
	ds, err := dambin.ReadDir(opt.data)
	if err != nil {
		return nil, err
	}
	rows, cols := ds.AllEmission.Dims()
	logrus.WithFields(logrus.Fields{
		"dir":  opt.data,
		"rows": rows,
		"cols": cols,
	}).Debug("dataset loaded")
	return dam.New(ds, nil), nil
}

// logStats logs cache activity of p.
func logStats(p *ephem.Provider) {
	st := p.Stats()
	for _, c := range []struct {
		name string
		s    ephem.CacheStats
	}{{"cml", st.CML}, {"io", st.Io}, {"ganymede", st.Ganymede}} {
		logrus.WithFields(logrus.Fields{
			"cache":  c.name,
			"hits":   c.s.Hits,
			"misses": c.s.Misses,
			"len":    c.s.Len,
		}).Debug("coordinate cache")
	}
}

// Public domain.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/soniakeys/exit"

	"github.com/jdep/jdep/internal/dam"
	"github.com/jdep/jdep/internal/dambin"
	"github.com/jdep/jdep/internal/damprog"
	"github.com/jdep/jdep/internal/ephem"
)

const versionString = "damcheck version 0.3 Go source."
const copyrightString = "Public domain."

// counts is a confusion matrix.
type counts struct {
	TP, FN, FP, TN int
	Ignored        int
}

// MCC returns the Matthews correlation coefficient of c, or 0 when any
// row or column of the matrix is empty.
func (c counts) MCC() float64 {
	tp := float64(c.TP)
	fn := float64(c.FN)
	fp := float64(c.FP)
	tn := float64(c.TN)
	if d := (tp + fp) * (tp + fn) * (tn + fp) * (tn + fn); d > 0 {
		return (tp*tn - fp*fn) / math.Sqrt(d)
	}
	return 0
}

// check reads an observation log from r and scores predictions of e for
// emission type em.
func check(r io.Reader, e *dam.Engine, em dam.Emission, threshold float64,
	log logrus.FieldLogger) (c counts, err error) {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			log.WithField("line", n).Debug("ignored: no detection flag")
			c.Ignored++
			continue
		}
		last := len(f) - 1
		var detected bool
		switch f[last] {
		case "1":
			detected = true
		case "0":
		default:
			log.WithField("line", n).Debug("ignored: detection flag not 0 or 1")
			c.Ignored++
			continue
		}
		p, perr := e.Probability(ephem.ISO(strings.Join(f[:last], " ")), em)
		if perr != nil {
			if errors.Is(perr, ephem.ErrParse) {
				log.WithField("line", n).WithError(perr).Debug("ignored")
				c.Ignored++
				continue
			}
			return c, perr
		}
		predicted := p >= threshold
		switch {
		case detected && predicted:
			c.TP++
		case detected:
			c.FN++
		case predicted:
			c.FP++
		default:
			c.TN++
		}
	}
	return c, errors.WithStack(sc.Err())
}

// report writes statistics in the form of the classic mcc report.
func report(w io.Writer, fn string, em dam.Emission, threshold float64, prec int, c counts) {
	fmt.Fprintln(w, "\nObservation log:   ", fn)
	fmt.Fprintln(w, "Emission type:     ", em)
	fmt.Fprintln(w, "Total observations:", c.TP+c.FN+c.FP+c.TN)
	if c.Ignored != 0 {
		fmt.Fprintln(w, "Lines ignored:     ", c.Ignored)
	}
	fmt.Fprintf(w, "Threshold:          %.*f%%\n", prec, threshold)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "                        jdep prediction")
	fmt.Fprintln(w, "                    -----------------------")
	fmt.Fprintln(w, "                     emission   no emission")
	fmt.Fprintf(w, "Detected              %7d       %7d\n", c.TP, c.FN)
	fmt.Fprintf(w, "Not detected          %7d       %7d\n", c.FP, c.TN)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Matthews correlation coefficient: %.2f\n", c.MCC())
}

// parseThreshold parses a threshold argument, also returning the number
// of digits given after the decimal point.
func parseThreshold(s string) (float64, int, error) {
	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "bad threshold")
	}
	prec := 0
	if p := strings.Index(s, "."); p >= 0 {
		prec = len(s) - p - 1
	}
	return t, prec, nil
}

func main() {
	defer exit.Handler()
	data := flag.String("data", "data", "directory of probability and region files")
	emStr := flag.String("e", string(dam.All), "emission type, all or non-io")
	vers := flag.Bool("version", false, "display version and copyright")
	verbose := flag.Bool("v", false, "log ignored lines")
	flag.Usage = func() {
		os.Stderr.WriteString(
			"Usage: damcheck [options] <observation log> [threshold]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		return
	}
	if n := flag.NArg(); n < 1 || n > 2 {
		flag.Usage()
		exit.Log(errors.New("wrong number of arguments"))
	}
	em, err := dam.ParseEmission(*emStr)
	if err != nil {
		exit.Log(err)
	}
	if em == dam.Io {
		exit.Log(errors.Errorf("emission type %q has no probability map", em))
	}
	threshold := float64(damprog.AllThreshold)
	prec := 0
	if em == dam.NonIo {
		threshold = damprog.NonIoThreshold
	}
	if flag.NArg() == 2 {
		if threshold, prec, err = parseThreshold(flag.Arg(1)); err != nil {
			exit.Log(err)
		}
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ds, err := dambin.ReadDir(*data)
	if err != nil {
		exit.Log(err)
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		exit.Log(err)
	}
	defer f.Close()
	c, err := check(f, dam.New(ds, nil), em, threshold, logrus.StandardLogger())
	if err != nil {
		exit.Log(err)
	}
	report(os.Stdout, flag.Arg(0), em, threshold, prec, c)
}

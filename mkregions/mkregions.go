// Public domain.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/soniakeys/exit"

	"github.com/jdep/jdep/internal/calib"
	"github.com/jdep/jdep/internal/dambin"
	"github.com/jdep/jdep/internal/region"
)

const versionString = "mkregions version 0.3 Go source."
const copyrightString = "Public domain."

// bitmaskFile is the output file name for a tag.
func bitmaskFile(tag string) string {
	return "region_bitmask_" + tag + ".gob"
}

// result of processing one definition file.
type result struct {
	fn, out string
	regions int
	err     error
}

// rasterize reads definition file fn and writes its bitmask grid to dir.
// The name of the written file is returned.
func rasterize(fn, dir string) (string, int, error) {
	f, err := region.ReadFile(fn)
	if err != nil {
		return "", 0, err
	}
	if f.Tag == "" {
		return "", 0, errors.Errorf("%s: no tag", fn)
	}
	rows, cols := f.Rows, f.Cols
	if rows == 0 && cols == 0 {
		if f.Reference == "" {
			return "", 0, errors.Errorf("%s: need rows and cols or a reference image", fn)
		}
		ref := f.Reference
		if !filepath.IsAbs(ref) {
			ref = filepath.Join(filepath.Dir(fn), ref)
		}
		img, err := calib.ReadImage(ref)
		if err != nil {
			return "", 0, errors.Wrap(err, fn)
		}
		b := img.Bounds()
		rows, cols = b.Dy(), b.Dx()
	}
	g, err := region.Rasterize(f.Definitions(), rows, cols)
	if err != nil {
		return "", 0, errors.Wrap(err, fn)
	}
	out := filepath.Join(dir, bitmaskFile(f.Tag))
	if err := dambin.WriteBitmaskFile(out, g); err != nil {
		return "", 0, err
	}
	return out, len(f.Regions), nil
}

// run processes definition files in parallel.  Every file is attempted;
// the first error in argument order is returned.
func run(files []string, dir string, log logrus.FieldLogger) error {
	if len(files) == 0 {
		return errors.New("no definition files")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithStack(err)
	}
	fCh := make(chan int)
	go func() {
		for i := range files {
			fCh <- i
		}
		close(fCh)
	}()

	res := make([]result, len(files))
	done := make(chan struct{})
	nProc := runtime.GOMAXPROCS(0)
	if nProc > len(files) {
		nProc = len(files)
	}
	for i := 0; i < nProc; i++ {
		go func() {
			for x := range fCh {
				r := result{fn: files[x]}
				r.out, r.regions, r.err = rasterize(files[x], dir)
				res[x] = r
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < nProc; i++ {
		<-done
	}

	var first error
	for _, r := range res {
		if r.err != nil {
			log.WithError(r.err).WithField("file", r.fn).Error("not rasterized")
			if first == nil {
				first = r.err
			}
			continue
		}
		log.WithFields(logrus.Fields{
			"file":    r.fn,
			"regions": r.regions,
		}).Info("wrote ", r.out)
	}
	return first
}

func main() {
	defer exit.Handler()
	out := flag.String("o", "data", "output directory")
	verbose := flag.Bool("v", false, "verbose logging")
	version := flag.Bool("version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mkregions [-o dir] [-v] regions.toml...")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *version {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		return
	}
	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.Debug(versionString)
	if err := run(flag.Args(), *out, log); err != nil {
		exit.Log(err)
	}
}

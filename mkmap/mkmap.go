// Public domain.

package main

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/jdep/jdep/internal/calib"
	"github.com/jdep/jdep/internal/dambin"
)

const versionString = "mkmap version 0.3 Go source."
const copyrightString = "Public domain."

// Config is the content of a build configuration file.
type Config struct {
	Output    string   `toml:"output"`
	Strict    bool     `toml:"strict"`
	Preview   bool     `toml:"preview"`
	MaxPasses int      `toml:"max_passes"`
	Colorbar  string   `toml:"colorbar"`
	Figures   []Figure `toml:"figure"`
}

// Figure is one [[figure]] table of a Config.
type Figure struct {
	Tag            string  `toml:"tag"`
	Image          string  `toml:"image"`
	Colorbar       string  `toml:"colorbar"` // overrides Config.Colorbar
	MaxProbability float64 `toml:"max_probability"`
}

// readConfig reads a build configuration.  Relative file names in the
// configuration are taken relative to the directory of the file.
func readConfig(fn string) (*Config, error) {
	cfg := &Config{Output: "data"}
	md, err := toml.DecodeFile(fn, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", fn)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, errors.Errorf("%s: unknown key %s", fn, u[0])
	}
	dir := filepath.Dir(fn)
	rel := func(p *string) {
		if *p > "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	rel(&cfg.Output)
	rel(&cfg.Colorbar)
	if len(cfg.Figures) == 0 {
		return nil, errors.Errorf("%s: no figures", fn)
	}
	tags := map[string]bool{}
	for i := range cfg.Figures {
		f := &cfg.Figures[i]
		switch {
		case f.Tag == "":
			return nil, errors.Errorf("%s: figure %d has no tag", fn, i+1)
		case tags[f.Tag]:
			return nil, errors.Errorf("%s: tag %s repeated", fn, f.Tag)
		case f.Image == "":
			return nil, errors.Errorf("%s: figure %s has no image", fn, f.Tag)
		case f.MaxProbability <= 0:
			return nil, errors.Errorf("%s: figure %s max_probability must be positive",
				fn, f.Tag)
		}
		tags[f.Tag] = true
		rel(&f.Image)
		rel(&f.Colorbar)
		if f.Colorbar == "" {
			f.Colorbar = cfg.Colorbar
		}
		if f.Colorbar == "" {
			return nil, errors.Errorf("%s: figure %s has no colorbar", fn, f.Tag)
		}
	}
	return cfg, nil
}

// gridFile is the asset file name for a figure tag.  Tags "all" and
// "nonio" give the files read by jdep.
func gridFile(tag string) string {
	return "probability_map_" + tag + ".gob"
}

type built struct {
	fig Figure
	m   *mat.Dense
	cb  *calib.Colorbar
	res calib.Result
}

// build calibrates and inpaints every figure, then writes the grids.
//
// Figures left with unresolved cells are not written.  When cfg.Strict is
// set they are an error and nothing is written.
func build(ctx context.Context, cfg *Config, log logrus.FieldLogger) error {
	var bs []built
	for _, f := range cfg.Figures {
		flog := log.WithField("tag", f.Tag)
		swatch, err := calib.ReadImage(f.Colorbar)
		if err != nil {
			return err
		}
		cb, err := calib.ColorbarFromSwatch(swatch, f.MaxProbability)
		if err != nil {
			return errors.Wrap(err, f.Colorbar)
		}
		img, err := calib.ReadImage(f.Image)
		if err != nil {
			return err
		}
		flog.WithFields(logrus.Fields{
			"image":   f.Image,
			"samples": len(cb.Colors),
		}).Info("calibrating")
		m, res, err := calib.Calibrate(ctx, img, cb,
			calib.Inpainter{MaxPasses: cfg.MaxPasses, Log: flog})
		if err != nil {
			return errors.Wrap(err, f.Image)
		}
		bs = append(bs, built{f, m, cb, res})
	}

	var failed []string
	for _, b := range bs {
		if b.res.Unresolved > 0 {
			failed = append(failed, b.fig.Tag)
		}
	}
	if len(failed) > 0 && cfg.Strict {
		return errors.Wrapf(dambin.ErrUnresolved, "figures %v", failed)
	}

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return err
	}
	for _, b := range bs {
		if cfg.Preview {
			if err := writePreview(filepath.Join(cfg.Output,
				"probability_map_"+b.fig.Tag+".png"), calib.Render(b.m, b.cb)); err != nil {
				return err
			}
		}
		if b.res.Unresolved > 0 {
			log.WithFields(logrus.Fields{
				"tag":        b.fig.Tag,
				"unresolved": b.res.Unresolved,
			}).Warn("grid not written")
			continue
		}
		g, err := dambin.NewProbabilityGrid(b.m)
		if err != nil {
			return err
		}
		fn := filepath.Join(cfg.Output, gridFile(b.fig.Tag))
		if err := dambin.WriteProbabilityFile(fn, g); err != nil {
			return err
		}
		rows, cols := g.Dims()
		log.WithFields(logrus.Fields{
			"file":   fn,
			"rows":   rows,
			"cols":   cols,
			"passes": b.res.Passes,
		}).Info("wrote probability grid")
	}
	return nil
}

func writePreview(fn string, img *image.NRGBA) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	return errors.Wrapf(err, "writing %s", fn)
}

func newRoot() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "mkmap [config.toml]",
		Short: "Build probability grids from calibration figures",
		Long: `mkmap reads a build configuration, default mkmap.toml, converts each
configured figure to a probability grid and writes the grids for jdep.

For full documentation:
   go doc github.com/jdep/jdep/mkmap`,
		Version:       versionString + "\n" + copyrightString,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			fn := "mkmap.toml"
			if len(args) == 1 {
				fn = args[0]
			}
			cfg, err := readConfig(fn)
			if err != nil {
				return err
			}
			return build(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each inpainting pass")
	return cmd
}

func main() {
	defer exit.Handler()
	if err := newRoot().ExecuteContext(context.Background()); err != nil {
		exit.Log(err)
	}
}

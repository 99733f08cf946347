package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ije/reimg"
	"github.com/spf13/pflag"
)

// errUsage asks the caller to print the usage text and exit successfully.
var errUsage = errors.New("usage requested")

const usage = `Usage: reimg [OPTIONS] < input_image_file > output_image_file

Options:
  -w, --width <width>     Set the width of the output image
  -h, --height <height>   Set the height of the output image
  --fit <fit>             Set the fit mode for the resize operation [possible values: cover, contain, scale-down]
    --cover               Resize the image to fill the given dimensions, cropping if necessary
    --contain             Resize the image to fit the given dimensions
    --scale-down          Resize the image to fit the given dimensions, but not larger than the original
  --filter <filter>       Set the resampling filter [default: lanczos] [possible values: lanczos, catmull-rom, linear, box, nearest]
  -q, --quality <quality> Set the quality of the output image [default: 85]
  -f, --format <format>   Set the format of the output image [possible values: jpeg, png, webp, avif, gif, ico]
  --auto-orient           Rotate JPEG input according to its EXIF orientation
  -i, --info              Show image metadata
  -v, --verbose           Log each conversion step to stderr
`

// Config is the command line configuration of a single run.
type Config struct {
	ShowMetadata bool
	Width        int
	Height       int
	Fit          reimg.FitMode
	Filter       reimg.Filter
	Quality      int
	Format       *reimg.Format
	AutoOrient   bool
	Verbose      bool
}

// options converts the configuration into conversion options.
func (c *Config) options() reimg.Options {
	opts := reimg.NewOptions()
	opts.Quality = c.Quality
	opts.Format = c.Format
	opts.AutoOrientation = c.AutoOrient
	opts.Resize = &reimg.ResizeOption{Width: c.Width, Height: c.Height, Fit: c.Fit, Filter: c.Filter}
	return opts
}

// parseArgs builds a Config from the command line arguments, program name excluded.
// It returns errUsage when the usage text should be shown instead of running.
func parseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	cfg := &Config{Quality: reimg.DefaultQuality}

	fs := pflag.NewFlagSet("reimg", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.BoolVarP(&cfg.ShowMetadata, "info", "i", false, "")
	fs.VarP(&dimensionValue{&cfg.Width, "width"}, "width", "w", "")
	fs.VarP(&dimensionValue{&cfg.Height, "height"}, "height", "h", "")
	fs.Var(&fitValue{&cfg.Fit}, "fit", "")
	for _, mode := range []reimg.FitMode{reimg.Cover, reimg.Contain, reimg.ScaleDown} {
		fs.Var(&fitSwitch{&cfg.Fit, mode}, mode.String(), "")
		fs.Lookup(mode.String()).NoOptDefVal = "true"
	}
	fs.Var(&filterValue{&cfg.Filter}, "filter", "")
	fs.VarP(&qualityValue{&cfg.Quality}, "quality", "q", "")
	fs.VarP(&formatValue{&cfg.Format}, "format", "f", "")
	fs.BoolVar(&cfg.AutoOrient, "auto-orient", false, "")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "")

	if err := fs.Parse(args); err != nil {
		var notExist *pflag.NotExistError
		if errors.Is(err, pflag.ErrHelp) || errors.As(err, &notExist) {
			return nil, errUsage
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errUsage
	}

	return cfg, nil
}

type dimensionValue struct {
	p    *int
	name string
}

func (v *dimensionValue) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return fmt.Errorf("%s must be a positive integer", v.name)
	}
	*v.p = int(n)
	return nil
}

func (v *dimensionValue) String() string {
	if *v.p == 0 {
		return ""
	}
	return strconv.Itoa(*v.p)
}

func (*dimensionValue) Type() string { return "uint" }

type qualityValue struct{ p *int }

func (v *qualityValue) Set(s string) error {
	q, err := strconv.ParseUint(s, 10, 8)
	if err != nil || q < 1 || q > 100 {
		return errors.New("quality must be an integer in 1..=100")
	}
	*v.p = int(q)
	return nil
}

func (v *qualityValue) String() string { return strconv.Itoa(*v.p) }

func (*qualityValue) Type() string { return "uint" }

type fitValue struct{ p *reimg.FitMode }

func (v *fitValue) Set(s string) error { return v.p.UnmarshalText([]byte(s)) }

func (v *fitValue) String() string {
	if *v.p == reimg.Exact {
		return ""
	}
	return v.p.String()
}

func (*fitValue) Type() string { return "string" }

// fitSwitch is a boolean flag that sets the fit mode, e.g. --cover.
type fitSwitch struct {
	p    *reimg.FitMode
	mode reimg.FitMode
}

func (v *fitSwitch) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v.p = v.mode
	}
	return nil
}

func (v *fitSwitch) String() string { return strconv.FormatBool(*v.p == v.mode) }

func (*fitSwitch) Type() string { return "bool" }

type filterValue struct{ p *reimg.Filter }

func (v *filterValue) Set(s string) error { return v.p.UnmarshalText([]byte(s)) }

func (v *filterValue) String() string { return v.p.String() }

func (*filterValue) Type() string { return "string" }

// outputFormats are the names accepted by -f, matched exactly.
var outputFormats = map[string]reimg.Format{
	"jpg":  reimg.JPEG,
	"jpeg": reimg.JPEG,
	"png":  reimg.PNG,
	"webp": reimg.WEBP,
	"avif": reimg.AVIF,
	"gif":  reimg.GIF,
	"ico":  reimg.ICO,
}

type formatValue struct{ p **reimg.Format }

func (v *formatValue) Set(s string) error {
	format, ok := outputFormats[s]
	if !ok {
		return fmt.Errorf("%w: %s", reimg.ErrUnsupportedFormat, s)
	}
	*v.p = &format
	return nil
}

func (v *formatValue) String() string {
	if *v.p == nil {
		return ""
	}
	return (*v.p).Ext()
}

func (*formatValue) Type() string { return "string" }

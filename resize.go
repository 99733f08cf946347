package reimg

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ErrCoverDimensions is returned when the Cover fit mode is used without both dimensions.
var ErrCoverDimensions = errors.New("cover requires both width and height")

// FitMode defines how an image is reconciled with the requested size.
type FitMode int

const (
	// Exact resizes to the requested size, ignoring the aspect ratio.
	Exact FitMode = iota
	// Cover resizes and crops the image to fill the requested size.
	Cover
	// Contain resizes the image to fit within the requested size, preserving the aspect ratio.
	Contain
	// ScaleDown behaves like Contain, but only when the image is larger than the requested size.
	ScaleDown
)

var fitModeNames = map[FitMode]string{
	Exact:     "exact",
	Cover:     "cover",
	Contain:   "contain",
	ScaleDown: "scale-down",
}

func (m FitMode) String() string {
	if name, ok := fitModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FitMode(%d)", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Only "cover", "contain" and "scale-down" are accepted.
func (m *FitMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cover":
		*m = Cover
	case "contain":
		*m = Contain
	case "scale-down":
		*m = ScaleDown
	default:
		return errors.New("invalid fit mode, possible values: cover, contain, scale-down")
	}
	return nil
}

// Filter is a resampling filter.
type Filter int

// Resampling filters. Lanczos is the default.
const (
	Lanczos Filter = iota
	CatmullRom
	Linear
	Box
	NearestNeighbor
)

var filters = []struct {
	name   string
	filter imaging.ResampleFilter
}{
	Lanczos:         {"lanczos", imaging.Lanczos},
	CatmullRom:      {"catmull-rom", imaging.CatmullRom},
	Linear:          {"linear", imaging.Linear},
	Box:             {"box", imaging.Box},
	NearestNeighbor: {"nearest", imaging.NearestNeighbor},
}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filters) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filters[f].name
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Filter) UnmarshalText(text []byte) error {
	for i, filter := range filters {
		if filter.name == string(text) {
			*f = Filter(i)
			return nil
		}
	}
	return errors.New("invalid filter, possible values: lanczos, catmull-rom, linear, box, nearest")
}

func (f Filter) resample() imaging.ResampleFilter {
	if f < 0 || int(f) >= len(filters) {
		return imaging.Lanczos
	}
	return filters[f].filter
}

// ResizeOption is resize option.
// A zero Width or Height means that dimension is not set. When only one is set,
// the other is derived from the original aspect ratio.
type ResizeOption struct {
	Width  int
	Height int
	Fit    FitMode
	Filter Filter
}

// Resize resizes the image according to the option.
func Resize(base image.Image, option *ResizeOption) (image.Image, error) {
	return option.do(base)
}

// Dimensions resolves the target size for an image of size ow x oh.
// ok is false when neither width nor height is set, in which case no resize happens.
func (r *ResizeOption) Dimensions(ow, oh int) (width, height int, ok bool, err error) {
	width, height = r.Width, r.Height
	if width <= 0 && height <= 0 {
		return 0, 0, false, nil
	}
	if ow <= 0 || oh <= 0 {
		return 0, 0, false, fmt.Errorf("invalid image size %dx%d", ow, oh)
	}

	aspectRatio := float64(ow) / float64(oh)
	if width > 0 && height <= 0 {
		height = atLeastOne(int(float64(width) / aspectRatio))
		if r.Fit == Cover {
			return 0, 0, false, ErrCoverDimensions
		}
	}
	if height > 0 && width <= 0 {
		width = atLeastOne(int(float64(height) * aspectRatio))
		if r.Fit == Cover {
			return 0, 0, false, ErrCoverDimensions
		}
	}

	return width, height, true, nil
}

func (r *ResizeOption) do(base image.Image) (image.Image, error) {
	size := base.Bounds().Size()
	width, height, ok, err := r.Dimensions(size.X, size.Y)
	if err != nil || !ok {
		return base, err
	}

	filter := r.Filter.resample()
	switch r.Fit {
	case Exact:
		return imaging.Resize(base, width, height, filter), nil
	case Cover:
		return imaging.Fill(base, width, height, imaging.Center, filter), nil
	case Contain:
		width, height = containSize(size.X, size.Y, width, height)
		return imaging.Resize(base, width, height, filter), nil
	case ScaleDown:
		if width < size.X || height < size.Y {
			width, height = containSize(size.X, size.Y, width, height)
			return imaging.Resize(base, width, height, filter), nil
		}
		return base, nil
	default:
		return nil, fmt.Errorf("unknown fit mode: %s", r.Fit)
	}
}

// containSize returns the largest size with the aspect ratio of ow x oh
// that fits within width x height.
func containSize(ow, oh, width, height int) (int, int) {
	ratio := math.Min(float64(width)/float64(ow), float64(height)/float64(oh))
	return atLeastOne(int(math.Round(float64(ow) * ratio))),
		atLeastOne(int(math.Round(float64(oh) * ratio)))
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

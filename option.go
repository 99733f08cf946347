package reimg

import (
	"io"

	"go.uber.org/zap"
)

// Options represents options that can be used to configure a image conversion.
type Options struct {
	// Resize is applied after decoding when not nil.
	Resize *ResizeOption
	// Format is the output format. When nil, the sniffed input format is used.
	Format *Format
	// Quality is passed to the JPEG, WebP and AVIF encoders.
	Quality int
	// AutoOrientation fixes JPEG orientation from the EXIF tag when decoding.
	AutoOrientation bool

	logger *zap.Logger
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{Quality: DefaultQuality}
}

// SetResize sets the value for the Resize field.
func (opts *Options) SetResize(width, height int, fit FitMode) *Options {
	opts.Resize = &ResizeOption{Width: width, Height: height, Fit: fit}
	return opts
}

// SetFormat sets the output format from a file extension such as "jpg" or "webp".
func (opts *Options) SetFormat(ext string) error {
	format, err := FormatFromExtension(ext)
	if err != nil {
		return err
	}
	opts.Format = &format
	return nil
}

// SetLogger sets the logger used to report each conversion step.
func (opts *Options) SetLogger(logger *zap.Logger) *Options {
	opts.logger = logger
	return opts
}

func (opts *Options) log() *zap.Logger {
	if opts.logger == nil {
		return zap.NewNop()
	}
	return opts.logger
}

// Convert decodes data, resizes it and writes it to w according options opts.
// Nothing is written to w unless the whole conversion succeeds.
func (opts *Options) Convert(w io.Writer, data []byte) error {
	logger := opts.log()

	img, format, err := Decode(data, AutoOrientation(opts.AutoOrientation))
	if err != nil {
		return err
	}
	logger.Debug("decoded image",
		zap.Stringer("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Int("bytes", len(data)),
	)

	if opts.Resize != nil {
		if img, err = opts.Resize.do(img); err != nil {
			return err
		}
		logger.Debug("resized image",
			zap.Stringer("fit", opts.Resize.Fit),
			zap.Stringer("filter", opts.Resize.Filter),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()),
		)
	}

	if opts.Format != nil {
		format = *opts.Format
	}
	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	fo := &FormatOption{Format: format, EncodeOption: []EncodeOption{Quality(quality)}}
	cw := &countWriter{w: w}
	if err := fo.Encode(cw, img); err != nil {
		return err
	}
	logger.Debug("encoded image", zap.Stringer("format", format), zap.Int("quality", quality), zap.Int64("bytes", cw.n))

	return nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

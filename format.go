package reimg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
)

// Format is an image file format.
type Format int

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
	WEBP
	AVIF
	ICO
)

var (
	// ErrUnsupportedFormat means the given format is known but cannot be produced.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnknownFormat means the format of the input could not be guessed.
	ErrUnknownFormat = errors.New("failed to guess image format")
)

var formatNames = map[Format]string{
	JPEG: "Jpeg",
	PNG:  "Png",
	GIF:  "Gif",
	TIFF: "Tiff",
	BMP:  "Bmp",
	WEBP: "WebP",
	AVIF: "Avif",
	ICO:  "Ico",
}

var formatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
	"webp": WEBP,
	"avif": AVIF,
	"ico":  ICO,
}

// String returns the display name of the format, e.g. "Jpeg" or "WebP".
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the canonical file extension of the format.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return "jpg"
	case TIFF:
		return "tif"
	}
	return strings.ToLower(f.String())
}

// CanEncode reports whether images can be written in this format.
func (f Format) CanEncode() bool {
	_, ok := encoders[f]
	return ok
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff"), "bmp", "webp", "avif" and "ico" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := formatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatNames[f]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return []byte(f.Ext()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := FormatFromExtension(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

type encodeConfig struct {
	quality int
}

// DefaultQuality is the quality used by lossy encoders when none is given.
const DefaultQuality = 85

var defaultEncodeConfig = encodeConfig{
	quality: DefaultQuality,
}

// EncodeOption sets an optional parameter for the Encode and Write functions.
type EncodeOption func(*encodeConfig)

// Quality returns an EncodeOption that sets the output JPEG, WebP or AVIF quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.quality = quality
	}
}

// Encode writes the image img to w in the specified format (JPEG, PNG, GIF, WebP, AVIF or ICO).
// The image is encoded into memory first, so nothing is written to w when encoding fails.
func (f *FormatOption) Encode(w io.Writer, img image.Image) error {
	encode, ok := encoders[f.Format]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Format)
	}

	cfg := defaultEncodeConfig
	for _, option := range f.EncodeOption {
		option(&cfg)
	}
	if cfg.quality < 1 || cfg.quality > 100 {
		return fmt.Errorf("quality must be an integer in 1..=100, got %d", cfg.quality)
	}

	var buf bytes.Buffer
	if err := encode(&buf, img, cfg); err != nil {
		return fmt.Errorf("failed to encode %s: %w", strings.ToLower(f.Format.String()), err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Write image according format option
func Write(w io.Writer, base image.Image, option *FormatOption) error {
	return option.Encode(w, base)
}

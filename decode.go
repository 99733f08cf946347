package reimg

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/sunshineplan/tiff"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

type decoder struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

var decoders = map[Format]decoder{
	JPEG: {jpeg.Decode, jpeg.DecodeConfig},
	PNG:  {png.Decode, png.DecodeConfig},
	GIF:  {gif.Decode, gif.DecodeConfig},
	TIFF: {tiff.Decode, tiff.DecodeConfig},
	BMP:  {bmp.Decode, bmp.DecodeConfig},
	WEBP: {webp.Decode, webp.DecodeConfig},
	AVIF: {avif.Decode, avif.DecodeConfig},
	ICO:  {ico.Decode, ico.DecodeConfig},
}

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: false,
}

// DecodeOption sets an optional parameter for the Decode function.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, a JPEG image will be transformed after decoding
// according to the EXIF orientation tag (if present). By default it's disabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

// Decode sniffs the format of data and decodes it with the matching decoder.
func Decode(data []byte, opts ...DecodeOption) (image.Image, Format, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	format, err := Sniff(data)
	if err != nil {
		return nil, -1, err
	}

	var img image.Image
	if format == JPEG && cfg.autoOrientation {
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	} else {
		img, err = decoders[format].decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode %s: %w", strings.ToLower(format.String()), err)
	}

	return img, format, nil
}

// DecodeConfig sniffs the format of data and decodes its dimensions and
// color model without decoding the entire image.
func DecodeConfig(data []byte) (image.Config, Format, error) {
	format, err := Sniff(data)
	if err != nil {
		return image.Config{}, -1, err
	}

	config, err := decoders[format].decodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, format, fmt.Errorf("failed to decode %s config: %w", strings.ToLower(format.String()), err)
	}

	return config, format, nil
}

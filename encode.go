package reimg

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	ico "github.com/sergeymakinen/go-ico"
)

// avifSpeed trades encoding time for size, 0 slowest and 10 fastest.
const avifSpeed = 5

// maxIconSize is the largest edge an ICO entry can describe.
const maxIconSize = 256

// An encodeFunc writes img to w. Each backend converts img to the
// pixel layout it needs on its own.
type encodeFunc func(w io.Writer, img image.Image, cfg encodeConfig) error

var encoders = map[Format]encodeFunc{
	JPEG: encodeJPEG,
	PNG:  encodePNG,
	GIF:  encodeGIF,
	WEBP: encodeWebP,
	AVIF: encodeAVIF,
	ICO:  encodeICO,
}

func encodeJPEG(w io.Writer, img image.Image, cfg encodeConfig) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(cfg.quality))
}

func encodePNG(w io.Writer, img image.Image, _ encodeConfig) error {
	return imaging.Encode(w, img, imaging.PNG)
}

func encodeGIF(w io.Writer, img image.Image, _ encodeConfig) error {
	return imaging.Encode(w, img, imaging.GIF, imaging.GIFNumColors(256))
}

func encodeWebP(w io.Writer, img image.Image, cfg encodeConfig) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(cfg.quality))
	if err != nil {
		return err
	}
	// libwebp reads the pixels straight from an RGBA buffer.
	return webp.Encode(w, imaging.Clone(img), options)
}

func encodeAVIF(w io.Writer, img image.Image, cfg encodeConfig) error {
	return avif.Encode(w, img, avif.Options{
		Quality:      cfg.quality,
		QualityAlpha: cfg.quality,
		Speed:        avifSpeed,
	})
}

func encodeICO(w io.Writer, img image.Image, _ encodeConfig) error {
	if size := img.Bounds().Size(); size.X > maxIconSize || size.Y > maxIconSize {
		return fmt.Errorf("image %dx%d exceeds the %dx%d icon limit", size.X, size.Y, maxIconSize, maxIconSize)
	}
	return ico.Encode(w, imaging.Clone(img))
}

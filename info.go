package reimg

import "fmt"

// Metadata describes an encoded image.
type Metadata struct {
	Format Format
	Width  int
	Height int
}

// String formats the metadata as "Jpeg 640x480".
func (m Metadata) String() string {
	return fmt.Sprintf("%s %dx%d", m.Format, m.Width, m.Height)
}

// Info reports the format and dimensions of the encoded image data.
// The dimensions are read from the image header, except for a JPEG image
// decoded with auto-orientation, which is decoded in full so that the
// reported size matches the oriented image.
func Info(data []byte, opts ...DecodeOption) (*Metadata, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	format, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	if format == JPEG && cfg.autoOrientation {
		img, _, err := Decode(data, opts...)
		if err != nil {
			return nil, err
		}
		size := img.Bounds().Size()
		return &Metadata{Format: format, Width: size.X, Height: size.Y}, nil
	}

	config, _, err := DecodeConfig(data)
	if err != nil {
		return nil, err
	}

	return &Metadata{Format: format, Width: config.Width, Height: config.Height}, nil
}

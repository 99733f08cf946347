package reimg

import "github.com/gabriel-vasile/mimetype"

var mimeFormats = []struct {
	mime   string
	format Format
}{
	{"image/jpeg", JPEG},
	{"image/png", PNG},
	{"image/gif", GIF},
	{"image/tiff", TIFF},
	{"image/bmp", BMP},
	{"image/webp", WEBP},
	{"image/avif", AVIF},
	{"image/x-icon", ICO},
}

// Sniff guesses the image format of data from its leading magic bytes.
// Subtypes such as APNG resolve to their parent format.
func Sniff(data []byte) (Format, error) {
	for mtype := mimetype.Detect(data); mtype != nil; mtype = mtype.Parent() {
		for _, i := range mimeFormats {
			if mtype.Is(i.mime) {
				return i.format, nil
			}
		}
	}
	return -1, ErrUnknownFormat
}

package reimg

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"io"
	"testing"
)

func sample(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / width), G: uint8(y * 255 / height), B: 0x80, A: 0xff})
		}
	}
	return img
}

func encodeSample(t *testing.T, img image.Image, format Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := (&FormatOption{Format: format}).Encode(&buf, img); err != nil {
		t.Fatal(format, err)
	}
	return buf.Bytes()
}

func TestFormatFromExtension(t *testing.T) {
	if _, err := FormatFromExtension("Jpg"); err != nil {
		t.Fatal("jpg format want no error")
	}
	if f, err := FormatFromExtension(".webp"); err != nil || f != WEBP {
		t.Fatal("webp format want no error")
	}
	if _, err := FormatFromExtension("txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal("txt format want unsupported format error")
	}
}

func TestFormatString(t *testing.T) {
	for format, want := range map[Format]string{
		JPEG: "Jpeg", PNG: "Png", GIF: "Gif", TIFF: "Tiff",
		BMP: "Bmp", WEBP: "WebP", AVIF: "Avif", ICO: "Ico",
	} {
		if got := format.String(); got != want {
			t.Errorf("expected %q; got %q", want, got)
		}
	}
	if JPEG.Ext() != "jpg" || WEBP.Ext() != "webp" {
		t.Error("Ext result is not expect one.")
	}
}

func TestCanEncode(t *testing.T) {
	for _, f := range []Format{JPEG, PNG, GIF, WEBP, AVIF, ICO} {
		if !f.CanEncode() {
			t.Errorf("%s want encodable", f)
		}
	}
	for _, f := range []Format{TIFF, BMP, Format(-1)} {
		if f.CanEncode() {
			t.Errorf("%s want not encodable", f)
		}
	}
}

func TestTextVar(t *testing.T) {
	testCase := []struct {
		argument string
		format   Format
	}{
		{"Jpg", JPEG},
		{"TIFF", TIFF},
		{"avif", AVIF},
		{"txt", Format(-1)},
	}
	for _, tc := range testCase {
		f := flag.NewFlagSet("test", flag.ContinueOnError)
		f.SetOutput(io.Discard)
		var format Format
		f.TextVar(&format, "f", Format(-1), "")
		f.Parse(append([]string{"-f"}, tc.argument))
		if format != tc.format {
			t.Errorf("expected %s format; got %s", tc.format, format)
		}
	}
}

func TestEncode(t *testing.T) {
	testCase := []FormatOption{
		{Format: JPEG, EncodeOption: []EncodeOption{Quality(75)}},
		{Format: PNG},
		{Format: GIF},
		{Format: WEBP, EncodeOption: []EncodeOption{Quality(50)}},
		{Format: AVIF, EncodeOption: []EncodeOption{Quality(60)}},
		{Format: ICO},
	}

	m0 := sample(48, 33)

	for _, tc := range testCase {
		// Encode the image.
		var buf bytes.Buffer
		if err := tc.Encode(&buf, m0); err != nil {
			t.Fatal(tc.Format, err)
		}

		// Decode the image.
		m1, format, err := Decode(buf.Bytes())
		if err != nil {
			t.Fatal(tc.Format, err)
		}
		if format != tc.Format {
			t.Errorf("sniffed %s; want %s", format, tc.Format)
		}

		if m0.Bounds().Size() != m1.Bounds().Size() {
			t.Fatalf("%s bounds differ: %v and %v", tc.Format, m0.Bounds(), m1.Bounds())
		}
	}
}

func TestEncodeError(t *testing.T) {
	var buf bytes.Buffer
	if err := (&FormatOption{Format: TIFF}).Encode(&buf, sample(4, 4)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal("encode unsupported format expect an error")
	}
	if err := (&FormatOption{Format: Format(-1)}).Encode(&buf, sample(4, 4)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatal("encode unknown format expect an error")
	}
	for _, q := range []int{0, 101} {
		if err := (&FormatOption{Format: JPEG, EncodeOption: []EncodeOption{Quality(q)}}).Encode(&buf, sample(4, 4)); err == nil {
			t.Fatalf("quality %d expect an error", q)
		}
	}
	if err := (&FormatOption{Format: ICO}).Encode(&buf, sample(300, 10)); err == nil {
		t.Fatal("oversized icon expect an error")
	}
	if buf.Len() != 0 {
		t.Fatalf("failed encodes wrote %d bytes", buf.Len())
	}
}

func TestPNGRoundTrip(t *testing.T) {
	m0 := sample(150, 103)
	m1, _, err := Decode(encodeSample(t, m0, PNG))
	if err != nil {
		t.Fatal(err)
	}
	if m0.Bounds().Size() != m1.Bounds().Size() {
		t.Fatalf("bounds differ: %v and %v", m0.Bounds(), m1.Bounds())
	}
	for y := 0; y < 103; y++ {
		for x := 0; x < 150; x++ {
			r0, g0, b0, a0 := m0.At(x, y).RGBA()
			r1, g1, b1, a1 := m1.At(x, y).RGBA()
			if r0 != r1 || g0 != g1 || b0 != b1 || a0 != a1 {
				t.Fatalf("pixel at (%d, %d) differs", x, y)
			}
		}
	}
}

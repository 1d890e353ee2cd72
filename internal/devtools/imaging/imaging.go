// Package imaging implements the image tools: resize, crop and compress.
// Inputs may be PNG, JPEG, GIF or WebP; output is PNG or JPEG.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/bobmcallan/abacus/internal/calc"
)

// Output formats.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

const (
	// MaxPixels bounds decoded image size.
	MaxPixels      = 40_000_000
	DefaultQuality = 85
	minQuality     = 5
	maxQuality     = 100
)

// Source is a decoded input image.
type Source struct {
	Image  image.Image
	Format string
	Bytes  int
}

// Decode reads and decodes an image, rejecting oversize dimensions before the
// pixel data is decoded.
func Decode(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, calc.Invalid("file", "is not a supported image (png, jpeg, gif, webp)")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxPixels {
		return nil, calc.Invalid("file", "must be at most %d pixels", MaxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, calc.Invalid("file", "could not be decoded: %v", err)
	}
	return &Source{Image: img, Format: format, Bytes: len(data)}, nil
}

// Result is an encoded output image.
type Result struct {
	Data           []byte  `json:"-"`
	Format         string  `json:"format"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Bytes          int     `json:"bytes"`
	OriginalBytes  int     `json:"original_bytes"`
	Quality        int     `json:"quality,omitempty"`
	ReductionRatio float64 `json:"reduction_percent"`
	TargetMet      *bool   `json:"target_met,omitempty"`
}

// ContentType returns the MIME type of the encoded output.
func (r *Result) ContentType() string {
	if r.Format == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// OutputFormat resolves the requested output format, defaulting to the
// source's when it can be encoded.
func OutputFormat(requested, source string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "":
		if source == FormatPNG || source == "gif" {
			return FormatPNG, nil
		}
		return FormatJPEG, nil
	case "jpg", FormatJPEG:
		return FormatJPEG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", calc.Invalid("format", "must be jpeg or png")
}

// Encode writes img in format. quality applies to JPEG only.
func Encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// flatten composites transparent images onto white, since JPEG has no alpha.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

func result(src *Source, img image.Image, format string, quality int) (*Result, error) {
	data, err := Encode(img, format, quality)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Data:          data,
		Format:        format,
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		Bytes:         len(data),
		OriginalBytes: src.Bytes,
	}
	if format == FormatJPEG {
		res.Quality = quality
	}
	if src.Bytes > 0 {
		res.ReductionRatio = (1 - float64(len(data))/float64(src.Bytes)) * 100
	}
	return res, nil
}

func validQuality(q int) error {
	if q < minQuality || q > maxQuality {
		return calc.Invalid("quality", "must be between %d and %d", minQuality, maxQuality)
	}
	return nil
}

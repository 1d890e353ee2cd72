package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/bobmcallan/abacus/internal/calc"
)

// ResizeOptions controls Resize. A zero Width or Height is derived from the
// other when KeepAspect is set.
type ResizeOptions struct {
	Width      int
	Height     int
	KeepAspect bool
	Format     string
	Quality    int
}

// Dimensions resolves the target size for a source of sw×sh pixels. With
// KeepAspect and both sides given, the image is fitted inside the box.
func (o ResizeOptions) Dimensions(sw, sh int) (int, int, error) {
	w, h := o.Width, o.Height
	if w < 0 || h < 0 || (w == 0 && h == 0) {
		return 0, 0, calc.Invalid("width", "width or height must be positive")
	}
	if w > 10000 || h > 10000 {
		return 0, 0, calc.Invalid("width", "width and height must be at most 10000")
	}
	ratio := float64(sw) / float64(sh)
	switch {
	case w == 0:
		w = int(math.Round(float64(h) * ratio))
	case h == 0:
		h = int(math.Round(float64(w) / ratio))
	case o.KeepAspect:
		scale := math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
		w = int(math.Round(float64(sw) * scale))
		h = int(math.Round(float64(sh) * scale))
	}
	w, h = max(w, 1), max(h, 1)
	if w*h > MaxPixels {
		return 0, 0, calc.Invalid("width", "output must be at most %d pixels, got %dx%d", MaxPixels, w, h)
	}
	return w, h, nil
}

// Resize scales src with Catmull-Rom resampling.
func Resize(src *Source, opts ResizeOptions) (*Result, error) {
	b := src.Image.Bounds()
	w, h, err := opts.Dimensions(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	format, err := OutputFormat(opts.Format, src.Format)
	if err != nil {
		return nil, err
	}
	q := opts.Quality
	if q == 0 {
		q = DefaultQuality
	}
	if err := validQuality(q); err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src.Image, b, draw.Over, nil)
	return result(src, dst, format, q)
}

// CropOptions selects a rectangle in source pixel coordinates.
type CropOptions struct {
	X, Y          int
	Width, Height int
	Format        string
	Quality       int
}

// Crop cuts the rectangle out of src. The rectangle must lie inside the image.
func Crop(src *Source, opts CropOptions) (*Result, error) {
	b := src.Image.Bounds()
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, calc.Invalid("width", "crop width and height must be positive")
	}
	if opts.X < 0 || opts.Y < 0 {
		return nil, calc.Invalid("x", "crop origin must not be negative")
	}
	r := image.Rect(opts.X, opts.Y, opts.X+opts.Width, opts.Y+opts.Height).Add(b.Min)
	if !r.In(b) {
		return nil, calc.Invalid("width", "crop rectangle exceeds the %dx%d image", b.Dx(), b.Dy())
	}
	format, err := OutputFormat(opts.Format, src.Format)
	if err != nil {
		return nil, err
	}
	q := opts.Quality
	if q == 0 {
		q = DefaultQuality
	}
	if err := validQuality(q); err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src.Image, r.Min, draw.Src)
	return result(src, dst, format, q)
}

// CompressOptions controls Compress. TargetBytes, when set, overrides Quality
// and searches for the highest JPEG quality whose output fits.
type CompressOptions struct {
	Quality     int
	TargetBytes int
	MaxWidth    int
}

// Compress re-encodes src as JPEG.
func Compress(src *Source, opts CompressOptions) (*Result, error) {
	img := src.Image
	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		b := img.Bounds()
		h := max(int(math.Round(float64(b.Dy())*float64(opts.MaxWidth)/float64(b.Dx()))), 1)
		dst := image.NewRGBA(image.Rect(0, 0, opts.MaxWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		img = dst
	}

	if opts.TargetBytes <= 0 {
		q := opts.Quality
		if q == 0 {
			q = DefaultQuality
		}
		if err := validQuality(q); err != nil {
			return nil, err
		}
		return result(src, img, FormatJPEG, q)
	}
	if opts.TargetBytes < 1024 {
		return nil, calc.Invalid("target_kb", "must be at least 1 KB")
	}

	best, err := searchQuality(img, opts.TargetBytes)
	if err != nil {
		return nil, err
	}
	res, err := result(src, img, FormatJPEG, best)
	if err != nil {
		return nil, err
	}
	met := res.Bytes <= opts.TargetBytes
	res.TargetMet = &met
	return res, nil
}

// searchQuality binary-searches JPEG quality for the largest value whose
// encoding fits in target bytes. It returns minQuality when nothing fits.
func searchQuality(img image.Image, target int) (int, error) {
	lo, hi, best := minQuality, 95, minQuality
	for lo <= hi {
		mid := (lo + hi) / 2
		data, err := Encode(img, FormatJPEG, mid)
		if err != nil {
			return 0, err
		}
		if len(data) <= target {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best, nil
}

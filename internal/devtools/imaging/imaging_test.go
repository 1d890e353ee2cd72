package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/calc"
)

// testPNG returns a noisy w×h PNG so JPEG sizes respond to quality.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r := rand.New(rand.NewPCG(1, 2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(r.IntN(256)), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode(t *testing.T, w, h int) *Source {
	t.Helper()
	src, err := Decode(bytes.NewReader(testPNG(t, w, h)))
	require.NoError(t, err)
	return src
}

func TestDecode(t *testing.T) {
	src := decode(t, 40, 20)
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, 40, src.Image.Bounds().Dx())

	_, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Equal(t, "file", calc.FieldOf(err))
}

func TestResizeDimensions(t *testing.T) {
	tests := []struct {
		name   string
		opts   ResizeOptions
		sw, sh int
		w, h   int
	}{
		{"width only", ResizeOptions{Width: 100}, 400, 200, 100, 50},
		{"height only", ResizeOptions{Height: 100}, 400, 200, 200, 100},
		{"fit box", ResizeOptions{Width: 100, Height: 100, KeepAspect: true}, 400, 200, 100, 50},
		{"stretch", ResizeOptions{Width: 100, Height: 100}, 400, 200, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := tt.opts.Dimensions(tt.sw, tt.sh)
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}

	_, _, err := ResizeOptions{}.Dimensions(10, 10)
	assert.True(t, calc.IsInvalidInput(err))
}

func TestResizeDimensionsPixelLimit(t *testing.T) {
	tests := []struct {
		name   string
		opts   ResizeOptions
		sw, sh int
	}{
		{"square box", ResizeOptions{Width: 10000, Height: 10000}, 10, 10},
		{"derived width", ResizeOptions{Height: 10000}, 1000, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.opts.Dimensions(tt.sw, tt.sh)
			require.Error(t, err)
			assert.True(t, calc.IsInvalidInput(err))
		})
	}

	w, h, err := ResizeOptions{Width: 8000, Height: 5000}.Dimensions(10, 10)
	require.NoError(t, err)
	assert.Equal(t, MaxPixels, w*h)

	_, err = Resize(decode(t, 10, 10), ResizeOptions{Width: 10000, Height: 10000})
	assert.True(t, calc.IsInvalidInput(err))
}

func TestResize(t *testing.T) {
	res, err := Resize(decode(t, 120, 60), ResizeOptions{Width: 30, KeepAspect: true})
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, res.Format)
	assert.Equal(t, "image/png", res.ContentType())

	out, format, err := image.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 30, 15), out.Bounds())

	res, err = Resize(decode(t, 120, 60), ResizeOptions{Width: 30, Format: "jpg"})
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, res.Format)
	assert.Equal(t, DefaultQuality, res.Quality)

	_, err = Resize(decode(t, 10, 10), ResizeOptions{Width: 5, Format: "bmp"})
	assert.Equal(t, "format", calc.FieldOf(err))
}

func TestCrop(t *testing.T) {
	res, err := Crop(decode(t, 50, 40), CropOptions{X: 10, Y: 5, Width: 20, Height: 30})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Width)
	assert.Equal(t, 30, res.Height)

	_, err = Crop(decode(t, 50, 40), CropOptions{X: 40, Y: 0, Width: 20, Height: 10})
	assert.True(t, calc.IsInvalidInput(err))
	_, err = Crop(decode(t, 50, 40), CropOptions{Width: 0, Height: 10})
	assert.True(t, calc.IsInvalidInput(err))
}

func TestCompressQuality(t *testing.T) {
	src := decode(t, 200, 200)
	low, err := Compress(src, CompressOptions{Quality: 20})
	require.NoError(t, err)
	high, err := Compress(src, CompressOptions{Quality: 95})
	require.NoError(t, err)
	assert.Less(t, low.Bytes, high.Bytes)
	assert.Nil(t, low.TargetMet)

	_, err = Compress(src, CompressOptions{Quality: 101})
	assert.Equal(t, "quality", calc.FieldOf(err))
}

func TestCompressTarget(t *testing.T) {
	src := decode(t, 200, 200)
	full, err := Compress(src, CompressOptions{Quality: 95})
	require.NoError(t, err)

	target := full.Bytes / 2
	res, err := Compress(src, CompressOptions{TargetBytes: target})
	require.NoError(t, err)
	require.NotNil(t, res.TargetMet)
	assert.True(t, *res.TargetMet)
	assert.LessOrEqual(t, res.Bytes, target)
	assert.Less(t, res.Quality, 95)

	// one step up in quality must overshoot, otherwise the search stopped early
	if res.Quality < 95 {
		next, err := Encode(src.Image, FormatJPEG, res.Quality+1)
		require.NoError(t, err)
		assert.Greater(t, len(next), target)
	}

	_, err = Compress(src, CompressOptions{TargetBytes: 10})
	assert.Equal(t, "target_kb", calc.FieldOf(err))
}

func TestCompressMaxWidth(t *testing.T) {
	res, err := Compress(decode(t, 200, 100), CompressOptions{Quality: 80, MaxWidth: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Width)
	assert.Equal(t, 25, res.Height)
}

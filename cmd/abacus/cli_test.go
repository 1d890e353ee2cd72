package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI offline with no config file and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--offline", "--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListByCategory(t *testing.T) {
	out, err := execute(t, "list", "--category", "units")
	require.NoError(t, err)
	assert.Contains(t, out, "unit_convert")
	assert.Contains(t, out, "2 calculators")
	assert.NotContains(t, out, "loan")

	_, err = execute(t, "list", "--category", "cooking")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "loan")
	require.NoError(t, err)
	assert.Contains(t, out, "Loan Calculator")
	assert.Contains(t, out, "include_schedule")

	_, err = execute(t, "describe", "nope")
	assert.Error(t, err)
}

func TestRunLoan(t *testing.T) {
	out, err := execute(t, "run", "loan", "principal=300000", "annual_rate=6", "--arg", "years=30")
	require.NoError(t, err)
	assert.Contains(t, out, "monthly_payment")
	assert.Contains(t, out, "1,798.65")
	assert.NotContains(t, out, "schedule")
}

func TestRunLoanScheduleTruncated(t *testing.T) {
	out, err := execute(t, "--rows", "3", "run", "loan", "principal=300000", "annual_rate=6", "years=30", "include_schedule=true")
	require.NoError(t, err)
	assert.Contains(t, out, "schedule")
	assert.Contains(t, out, "cumulative_interest")
	assert.Contains(t, out, "357 more rows")
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "--json", "run", "discount", "original_price=99.99", "discount_percent=20")
	require.NoError(t, err)
	var res struct {
		Savings    float64 `json:"savings"`
		FinalPrice float64 `json:"final_price"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 19.998, res.Savings, 1e-9)
	assert.InDelta(t, 79.992, res.FinalPrice, 1e-9)
}

func TestRunCurrencyOffline(t *testing.T) {
	out, err := execute(t, "run", "currency", "amount=100", "from=USD", "to=EUR")
	require.NoError(t, err)
	assert.Contains(t, out, "92.00")
	assert.Contains(t, out, "fallback")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "loan", "principal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")

	_, err = execute(t, "run", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calculator not found")

	_, err = execute(t, "run", "discount", "original_price=10", "discount_percent=150")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Input")
}

func TestRates(t *testing.T) {
	out, err := execute(t, "rates", "--base", "USD", "EUR", "GBP")
	require.NoError(t, err)
	assert.Contains(t, out, "EUR")
	assert.Contains(t, out, "GBP")
	assert.NotContains(t, out, "JPY")
}

func TestImageResize(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, x%20, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out, err := execute(t, "image", "resize", input, "--width", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "in-resize.png")

	data, err := os.Open(filepath.Join(dir, "in-resize.png"))
	require.NoError(t, err)
	defer data.Close()
	cfg, err := png.DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs([]string{"a=1", "b= x=y", "a=2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": "2", "b": " x=y"}, got)

	_, err = parseArgs([]string{"=1"})
	assert.Error(t, err)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1798.6515754, "1,798.65"},
		{19.998, "19.998"},
		{300000, "300,000"},
		{0.0712345678, "0.071235"},
		{-2.5, "-2.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "%v", tt.in)
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/app"
	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Clients.ExchangeRate.Offline = true
	a := app.New(cfg, common.NewSilentLogger())
	t.Cleanup(a.Close)
	return NewServer(a)
}

func do(t *testing.T, s *Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, s, http.MethodPost, path, strings.NewReader(body), "application/json")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	rec = do(t, s, http.MethodPost, "/api/health", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestCorrelationIDPropagated(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc123", rec.Header().Get("X-Correlation-ID"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodOptions, "/api/calculators/loan", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowedOrigins(t *testing.T) {
	h := corsMiddleware([]string{"https://abacus.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://abacus.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://abacus.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://other.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(common.NewSilentLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, CodeInternal, resp.Code)
}

func TestVersionAndConfig(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/version", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var version map[string]interface{}
	decodeBody(t, rec, &version)
	assert.Equal(t, common.GetVersion(), version["version"])
	assert.Equal(t, common.GetBuild(), version["build"])
	assert.Equal(t, common.GetGitCommit(), version["commit"])
	assert.NotEmpty(t, version["go"])
	assert.EqualValues(t, len(s.app.Registry.List("")), version["calculators"])

	rec = do(t, s, http.MethodGet, "/api/config", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "api_key")
}

func TestCalculatorList(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/calculators", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Calculators []models.CalculatorDefinition `json:"calculators"`
		Count       int                           `json:"count"`
	}
	decodeBody(t, rec, &all)
	assert.Equal(t, len(s.app.Registry.List("")), all.Count)
	assert.Len(t, all.Calculators, all.Count)

	rec = do(t, s, http.MethodGet, "/api/calculators?category=units", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &all)
	for _, c := range all.Calculators {
		assert.Equal(t, models.CategoryUnits, c.Category)
	}

	rec = do(t, s, http.MethodGet, "/api/calculators?category=astrology", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "category", resp.Field)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Categories []models.CategorySummary `json:"categories"`
	}
	decodeBody(t, rec, &resp)
	assert.Len(t, resp.Categories, len(models.Categories()))
}

func TestCalculatorGet(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/calculators/loan", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var def models.CalculatorDefinition
	decodeBody(t, rec, &def)
	assert.Equal(t, "loan", def.Name)
	assert.True(t, def.Chart)

	rec = do(t, s, http.MethodGet, "/api/calculators/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalculatorRun(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/calculators/loan", `{"principal": 300000, "annual_rate": 6, "years": 30}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Calculator string `json:"calculator"`
		Result     struct {
			MonthlyPayment float64 `json:"monthly_payment"`
			Months         int     `json:"months"`
		} `json:"result"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "loan", resp.Calculator)
	assert.InDelta(t, 1798.65, resp.Result.MonthlyPayment, 0.005)
	assert.Equal(t, 360, resp.Result.Months)
}

func TestCalculatorRunQueryArgs(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/calculators/discount?original_price=99.99&discount_percent=20", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Result struct {
			Savings    float64 `json:"savings"`
			FinalPrice float64 `json:"final_price"`
		} `json:"result"`
	}
	decodeBody(t, rec, &resp)
	assert.InDelta(t, 19.998, resp.Result.Savings, 1e-9)
	assert.InDelta(t, 79.992, resp.Result.FinalPrice, 1e-9)
}

func TestCalculatorRunErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
		field  string
	}{
		{"out of range", "/api/calculators/discount", `{"original_price": 10, "discount_percent": 150}`, http.StatusBadRequest, CodeInvalidInput, "discount_percent"},
		{"missing", "/api/calculators/loan", `{"annual_rate": 6, "years": 30}`, http.StatusBadRequest, CodeInvalidInput, "principal"},
		{"unknown param", "/api/calculators/tip", `{"bill": 10, "colour": "red"}`, http.StatusBadRequest, CodeInvalidInput, "colour"},
		{"bad json", "/api/calculators/tip", `{"bill":`, http.StatusBadRequest, CodeInvalidInput, ""},
		{"unknown calculator", "/api/calculators/nope", `{}`, http.StatusNotFound, CodeNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.field, resp.Field)
			if tt.code == CodeInvalidInput && tt.field != "" {
				assert.True(t, strings.HasPrefix(resp.Error, "Invalid Input"), resp.Error)
			}
		})
	}
}

func TestCalculatorChart(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/calculators/loan/chart", `{"principal": 200000, "annual_rate": 5, "years": 15}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	cfg, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Width)

	rec = postJSON(t, s, "/api/calculators/discount/chart", `{"original_price": 10, "discount_percent": 5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = postJSON(t, s, "/api/calculators/loan/chart", `{"principal": -1, "annual_rate": 5, "years": 15}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGlossary(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/glossary?category=finance", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GlossaryResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Finance", resp.Categories[0].Name)

	var loan *models.GlossaryTerm
	for i := range resp.Categories[0].Terms {
		if resp.Categories[0].Terms[i].Term == "loan" {
			loan = &resp.Categories[0].Terms[i]
		}
	}
	require.NotNil(t, loan)
	assert.Equal(t, "annual_rate=6, principal=300000, years=30", loan.Example)
	value, ok := loan.Value.(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 1798.65, value["monthly_payment"], 0.005)
}

func TestCurrencyOffline(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/currency/rates?base=eur", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rates models.ExchangeRates
	decodeBody(t, rec, &rates)
	assert.Equal(t, "EUR", rates.Base)
	assert.Equal(t, models.RateSourceFallback, rates.Source)
	assert.Equal(t, 1.0, rates.Rates["EUR"])

	rec = do(t, s, http.MethodGet, "/api/currency/convert?amount=100&from=USD&to=EUR", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var conv models.CurrencyConversion
	decodeBody(t, rec, &conv)
	assert.Equal(t, models.RateSourceFallback, conv.Source)
	assert.InDelta(t, 92, conv.Converted, 0.001)

	rec = do(t, s, http.MethodGet, "/api/currency/convert?amount=100&from=US&to=EUR", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/currency/convert?from=USD&to=EUR", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 5), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartBody builds a form with an optional "file" part and fields.
func multipartBody(t *testing.T, file []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "upload.bin")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImageResize(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, testImage(t, 40, 20), map[string]string{"width": "20"})

	rec := do(t, s, http.MethodPost, "/api/tools/image/resize", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "20", rec.Header().Get("X-Image-Width"))
	assert.Equal(t, "10", rec.Header().Get("X-Image-Height"))

	cfg, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
}

func TestImageCropJSON(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, testImage(t, 40, 20), map[string]string{
		"x": "5", "y": "5", "width": "10", "height": "10", "format": "jpeg", "response": "json",
	})

	rec := do(t, s, http.MethodPost, "/api/tools/image/crop", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Format      string `json:"format"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ContentType string `json:"content_type"`
		Data        string `json:"data"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "jpeg", resp.Format)
	assert.Equal(t, "image/jpeg", resp.ContentType)
	assert.Equal(t, 10, resp.Width)
	assert.NotEmpty(t, resp.Data)
}

func TestImageToolErrors(t *testing.T) {
	s := newTestServer(t)

	body, ct := multipartBody(t, testImage(t, 10, 10), nil)
	rec := do(t, s, http.MethodPost, "/api/tools/image/rotate", body, ct)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body, ct = multipartBody(t, nil, map[string]string{"width": "10"})
	rec = do(t, s, http.MethodPost, "/api/tools/image/resize", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "file", resp.Field)

	body, ct = multipartBody(t, []byte("not an image"), map[string]string{"width": "10"})
	rec = do(t, s, http.MethodPost, "/api/tools/image/resize", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, testImage(t, 10, 10), map[string]string{"width": "ten"})
	rec = do(t, s, http.MethodPost, "/api/tools/image/resize", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Equal(t, "width", resp.Field)
}

func TestPDFWordCountRejectsNonPDF(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, []byte("plain text, not a pdf"), nil)
	rec := do(t, s, http.MethodPost, "/api/tools/pdf/word-count", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "file", resp.Field)
}

func TestMetricsRecordRoutePattern(t *testing.T) {
	s := newTestServer(t)
	postJSON(t, s, "/api/calculators/tip", `{"bill": 50, "tip_percent": 15, "people": 2}`)

	rec := do(t, s, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	text := rec.Body.String()
	assert.Contains(t, text, `abacus_http_requests_total{method="POST",route="POST /api/calculators/{name}",status="200"} 1`)
	assert.Contains(t, text, `abacus_calculations_total{calculator="tip",category="finance",outcome="ok"} 1`)
}

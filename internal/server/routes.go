package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/bobmcallan/abacus/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Calculators
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/calculators", s.handleCalculatorList)
	mux.HandleFunc("GET /api/calculators/{name}", s.handleCalculatorGet)
	mux.HandleFunc("POST /api/calculators/{name}", s.handleCalculatorRun)
	mux.HandleFunc("POST /api/calculators/{name}/chart", s.handleCalculatorChart)
	mux.HandleFunc("GET /api/glossary", s.handleGlossary)

	// Currency
	mux.HandleFunc("GET /api/currency/rates", s.handleCurrencyRates)
	mux.HandleFunc("GET /api/currency/convert", s.handleCurrencyConvert)

	// Binary tools
	mux.HandleFunc("POST /api/tools/image/{op}", s.handleImageTool)
	mux.HandleFunc("POST /api/tools/pdf/word-count", s.handlePDFWordCount)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, versionResponse{
		VersionInfo: common.GetVersionInfo(),
		Go:          runtime.Version(),
		Calculators: len(s.app.Registry.List("")),
		Uptime:      time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

type versionResponse struct {
	common.VersionInfo
	Go          string `json:"go"`
	Calculators int    `json:"calculators"`
	Uptime      string `json:"uptime"`
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.app.Config.Public())
}

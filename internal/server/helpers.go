package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/catalog"
	"github.com/bobmcallan/abacus/internal/services/chart"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "not_found"
	CodeNoChart      = "no_chart"
	CodeInternal     = "internal"
	CodeTooLarge     = "too_large"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorWithCode writes a JSON error response with an error code.
func WriteErrorWithCode(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// WriteCalcError maps a calculation error to a response: input errors are
// 400 with the offending field, unknown calculators 404, anything else 500.
func (s *Server) WriteCalcError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case calc.IsInvalidInput(err):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  CodeInvalidInput,
			Field: calc.FieldOf(err),
		})
	case errors.Is(err, catalog.ErrNotFound):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.Is(err, chart.ErrNoChart):
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), CodeNoChart)
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		WriteErrorWithCode(w, http.StatusInternalServerError, "Internal server error", CodeInternal)
	}
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// DecodeJSON reads and decodes JSON from the request body into v. An empty
// body leaves v untouched. Returns false and writes a 400 error if decoding
// fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		WriteErrorWithCode(w, http.StatusBadRequest, "Invalid JSON: "+err.Error(), CodeInvalidInput)
		return false
	}
	return true
}

package server

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/bobmcallan/abacus/internal/catalog"
	"github.com/bobmcallan/abacus/internal/models"
	"github.com/bobmcallan/abacus/internal/services/chart"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": s.app.Registry.Categories(),
	})
}

func (s *Server) handleCalculatorList(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	if category != "" && !slices.Contains(models.Categories(), category) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Invalid Input: unknown category %q", category),
			Code:  CodeInvalidInput,
			Field: "category",
		})
		return
	}
	defs := s.app.Registry.Definitions(category)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"calculators": defs,
		"count":       len(defs),
	})
}

func (s *Server) handleCalculatorGet(w http.ResponseWriter, r *http.Request) {
	c, ok := s.app.Registry.Get(r.PathValue("name"))
	if !ok {
		s.WriteCalcError(w, r, fmt.Errorf("%w: %s", catalog.ErrNotFound, r.PathValue("name")))
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// handleCalculatorRun executes a calculator with a JSON object of arguments.
// Query parameters are accepted too; body values win.
func (s *Server) handleCalculatorRun(w http.ResponseWriter, r *http.Request) {
	args, ok := s.readArgs(w, r)
	if !ok {
		return
	}
	res, err := s.app.Registry.Run(r.Context(), r.PathValue("name"), args)
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"calculator": r.PathValue("name"),
		"result":     res,
	})
}

// handleCalculatorChart runs a calculator and renders its series as a PNG.
// Calculators with an include_schedule switch have it forced on, since the
// chart is drawn from the schedule.
func (s *Server) handleCalculatorChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	c, ok := s.app.Registry.Get(name)
	if !ok {
		s.WriteCalcError(w, r, fmt.Errorf("%w: %s", catalog.ErrNotFound, name))
		return
	}
	if !c.Chart {
		s.WriteCalcError(w, r, chart.ErrNoChart)
		return
	}
	args, ok := s.readArgs(w, r)
	if !ok {
		return
	}
	if _, has := c.Param("include_schedule"); has {
		args["include_schedule"] = true
	}

	res, err := s.app.Registry.Run(r.Context(), name, args)
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}
	png, err := chart.RenderResult(res)
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// readArgs merges query parameters with the JSON body.
func (s *Server) readArgs(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	args := make(map[string]interface{})
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			args[k] = v[0]
		}
	}
	var body map[string]interface{}
	if !DecodeJSON(w, r, &body) {
		return nil, false
	}
	for k, v := range body {
		args[k] = v
	}
	return args, true
}

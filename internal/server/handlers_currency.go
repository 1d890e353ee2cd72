package server

import (
	"net/http"
)

func (s *Server) handleCurrencyRates(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		base = s.app.Config.Currency.Base
	}
	rates, err := s.app.Currency.Rates(r.Context(), base)
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rates)
}

// handleCurrencyConvert runs the currency calculator from query parameters.
func (s *Server) handleCurrencyConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	args := map[string]interface{}{}
	for _, k := range []string{"amount", "from", "to"} {
		if v := q.Get(k); v != "" {
			args[k] = v
		}
	}
	res, err := s.app.Registry.Run(r.Context(), "currency", args)
	if err != nil {
		s.WriteCalcError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/abacus/internal/catalog"
	"github.com/bobmcallan/abacus/internal/models"
)

// handleGlossary returns every calculator as a glossary term, each with a
// worked example computed live from its example arguments.
func (s *Server) handleGlossary(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	WriteJSON(w, http.StatusOK, buildGlossary(r.Context(), s.app.Registry, category))
}

// buildGlossary constructs the glossary response from the registry.
// Calculators whose example fails are listed without a value.
func buildGlossary(ctx context.Context, reg *catalog.Registry, only models.Category) *models.GlossaryResponse {
	resp := &models.GlossaryResponse{
		GeneratedAt: time.Now(),
	}

	for _, cat := range models.Categories() {
		if only != "" && cat != only {
			continue
		}
		calcs := reg.List(cat)
		if len(calcs) == 0 {
			continue
		}
		gc := models.GlossaryCategory{Name: fmtCategoryLabel(cat)}
		for _, c := range calcs {
			term := models.GlossaryTerm{
				Term:       c.Name,
				Label:      c.Title,
				Definition: c.Description,
				Formula:    c.Formula,
				Calculator: "/api/calculators/" + c.Name,
			}
			if c.Example != nil {
				if v, err := reg.Run(ctx, c.Name, c.Example); err == nil {
					term.Value = v
					term.Example = fmtExample(c.Example)
				}
			}
			gc.Terms = append(gc.Terms, term)
		}
		resp.Categories = append(resp.Categories, gc)
	}

	return resp
}

// --- Helpers ---

func fmtExample(args catalog.Args) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, args[k])
	}
	return strings.Join(parts, ", ")
}

func fmtCategoryLabel(cat models.Category) string {
	switch cat {
	case models.CategoryFinance:
		return "Finance"
	case models.CategoryHealth:
		return "Health"
	case models.CategoryMath:
		return "Math"
	case models.CategoryDateTime:
		return "Date & Time"
	case models.CategoryUnits:
		return "Unit Conversion"
	case models.CategoryDevTools:
		return "Developer Tools"
	default:
		return string(cat)
	}
}

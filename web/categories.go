package web

import (
	"net/http"

	"github.com/robinvdvleuten/cashflow/statement"
)

// CategoryInfo describes one entry of the category taxonomy.
type CategoryInfo struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Bucket   string `json:"bucket"`
	SignRule string `json:"signRule"`
}

// CategoriesResponse is the JSON response structure for the categories
// endpoint.
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

// handleGetCategories handles GET requests to /api/categories.
// Returns the full taxonomy in registry order, so the upstream mapping
// step can verify it is in lock-step with this engine.
func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	registry := statement.NewRegistry()

	categories := make([]CategoryInfo, 0, len(statement.Categories()))
	for _, c := range statement.Categories() {
		categories = append(categories, CategoryInfo{
			Name:     c.String(),
			Label:    registry.LabelOf(c),
			Kind:     registry.KindOf(c).String(),
			Bucket:   registry.BucketOf(c).String(),
			SignRule: registry.SignRuleOf(c).String(),
		})
	}

	writeJSONResponse(w, &CategoriesResponse{Categories: categories})
}

package api

import (
	"net/http"
	"strings"

	"github.com/basedlist/directory/internal/models"
	"github.com/basedlist/directory/internal/search"
)

type SearchHandler struct {
	svc *search.Service
}

func NewSearchHandler(svc *search.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type searchResponse struct {
	Query   string                `json:"query"`
	Results []models.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
	if query == "" {
		writeJSON(w, errorResponse{
			Message: "Search query is required",
			Error:   "MISSING_QUERY",
			Details: "Please provide a search query parameter",
		}, http.StatusBadRequest)
		return
	}

	results, err := h.svc.Search(r.Context(), query)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	writeJSON(w, searchResponse{Query: query, Results: results, Count: len(results)}, http.StatusOK)
}

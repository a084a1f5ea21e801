package book

import (
	"errors"
	"net/http"

	"okreads/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles GET /api/books
// @Summary Search the book catalog
// @Tags books
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /api/books [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	books, err := h.service.Search(r.Context(), term)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Book catalog unavailable", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"term":  NormalizeTerm(term),
		"total": len(books),
	})
}

package readinglist

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"okreads/internal/book"
	"okreads/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// GetList handles GET /api/reading-list/
// @Summary Get the reading list
// @Tags reading-list
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /api/reading-list/ [get]
func (h *HTTPHandler) GetList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetList(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, items, map[string]any{
		"total": len(items),
	})
}

// Add handles POST /api/reading-list/
// @Summary Add a book to the reading list
// @Tags reading-list
// @Accept json
// @Produce json
// @Param book body book.Book true "Book to add"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/reading-list/ [post]
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req book.Book
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	item, err := h.service.AddBook(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyExists):
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Book is already on the reading list", nil)
		case errors.Is(err, ErrInvalidBook):
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONCreated(w, r, item)
}

// MarkAsRead handles PUT /api/reading-list/{id}/finished
// @Summary Mark a reading list item as finished
// @Tags reading-list
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/reading-list/{id}/finished [put]
func (h *HTTPHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Missing book id", nil)
		return
	}

	var req Item
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	item, err := h.service.MarkAsRead(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book is not on the reading list", nil)
		case errors.Is(err, ErrInvalidBook):
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, item, nil)
}

// Remove handles DELETE /api/reading-list/{id}
// @Summary Remove a book from the reading list
// @Tags reading-list
// @Param id path string true "Book ID"
// @Success 204
// @Router /api/reading-list/{id} [delete]
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Missing book id", nil)
		return
	}

	if err := h.service.RemoveBook(r.Context(), id); err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONNoContent(w)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/scmc/club-backend/internal/application/services"
	"github.com/scmc/club-backend/internal/domain/entities"
)

// CourtHandler handles the court catalog
type CourtHandler struct {
	service *services.CourtService
}

// NewCourtHandler creates a new court handler
func NewCourtHandler(service *services.CourtService) *CourtHandler {
	return &CourtHandler{
		service: service,
	}
}

// ListCourts handles GET /api/courts?page=&size=
func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			page = parsed
		}
	}

	size := 6
	if s := r.URL.Query().Get("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			size = parsed
		}
	}

	courts, total, err := h.service.List(r.Context(), page, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"courts": courts,
		"total":  total,
		"page":   page,
		"size":   size,
	})
}

// ListFeaturedCourts handles GET /api/courts/featured
func (h *CourtHandler) ListFeaturedCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.service.ListFeatured(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"courts": courts,
		"count":  len(courts),
	})
}

// GetCourt handles GET /api/courts/{id}
func (h *CourtHandler) GetCourt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "court ID is required")
		return
	}

	court, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, court)
}

// CreateCourt handles POST /api/admin/courts
func (h *CourtHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	var court entities.Court
	if err := json.NewDecoder(r.Body).Decode(&court); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &court); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, court)
}

// UpdateCourt handles PATCH /api/admin/courts/{id}
func (h *CourtHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "court ID is required")
		return
	}

	var court entities.Court
	if err := json.NewDecoder(r.Body).Decode(&court); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	court.ID = id

	if err := h.service.Update(r.Context(), &court); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, court)
}

// DeleteCourt handles DELETE /api/admin/courts/{id}
func (h *CourtHandler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "court ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

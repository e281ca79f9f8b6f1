package handlers

import (
	"net/http"

	"github.com/scmc/club-backend/internal/application/services"
)

// StatsHandler serves the admin dashboard counters
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

// GetStats handles GET /api/admin/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Get(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

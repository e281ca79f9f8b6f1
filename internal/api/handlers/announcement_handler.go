package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/scmc/club-backend/internal/application/services"
	"github.com/scmc/club-backend/internal/domain/entities"
)

// AnnouncementHandler handles announcements and scheduled events
type AnnouncementHandler struct {
	announcements *services.AnnouncementService
	events        *services.EventService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcements *services.AnnouncementService, events *services.EventService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcements: announcements,
		events:        events,
	}
}

// ListAnnouncements handles GET /api/announcements
func (h *AnnouncementHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcements.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"announcements": announcements,
		"count":         len(announcements),
	})
}

// CreateAnnouncement handles POST /api/admin/announcements
func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var announcement entities.Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.announcements.Create(r.Context(), &announcement); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, announcement)
}

// UpdateAnnouncement handles PATCH /api/admin/announcements/{id}
func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "announcement ID is required")
		return
	}

	var announcement entities.Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	announcement.ID = id

	if err := h.announcements.Update(r.Context(), &announcement); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, announcement)
}

// DeleteAnnouncement handles DELETE /api/admin/announcements/{id}
func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "announcement ID is required")
		return
	}

	if err := h.announcements.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// ListEvents handles GET /api/events
func (h *AnnouncementHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// CreateEvent handles POST /api/admin/events
func (h *AnnouncementHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event entities.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.events.Create(r.Context(), &event); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PATCH /api/admin/events/{id}
func (h *AnnouncementHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var event entities.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	event.ID = id

	if err := h.events.Update(r.Context(), &event); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

package handlers

import (
	"net/http"

	"github.com/scmc/club-backend/internal/api/middleware"
	"github.com/scmc/club-backend/internal/application/services"
)

// MemberHandler handles the member roster
type MemberHandler struct {
	service *services.MembershipService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(service *services.MembershipService) *MemberHandler {
	return &MemberHandler{
		service: service,
	}
}

// ListMembers handles GET /api/admin/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"members": members,
		"count":   len(members),
	})
}

// GetMembershipDate handles GET /api/members/membership-date
func (h *MemberHandler) GetMembershipDate(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	date, err := h.service.GetMembershipDate(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"membership_granted_date": date,
	})
}

// DeleteMember handles DELETE /api/admin/members/{email}
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.service.DeleteMember(r.Context(), email); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"deleted": email})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/scmc/club-backend/internal/application/services"
)

// UserHandler handles account registration and role lookup
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.Register(r.Context(), body.Email, body.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// GetRole handles GET /api/users/{email}/role
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	role, err := h.service.GetRole(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"role": string(role)})
}

// ListUsers handles GET /api/admin/users?name=
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	nameFilter := r.URL.Query().Get("name")

	users, err := h.service.List(r.Context(), nameFilter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"socialfeed/internal/identity"
)

type AddAdminRequest struct {
	Principal string `json:"principal"`
}

type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

func (h *Handlers) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var req AddAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат JSON", http.StatusBadRequest)
		return
	}

	principal, err := identity.Parse(req.Principal)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.AdminService.AddAdmin(r.Context(), caller(r), principal); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Администратор добавлен"}, http.StatusOK)
}

func (h *Handlers) IsCallerAdmin(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := h.AdminService.IsCallerAdmin(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, IsAdminResponse{IsAdmin: isAdmin}, http.StatusOK)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

// ProfileResponse carries a null profile for users that never saved one.
type ProfileResponse struct {
	Profile *models.UserProfile `json:"profile"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

func (h *Handlers) GetCallerUserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileService.GetCallerUserProfile(r.Context(), caller(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ProfileResponse{Profile: profile}, http.StatusOK)
}

func (h *Handlers) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(r)
	if !ok {
		WriteError(w, "Неверный principal", http.StatusBadRequest)
		return
	}

	profile, err := h.ProfileService.GetUserProfile(r.Context(), caller(r), principal)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ProfileResponse{Profile: profile}, http.StatusOK)
}

func (h *Handlers) CreateOrUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат JSON", http.StatusBadRequest)
		return
	}

	profile, err := h.ProfileService.CreateOrUpdateProfile(r.Context(), caller(r), req.Username, req.Bio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ProfileResponse{Profile: profile}, http.StatusOK)
}

func (h *Handlers) SaveCallerUserProfile(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат JSON", http.StatusBadRequest)
		return
	}

	profile, err := h.ProfileService.SaveCallerUserProfile(r.Context(), caller(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ProfileResponse{Profile: profile}, http.StatusOK)
}

func (h *Handlers) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r, "picture")
	if !ok {
		return
	}
	defer file.Close()

	profile, err := h.ProfileService.UploadProfilePicture(r.Context(), caller(r), service.PictureUpload{
		FileName: header.Filename,
		Body:     file,
		Size:     header.Size,
		Progress: logProgress(header.Filename),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, ProfileResponse{Profile: profile}, http.StatusOK)
}

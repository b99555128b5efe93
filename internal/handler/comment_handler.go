package handlers

import (
	"encoding/json"
	"net/http"

	"socialfeed/internal/models"
)

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentsResponse struct {
	Comments []models.Comment `json:"comments"`
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(r)
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат JSON", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.AddComment(r.Context(), caller(r), postID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromRequest(r)
	if !ok {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	comments, err := h.CommentService.GetComments(r.Context(), caller(r), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	writeSuccess(w, CommentsResponse{Comments: comments}, http.StatusOK)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

type SendMessageRequest struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

type MessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат JSON", http.StatusBadRequest)
		return
	}

	message, err := h.MessageService.SendMessage(r.Context(), caller(r), identity.Principal(req.Receiver), req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, message, http.StatusCreated)
}

func (h *Handlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	other, ok := principalFromRequest(r)
	if !ok {
		WriteError(w, "Неверный principal", http.StatusBadRequest)
		return
	}

	messages, err := h.MessageService.GetMessages(r.Context(), caller(r), other)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	writeSuccess(w, MessagesResponse{Messages: messages}, http.StatusOK)
}

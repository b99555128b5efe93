package handlers

import (
	"net/http"

	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
)

type StatsResponse struct {
	Store   *models.StoreStats                `json:"store"`
	Latency map[string]metrics.LatencySummary `json:"latency"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, MessageResponse{Message: "socialfeed API"}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.StatsService.Health(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := StatsResponse{Store: stats, Latency: map[string]metrics.LatencySummary{}}
	if h.Metrics != nil {
		response.Latency = h.Metrics.Snapshot()
	}

	writeSuccess(w, response, http.StatusOK)
}

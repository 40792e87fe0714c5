package activity_log

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/estimatepro/estimatepro/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ActivityLogDTO struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	EntityType  string    `json:"entityType"`
	EntityID    int       `json:"entityId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing recent activity log entries")
	w.Header().Set("Content-Type", "application/json")

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Invalid limit",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		limit = parsed
	}

	entries, err := h.service.GetRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ActivityLogDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, ActivityLogDTO(entry))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

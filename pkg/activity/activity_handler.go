package activity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/estimatepro/estimatepro/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ActivityDTO struct {
	ID             int       `json:"id"`
	TaskID         int       `json:"taskId"`
	ActivityName   string    `json:"activityName"`
	Description    string    `json:"description,omitempty"`
	EstimatedCost  float64   `json:"estimatedCost"`
	ActualCost     float64   `json:"actualCost"`
	EstimatedHours float64   `json:"estimatedHours"`
	ActualHours    float64   `json:"actualHours"`
	Status         string    `json:"status"`
	AssignedTo     int       `json:"assignedTo,omitempty"`
	Date           time.Time `json:"date,omitzero"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

type ProjectBudgetDTO struct {
	Total float64 `json:"total"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating activity")
	w.Header().Set("Content-Type", "application/json")

	var dto ActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetByTask(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing activities by task")
	w.Header().Set("Content-Type", "application/json")
	taskId, ok := pathId(w, r, "taskId")
	if !ok {
		return
	}

	activities, err := h.service.GetByTask(r.Context(), taskId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ActivityDTO, 0, len(activities))
	for _, activity := range activities {
		dtos = append(dtos, toDTO(activity))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r, "activityId")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProjectBudget returns the summed estimated cost of all activities on the
// project's tasks.
func (h *Handler) ProjectBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing project budget")
	w.Header().Set("Content-Type", "application/json")
	projectId, ok := pathId(w, r, "projectId")
	if !ok {
		return
	}

	total, err := h.service.ProjectBudget(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ProjectBudgetDTO{Total: total}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func pathId(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars[name])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid " + name,
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrActivityDataInvalid):
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(activity Activity) ActivityDTO {
	return ActivityDTO{
		ID:             activity.ID,
		TaskID:         activity.TaskID,
		ActivityName:   activity.Name,
		Description:    activity.Description,
		EstimatedCost:  activity.EstimatedCost,
		ActualCost:     activity.ActualCost,
		EstimatedHours: activity.EstimatedHours,
		ActualHours:    activity.ActualHours,
		Status:         string(activity.Status),
		AssignedTo:     activity.AssignedTo,
		Date:           activity.Date,
		CreatedAt:      activity.CreatedAt,
		UpdatedAt:      activity.UpdatedAt,
	}
}

func fromDTO(dto ActivityDTO) Activity {
	return Activity{
		ID:             dto.ID,
		TaskID:         dto.TaskID,
		Name:           dto.ActivityName,
		Description:    dto.Description,
		EstimatedCost:  dto.EstimatedCost,
		ActualCost:     dto.ActualCost,
		EstimatedHours: dto.EstimatedHours,
		ActualHours:    dto.ActualHours,
		Status:         Status(dto.Status),
		AssignedTo:     dto.AssignedTo,
		Date:           dto.Date,
	}
}

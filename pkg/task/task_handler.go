package task

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

type TaskDTO struct {
	ID             int       `json:"id"`
	ProjectID      int       `json:"projectId"`
	TaskName       string    `json:"taskName"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	EstimatedHours float64   `json:"estimatedHours"`
	ActualHours    float64   `json:"actualHours"`
	StartDate      time.Time `json:"startDate,omitzero"`
	DueDate        time.Time `json:"dueDate,omitzero"`
	Tags           []string  `json:"tags,omitempty"`
	EstimatedCost  float64   `json:"estimatedCost"`
	ActualCost     float64   `json:"actualCost"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing tasks")
	w.Header().Set("Content-Type", "application/json")

	var tasks []Task
	var err error
	if projectParam := r.URL.Query().Get("projectId"); projectParam != "" {
		projectId, convErr := strconv.Atoi(projectParam)
		if convErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Invalid projectId",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		tasks, err = h.service.GetByProject(r.Context(), projectId)
	} else {
		tasks, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, toDTO(task))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating task")
	w.Header().Set("Content-Type", "application/json")

	var dto TaskDTO
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

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating task")
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var dto TaskDTO
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
	task := fromDTO(dto)
	task.ID = id

	updated, err := h.service.Update(r.Context(), task)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["taskId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid taskId",
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
	case errors.Is(err, ErrTaskNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrTaskDataInvalid):
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(task Task) TaskDTO {
	return TaskDTO{
		ID:             task.ID,
		ProjectID:      task.ProjectID,
		TaskName:       task.Name,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		StartDate:      task.StartDate,
		DueDate:        task.DueDate,
		Tags:           task.Tags,
		EstimatedCost:  task.EstimatedCost,
		ActualCost:     task.ActualCost,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

func fromDTO(dto TaskDTO) Task {
	return Task{
		ID:             dto.ID,
		ProjectID:      dto.ProjectID,
		Name:           dto.TaskName,
		Description:    dto.Description,
		Status:         Status(dto.Status),
		Priority:       Priority(dto.Priority),
		EstimatedHours: dto.EstimatedHours,
		ActualHours:    dto.ActualHours,
		StartDate:      dto.StartDate,
		DueDate:        dto.DueDate,
		Tags:           dto.Tags,
		EstimatedCost:  dto.EstimatedCost,
		ActualCost:     dto.ActualCost,
	}
}

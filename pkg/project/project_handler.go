package project

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

type ProjectDTO struct {
	ID              int              `json:"id"`
	ProjectName     string           `json:"projectName"`
	Description     string           `json:"description,omitempty"`
	StartDate       time.Time        `json:"startDate"`
	EndDate         time.Time        `json:"endDate"`
	Status          string           `json:"status"`
	Priority        string           `json:"priority"`
	EstimatedBudget float64          `json:"estimatedBudget"`
	ActualCost      float64          `json:"actualCost"`
	Client          Client           `json:"client"`
	Team            []TeamAssignment `json:"team"`
	CreatedAt       time.Time        `json:"createdAt,omitzero"`
	UpdatedAt       time.Time        `json:"updatedAt,omitzero"`
}

type StatusUpdateDTO struct {
	Status string `json:"status"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing projects")
	w.Header().Set("Content-Type", "application/json")

	projects, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectDTO, 0, len(projects))
	for _, project := range projects {
		dtos = append(dtos, toDTO(project))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating project")
	w.Header().Set("Content-Type", "application/json")

	var dto ProjectDTO
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

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	project, err := h.service.GetById(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating project")
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var dto ProjectDTO
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
	project := fromDTO(dto)
	project.ID = id

	updated, err := h.service.Update(r.Context(), project)
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

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var dto StatusUpdateDTO
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

	if err := h.service.UpdateStatus(r.Context(), id, Status(dto.Status)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
	id, err := strconv.Atoi(vars["projectId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid projectId",
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
	case errors.Is(err, ErrProjectNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrProjectDataInvalid), errors.Is(err, ErrProjectStatusUnknown):
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(project Project) ProjectDTO {
	return ProjectDTO{
		ID:              project.ID,
		ProjectName:     project.Name,
		Description:     project.Description,
		StartDate:       project.StartDate,
		EndDate:         project.EndDate,
		Status:          string(project.Status),
		Priority:        string(project.Priority),
		EstimatedBudget: project.EstimatedBudget,
		ActualCost:      project.ActualCost,
		Client:          project.Client,
		Team:            project.Team,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}

func fromDTO(dto ProjectDTO) Project {
	return Project{
		ID:              dto.ID,
		Name:            dto.ProjectName,
		Description:     dto.Description,
		StartDate:       dto.StartDate,
		EndDate:         dto.EndDate,
		Status:          Status(dto.Status),
		Priority:        Priority(dto.Priority),
		EstimatedBudget: dto.EstimatedBudget,
		ActualCost:      dto.ActualCost,
		Client:          dto.Client,
		Team:            dto.Team,
	}
}

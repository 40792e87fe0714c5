package estimation

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

type EstimationDTO struct {
	ID                 int               `json:"id"`
	ProjectID          int               `json:"projectId"`
	ProjectName        string            `json:"projectName"`
	CostBreakdown      []CategoryDTO     `json:"costBreakdown"`
	Resources          []ResourceLineDTO `json:"resources,omitempty"`
	Timeline           TimelineDTO       `json:"timeline"`
	Contingency        float64           `json:"contingency"`
	Subtotal           float64           `json:"totalCost"`
	ContingencyAmount  float64           `json:"contingencyAmount"`
	FinalCost          float64           `json:"finalCost"`
	Progress           int               `json:"progress"`
	Status             string            `json:"status"`
	RiskLevel          string            `json:"riskLevel,omitempty"`
	TeamSize           int               `json:"teamSize,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	CreatedAt          time.Time         `json:"createdAt,omitzero"`
	UpdatedAt          time.Time         `json:"updatedAt,omitzero"`
}

type CategoryDTO struct {
	Name  string     `json:"name"`
	Items []CostItem `json:"items"`
	Total float64    `json:"total"`
}

type ResourceLineDTO struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unitCost"`
	TotalCost float64 `json:"totalCost"`
}

type TimelineDTO struct {
	Phases             []Phase `json:"phases"`
	TotalDurationWeeks float64 `json:"totalDurationWeeks"`
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
	log.Debug("Listing estimations")
	w.Header().Set("Content-Type", "application/json")

	estimations, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EstimationDTO, 0, len(estimations))
	for _, estimation := range estimations {
		dtos = append(dtos, toDTO(estimation))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating estimation")
	w.Header().Set("Content-Type", "application/json")

	var dto EstimationDTO
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
	id, ok := pathId(w, r, "estimationId")
	if !ok {
		return
	}

	estimation, err := h.service.GetById(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(estimation)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating estimation")
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r, "estimationId")
	if !ok {
		return
	}

	var dto EstimationDTO
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
	estimation := fromDTO(dto)
	estimation.ID = id

	updated, err := h.service.Update(r.Context(), estimation)
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
	id, ok := pathId(w, r, "estimationId")
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
	id, ok := pathId(w, r, "estimationId")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
	case errors.Is(err, ErrEstimationNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrContingencyOutOfRange),
		errors.Is(err, ErrEstimationDataInvalid),
		errors.Is(err, ErrEstimationStatusUnknown):
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(estimation Estimation) EstimationDTO {
	categories := make([]CategoryDTO, 0, len(estimation.Categories))
	for _, category := range estimation.Categories {
		categories = append(categories, CategoryDTO{
			Name:  category.Name,
			Items: category.Items,
			Total: CategoryTotal(category),
		})
	}
	resources := make([]ResourceLineDTO, 0, len(estimation.Resources))
	for _, resource := range estimation.Resources {
		resources = append(resources, ResourceLineDTO(resource))
	}
	return EstimationDTO{
		ID:                estimation.ID,
		ProjectID:         estimation.ProjectID,
		ProjectName:       estimation.ProjectName,
		CostBreakdown:     categories,
		Resources:         resources,
		Timeline:          TimelineDTO(estimation.Timeline),
		Contingency:       estimation.ContingencyPercent,
		Subtotal:          estimation.Subtotal,
		ContingencyAmount: estimation.ContingencyAmount,
		FinalCost:         estimation.FinalCost,
		Progress:          estimation.Progress,
		Status:            string(estimation.Status),
		RiskLevel:         string(estimation.RiskLevel),
		TeamSize:          estimation.TeamSize,
		Notes:             estimation.Notes,
		CreatedAt:         estimation.CreatedAt,
		UpdatedAt:         estimation.UpdatedAt,
	}
}

func fromDTO(dto EstimationDTO) Estimation {
	categories := make([]CostCategory, 0, len(dto.CostBreakdown))
	for _, category := range dto.CostBreakdown {
		categories = append(categories, CostCategory{
			Name:  category.Name,
			Items: category.Items,
		})
	}
	resources := make([]ResourceLine, 0, len(dto.Resources))
	for _, resource := range dto.Resources {
		resources = append(resources, ResourceLine(resource))
	}
	return Estimation{
		ID:                 dto.ID,
		ProjectID:          dto.ProjectID,
		ProjectName:        dto.ProjectName,
		Categories:         categories,
		Resources:          resources,
		Timeline:           Timeline(dto.Timeline),
		ContingencyPercent: dto.Contingency,
		Status:             Status(dto.Status),
		RiskLevel:          RiskLevel(dto.RiskLevel),
		TeamSize:           dto.TeamSize,
		Notes:              dto.Notes,
	}
}

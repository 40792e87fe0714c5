package team_member

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

type TeamMemberDTO struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	Availability   string    `json:"availability"`
	HourlyRate     float64   `json:"hourlyRate"`
	Experience     float64   `json:"experience"`
	Skills         []string  `json:"skills"`
	CurrentProject string    `json:"currentProject,omitempty"`
	Notes          string    `json:"notes,omitempty"`
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
	log.Debug("Listing team members")
	w.Header().Set("Content-Type", "application/json")

	members, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TeamMemberDTO, 0, len(members))
	for _, member := range members {
		dtos = append(dtos, toDTO(member))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating team member")
	w.Header().Set("Content-Type", "application/json")

	var dto TeamMemberDTO
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

	member, err := h.service.GetById(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(member)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating team member")
	w.Header().Set("Content-Type", "application/json")
	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var dto TeamMemberDTO
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
	member := fromDTO(dto)
	member.ID = id

	updated, err := h.service.Update(r.Context(), member)
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
	id, err := strconv.Atoi(vars["memberId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid memberId",
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
	case errors.Is(err, ErrMemberNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrMemberDataInvalid):
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(member TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		ID:             member.ID,
		Name:           member.Name,
		Email:          member.Email,
		Phone:          member.Phone,
		Role:           string(member.Role),
		Availability:   string(member.Availability),
		HourlyRate:     member.HourlyRate,
		Experience:     member.ExperienceYears,
		Skills:         member.Skills,
		CurrentProject: member.CurrentProject,
		Notes:          member.Notes,
		CreatedAt:      member.CreatedAt,
		UpdatedAt:      member.UpdatedAt,
	}
}

func fromDTO(dto TeamMemberDTO) TeamMember {
	return TeamMember{
		ID:              dto.ID,
		Name:            dto.Name,
		Email:           dto.Email,
		Phone:           dto.Phone,
		Role:            Role(dto.Role),
		Availability:    Availability(dto.Availability),
		HourlyRate:      dto.HourlyRate,
		ExperienceYears: dto.Experience,
		Skills:          dto.Skills,
		CurrentProject:  dto.CurrentProject,
		Notes:           dto.Notes,
	}
}

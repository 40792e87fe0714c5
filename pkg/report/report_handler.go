package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/estimatepro/estimatepro/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ReportDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	DateRange   string    `json:"dateRange"`
	Data        Data      `json:"data"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

type GenerateRequestDTO struct {
	ReportType string `json:"reportType"`
	DateRange  string `json:"dateRange"`
	Format     string `json:"format"`
}

type Handler struct {
	service  Service
	exporter *Exporter
}

func NewHandler(service Service, exporter *Exporter) *Handler {
	return &Handler{service: service, exporter: exporter}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing reports")
	w.Header().Set("Content-Type", "application/json")

	reports, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ReportDTO, 0, len(reports))
	for _, report := range reports {
		dtos = append(dtos, toDTO(report))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving report")
	w.Header().Set("Content-Type", "application/json")

	var dto ReportDTO
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

	saved, err := h.service.Save(r.Context(), fromDTO(dto))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(saved)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Generate computes report data and either returns it as JSON (the default
// txt format) or streams it as a file attachment.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating report")

	var dto GenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	doc, err := h.service.Generate(r.Context(), ReportType(dto.ReportType), DateRange(dto.DateRange))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if dto.Format == "" || dto.Format == "json" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(doc.Data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	export, err := h.exporter.Export(doc, dto.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Content); err != nil {
		log.Errorf("could not write report export: %v", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["reportId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid reportId",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrReportNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrReportTypeUnknown), errors.Is(err, ErrReportDataInvalid):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(report Report) ReportDTO {
	return ReportDTO{
		ID:          report.ID,
		Name:        report.Name,
		Type:        string(report.Type),
		Description: report.Description,
		DateRange:   string(report.DateRange),
		Data:        report.Data,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}

func fromDTO(dto ReportDTO) Report {
	return Report{
		ID:          dto.ID,
		Name:        dto.Name,
		Type:        ReportType(dto.Type),
		Description: dto.Description,
		DateRange:   DateRange(dto.DateRange),
		Data:        dto.Data,
	}
}

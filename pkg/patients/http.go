package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/{id}/reports", h.handleListReports).Methods(http.MethodGet)
	r.HandleFunc("/{id}/reports", h.handleCreateReport).Methods(http.MethodPost)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	skip := parseIntParam(r, "skip", 0)
	limit := parseIntParam(r, "limit", 100)

	patients, err := h.service.List(r.Context(), search, skip, limit)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list patients")
		http.Error(w, "failed to list patients", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]
	patient, err := h.service.Get(r.Context(), patientID)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to get patient")
		http.Error(w, "failed to get patient", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.FirstName == "" || req.LastName == "" || req.BirthDate == "" {
		http.Error(w, "id, first_name, last_name and birth_date are required", http.StatusBadRequest)
		return
	}

	patient, err := h.service.Create(r.Context(), req)
	if errors.Is(err, ErrDuplicateID) {
		http.Error(w, "patient with this ID already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to create patient")
		http.Error(w, "failed to create patient", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, patient)
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]
	reports, err := h.service.ListReports(r.Context(), patientID)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to list reports")
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]
	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Type == "" || req.Title == "" || req.Date == "" || req.Doctor == "" {
		http.Error(w, "type, title, date and doctor are required", http.StatusBadRequest)
		return
	}

	report, err := h.service.CreateReport(r.Context(), patientID, req)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to create report")
		http.Error(w, "failed to create report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func parseIntParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("failed to encode response")
	}
}

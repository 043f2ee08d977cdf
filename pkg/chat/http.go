package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/Radpid/radGPT/pkg/patients"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("", h.handlePatientChat).Methods(http.MethodPost)
	r.HandleFunc("/general", h.handleGeneralChat).Methods(http.MethodPost)
	r.HandleFunc("/{patient_id}/history", h.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/{patient_id}/history", h.handleClearHistory).Methods(http.MethodDelete)
	r.HandleFunc("/{patient_id}/analyze", h.handleAnalyzeReports).Methods(http.MethodPost)
}

func (h *Handler) handlePatientChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	response, err := h.service.PatientChat(r.Context(), req)
	if errors.Is(err, ErrEmptyMessage) {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if errors.Is(err, patients.ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to process chat request")
		http.Error(w, "failed to process chat request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleGeneralChat(w http.ResponseWriter, r *http.Request) {
	var req models.GeneralChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	response, err := h.service.GeneralChat(r.Context(), req.Message)
	if errors.Is(err, ErrEmptyMessage) {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to process general chat request")
		http.Error(w, "failed to process general chat request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]
	messages, err := h.service.History(r.Context(), patientID)
	if errors.Is(err, patients.ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to load chat history")
		http.Error(w, "failed to load chat history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]
	deleted, err := h.service.ClearHistory(r.Context(), patientID)
	if errors.Is(err, patients.ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to clear chat history")
		http.Error(w, "failed to clear chat history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.ClearHistoryResponse{
		Message:      fmt.Sprintf("Deleted %d messages", deleted),
		DeletedCount: deleted,
	})
}

func (h *Handler) handleAnalyzeReports(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]
	answer, err := h.service.AnalyzeReports(r.Context(), patientID)
	if errors.Is(err, patients.ErrNotFound) {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.WithError(err).Error("failed to analyze reports")
		http.Error(w, "failed to analyze reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response:  answer.Text,
		MessageID: time.Now().UnixMilli(),
		Degraded:  answer.Degraded,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("failed to encode response")
	}
}

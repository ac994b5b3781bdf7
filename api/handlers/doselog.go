package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/red5labs/RxBuddy/api"
	"github.com/red5labs/RxBuddy/config"
	"github.com/red5labs/RxBuddy/databases"
	"github.com/red5labs/RxBuddy/models"
)

// DoseLog represents the dose log handler
type DoseLog struct {
	DB    databases.DoseLogDatabase
	MedDB databases.MedicationDatabase
}

// MarkTakenHandler records a dose as taken right now. Entries are immutable
// once created.
func (h DoseLog) MarkTakenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		MedicationID string `json:"medicationId"`
		UserID       string `json:"userId"`
		Note         string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.MedicationID == "" || req.UserID == "" {
		http.Error(w, "medicationId and userId are required", http.StatusBadRequest)
		return
	}
	if len(req.Note) > models.MaxDoseNoteLength {
		http.Error(w, "note is too long", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// the medication must exist and belong to the requesting user
	med, err := h.MedDB.GetMedicationByID(ctx, req.MedicationID)
	if err != nil {
		config.ErrorStatus("failed to get medication by ID", http.StatusNotFound, w, err)
		return
	}
	if med.Details.UserID != req.UserID {
		http.Error(w, "medication not found", http.StatusNotFound)
		return
	}

	id, err := h.DB.InsertDoseLog(ctx, models.DoseLog{
		MedicationID: med.ID,
		UserID:       req.UserID,
		TakenAt:      time.Now(),
		Method:       "manual",
		Note:         req.Note,
	})
	if err != nil {
		config.ErrorStatus("failed to log dose", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("dose logged", "logId", id, "medicationId", req.MedicationID, "userId", req.UserID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"_id": id})
}

// DoseLogsByUserIDHandler returns the user's dose history, newest first
func (h DoseLog) DoseLogsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]
	limit, page := paginationParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	resp, err := h.DB.ListByUserID(ctx, userID, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get dose logs", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(resp)
}

// PurgeDoseLogsHandler deletes the user's entire dose history
func (h DoseLog) PurgeDoseLogsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := h.DB.PurgeAll(ctx, userID)
	if err != nil {
		config.ErrorStatus("failed to purge dose logs", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("dose logs purged", "userId", userID, "deleted", deleted)
	json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
}

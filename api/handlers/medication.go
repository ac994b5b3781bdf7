package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/red5labs/RxBuddy/api"
	"github.com/red5labs/RxBuddy/api/calendar"
	"github.com/red5labs/RxBuddy/config"
	"github.com/red5labs/RxBuddy/databases"
	"github.com/red5labs/RxBuddy/models"
)

// Medication represents the medication handler
type Medication struct {
	DB databases.MedicationDatabase
}

// medicationRequest is the request body for create and update
type medicationRequest struct {
	UserID                string          `json:"userId"`
	Name                  string          `json:"name"`
	Dosage                string          `json:"dosage"`
	Frequency             string          `json:"frequency"`
	Schedule              models.Schedule `json:"schedule"`
	StartDate             string          `json:"startDate"`
	EndDate               string          `json:"endDate"`
	ReminderEnabled       bool            `json:"reminderEnabled"`
	ReminderOffsetMinutes int             `json:"reminderOffsetMinutes"`
	PhotoRef              string          `json:"photoRef"`
	Notes                 string          `json:"notes"`
}

func (m medicationRequest) validate() string {
	if m.UserID == "" {
		return "userId is required"
	}
	if m.Name == "" {
		return "name is required"
	}
	if err := m.Schedule.Validate(); err != nil {
		return err.Error()
	}
	if m.StartDate != "" {
		if _, err := time.Parse(calendar.DateLayout, m.StartDate); err != nil {
			return "startDate must be YYYY-MM-DD"
		}
	}
	if m.EndDate != "" {
		if _, err := time.Parse(calendar.DateLayout, m.EndDate); err != nil {
			return "endDate must be YYYY-MM-DD"
		}
	}
	if m.ReminderOffsetMinutes < 0 {
		return "reminderOffsetMinutes must not be negative"
	}
	return ""
}

func (m medicationRequest) details() models.MedicationDetails {
	return models.MedicationDetails{
		UserID:                m.UserID,
		Name:                  m.Name,
		Dosage:                m.Dosage,
		Frequency:             m.Frequency,
		Schedule:              m.Schedule,
		StartDate:             m.StartDate,
		EndDate:               m.EndDate,
		IsActive:              true,
		ReminderEnabled:       m.ReminderEnabled,
		ReminderOffsetMinutes: m.ReminderOffsetMinutes,
		PhotoRef:              m.PhotoRef,
		Notes:                 m.Notes,
	}
}

// CreateMedicationHandler creates a new medication with its dosing schedule
func (h Medication) CreateMedicationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req medicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id, err := h.DB.CreateMedication(ctx, req.details())
	if err != nil {
		config.ErrorStatus("failed to create medication", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("medication created", "medicationId", id, "userId", req.UserID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"_id": id})
}

// MedicationByIDHandler returns a single medication by ID
func (h Medication) MedicationByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	medicationID := mux.Vars(r)["medication_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	medication, err := h.DB.GetMedicationByID(ctx, medicationID)
	if err != nil {
		config.ErrorStatus("failed to get medication by ID", http.StatusNotFound, w, err)
		return
	}

	json.NewEncoder(w).Encode(medication)
}

// MedicationsByUserIDHandler returns the user's medications; pass
// include_archived=true to include archived ones
func (h Medication) MedicationsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	limit, page := paginationParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	resp, err := h.DB.GetMedicationsByUserID(ctx, userID, includeArchived, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get medications", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(resp)
}

// UpdateMedicationHandler replaces a medication's details, including its
// schedule. Replacing the schedule type destroys the previous variant.
func (h Medication) UpdateMedicationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	medicationID := mux.Vars(r)["medication_id"]

	var req medicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	existing, err := h.DB.GetMedicationByID(ctx, medicationID)
	if err != nil {
		config.ErrorStatus("failed to get medication by ID", http.StatusNotFound, w, err)
		return
	}
	if existing.Details.UserID != req.UserID {
		http.Error(w, "medication not found", http.StatusNotFound)
		return
	}

	details := req.details()
	details.IsActive = existing.Details.IsActive
	details.CreatedAt = existing.Details.CreatedAt
	if err := h.DB.UpdateMedication(ctx, medicationID, details); err != nil {
		config.ErrorStatus("failed to update medication", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"_id": medicationID})
}

// ArchiveMedicationHandler soft-disables a medication, preserving its dose log history
func (h Medication) ArchiveMedicationHandler(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// UnarchiveMedicationHandler re-enables a previously archived medication
func (h Medication) UnarchiveMedicationHandler(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h Medication) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	w.Header().Set("Content-Type", "application/json")
	medicationID := mux.Vars(r)["medication_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := h.DB.GetMedicationByID(ctx, medicationID); err != nil {
		config.ErrorStatus("failed to get medication by ID", http.StatusNotFound, w, err)
		return
	}
	if err := h.DB.SetActive(ctx, medicationID, active); err != nil {
		config.ErrorStatus("failed to update medication", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("medication active flag updated", "medicationId", medicationID, "isActive", active)
	json.NewEncoder(w).Encode(map[string]interface{}{"_id": medicationID, "isActive": active})
}

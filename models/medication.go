package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule kinds. Exactly one payload field is populated for a given kind.
const (
	ScheduleTimeOfDay = "time_of_day"
	ScheduleInterval  = "interval"
)

// Medication holds the structure for the medication collection in mongo
type Medication struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details MedicationDetails  `json:"medication" bson:"medication"`
	Version int32              `json:"__v" bson:"__v"`
}

// MedicationDetails holds the structure for the inner medication structure
type MedicationDetails struct {
	UserID                string             `json:"userID" bson:"userID"`
	Name                  string             `json:"name" bson:"name"`
	Dosage                string             `json:"dosage" bson:"dosage"`
	Frequency             string             `json:"frequency" bson:"frequency"`
	Schedule              Schedule           `json:"schedule" bson:"schedule"`
	StartDate             string             `json:"startDate,omitempty" bson:"startDate,omitempty"` // YYYY-MM-DD
	EndDate               string             `json:"endDate,omitempty" bson:"endDate,omitempty"`     // YYYY-MM-DD
	IsActive              bool               `json:"isActive" bson:"isActive"`
	ReminderEnabled       bool               `json:"reminderEnabled" bson:"reminderEnabled"`
	ReminderOffsetMinutes int                `json:"reminderOffsetMinutes" bson:"reminderOffsetMinutes"`
	PhotoRef              string             `json:"photoRef,omitempty" bson:"photoRef,omitempty"`
	Notes                 string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt             primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt             primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Schedule is the dosing rule for a medication. Kind selects the variant:
// time_of_day repeats daily at TimeOfDay, interval repeats every IntervalHours
// relative to the last logged dose.
type Schedule struct {
	Kind          string `json:"kind" bson:"kind"`
	TimeOfDay     string `json:"timeOfDay,omitempty" bson:"timeOfDay,omitempty"` // HH:MM wall clock
	IntervalHours int    `json:"intervalHours,omitempty" bson:"intervalHours,omitempty"`
}

// Validate enforces the exactly-one-variant invariant. Called at the API
// boundary; the calendar engine and scheduler assume a validated schedule.
func (s Schedule) Validate() error {
	switch s.Kind {
	case ScheduleTimeOfDay:
		if s.IntervalHours != 0 {
			return fmt.Errorf("time_of_day schedule must not set intervalHours")
		}
		if _, err := time.Parse("15:04", s.TimeOfDay); err != nil {
			return fmt.Errorf("invalid timeOfDay %q: %v", s.TimeOfDay, err)
		}
	case ScheduleInterval:
		if s.TimeOfDay != "" {
			return fmt.Errorf("interval schedule must not set timeOfDay")
		}
		if s.IntervalHours <= 0 {
			return fmt.Errorf("intervalHours must be a positive integer, got %d", s.IntervalHours)
		}
	default:
		return fmt.Errorf("unknown schedule kind %q", s.Kind)
	}
	return nil
}

// MedicationListResponse represents the API response structure for medication lists
type MedicationListResponse struct {
	Medications []Medication `json:"medications"`
	Pagination  Pagination   `json:"pagination"`
}

// Pagination holds pagination metadata for list responses
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	Limit        int64 `json:"limit"`
}

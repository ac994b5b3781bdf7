package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxDoseNoteLength bounds the free-text note on a dose log entry
const MaxDoseNoteLength = 500

// DoseLog represents a single dose actually taken. Entries are append-only and
// never updated; the owning user may purge their whole history.
type DoseLog struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	MedicationID primitive.ObjectID `json:"medicationId" bson:"medicationId"`
	UserID       string             `json:"userId" bson:"userId"`
	TakenAt      time.Time          `json:"takenAt" bson:"takenAt"`
	Method       string             `json:"method" bson:"method"` // manual
	Note         string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// DoseStats aggregates dose logs over a date range
type DoseStats struct {
	TotalDoses       int     `json:"totalDoses" bson:"totalDoses"`
	DaysWithDoses    int     `json:"daysWithDoses" bson:"daysWithDoses"`
	MedicationsTaken int     `json:"medicationsTaken" bson:"medicationsTaken"`
	AdherenceRate    float64 `json:"adherenceRate" bson:"-"`
}

// DoseLogListResponse represents the API response structure for dose log lists
type DoseLogListResponse struct {
	Logs       []DoseLog  `json:"logs"`
	Pagination Pagination `json:"pagination"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder statuses. A reminder is created pending and moves exactly once to
// sent or failed; failed instances are never retried.
const (
	ReminderPending = "pending"
	ReminderSent    = "sent"
	ReminderFailed  = "failed"
)

// Reminder represents a forward-scheduled email notification intent
type Reminder struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	MedicationID  primitive.ObjectID `json:"medicationId" bson:"medicationId"`
	UserID        string             `json:"userId" bson:"userId"`
	ScheduledTime time.Time          `json:"scheduledTime" bson:"scheduledTime"`
	Status        string             `json:"status" bson:"status"`
	ErrorMessage  string             `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	SentAt        *time.Time         `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	CreatedAt     primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

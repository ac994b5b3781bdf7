package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailLog is the audit record for every reminder email dispatch attempt
type EmailLog struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	UserID       string             `json:"userId" bson:"userId"`
	EmailAddress string             `json:"emailAddress" bson:"emailAddress"`
	Subject      string             `json:"subject" bson:"subject"`
	Status       string             `json:"status" bson:"status"` // sent, failed
	ErrorMessage string             `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

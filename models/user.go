package models

import "time"

// User holds the structure for the user collection in mongo
type User struct {
	ID      string      `json:"_id" bson:"_id"`
	Details UserDetails `json:"user" bson:"user"`
	Version int32       `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user structure as defined in the user collection in mongo
type UserDetails struct {
	Name           string      `json:"name" bson:"name"`
	Email          string      `json:"email" bson:"email"`
	Password       string      `json:"password" bson:"password"`
	EmailReminders bool        `json:"emailReminders" bson:"emailReminders"`
	EmailVerified  bool        `json:"emailVerified" bson:"emailVerified"`
	CreatedAt      interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt      interface{} `json:"updatedAt" bson:"updatedAt"`

	// VerificationToken and VerificationExpires back the email verification
	// link. They never leave the API.
	VerificationToken   string     `json:"-" bson:"verificationToken,omitempty"`
	VerificationExpires *time.Time `json:"-" bson:"verificationExpires,omitempty"`
}

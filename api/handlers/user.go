package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/red5labs/RxBuddy/api"
	"github.com/red5labs/RxBuddy/api/scheduler"
	"github.com/red5labs/RxBuddy/config"
	"github.com/red5labs/RxBuddy/databases"
	"github.com/red5labs/RxBuddy/models"
)

// verificationTTL is how long an email verification link stays valid.
const verificationTTL = 24 * time.Hour

// User represents the user handler
type User struct {
	DB      databases.UserDatabase
	Mailer  scheduler.Mailer
	BaseURL string
}

// UserCreateHandler creates a new user account
func (h User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	existing, err := h.DB.Find(ctx, bson.M{"user.email": req.Email})
	if err != nil {
		config.ErrorStatus("failed to check existing user", http.StatusInternalServerError, w, err)
		return
	}
	if len(existing) > 0 {
		http.Error(w, "email already exists", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	token := uuid.New().String()
	expires := time.Now().Add(verificationTTL)
	id, err := h.DB.InsertUser(ctx, models.UserDetails{
		Name:                req.Name,
		Email:               req.Email,
		Password:            string(hashed),
		EmailReminders:      true,
		VerificationToken:   token,
		VerificationExpires: &expires,
	})
	if err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	h.sendVerificationEmail(r.Context(), id, req.Email, req.Name, token)

	zap.S().Infow("user created", "userId", id)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"_id": id})
}

// sendVerificationEmail mails the verification link for a freshly created
// account. A send failure is logged but never fails the signup; reminders stay
// off until the link is clicked.
func (h User) sendVerificationEmail(ctx context.Context, userID, email, name, token string) {
	if h.Mailer == nil {
		return
	}

	link := h.BaseURL + "/api/v1/user/verify-email?token=" + token
	subject := "Verify Your RxBuddy Email"
	plainText := fmt.Sprintf("Hi %s, confirm your email address to start receiving medication reminders: %s",
		name, link)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>Confirm your email address to start receiving medication reminders:</p><p><a href=%q>Verify email</a></p>",
		name, link)

	if err := h.Mailer.Send(ctx, email, name, subject, plainText, htmlContent); err != nil {
		zap.S().Warnw("failed to send verification email", "error", err, "userId", userID)
		return
	}
	zap.S().Infow("verification email sent", "userId", userID)
}

// VerifyEmailHandler resolves the token from a verification link and flags the
// account's email as verified
func (h User) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	verified, err := h.DB.VerifyEmail(ctx, token, time.Now())
	if err != nil {
		config.ErrorStatus("failed to verify email", http.StatusInternalServerError, w, err)
		return
	}
	if !verified {
		http.Error(w, "invalid or expired verification link", http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]bool{"verified": true})
}

// UserHandler returns a single user by ID
func (h User) UserHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.DB.FindByID(ctx, userID)
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusInternalServerError, w, err)
		return
	}
	if user == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	user.Details.Password = ""
	json.NewEncoder(w).Encode(user)
}

// UpdateReminderSettingsHandler toggles the user's email reminder preference
func (h User) UpdateReminderSettingsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]

	var req struct {
		EmailReminders bool `json:"emailReminders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := h.DB.UpdateReminderSettings(ctx, userID, req.EmailReminders); err != nil {
		config.ErrorStatus("failed to update reminder settings", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"_id": userID, "emailReminders": req.EmailReminders})
}

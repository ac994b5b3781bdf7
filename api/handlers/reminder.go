package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/red5labs/RxBuddy/api"
	"github.com/red5labs/RxBuddy/config"
	"github.com/red5labs/RxBuddy/databases"
)

// Reminder represents the reminder handler. Reminder rows are created and
// resolved by the background scheduler; this surface is read-only.
type Reminder struct {
	DB databases.ReminderDatabase
}

// RemindersByUserIDHandler returns the user's reminder history, newest first
func (h Reminder) RemindersByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]
	limit, page := paginationParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reminders, err := h.DB.ListByUserID(ctx, userID, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get reminders", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"reminders": reminders})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/red5labs/RxBuddy/api"
	"github.com/red5labs/RxBuddy/config"
	"github.com/red5labs/RxBuddy/databases"
)

// EmailLog represents the email audit log handler
type EmailLog struct {
	DB databases.EmailLogDatabase
}

// EmailLogsByUserIDHandler returns the user's email audit trail, newest first
func (h EmailLog) EmailLogsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]
	limit, page := paginationParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	logs, err := h.DB.ListByUserID(ctx, userID, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get email logs", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"emailLogs": logs})
}

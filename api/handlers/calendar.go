package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/red5labs/RxBuddy/api"
	"github.com/red5labs/RxBuddy/api/calendar"
	"github.com/red5labs/RxBuddy/config"
)

// Calendar exposes the dose-resolution engine over HTTP. All input validation
// happens here; the engine assumes well-formed dates.
type Calendar struct {
	Service *calendar.Service
	Loc     *time.Location
}

// DayHandler returns the scheduled/taken/missed doses for one calendar date
func (h Calendar) DayHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	date, err := time.ParseInLocation(calendar.DateLayout, r.URL.Query().Get("date"), h.Loc)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	day, err := h.Service.GetDayData(ctx, userID, date, time.Now())
	if err != nil {
		config.ErrorStatus("failed to resolve day data", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(day)
}

// MonthHandler returns the calendar data and adherence statistics for a month
func (h Calendar) MonthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	year, month, ok := yearMonthParams(r)
	if !ok {
		http.Error(w, "year and month are required and must be valid", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	data, err := h.Service.GetMonthData(ctx, userID, year, month, time.Now())
	if err != nil {
		config.ErrorStatus("failed to resolve month data", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(data)
}

// WeekHandler returns the calendar data and adherence statistics for the
// Monday-to-Sunday week containing the given date
func (h Calendar) WeekHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	year, month, ok := yearMonthParams(r)
	if !ok {
		http.Error(w, "year and month are required and must be valid", http.StatusBadRequest)
		return
	}
	day, err := strconv.Atoi(r.URL.Query().Get("day"))
	if err != nil || day < 1 || day > 31 {
		http.Error(w, "day is required and must be valid", http.StatusBadRequest)
		return
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, h.Loc)
	// reject dates that normalized to a different month, e.g. Feb 30
	if date.Month() != month || date.Day() != day {
		http.Error(w, "day is out of range for the given month", http.StatusBadRequest)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	data, err := h.Service.GetWeekData(ctx, userID, date, time.Now())
	if err != nil {
		config.ErrorStatus("failed to resolve week data", http.StatusInternalServerError, w, err)
		return
	}

	json.NewEncoder(w).Encode(data)
}

func yearMonthParams(r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1970 || year > 9999 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// Package calendar is the dose-scheduling and adherence-computation engine.
// It resolves, for a user and a calendar date, which doses were scheduled,
// taken and missed, and aggregates those resolutions over weeks and months.
// All computation is relative to an explicit time.Location and an explicit
// "now" so results are deterministic and independently testable.
package calendar

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/red5labs/RxBuddy/databases"
	"github.com/red5labs/RxBuddy/models"
)

// Dose type tags on scheduled/missed entries
const (
	DoseTimeBased     = "time_based"
	DoseIntervalBased = "interval_based"
)

// Dose is a single scheduled (or missed) dose instance for a medication
type Dose struct {
	MedicationID   string    `json:"medicationId"`
	MedicationName string    `json:"medicationName"`
	Dosage         string    `json:"dosage"`
	ScheduledTime  time.Time `json:"scheduledTime"`
	Type           string    `json:"type"`
}

// TakenDose is a logged dose decorated with its medication's display fields
type TakenDose struct {
	LogID          string    `json:"logId"`
	MedicationID   string    `json:"medicationId"`
	MedicationName string    `json:"medicationName,omitempty"`
	Dosage         string    `json:"dosage,omitempty"`
	TakenAt        time.Time `json:"takenAt"`
	Method         string    `json:"method"`
	Note           string    `json:"note,omitempty"`
}

// DayData is the resolved dose picture for one user on one calendar date
type DayData struct {
	Date      string      `json:"date"`
	DayName   string      `json:"dayName"`
	DayNumber int         `json:"dayNumber"`
	IsToday   bool        `json:"isToday"`
	IsPast    bool        `json:"isPast"`
	IsFuture  bool        `json:"isFuture"`
	Scheduled []Dose      `json:"scheduledDoses"`
	Taken     []TakenDose `json:"takenDoses"`
	Missed    []Dose      `json:"missedDoses"`
}

// Navigation carries previous/next period identifiers for calendar views
type Navigation struct {
	Current string `json:"current"`
	Prev    string `json:"prev"`
	Next    string `json:"next"`
	Today   string `json:"today"`
}

// MonthData is the calendar view of a full month plus the user's active
// medication roster and range statistics
type MonthData struct {
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	MonthName   string              `json:"monthName"`
	Days        map[string]*DayData `json:"days"`
	Medications []models.Medication `json:"medications"`
	Stats       models.DoseStats    `json:"stats"`
	Navigation  Navigation          `json:"navigation"`
}

// WeekData is the calendar view of a Monday-to-Sunday week plus the user's
// active medication roster and range statistics
type WeekData struct {
	WeekStart   string              `json:"weekStart"`
	WeekEnd     string              `json:"weekEnd"`
	WeekName    string              `json:"weekName"`
	Days        map[string]*DayData `json:"days"`
	Medications []models.Medication `json:"medications"`
	Stats       models.DoseStats    `json:"stats"`
	Navigation  Navigation          `json:"navigation"`
}

// Service resolves dose schedules against the medication and dose log stores
type Service struct {
	MedDB databases.MedicationDatabase
	LogDB databases.DoseLogDatabase
	Loc   *time.Location
}

// NewService creates a calendar service bound to the given stores and timezone
func NewService(medDB databases.MedicationDatabase, logDB databases.DoseLogDatabase, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{MedDB: medDB, LogDB: logDB, Loc: loc}
}

// GetDayData resolves the scheduled, taken and missed doses for one calendar
// date. Missing or sparse history never produces an error, only empty sets;
// the returned error is reserved for store failures.
func (s *Service) GetDayData(ctx context.Context, userID string, date, now time.Time) (*DayData, error) {
	dayStart, dayEnd := DayBounds(date, s.Loc)
	todayStart, _ := DayBounds(now, s.Loc)
	dateStr := dayStart.Format(DateLayout)

	meds, err := s.MedDB.ActiveMedicationsOn(ctx, userID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("active medications for %s: %w", dateStr, err)
	}

	logs, err := s.LogDB.DosesBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("dose logs for %s: %w", dateStr, err)
	}

	scheduled, err := s.scheduledDoses(ctx, meds, dayStart)
	if err != nil {
		return nil, err
	}

	taken := decorateTaken(logs, meds, s.Loc)

	// Missed doses only exist once the day has become due: future dates are
	// always empty. Matching is by medication identity, not scheduled slot.
	var missed []Dose
	if !dayStart.After(todayStart) {
		takenMeds := make(map[string]bool, len(taken))
		for _, t := range taken {
			takenMeds[t.MedicationID] = true
		}
		for _, d := range scheduled {
			if !takenMeds[d.MedicationID] {
				missed = append(missed, d)
			}
		}
	}

	return &DayData{
		Date:      dateStr,
		DayName:   dayStart.Weekday().String(),
		DayNumber: dayStart.Day(),
		IsToday:   dayStart.Equal(todayStart),
		IsPast:    dayStart.Before(todayStart),
		IsFuture:  dayStart.After(todayStart),
		Scheduled: scheduled,
		Taken:     taken,
		Missed:    missed,
	}, nil
}

// scheduledDoses computes the doses due on the day starting at dayStart for
// the given active medications. Time-of-day schedules contribute exactly one
// dose per day. Interval schedules contribute at most one: the single next
// due instant derived from the latest log entry (or the start-date fallback),
// and only when that instant lands on this day.
func (s *Service) scheduledDoses(ctx context.Context, meds []models.Medication, dayStart time.Time) ([]Dose, error) {
	var doses []Dose
	for _, med := range meds {
		switch med.Details.Schedule.Kind {
		case models.ScheduleTimeOfDay:
			doses = append(doses, Dose{
				MedicationID:   med.ID.Hex(),
				MedicationName: med.Details.Name,
				Dosage:         med.Details.Dosage,
				ScheduledTime:  CombineDate(dayStart, med.Details.Schedule.TimeOfDay, s.Loc),
				Type:           DoseTimeBased,
			})
		case models.ScheduleInterval:
			next, ok, err := s.nextIntervalDose(ctx, med, dayStart)
			if err != nil {
				return nil, err
			}
			if ok && SameDay(next, dayStart, s.Loc) {
				doses = append(doses, Dose{
					MedicationID:   med.ID.Hex(),
					MedicationName: med.Details.Name,
					Dosage:         med.Details.Dosage,
					ScheduledTime:  next,
					Type:           DoseIntervalBased,
				})
			}
		}
	}

	sort.SliceStable(doses, func(i, j int) bool {
		return doses[i].ScheduledTime.Before(doses[j].ScheduledTime)
	})
	return doses, nil
}

// nextIntervalDose derives the single next due instant for an interval
// medication: last logged dose plus the interval, or the medication's start
// date at the default first-dose time when nothing has been logged yet and
// the start date is on or before the queried day. Reports ok=false when
// neither source yields a usable instant.
func (s *Service) nextIntervalDose(ctx context.Context, med models.Medication, dayStart time.Time) (time.Time, bool, error) {
	last, err := s.LogDB.LatestDose(ctx, med.ID)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest dose for %s: %w", med.ID.Hex(), err)
	}

	if last == nil {
		if med.Details.StartDate == "" {
			return time.Time{}, false, nil
		}
		start, err := time.ParseInLocation(DateLayout, med.Details.StartDate, s.Loc)
		if err != nil || start.After(dayStart) {
			return time.Time{}, false, nil
		}
		return CombineDate(start, FirstDoseDefaultTime, s.Loc), true, nil
	}

	return NextIntervalDose(last.TakenAt.In(s.Loc), med.Details.Schedule.IntervalHours), true, nil
}

// GetMonthData composes the day resolver over every date of the month. The
// adherence denominator is always the full month length, even when the month
// is still in progress.
func (s *Service) GetMonthData(ctx context.Context, userID string, year int, month time.Month, now time.Time) (*MonthData, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, s.Loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	totalDays := monthEnd.AddDate(0, 0, -1).Day()

	days := make(map[string]*DayData, totalDays)
	for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
		dayData, err := s.GetDayData(ctx, userID, d, now)
		if err != nil {
			return nil, err
		}
		days[dayData.Date] = dayData
	}

	stats, err := s.rangeStats(ctx, userID, monthStart, monthEnd, totalDays)
	if err != nil {
		return nil, err
	}

	// the roster is the user's current active medications, not window filtered
	meds, err := s.MedDB.ActiveMedications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("active medications: %w", err)
	}

	return &MonthData{
		Year:        year,
		Month:       int(month),
		MonthName:   monthStart.Format("January 2006"),
		Days:        days,
		Medications: meds,
		Stats:       *stats,
		Navigation:  s.monthNavigation(monthStart, now),
	}, nil
}

// GetWeekData composes the day resolver over the Monday-to-Sunday week
// containing the given date
func (s *Service) GetWeekData(ctx context.Context, userID string, date, now time.Time) (*WeekData, error) {
	weekStart := WeekStart(date, s.Loc)
	weekEnd := weekStart.AddDate(0, 0, 7)
	lastDay := weekEnd.AddDate(0, 0, -1)

	days := make(map[string]*DayData, 7)
	for d := weekStart; d.Before(weekEnd); d = d.AddDate(0, 0, 1) {
		dayData, err := s.GetDayData(ctx, userID, d, now)
		if err != nil {
			return nil, err
		}
		days[dayData.Date] = dayData
	}

	stats, err := s.rangeStats(ctx, userID, weekStart, weekEnd, 7)
	if err != nil {
		return nil, err
	}

	meds, err := s.MedDB.ActiveMedications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("active medications: %w", err)
	}

	todayStart, _ := DayBounds(now, s.Loc)
	return &WeekData{
		WeekStart:   weekStart.Format(DateLayout),
		WeekEnd:     lastDay.Format(DateLayout),
		WeekName:    weekStart.Format("Jan 2") + " - " + lastDay.Format("Jan 2, 2006"),
		Days:        days,
		Medications: meds,
		Stats:       *stats,
		Navigation: Navigation{
			Current: weekStart.Format(DateLayout),
			Prev:    weekStart.AddDate(0, 0, -7).Format(DateLayout),
			Next:    weekStart.AddDate(0, 0, 7).Format(DateLayout),
			Today:   todayStart.Format(DateLayout),
		},
	}, nil
}

func (s *Service) rangeStats(ctx context.Context, userID string, from, to time.Time, totalDays int) (*models.DoseStats, error) {
	stats, err := s.LogDB.RangeStats(ctx, userID, from, to, s.Loc.String())
	if err != nil {
		return nil, fmt.Errorf("range stats: %w", err)
	}
	stats.AdherenceRate = AdherenceRate(stats.DaysWithDoses, totalDays)
	return stats, nil
}

// AdherenceRate is the percentage of days in a range with at least one logged
// dose, rounded to one decimal
func AdherenceRate(daysWithDoses, totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	return math.Round(float64(daysWithDoses)/float64(totalDays)*1000) / 10
}

func (s *Service) monthNavigation(monthStart, now time.Time) Navigation {
	todayStart, _ := DayBounds(now, s.Loc)
	return Navigation{
		Current: monthStart.Format("2006-01"),
		Prev:    monthStart.AddDate(0, -1, 0).Format("2006-01"),
		Next:    monthStart.AddDate(0, 1, 0).Format("2006-01"),
		Today:   todayStart.Format(DateLayout),
	}
}

func decorateTaken(logs []models.DoseLog, meds []models.Medication, loc *time.Location) []TakenDose {
	byID := make(map[string]models.Medication, len(meds))
	for _, m := range meds {
		byID[m.ID.Hex()] = m
	}

	taken := make([]TakenDose, 0, len(logs))
	for _, l := range logs {
		t := TakenDose{
			LogID:        l.ID.Hex(),
			MedicationID: l.MedicationID.Hex(),
			TakenAt:      l.TakenAt.In(loc),
			Method:       l.Method,
			Note:         l.Note,
		}
		if med, ok := byID[t.MedicationID]; ok {
			t.MedicationName = med.Details.Name
			t.Dosage = med.Details.Dosage
		}
		taken = append(taken, t)
	}
	return taken
}

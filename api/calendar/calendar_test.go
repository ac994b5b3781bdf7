package calendar_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/red5labs/RxBuddy/api/calendar"
	"github.com/red5labs/RxBuddy/databases/mocks"
	"github.com/red5labs/RxBuddy/models"
)

func timeOfDayMed(id primitive.ObjectID, name, tod string) models.Medication {
	return models.Medication{
		ID: id,
		Details: models.MedicationDetails{
			UserID:   "user1",
			Name:     name,
			Dosage:   "10mg",
			IsActive: true,
			Schedule: models.Schedule{Kind: models.ScheduleTimeOfDay, TimeOfDay: tod},
		},
	}
}

func intervalMed(id primitive.ObjectID, name string, hours int, startDate string) models.Medication {
	return models.Medication{
		ID: id,
		Details: models.MedicationDetails{
			UserID:    "user1",
			Name:      name,
			Dosage:    "200mg",
			IsActive:  true,
			StartDate: startDate,
			Schedule:  models.Schedule{Kind: models.ScheduleInterval, IntervalHours: hours},
		},
	}
}

func TestGetDayDataTimeOfDayTakenIsNotMissed(t *testing.T) {
	medID := primitive.NewObjectID()
	med := timeOfDayMed(medID, "Lisinopril", "08:00")

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-01-01").
		Return([]models.Medication{med}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{{
			ID:           primitive.NewObjectID(),
			MedicationID: medID,
			UserID:       "user1",
			TakenAt:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			Method:       "manual",
		}}, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	assert.Equal(t, "2024-01-01", day.Date)
	assert.True(t, day.IsPast)
	assert.Len(t, day.Scheduled, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), day.Scheduled[0].ScheduledTime)
	assert.Equal(t, calendar.DoseTimeBased, day.Scheduled[0].Type)
	assert.Len(t, day.Taken, 1)
	assert.Equal(t, "Lisinopril", day.Taken[0].MedicationName)
	assert.Empty(t, day.Missed)
}

func TestGetDayDataTimeOfDayUntakenPastDayIsMissed(t *testing.T) {
	medID := primitive.NewObjectID()
	med := timeOfDayMed(medID, "Lisinopril", "08:00")

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-01-02").
		Return([]models.Medication{med}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	assert.Len(t, day.Scheduled, 1)
	assert.Empty(t, day.Taken)
	assert.Len(t, day.Missed, 1)
	assert.Equal(t, medID.Hex(), day.Missed[0].MedicationID)
}

func TestGetDayDataFutureDayIsNeverMissed(t *testing.T) {
	medID := primitive.NewObjectID()
	med := timeOfDayMed(medID, "Lisinopril", "08:00")

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-01-20").
		Return([]models.Medication{med}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	assert.True(t, day.IsFuture)
	assert.Len(t, day.Scheduled, 1)
	assert.Empty(t, day.Missed)
}

func TestGetDayDataIntervalNextDoseSameDay(t *testing.T) {
	medID := primitive.NewObjectID()
	med := intervalMed(medID, "Ibuprofen", 8, "2024-02-01")

	takenAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	lastLog := models.DoseLog{
		ID:           primitive.NewObjectID(),
		MedicationID: medID,
		UserID:       "user1",
		TakenAt:      takenAt,
		Method:       "manual",
	}

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-03-01").
		Return([]models.Medication{med}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{lastLog}, nil)
	logDB.On("LatestDose", mock.Anything, medID).Return(&lastLog, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	assert.Len(t, day.Scheduled, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC), day.Scheduled[0].ScheduledTime)
	assert.Equal(t, calendar.DoseIntervalBased, day.Scheduled[0].Type)
	assert.Len(t, day.Taken, 1)

	// The 09:00 dose already covers this medication for the day, so the 17:00
	// slot does not surface as missed.
	assert.Empty(t, day.Missed)
}

func TestGetDayDataIntervalNextDoseLandsOnAnotherDay(t *testing.T) {
	medID := primitive.NewObjectID()
	med := intervalMed(medID, "Ibuprofen", 8, "2024-02-01")

	lastLog := models.DoseLog{
		ID:           primitive.NewObjectID(),
		MedicationID: medID,
		UserID:       "user1",
		TakenAt:      time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
		Method:       "manual",
	}

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-03-02").
		Return([]models.Medication{med}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)
	logDB.On("LatestDose", mock.Anything, medID).Return(&lastLog, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	// 20:00 + 8h lands at 04:00 on the 2nd
	assert.Len(t, day.Scheduled, 1)
	assert.Equal(t, time.Date(2024, 3, 2, 4, 0, 0, 0, time.UTC), day.Scheduled[0].ScheduledTime)
}

func TestGetDayDataIntervalStartDateFallback(t *testing.T) {
	medID := primitive.NewObjectID()
	med := intervalMed(medID, "Ibuprofen", 8, "2024-03-01")

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-03-01").
		Return([]models.Medication{med}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)
	logDB.On("LatestDose", mock.Anything, medID).Return(nil, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	// No doses logged yet: the first dose is assumed at 08:00 on the start date
	assert.Len(t, day.Scheduled, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), day.Scheduled[0].ScheduledTime)
	assert.Len(t, day.Missed, 1)
}

func TestGetDayDataIntervalNoHistoryNoStartDate(t *testing.T) {
	medID := primitive.NewObjectID()
	med := intervalMed(medID, "Ibuprofen", 8, "")

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-03-01").
		Return([]models.Medication{med}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)
	logDB.On("LatestDose", mock.Anything, medID).Return(nil, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	assert.Empty(t, day.Scheduled)
	assert.Empty(t, day.Missed)
}

func TestGetDayDataSortsScheduledDoses(t *testing.T) {
	medA := timeOfDayMed(primitive.NewObjectID(), "Evening med", "21:00")
	medB := timeOfDayMed(primitive.NewObjectID(), "Morning med", "07:30")

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", "2024-01-05").
		Return([]models.Medication{medA, medB}, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	day, err := svc.GetDayData(context.Background(), "user1", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	assert.Len(t, day.Scheduled, 2)
	assert.Equal(t, "Morning med", day.Scheduled[0].MedicationName)
	assert.Equal(t, "Evening med", day.Scheduled[1].MedicationName)
}

func TestGetMonthDataCoversEveryDay(t *testing.T) {
	roster := []models.Medication{timeOfDayMed(primitive.NewObjectID(), "Lisinopril", "08:00")}

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", mock.Anything).
		Return([]models.Medication{}, nil)
	medDB.On("ActiveMedications", mock.Anything, "user1").Return(roster, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)
	logDB.On("RangeStats", mock.Anything, "user1", mock.Anything, mock.Anything, "UTC").
		Return(&models.DoseStats{TotalDoses: 20, DaysWithDoses: 14, MedicationsTaken: 2}, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)

	month, err := svc.GetMonthData(context.Background(), "user1", 2024, time.February, now)
	assert.NoError(t, err)

	assert.Len(t, month.Days, 29)
	assert.Equal(t, "February 2024", month.MonthName)
	assert.Contains(t, month.Days, "2024-02-01")
	assert.Contains(t, month.Days, "2024-02-29")

	// the roster rides along with the day map
	assert.Len(t, month.Medications, 1)
	assert.Equal(t, "Lisinopril", month.Medications[0].Details.Name)

	// Adherence is always over the full month, even mid-month
	assert.Equal(t, 48.3, month.Stats.AdherenceRate)

	assert.Equal(t, "2024-02", month.Navigation.Current)
	assert.Equal(t, "2024-01", month.Navigation.Prev)
	assert.Equal(t, "2024-03", month.Navigation.Next)
	assert.Equal(t, "2024-02-10", month.Navigation.Today)
}

func TestGetWeekDataMondayThroughSunday(t *testing.T) {
	roster := []models.Medication{timeOfDayMed(primitive.NewObjectID(), "Lisinopril", "08:00")}

	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	medDB.On("ActiveMedicationsOn", mock.Anything, "user1", mock.Anything).
		Return([]models.Medication{}, nil)
	medDB.On("ActiveMedications", mock.Anything, "user1").Return(roster, nil)
	logDB.On("DosesBetween", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return([]models.DoseLog{}, nil)
	logDB.On("RangeStats", mock.Anything, "user1", mock.Anything, mock.Anything, "UTC").
		Return(&models.DoseStats{TotalDoses: 9, DaysWithDoses: 7, MedicationsTaken: 1}, nil)

	svc := calendar.NewService(medDB, logDB, time.UTC)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	week, err := svc.GetWeekData(context.Background(), "user1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	assert.Equal(t, "2024-01-08", week.WeekStart)
	assert.Equal(t, "2024-01-14", week.WeekEnd)
	assert.Equal(t, "Jan 8 - Jan 14, 2024", week.WeekName)
	assert.Len(t, week.Days, 7)
	assert.Len(t, week.Medications, 1)
	assert.Equal(t, 100.0, week.Stats.AdherenceRate)
	assert.Equal(t, "2024-01-01", week.Navigation.Prev)
	assert.Equal(t, "2024-01-15", week.Navigation.Next)
}

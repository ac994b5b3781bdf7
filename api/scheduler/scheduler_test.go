package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/red5labs/RxBuddy/databases/mocks"
	"github.com/red5labs/RxBuddy/models"
)

type fakeMailer struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeMailer) Send(_ context.Context, toEmail, _, _, _, _ string) error {
	if f.failFor[toEmail] {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func verifiedUser(id, name, email string) *models.User {
	return &models.User{
		ID: id,
		Details: models.UserDetails{
			Name:           name,
			Email:          email,
			EmailReminders: true,
			EmailVerified:  true,
		},
	}
}

func reminderMed(id primitive.ObjectID, userID string, schedule models.Schedule, offsetMinutes int) models.Medication {
	return models.Medication{
		ID: id,
		Details: models.MedicationDetails{
			UserID:                userID,
			Name:                  "Lisinopril",
			Dosage:                "10mg",
			IsActive:              true,
			ReminderEnabled:       true,
			ReminderOffsetMinutes: offsetMinutes,
			Schedule:              schedule,
		},
	}
}

func newTestScheduler(t *testing.T, mailer Mailer, now time.Time) (*Scheduler, *mocks.MedicationDatabase, *mocks.DoseLogDatabase, *mocks.ReminderDatabase, *mocks.UserDatabase, *mocks.EmailLogDatabase) {
	medDB := mocks.NewMedicationDatabase(t)
	logDB := mocks.NewDoseLogDatabase(t)
	remDB := mocks.NewReminderDatabase(t)
	uDB := mocks.NewUserDatabase(t)
	emailDB := mocks.NewEmailLogDatabase(t)

	s := NewScheduler(medDB, logDB, remDB, uDB, emailDB, mailer, time.UTC)
	s.now = func() time.Time { return now }
	return s, medDB, logDB, remDB, uDB, emailDB
}

func TestScheduleRemindersTimeOfDayBeforeDoseTime(t *testing.T) {
	medID := primitive.NewObjectID()
	med := reminderMed(medID, "user1", models.Schedule{Kind: models.ScheduleTimeOfDay, TimeOfDay: "09:00"}, 15)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	s, medDB, _, remDB, uDB, _ := newTestScheduler(t, &fakeMailer{}, now)

	medDB.On("ReminderCandidates", mock.Anything).Return([]models.Medication{med}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(verifiedUser("user1", "Ana", "ana@example.com"), nil)

	want := time.Date(2024, 5, 1, 8, 45, 0, 0, time.UTC)
	remDB.On("FindPending", mock.Anything, medID, want).Return(nil, nil)
	remDB.On("InsertReminder", mock.Anything, mock.MatchedBy(func(r models.Reminder) bool {
		return r.MedicationID == medID &&
			r.UserID == "user1" &&
			r.ScheduledTime.Equal(want) &&
			r.Status == models.ReminderPending
	})).Return(primitive.NewObjectID().Hex(), nil)

	s.ScheduleReminders(context.Background())
}

func TestScheduleRemindersTimeOfDayRollsForwardWhenPast(t *testing.T) {
	medID := primitive.NewObjectID()
	med := reminderMed(medID, "user1", models.Schedule{Kind: models.ScheduleTimeOfDay, TimeOfDay: "09:00"}, 15)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	s, medDB, _, remDB, uDB, _ := newTestScheduler(t, &fakeMailer{}, now)

	medDB.On("ReminderCandidates", mock.Anything).Return([]models.Medication{med}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(verifiedUser("user1", "Ana", "ana@example.com"), nil)

	// 08:45 today is already past, so the reminder lands tomorrow
	want := time.Date(2024, 5, 2, 8, 45, 0, 0, time.UTC)
	remDB.On("FindPending", mock.Anything, medID, want).Return(nil, nil)
	remDB.On("InsertReminder", mock.Anything, mock.MatchedBy(func(r models.Reminder) bool {
		return r.ScheduledTime.Equal(want)
	})).Return(primitive.NewObjectID().Hex(), nil)

	s.ScheduleReminders(context.Background())
}

func TestScheduleRemindersIsIdempotent(t *testing.T) {
	medID := primitive.NewObjectID()
	med := reminderMed(medID, "user1", models.Schedule{Kind: models.ScheduleTimeOfDay, TimeOfDay: "09:00"}, 0)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	s, medDB, _, remDB, uDB, _ := newTestScheduler(t, &fakeMailer{}, now)

	medDB.On("ReminderCandidates", mock.Anything).Return([]models.Medication{med}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(verifiedUser("user1", "Ana", "ana@example.com"), nil)

	want := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	remDB.On("FindPending", mock.Anything, medID, want).
		Return(&models.Reminder{ID: primitive.NewObjectID(), MedicationID: medID, ScheduledTime: want, Status: models.ReminderPending}, nil)

	// no InsertReminder expectation: a second pass over the same slot creates nothing
	s.ScheduleReminders(context.Background())
	s.ScheduleReminders(context.Background())
}

func TestScheduleRemindersSkipsUnverifiedUser(t *testing.T) {
	medID := primitive.NewObjectID()
	med := reminderMed(medID, "user1", models.Schedule{Kind: models.ScheduleTimeOfDay, TimeOfDay: "09:00"}, 0)
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	s, medDB, _, _, uDB, _ := newTestScheduler(t, &fakeMailer{}, now)

	unverified := verifiedUser("user1", "Ana", "ana@example.com")
	unverified.Details.EmailVerified = false

	medDB.On("ReminderCandidates", mock.Anything).Return([]models.Medication{med}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(unverified, nil)

	s.ScheduleReminders(context.Background())
}

func TestScheduleRemindersIntervalFromLastDose(t *testing.T) {
	medID := primitive.NewObjectID()
	med := reminderMed(medID, "user1", models.Schedule{Kind: models.ScheduleInterval, IntervalHours: 8}, 10)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s, medDB, logDB, remDB, uDB, _ := newTestScheduler(t, &fakeMailer{}, now)

	medDB.On("ReminderCandidates", mock.Anything).Return([]models.Medication{med}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(verifiedUser("user1", "Ana", "ana@example.com"), nil)
	logDB.On("LatestDose", mock.Anything, medID).Return(&models.DoseLog{
		MedicationID: medID,
		UserID:       "user1",
		TakenAt:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}, nil)

	// 09:00 + 8h - 10m
	want := time.Date(2024, 5, 1, 16, 50, 0, 0, time.UTC)
	remDB.On("FindPending", mock.Anything, medID, want).Return(nil, nil)
	remDB.On("InsertReminder", mock.Anything, mock.MatchedBy(func(r models.Reminder) bool {
		return r.ScheduledTime.Equal(want)
	})).Return(primitive.NewObjectID().Hex(), nil)

	s.ScheduleReminders(context.Background())
}

func TestScheduleRemindersIntervalNeverBackfills(t *testing.T) {
	medID := primitive.NewObjectID()
	med := reminderMed(medID, "user1", models.Schedule{Kind: models.ScheduleInterval, IntervalHours: 8}, 0)
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	s, medDB, logDB, _, uDB, _ := newTestScheduler(t, &fakeMailer{}, now)

	medDB.On("ReminderCandidates", mock.Anything).Return([]models.Medication{med}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(verifiedUser("user1", "Ana", "ana@example.com"), nil)
	// next dose was due yesterday evening, long gone by now
	logDB.On("LatestDose", mock.Anything, medID).Return(&models.DoseLog{
		MedicationID: medID,
		UserID:       "user1",
		TakenAt:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}, nil)

	s.ScheduleReminders(context.Background())
}

func TestScheduleRemindersIntervalNoHistory(t *testing.T) {
	medID := primitive.NewObjectID()
	med := reminderMed(medID, "user1", models.Schedule{Kind: models.ScheduleInterval, IntervalHours: 8}, 0)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s, medDB, logDB, _, uDB, _ := newTestScheduler(t, &fakeMailer{}, now)

	medDB.On("ReminderCandidates", mock.Anything).Return([]models.Medication{med}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(verifiedUser("user1", "Ana", "ana@example.com"), nil)
	logDB.On("LatestDose", mock.Anything, medID).Return(nil, nil)

	s.ScheduleReminders(context.Background())
}

func TestDispatchDueRemindersSendsAndResolves(t *testing.T) {
	medID := primitive.NewObjectID()
	remID := primitive.NewObjectID()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}

	s, medDB, _, remDB, uDB, emailDB := newTestScheduler(t, mailer, now)

	rem := models.Reminder{
		ID:            remID,
		MedicationID:  medID,
		UserID:        "user1",
		ScheduledTime: time.Date(2024, 5, 1, 8, 45, 0, 0, time.UTC),
		Status:        models.ReminderPending,
	}

	remDB.On("DuePending", mock.Anything, now).Return([]models.Reminder{rem}, nil)
	medDB.On("GetMedicationByID", mock.Anything, medID.Hex()).
		Return(&models.Medication{ID: medID, Details: models.MedicationDetails{Name: "Lisinopril", Dosage: "10mg"}}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(verifiedUser("user1", "Ana", "ana@example.com"), nil)
	remDB.On("MarkSent", mock.Anything, remID, now).Return(nil)
	emailDB.On("InsertEmailLog", mock.Anything, mock.MatchedBy(func(l models.EmailLog) bool {
		return l.UserID == "user1" && l.EmailAddress == "ana@example.com" && l.Status == "sent"
	})).Return(nil)

	s.DispatchDueReminders(context.Background())

	assert.Equal(t, []string{"ana@example.com"}, mailer.sent)
}

func TestDispatchDueRemindersOneFailureDoesNotAbortBatch(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{failFor: map[string]bool{"bob@example.com": true}}

	s, medDB, _, remDB, uDB, emailDB := newTestScheduler(t, mailer, now)

	var due []models.Reminder
	userIDs := []string{"user1", "user2", "user3"}
	emails := []string{"ana@example.com", "bob@example.com", "cho@example.com"}
	medIDs := make([]primitive.ObjectID, 3)
	remIDs := make([]primitive.ObjectID, 3)
	for i := range userIDs {
		medIDs[i] = primitive.NewObjectID()
		remIDs[i] = primitive.NewObjectID()
		due = append(due, models.Reminder{
			ID:            remIDs[i],
			MedicationID:  medIDs[i],
			UserID:        userIDs[i],
			ScheduledTime: now.Add(-10 * time.Minute),
			Status:        models.ReminderPending,
		})
		medDB.On("GetMedicationByID", mock.Anything, medIDs[i].Hex()).
			Return(&models.Medication{ID: medIDs[i], Details: models.MedicationDetails{Name: "Med", Dosage: "1mg"}}, nil)
		uDB.On("FindByID", mock.Anything, userIDs[i]).Return(verifiedUser(userIDs[i], "U", emails[i]), nil)
	}

	remDB.On("DuePending", mock.Anything, now).Return(due, nil)
	remDB.On("MarkSent", mock.Anything, remIDs[0], now).Return(nil)
	remDB.On("MarkSent", mock.Anything, remIDs[2], now).Return(nil)
	remDB.On("MarkFailed", mock.Anything, remIDs[1], "smtp unavailable").Return(nil)
	emailDB.On("InsertEmailLog", mock.Anything, mock.MatchedBy(func(l models.EmailLog) bool {
		return l.Status == "sent"
	})).Return(nil).Twice()
	emailDB.On("InsertEmailLog", mock.Anything, mock.MatchedBy(func(l models.EmailLog) bool {
		return l.Status == "failed" && l.ErrorMessage == "smtp unavailable"
	})).Return(nil).Once()

	s.DispatchDueReminders(context.Background())

	assert.Equal(t, []string{"ana@example.com", "cho@example.com"}, mailer.sent)
}

func TestDispatchDueRemindersMissingOwnerEmailFails(t *testing.T) {
	medID := primitive.NewObjectID()
	remID := primitive.NewObjectID()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}

	s, medDB, _, remDB, uDB, emailDB := newTestScheduler(t, mailer, now)

	rem := models.Reminder{
		ID:            remID,
		MedicationID:  medID,
		UserID:        "user1",
		ScheduledTime: now.Add(-5 * time.Minute),
		Status:        models.ReminderPending,
	}

	noEmail := verifiedUser("user1", "Ana", "")

	remDB.On("DuePending", mock.Anything, now).Return([]models.Reminder{rem}, nil)
	medDB.On("GetMedicationByID", mock.Anything, medID.Hex()).
		Return(&models.Medication{ID: medID, Details: models.MedicationDetails{Name: "Med"}}, nil)
	uDB.On("FindByID", mock.Anything, "user1").Return(noEmail, nil)
	remDB.On("MarkFailed", mock.Anything, remID, mock.Anything).Return(nil)

	s.DispatchDueReminders(context.Background())

	// no send was attempted, so the audit trail stays clean
	assert.Empty(t, mailer.sent)
	emailDB.AssertNotCalled(t, "InsertEmailLog", mock.Anything, mock.Anything)
}

func TestDispatchDueRemindersLookupFailureSkipsAudit(t *testing.T) {
	medID := primitive.NewObjectID()
	remID := primitive.NewObjectID()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mailer := &fakeMailer{}

	s, medDB, _, remDB, _, emailDB := newTestScheduler(t, mailer, now)

	rem := models.Reminder{
		ID:            remID,
		MedicationID:  medID,
		UserID:        "user1",
		ScheduledTime: now.Add(-5 * time.Minute),
		Status:        models.ReminderPending,
	}

	remDB.On("DuePending", mock.Anything, now).Return([]models.Reminder{rem}, nil)
	medDB.On("GetMedicationByID", mock.Anything, medID.Hex()).
		Return(nil, errors.New("connection reset"))
	remDB.On("MarkFailed", mock.Anything, remID, mock.Anything).Return(nil)

	s.DispatchDueReminders(context.Background())

	assert.Empty(t, mailer.sent)
	emailDB.AssertNotCalled(t, "InsertEmailLog", mock.Anything, mock.Anything)
}

// Package scheduler runs the two background reminder passes: a coarse pass
// that computes forward-looking reminder rows from each medication's schedule,
// and a fine pass that dispatches due reminders by email. Due-time math is
// shared with the calendar engine so the two can never drift apart.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/red5labs/RxBuddy/api/calendar"
	"github.com/red5labs/RxBuddy/databases"
	"github.com/red5labs/RxBuddy/models"
)

const (
	// dispatch every 5 minutes, schedule new reminders every 15
	dispatchSpec = "*/5 * * * *"
	scheduleSpec = "*/15 * * * *"

	jobTimeout  = 5 * time.Minute
	sendTimeout = 30 * time.Second
)

// Scheduler handles the periodic reminder schedule and dispatch passes
type Scheduler struct {
	cron    *cron.Cron
	MedDB   databases.MedicationDatabase
	LogDB   databases.DoseLogDatabase
	RemDB   databases.ReminderDatabase
	UDB     databases.UserDatabase
	EmailDB databases.EmailLogDatabase
	Mailer  Mailer
	Loc     *time.Location

	now func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	medDB databases.MedicationDatabase,
	logDB databases.DoseLogDatabase,
	remDB databases.ReminderDatabase,
	uDB databases.UserDatabase,
	emailDB databases.EmailLogDatabase,
	mailer Mailer,
	loc *time.Location,
) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		MedDB:   medDB,
		LogDB:   logDB,
		RemDB:   remDB,
		UDB:     uDB,
		EmailDB: emailDB,
		Mailer:  mailer,
		Loc:     loc,
		now:     time.Now,
	}
}

// Start begins the scheduler with both reminder passes registered
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc(dispatchSpec, s.runDispatchPass)
	if err != nil {
		zap.S().Errorw("failed to register reminder dispatch job", "error", err)
	}

	_, err = s.cron.AddFunc(scheduleSpec, s.runSchedulePass)
	if err != nil {
		zap.S().Errorw("failed to register reminder schedule job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Reminder scheduler stopped")
}

func (s *Scheduler) runSchedulePass() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.ScheduleReminders(ctx)
}

func (s *Scheduler) runDispatchPass() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.DispatchDueReminders(ctx)
}

// ScheduleReminders creates forward-looking pending reminder rows for every
// active medication with reminders enabled whose owner has email reminders on
// and a verified address. At most one pending reminder may exist per
// (medication, scheduled time); the existence check is backed by a partial
// unique index so a concurrent pass cannot slip a duplicate past it.
func (s *Scheduler) ScheduleReminders(ctx context.Context) {
	meds, err := s.MedDB.ReminderCandidates(ctx)
	if err != nil {
		zap.S().Errorw("failed to load reminder candidates", "error", err)
		return
	}

	now := s.now()
	users := make(map[string]*models.User)
	created := 0

	for _, med := range meds {
		user, ok := users[med.Details.UserID]
		if !ok {
			user, err = s.UDB.FindByID(ctx, med.Details.UserID)
			if err != nil {
				zap.S().Errorw("failed to load medication owner", "error", err, "userId", med.Details.UserID)
				continue
			}
			users[med.Details.UserID] = user
		}
		if user == nil || !user.Details.EmailReminders || !user.Details.EmailVerified {
			continue
		}

		next, due, err := s.nextReminderTime(ctx, med, now)
		if err != nil {
			zap.S().Errorw("failed to compute next reminder time", "error", err, "medicationId", med.ID.Hex())
			continue
		}
		if !due {
			continue
		}
		// minute granularity keeps the dedup key stable across passes
		next = next.Truncate(time.Minute)

		existing, err := s.RemDB.FindPending(ctx, med.ID, next)
		if err != nil {
			zap.S().Errorw("failed to check pending reminder", "error", err, "medicationId", med.ID.Hex())
			continue
		}
		if existing != nil {
			continue
		}

		_, err = s.RemDB.InsertReminder(ctx, models.Reminder{
			MedicationID:  med.ID,
			UserID:        med.Details.UserID,
			ScheduledTime: next,
			Status:        models.ReminderPending,
		})
		if err != nil {
			// a duplicate-key error here means a concurrent pass won the race
			zap.S().Warnw("failed to insert reminder", "error", err, "medicationId", med.ID.Hex())
			continue
		}
		created++
	}

	zap.S().Infow("reminder schedule pass complete",
		"candidates", len(meds),
		"created", created,
	)
}

// nextReminderTime computes when to email for a medication, using the same
// time-of-day and interval math as the day resolver, shifted earlier by the
// medication's reminder offset.
func (s *Scheduler) nextReminderTime(ctx context.Context, med models.Medication, now time.Time) (time.Time, bool, error) {
	offset := time.Duration(med.Details.ReminderOffsetMinutes) * time.Minute

	switch med.Details.Schedule.Kind {
	case models.ScheduleTimeOfDay:
		todayStart, _ := calendar.DayBounds(now, s.Loc)
		t := calendar.CombineDate(todayStart, med.Details.Schedule.TimeOfDay, s.Loc).Add(-offset)
		// already past today: roll forward one day
		if t.Before(now) {
			t = t.Add(24 * time.Hour)
		}
		return t, true, nil

	case models.ScheduleInterval:
		last, err := s.LogDB.LatestDose(ctx, med.ID)
		if err != nil {
			return time.Time{}, false, err
		}
		if last == nil {
			return time.Time{}, false, nil
		}
		t := calendar.NextIntervalDose(last.TakenAt, med.Details.Schedule.IntervalHours).Add(-offset)
		// no back-filling of reminder windows that have already passed
		if !t.After(now) {
			return time.Time{}, false, nil
		}
		return t, true, nil
	}

	return time.Time{}, false, fmt.Errorf("unknown schedule kind %q", med.Details.Schedule.Kind)
}

// DispatchDueReminders sends every pending reminder whose scheduled time has
// arrived. Each reminder is dispatched and resolved independently: one failed
// send marks that reminder failed and the batch continues.
func (s *Scheduler) DispatchDueReminders(ctx context.Context) {
	due, err := s.RemDB.DuePending(ctx, s.now())
	if err != nil {
		zap.S().Errorw("failed to load due reminders", "error", err)
		return
	}

	sent, failed := 0, 0
	for _, rem := range due {
		if s.dispatchOne(ctx, rem) {
			sent++
		} else {
			failed++
		}
	}

	if len(due) > 0 {
		zap.S().Infow("reminder dispatch pass complete",
			"due", len(due),
			"sent", sent,
			"failed", failed,
		)
	}
}

func (s *Scheduler) dispatchOne(ctx context.Context, rem models.Reminder) bool {
	med, err := s.MedDB.GetMedicationByID(ctx, rem.MedicationID.Hex())
	if err != nil {
		s.markFailed(ctx, rem, "", "", fmt.Sprintf("medication lookup failed: %v", err))
		return false
	}

	user, err := s.UDB.FindByID(ctx, rem.UserID)
	if err != nil || user == nil || user.Details.Email == "" {
		s.markFailed(ctx, rem, "", "", "reminder owner has no usable email address")
		return false
	}

	subject := "Medication Reminder: " + med.Details.Name
	when := rem.ScheduledTime.In(s.Loc).Format("3:04 PM")
	plainText := fmt.Sprintf("Hi %s, it's time to take %s (%s) at %s.",
		user.Details.Name, med.Details.Name, med.Details.Dosage, when)
	htmlContent := fmt.Sprintf("<p>Hi %s,</p><p>It's time to take <strong>%s</strong> (%s) at %s.</p>",
		user.Details.Name, med.Details.Name, med.Details.Dosage, when)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	err = s.Mailer.Send(sendCtx, user.Details.Email, user.Details.Name, subject, plainText, htmlContent)
	cancel()
	if err != nil {
		s.markFailed(ctx, rem, user.Details.Email, subject, err.Error())
		return false
	}

	if err := s.RemDB.MarkSent(ctx, rem.ID, s.now()); err != nil {
		zap.S().Errorw("failed to mark reminder sent", "error", err, "reminderId", rem.ID.Hex())
	}
	if err := s.EmailDB.InsertEmailLog(ctx, models.EmailLog{
		UserID:       rem.UserID,
		EmailAddress: user.Details.Email,
		Subject:      subject,
		Status:       "sent",
	}); err != nil {
		zap.S().Errorw("failed to write email audit log", "error", err, "reminderId", rem.ID.Hex())
	}

	zap.S().Infow("reminder email sent",
		"reminderId", rem.ID.Hex(),
		"medicationId", rem.MedicationID.Hex(),
	)
	return true
}

// markFailed transitions a reminder to its terminal failed state. Failed
// instances are never retried; the next schedule pass computes a fresh future
// reminder instead. The audit trail only records actual send attempts, so the
// email log row is skipped when the failure happened before an address was
// resolved.
func (s *Scheduler) markFailed(ctx context.Context, rem models.Reminder, email, subject, errMsg string) {
	if err := s.RemDB.MarkFailed(ctx, rem.ID, errMsg); err != nil {
		zap.S().Errorw("failed to mark reminder failed", "error", err, "reminderId", rem.ID.Hex())
	}
	if email != "" {
		if err := s.EmailDB.InsertEmailLog(ctx, models.EmailLog{
			UserID:       rem.UserID,
			EmailAddress: email,
			Subject:      subject,
			Status:       "failed",
			ErrorMessage: errMsg,
		}); err != nil {
			zap.S().Errorw("failed to write email audit log", "error", err, "reminderId", rem.ID.Hex())
		}
	}

	zap.S().Errorw("reminder email failed",
		"reminderId", rem.ID.Hex(),
		"medicationId", rem.MedicationID.Hex(),
		"error", errMsg,
	)
}

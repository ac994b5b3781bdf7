package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/red5labs/RxBuddy/api"
	"github.com/red5labs/RxBuddy/api/calendar"
	"github.com/red5labs/RxBuddy/api/scheduler"
	"github.com/red5labs/RxBuddy/config"
	"github.com/red5labs/RxBuddy/databases"
	"github.com/red5labs/RxBuddy/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
	location  *time.Location
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	medDB := databases.NewMedicationDatabase(a.dbHelper)
	logDB := databases.NewDoseLogDatabase(a.dbHelper)
	remDB := databases.NewReminderDatabase(a.dbHelper)

	med := Medication{DB: medDB}
	dose := DoseLog{DB: logDB, MedDB: medDB}
	cal := Calendar{Service: calendar.NewService(medDB, logDB, a.location), Loc: a.location}
	u := User{DB: databases.NewUserDatabase(a.dbHelper), Mailer: scheduler.NewSendGridMailer(), BaseURL: a.Config.BaseURL}
	rem := Reminder{DB: remDB}
	email := EmailLog{DB: databases.NewEmailLogDatabase(a.dbHelper)}
	photo := PhotoHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/medication", api.Middleware(http.HandlerFunc(med.CreateMedicationHandler))).Methods("POST")
	apiCreate.Handle("/medication/{medication_id}", api.Middleware(http.HandlerFunc(med.MedicationByIDHandler))).Methods("GET")
	apiCreate.Handle("/medication/{medication_id}", api.Middleware(http.HandlerFunc(med.UpdateMedicationHandler))).Methods("PUT")
	apiCreate.Handle("/medication/{medication_id}/archive", api.Middleware(http.HandlerFunc(med.ArchiveMedicationHandler))).Methods("POST")
	apiCreate.Handle("/medication/{medication_id}/unarchive", api.Middleware(http.HandlerFunc(med.UnarchiveMedicationHandler))).Methods("POST")
	apiCreate.Handle("/medications/user/{user_id}", api.Middleware(http.HandlerFunc(med.MedicationsByUserIDHandler))).Methods("GET")

	apiCreate.Handle("/dose-log", api.Middleware(http.HandlerFunc(dose.MarkTakenHandler))).Methods("POST")
	apiCreate.Handle("/dose-logs/user/{user_id}", api.Middleware(http.HandlerFunc(dose.DoseLogsByUserIDHandler))).Methods("GET")
	apiCreate.Handle("/dose-logs/user/{user_id}", api.Middleware(http.HandlerFunc(dose.PurgeDoseLogsHandler))).Methods("DELETE")

	apiCreate.Handle("/calendar/day", api.Middleware(http.HandlerFunc(cal.DayHandler))).Methods("GET")
	apiCreate.Handle("/calendar/week", api.Middleware(http.HandlerFunc(cal.WeekHandler))).Methods("GET")
	apiCreate.Handle("/calendar/month", api.Middleware(http.HandlerFunc(cal.MonthHandler))).Methods("GET")

	apiCreate.Handle("/reminders/user/{user_id}", api.Middleware(http.HandlerFunc(rem.RemindersByUserIDHandler))).Methods("GET")
	apiCreate.Handle("/email-logs/user/{user_id}", api.Middleware(http.HandlerFunc(email.EmailLogsByUserIDHandler))).Methods("GET")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	apiCreate.Handle("/user/verify-email", http.HandlerFunc(u.VerifyEmailHandler)).Methods("GET")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")
	apiCreate.Handle("/user/{user_id}/reminder-settings", api.Middleware(http.HandlerFunc(u.UpdateReminderSettingsHandler))).Methods("PUT")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(photo.GenerateSignature))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("rxbuddy-api has connected to the database")

	a.location = a.Config.Location()

	// the partial unique index backs the pending-reminder dedup check
	remDB := databases.NewReminderDatabase(a.dbHelper)
	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()
	if err := remDB.EnsureIndexes(ctx); err != nil {
		zap.S().Warnw("failed to ensure reminder indexes", "error", err)
	}

	a.Scheduler = scheduler.NewScheduler(
		databases.NewMedicationDatabase(a.dbHelper),
		databases.NewDoseLogDatabase(a.dbHelper),
		remDB,
		databases.NewUserDatabase(a.dbHelper),
		databases.NewEmailLogDatabase(a.dbHelper),
		scheduler.NewSendGridMailer(),
		a.location,
	)

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

package databases

// go generate: mockery --name ReminderDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/red5labs/RxBuddy/models"
)

const reminderCollection = "reminders"

// ReminderDatabase contains the methods to use with the reminder database
type ReminderDatabase interface {
	FindPending(ctx context.Context, medicationID primitive.ObjectID, scheduledTime time.Time) (*models.Reminder, error)
	InsertReminder(ctx context.Context, reminder models.Reminder) (string, error)
	DuePending(ctx context.Context, now time.Time) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id primitive.ObjectID, sentAt time.Time) error
	MarkFailed(ctx context.Context, id primitive.ObjectID, errMsg string) error
	ListByUserID(ctx context.Context, userID string, limit, page int64) ([]models.Reminder, error)
	EnsureIndexes(ctx context.Context) error
}

type reminderDatabase struct {
	db DatabaseHelper
}

// NewReminderDatabase initializes a new instance of reminder database with the provided db connection
func NewReminderDatabase(db DatabaseHelper) ReminderDatabase {
	return &reminderDatabase{
		db: db,
	}
}

// EnsureIndexes creates a partial unique index on (medicationId, scheduledTime)
// restricted to pending reminders, so concurrent schedule passes cannot insert
// duplicate pending rows even if both pass the FindPending check.
func (r *reminderDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(reminderCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "medicationId", Value: 1},
			{Key: "scheduledTime", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.ReminderPending}),
	})
	return err
}

func (r *reminderDatabase) FindPending(ctx context.Context, medicationID primitive.ObjectID, scheduledTime time.Time) (*models.Reminder, error) {
	filter := bson.M{
		"medicationId":  medicationID,
		"scheduledTime": scheduledTime,
		"status":        models.ReminderPending,
	}

	var reminder models.Reminder
	err := r.db.Collection(reminderCollection).FindOne(ctx, filter).Decode(&reminder)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderDatabase) InsertReminder(ctx context.Context, reminder models.Reminder) (string, error) {
	if reminder.ID.IsZero() {
		reminder.ID = primitive.NewObjectID()
	}
	if reminder.Status == "" {
		reminder.Status = models.ReminderPending
	}
	reminder.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	id, err := r.db.Collection(reminderCollection).InsertOne(ctx, reminder)
	if err != nil {
		return "", err
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return reminder.ID.Hex(), nil
}

func (r *reminderDatabase) DuePending(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	filter := bson.M{
		"status":        models.ReminderPending,
		"scheduledTime": bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.M{"scheduledTime": 1})

	cursor, err := r.db.Collection(reminderCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderDatabase) MarkSent(ctx context.Context, id primitive.ObjectID, sentAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"status": models.ReminderSent,
		"sentAt": sentAt,
	}}
	_, err := r.db.Collection(reminderCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *reminderDatabase) MarkFailed(ctx context.Context, id primitive.ObjectID, errMsg string) error {
	update := bson.M{"$set": bson.M{
		"status":       models.ReminderFailed,
		"errorMessage": errMsg,
	}}
	_, err := r.db.Collection(reminderCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *reminderDatabase) ListByUserID(ctx context.Context, userID string, limit, page int64) ([]models.Reminder, error) {
	opts := options.Find().
		SetSort(bson.M{"scheduledTime": -1}).
		SetSkip(page * limit).
		SetLimit(limit)

	cursor, err := r.db.Collection(reminderCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return reminders, nil
}

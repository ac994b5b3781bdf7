package databases

// go generate: mockery --name EmailLogDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/red5labs/RxBuddy/models"
)

const emailLogCollection = "emailLogs"

// EmailLogDatabase contains the methods to use with the email audit log database
type EmailLogDatabase interface {
	InsertEmailLog(ctx context.Context, log models.EmailLog) error
	ListByUserID(ctx context.Context, userID string, limit, page int64) ([]models.EmailLog, error)
}

type emailLogDatabase struct {
	db DatabaseHelper
}

// NewEmailLogDatabase initializes a new instance of email log database with the provided db connection
func NewEmailLogDatabase(db DatabaseHelper) EmailLogDatabase {
	return &emailLogDatabase{
		db: db,
	}
}

func (e *emailLogDatabase) InsertEmailLog(ctx context.Context, log models.EmailLog) error {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	log.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	_, err := e.db.Collection(emailLogCollection).InsertOne(ctx, log)
	return err
}

func (e *emailLogDatabase) ListByUserID(ctx context.Context, userID string, limit, page int64) ([]models.EmailLog, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(page * limit).
		SetLimit(limit)

	cursor, err := e.db.Collection(emailLogCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.EmailLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.EmailLog{}
	}
	return logs, nil
}

package databases

// go generate: mockery --name DoseLogDatabase

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

const doseLogCollection = "doseLogs"

// DoseLogDatabase contains the methods to use with the dose log database.
// Entries are append-only: there is no update method by design.
type DoseLogDatabase interface {
	InsertDoseLog(ctx context.Context, log models.DoseLog) (string, error)
	LatestDose(ctx context.Context, medicationID primitive.ObjectID) (*models.DoseLog, error)
	DosesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.DoseLog, error)
	RangeStats(ctx context.Context, userID string, from, to time.Time, timezone string) (*models.DoseStats, error)
	ListByUserID(ctx context.Context, userID string, limit, page int64) (*models.DoseLogListResponse, error)
	PurgeAll(ctx context.Context, userID string) (int64, error)
}

type doseLogDatabase struct {
	db DatabaseHelper
}

// NewDoseLogDatabase initializes a new instance of dose log database with the provided db connection
func NewDoseLogDatabase(db DatabaseHelper) DoseLogDatabase {
	return &doseLogDatabase{
		db: db,
	}
}

func (d *doseLogDatabase) InsertDoseLog(ctx context.Context, log models.DoseLog) (string, error) {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	log.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	id, err := d.db.Collection(doseLogCollection).InsertOne(ctx, log)
	if err != nil {
		return "", err
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return log.ID.Hex(), nil
}

// LatestDose returns the most recent log entry for a medication across all
// history, or nil when the medication has never been logged.
func (d *doseLogDatabase) LatestDose(ctx context.Context, medicationID primitive.ObjectID) (*models.DoseLog, error) {
	opts := options.FindOne().SetSort(bson.M{"takenAt": -1})

	var log models.DoseLog
	err := d.db.Collection(doseLogCollection).FindOne(ctx, bson.M{"medicationId": medicationID}, opts).Decode(&log)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (d *doseLogDatabase) DosesBetween(ctx context.Context, userID string, from, to time.Time) ([]models.DoseLog, error) {
	filter := bson.M{
		"userId":  userID,
		"takenAt": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.M{"takenAt": 1})

	cursor, err := d.db.Collection(doseLogCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.DoseLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// RangeStats aggregates total doses, distinct calendar dates with at least one
// dose, and distinct medications dosed within [from, to). Calendar dates are
// resolved in the given IANA timezone so day boundaries match the engine's.
func (d *doseLogDatabase) RangeStats(ctx context.Context, userID string, from, to time.Time, timezone string) (*models.DoseStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"userId":  userID,
			"takenAt": bson.M{"$gte": from, "$lt": to},
		}},
		{"$group": bson.M{
			"_id":        nil,
			"totalDoses": bson.M{"$sum": 1},
			"days": bson.M{"$addToSet": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$takenAt",
				"timezone": timezone,
			}}},
			"medications": bson.M{"$addToSet": "$medicationId"},
		}},
		{"$project": bson.M{
			"totalDoses":       1,
			"daysWithDoses":    bson.M{"$size": "$days"},
			"medicationsTaken": bson.M{"$size": "$medications"},
		}},
	}

	cursor, err := d.db.Collection(doseLogCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.DoseStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.DoseStats{}, nil
	}
	return &results[0], nil
}

func (d *doseLogDatabase) ListByUserID(ctx context.Context, userID string, limit, page int64) (*models.DoseLogListResponse, error) {
	filter := bson.M{"userId": userID}
	opts := options.Find().
		SetSort(bson.M{"takenAt": -1}).
		SetSkip(page * limit).
		SetLimit(limit)

	cursor, err := d.db.Collection(doseLogCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.DoseLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.DoseLog{}
	}

	totalCount, err := d.db.Collection(doseLogCollection).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalPages := (totalCount + limit - 1) / limit

	return &models.DoseLogListResponse{
		Logs: logs,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			Limit:        limit,
		},
	}, nil
}

// PurgeAll deletes the user's entire dose history. The only destructive
// operation on the log store, and it is owner scoped.
func (d *doseLogDatabase) PurgeAll(ctx context.Context, userID string) (int64, error) {
	return d.db.Collection(doseLogCollection).DeleteMany(ctx, bson.M{"userId": userID})
}

package databases

// go generate: mockery --name MedicationDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/red5labs/RxBuddy/models"
)

const medicationCollection = "medications"

// MedicationDatabase contains the methods to use with the medication database
type MedicationDatabase interface {
	CreateMedication(ctx context.Context, details models.MedicationDetails) (string, error)
	GetMedicationByID(ctx context.Context, id string) (*models.Medication, error)
	GetMedicationsByUserID(ctx context.Context, userID string, includeArchived bool, limit, page int64) (*models.MedicationListResponse, error)
	UpdateMedication(ctx context.Context, id string, details models.MedicationDetails) error
	SetActive(ctx context.Context, id string, active bool) error
	ActiveMedicationsOn(ctx context.Context, userID, date string) ([]models.Medication, error)
	ActiveMedications(ctx context.Context, userID string) ([]models.Medication, error)
	ReminderCandidates(ctx context.Context) ([]models.Medication, error)
}

type medicationDatabase struct {
	db DatabaseHelper
}

// NewMedicationDatabase initializes a new instance of medication database with the provided db connection
func NewMedicationDatabase(db DatabaseHelper) MedicationDatabase {
	return &medicationDatabase{
		db: db,
	}
}

func (m *medicationDatabase) CreateMedication(ctx context.Context, details models.MedicationDetails) (string, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now
	doc := models.Medication{
		ID:      primitive.NewObjectID(),
		Details: details,
	}
	id, err := m.db.Collection(medicationCollection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return doc.ID.Hex(), nil
}

func (m *medicationDatabase) GetMedicationByID(ctx context.Context, id string) (*models.Medication, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var medication models.Medication
	err = m.db.Collection(medicationCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&medication)
	if err != nil {
		return nil, err
	}
	return &medication, nil
}

func (m *medicationDatabase) GetMedicationsByUserID(ctx context.Context, userID string, includeArchived bool, limit, page int64) (*models.MedicationListResponse, error) {
	filter := bson.M{"medication.userID": userID}
	if !includeArchived {
		filter["medication.isActive"] = true
	}

	opts := options.Find().
		SetSort(bson.M{"medication.name": 1}).
		SetSkip(page * limit).
		SetLimit(limit)

	cursor, err := m.db.Collection(medicationCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medications []models.Medication
	if err := cursor.All(ctx, &medications); err != nil {
		return nil, err
	}
	if medications == nil {
		medications = []models.Medication{}
	}

	totalCount, err := m.db.Collection(medicationCollection).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalPages := (totalCount + limit - 1) / limit

	return &models.MedicationListResponse{
		Medications: medications,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: totalCount,
			Limit:        limit,
		},
	}, nil
}

func (m *medicationDatabase) UpdateMedication(ctx context.Context, id string, details models.MedicationDetails) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	details.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	update := bson.M{"$set": bson.M{"medication": details}}
	_, err = m.db.Collection(medicationCollection).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

// SetActive archives or un-archives a medication. Archiving is a soft disable
// that preserves the dose log history.
func (m *medicationDatabase) SetActive(ctx context.Context, id string, active bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"medication.isActive":  active,
		"medication.updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}}
	_, err = m.db.Collection(medicationCollection).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

// ActiveMedicationsOn returns the user's medications that are active and whose
// optional start/end window covers the given YYYY-MM-DD date. Date strings
// compare lexicographically, so the window filter is a plain string range.
func (m *medicationDatabase) ActiveMedicationsOn(ctx context.Context, userID, date string) ([]models.Medication, error) {
	filter := bson.M{
		"medication.userID":   userID,
		"medication.isActive": true,
		"$and": []bson.M{
			{"$or": []bson.M{
				{"medication.startDate": bson.M{"$exists": false}},
				{"medication.startDate": ""},
				{"medication.startDate": bson.M{"$lte": date}},
			}},
			{"$or": []bson.M{
				{"medication.endDate": bson.M{"$exists": false}},
				{"medication.endDate": ""},
				{"medication.endDate": bson.M{"$gte": date}},
			}},
		},
	}

	opts := options.Find().SetSort(bson.M{"medication.name": 1})
	cursor, err := m.db.Collection(medicationCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medications []models.Medication
	if err := cursor.All(ctx, &medications); err != nil {
		return nil, err
	}
	return medications, nil
}

// ActiveMedications returns the user's current medication roster: every active
// medication sorted by name, with no start/end window filter.
func (m *medicationDatabase) ActiveMedications(ctx context.Context, userID string) ([]models.Medication, error) {
	filter := bson.M{
		"medication.userID":   userID,
		"medication.isActive": true,
	}

	opts := options.Find().SetSort(bson.M{"medication.name": 1})
	cursor, err := m.db.Collection(medicationCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medications []models.Medication
	if err := cursor.All(ctx, &medications); err != nil {
		return nil, err
	}
	if medications == nil {
		medications = []models.Medication{}
	}
	return medications, nil
}

// ReminderCandidates returns every active medication with reminders enabled,
// across all users. The scheduler filters owners by their email settings.
func (m *medicationDatabase) ReminderCandidates(ctx context.Context) ([]models.Medication, error) {
	filter := bson.M{
		"medication.isActive":        true,
		"medication.reminderEnabled": true,
	}

	cursor, err := m.db.Collection(medicationCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medications []models.Medication
	if err := cursor.All(ctx, &medications); err != nil {
		return nil, err
	}
	return medications, nil
}

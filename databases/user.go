package databases

// go generate: mockery --name UserDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/red5labs/RxBuddy/models"
)

const userCollection = "users"

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	Find(ctx context.Context, filter interface{}) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	InsertUser(ctx context.Context, details models.UserDetails) (string, error)
	UpdateReminderSettings(ctx context.Context, id string, emailReminders bool) error
	VerifyEmail(ctx context.Context, token string, now time.Time) (bool, error)
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) Find(ctx context.Context, filter interface{}) ([]models.User, error) {
	cursor, err := u.db.Collection(userCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userDatabase) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := u.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *userDatabase) InsertUser(ctx context.Context, details models.UserDetails) (string, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	details.CreatedAt = now
	details.UpdatedAt = now

	doc := models.User{
		ID:      primitive.NewObjectID().Hex(),
		Details: details,
	}
	if _, err := u.db.Collection(userCollection).InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// VerifyEmail resolves a verification token. It reports false when the token
// is unknown or past its expiry; on success the user is flagged verified and
// the token is retired so the link only works once.
func (u *userDatabase) VerifyEmail(ctx context.Context, token string, now time.Time) (bool, error) {
	var user models.User
	err := u.db.Collection(userCollection).FindOne(ctx, bson.M{"user.verificationToken": token}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if user.Details.VerificationExpires == nil || now.After(*user.Details.VerificationExpires) {
		return false, nil
	}

	update := bson.M{
		"$set": bson.M{
			"user.emailVerified": true,
			"user.updatedAt":     primitive.NewDateTimeFromTime(now),
		},
		"$unset": bson.M{
			"user.verificationToken":   "",
			"user.verificationExpires": "",
		},
	}
	if _, err := u.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		return false, err
	}
	return true, nil
}

func (u *userDatabase) UpdateReminderSettings(ctx context.Context, id string, emailReminders bool) error {
	update := bson.M{"$set": bson.M{
		"user.emailReminders": emailReminders,
		"user.updatedAt":      primitive.NewDateTimeFromTime(time.Now()),
	}}
	_, err := u.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

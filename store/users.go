package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vlady-store/models"
)

// UserStore persists user records in the users collection.
type UserStore struct {
	col *mongo.Collection
}

// NewUserStore returns a UserStore bound to the users collection.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{col: db.db.Collection("users")}
}

// FindByID returns the user with the given id.
func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// FindByMobile returns the user registered under the mobile number.
func (s *UserStore) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"mobile": mobile}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by mobile: %w", err)
	}
	return &user, nil
}

// UpsertOTP stores a fresh code hash against the mobile number,
// creating the user record if it does not exist. The attempt counter
// resets with every new code.
func (s *UserStore) UpsertOTP(ctx context.Context, mobile, codeHash string, generatedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"otp.code_hash":    codeHash,
			"otp.generated_at": generatedAt,
			"otp.attempts":     0,
			"updated_at":       generatedAt,
		},
		"$setOnInsert": bson.M{
			"mobile":      mobile,
			"is_admin":    false,
			"is_verified": false,
			"created_at":  generatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.col.UpdateOne(ctx, bson.M{"mobile": mobile}, update, opts); err != nil {
		return fmt.Errorf("upsert otp: %w", err)
	}
	return nil
}

// IncrementOTPAttempts records one failed verification attempt.
func (s *UserStore) IncrementOTPAttempts(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"otp.attempts": 1}})
	if err != nil {
		return fmt.Errorf("increment otp attempts: %w", err)
	}
	return nil
}

// MarkVerified flags the user verified and clears the pending code.
func (s *UserStore) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"is_verified":  true,
			"otp.attempts": 0,
			"updated_at":   time.Now(),
		},
		"$unset": bson.M{
			"otp.code_hash":    "",
			"otp.generated_at": "",
		},
	}
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// UpdateProfile sets the user's name and email.
func (s *UserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error) {
	update := bson.M{"$set": bson.M{
		"name":       name,
		"email":      email,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

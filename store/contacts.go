package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vlady-store/models"
)

// ContactStore persists contact form submissions.
type ContactStore struct {
	col *mongo.Collection
}

// NewContactStore returns a ContactStore bound to the contacts collection.
func NewContactStore(db *DB) *ContactStore {
	return &ContactStore{col: db.db.Collection("contacts")}
}

// Create inserts a contact message.
func (s *ContactStore) Create(ctx context.Context, contact *models.Contact) error {
	res, err := s.col.InsertOne(ctx, contact)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	contact.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

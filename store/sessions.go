package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"vlady-store/models"
)

// SessionStore persists login sessions. The TTL index on expires_at
// reaps stale documents; Find still checks expiry for correctness in
// the window before the reaper runs.
type SessionStore struct {
	col *mongo.Collection
}

// NewSessionStore returns a SessionStore bound to the sessions collection.
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{col: db.db.Collection("sessions")}
}

// Create inserts a session.
func (s *SessionStore) Create(ctx context.Context, session *models.Session) error {
	if _, err := s.col.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Find returns the session with the given id.
func (s *SessionStore) Find(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &session, nil
}

// Delete revokes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

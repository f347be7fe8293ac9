package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is a server-side login session. The client only holds a
// signed token carrying the session id; revoking the document here
// invalidates the login regardless of the cookie.
type Session struct {
	ID        string             `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	IsAdmin   bool               `bson:"is_admin" json:"is_admin"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

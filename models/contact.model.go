package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a message submitted through the contact form. Stored
// first, then forwarded to the shop's admin mailbox best-effort.
type Contact struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Phone   string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string             `bson:"email" json:"email"`
	Message string             `bson:"message" json:"message"`
	Date    time.Time          `bson:"date" json:"date"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTP holds the pending verification code for a user's mobile number.
// The code itself is stored as a bcrypt hash, never in the clear.
type OTP struct {
	CodeHash    string    `bson:"code_hash,omitempty" json:"-"`
	GeneratedAt time.Time `bson:"generated_at,omitempty" json:"-"`
	Attempts    int       `bson:"attempts" json:"-"`
}

// Pending reports whether a verification code is waiting to be checked.
func (o OTP) Pending() bool {
	return o.CodeHash != ""
}

// User represents a shopper identified by mobile number
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Mobile     string             `bson:"mobile" json:"mobile"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	IsAdmin    bool               `bson:"is_admin" json:"is_admin"`
	IsVerified bool               `bson:"is_verified" json:"is_verified"`
	OTP        OTP                `bson:"otp" json:"-"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

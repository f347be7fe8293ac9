package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
)

// Storage interfaces consumed by the services. The store package
// satisfies them against MongoDB; tests use in-memory fakes.

// UserStore is the slice of user persistence the services need.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	UpsertOTP(ctx context.Context, mobile, codeHash string, generatedAt time.Time) error
	IncrementOTPAttempts(ctx context.Context, id primitive.ObjectID) error
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// ProductStore is the read side of the catalog used by the engines.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// CartStore persists carts keyed by user.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

// OrderStore persists orders.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindOne(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus, reason string, cancelledAt *time.Time) error
}

// AddressStore persists per-user addresses.
type AddressStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error)
	FindOne(ctx context.Context, id, userID primitive.ObjectID) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	ClearDefault(ctx context.Context, userID, exceptID primitive.ObjectID) error
}

// WishlistStore persists per-user wishlists.
type WishlistStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	AddProduct(ctx context.Context, userID, productID primitive.ObjectID) error
	RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error
}

// ContactStore persists contact form submissions.
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
}

// Txn runs fn atomically with respect to storage. Checkout and
// default-address reassignment depend on it.
type Txn interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EmailSender delivers a message to an email address. Satisfied by
// utils.EmailService.
type EmailSender interface {
	Send(to, subject, content string) error
}

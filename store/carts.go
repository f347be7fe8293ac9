package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vlady-store/models"
)

// CartStore persists carts, one document per user.
type CartStore struct {
	col *mongo.Collection
}

// NewCartStore returns a CartStore bound to the carts collection.
func NewCartStore(db *DB) *CartStore {
	return &CartStore{col: db.db.Collection("carts")}
}

// FindByUser returns the user's cart.
func (s *CartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

// Save upserts the cart document keyed on user_id. The unique index
// guarantees one cart per user even if two lazy creations race.
func (s *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	update := bson.M{"$set": bson.M{
		"items":      cart.Items,
		"total":      cart.Total,
		"updated_at": cart.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := s.col.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, update, opts); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

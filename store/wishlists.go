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

// WishlistStore persists wishlists, one document per user.
type WishlistStore struct {
	col *mongo.Collection
}

// NewWishlistStore returns a WishlistStore bound to the wishlists collection.
func NewWishlistStore(db *DB) *WishlistStore {
	return &WishlistStore{col: db.db.Collection("wishlists")}
}

// FindByUser returns the user's wishlist.
func (s *WishlistStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find wishlist: %w", err)
	}
	return &wishlist, nil
}

// AddProduct adds the product to the user's wishlist, creating the
// wishlist if absent. $addToSet keeps set semantics.
func (s *WishlistStore) AddProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	update := bson.M{"$addToSet": bson.M{"product_ids": productID}}
	opts := options.Update().SetUpsert(true)
	if _, err := s.col.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

// RemoveProduct drops the product from the user's wishlist.
func (s *WishlistStore) RemoveProduct(ctx context.Context, userID, productID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"product_ids": productID}}
	if _, err := s.col.UpdateOne(ctx, bson.M{"user_id": userID}, update); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

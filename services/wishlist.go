package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vlady-store/models"
	"vlady-store/store"
)

// WishlistService maintains the per-user set of saved products.
type WishlistService struct {
	wishlists WishlistStore
	products  ProductStore
}

// NewWishlistService creates a WishlistService.
func NewWishlistService(wishlists WishlistStore, products ProductStore) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

// Get returns the user's wishlist, empty if none has been created.
func (s *WishlistService) Get(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	wishlist, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Wishlist{UserID: userID, ProductIDs: []primitive.ObjectID{}}, nil
	}
	return wishlist, err
}

// Add puts a product on the wishlist. Adding a product twice is a
// no-op, not an error.
func (s *WishlistService) Add(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if err := s.wishlists.AddProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Remove drops a product from the wishlist.
func (s *WishlistService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	if err := s.wishlists.RemoveProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wishlist is a per-user set of product references. No quantities and
// no duplicates; one wishlist per user (unique index on user_id).
type Wishlist struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID   `bson:"user_id" json:"user_id"`
	ProductIDs []primitive.ObjectID `bson:"product_ids" json:"product_ids"`
}

// Contains reports whether the product is already on the wishlist.
func (w *Wishlist) Contains(productID primitive.ObjectID) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

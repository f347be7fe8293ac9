package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents one line in a cart. UnitPrice is the product
// price captured at the last mutation; TotalPrice is always
// Quantity * UnitPrice.
type CartItem struct {
	ProductID  primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	UnitPrice  float64            `bson:"unit_price" json:"unit_price"`
	TotalPrice float64            `bson:"total_price" json:"total_price"`
}

// Cart represents a user's shopping cart. At most one cart exists per
// user (unique index on user_id). Total is derived from the items and
// never taken from client input.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Recompute rederives each line total and the grand total.
func (c *Cart) Recompute() {
	total := 0.0
	for i := range c.Items {
		c.Items[i].TotalPrice = float64(c.Items[i].Quantity) * c.Items[i].UnitPrice
		total += c.Items[i].TotalPrice
	}
	c.Total = total
}

// Item returns a pointer to the line for the given product, or nil.
func (c *Cart) Item(productID primitive.ObjectID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

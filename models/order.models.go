package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// next maps each status to the single forward fulfillment step.
// Cancellation is handled separately by Cancellable.
var next = map[OrderStatus]OrderStatus{
	OrderPending:   OrderConfirmed,
	OrderConfirmed: OrderShipped,
	OrderShipped:   OrderDelivered,
}

// CanAdvance reports whether fulfillment may move the order from s to
// to. Statuses only move forward; delivered and cancelled are terminal.
func (s OrderStatus) CanAdvance(to OrderStatus) bool {
	return next[s] == to
}

// Cancellable reports whether the order may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

// OrderItem is a snapshot of a cart line frozen at checkout. Unit
// price and name are copied from the product so later catalog changes
// never affect the order.
type OrderItem struct {
	ProductID  primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name       string             `bson:"name" json:"name"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	UnitPrice  float64            `bson:"unit_price" json:"unit_price"`
	TotalPrice float64            `bson:"total_price" json:"total_price"`
}

// Order represents a placed order. Items and Total are immutable after
// creation; only Status and the cancellation fields change.
type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID             primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items              []OrderItem        `bson:"items" json:"items"`
	Total              float64            `bson:"total" json:"total"`
	ShippingAddress    Address            `bson:"shipping_address" json:"shipping_address"`
	Status             OrderStatus        `bson:"status" json:"status"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	CancellationReason string             `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time         `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vlady-store/models"
)

// OrderStore persists orders.
type OrderStore struct {
	col *mongo.Collection
}

// NewOrderStore returns an OrderStore bound to the orders collection.
func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{col: db.db.Collection("orders")}
}

// Create inserts a new order and fills in its generated id.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByUser returns the user's orders, newest first.
func (s *OrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// FindOne returns the order only when it belongs to the user.
func (s *OrderStore) FindOne(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// FindByID returns the order regardless of owner. Admin use only.
func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// UpdateStatus writes the order's lifecycle fields, conditional on
// the status being one the transition may leave. A concurrent writer
// that already moved the order off every status in from leaves the
// filter unmatched, so check-then-write races lose here instead of
// clobbering each other. Items and total are deliberately not part of
// the update; orders are immutable snapshots once created.
func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus, reason string, cancelledAt *time.Time) error {
	set := bson.M{"status": to}
	if reason != "" {
		set["cancellation_reason"] = reason
	}
	if cancelledAt != nil {
		set["cancelled_at"] = cancelledAt
	}
	filter := bson.M{"_id": id, "status": bson.M{"$in": from}}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vlady-store/models"
)

// AddressStore persists per-user delivery addresses.
type AddressStore struct {
	col *mongo.Collection
}

// NewAddressStore returns an AddressStore bound to the addresses collection.
func NewAddressStore(db *DB) *AddressStore {
	return &AddressStore{col: db.db.Collection("addresses")}
}

// FindByUser returns all addresses owned by the user.
func (s *AddressStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find addresses: %w", err)
	}
	defer cursor.Close(ctx)

	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("decode addresses: %w", err)
	}
	return addresses, nil
}

// FindOne returns the address only when it belongs to the user.
func (s *AddressStore) FindOne(ctx context.Context, id, userID primitive.ObjectID) (*models.Address, error) {
	var address models.Address
	err := s.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&address)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find address: %w", err)
	}
	return &address, nil
}

// Create inserts a new address.
func (s *AddressStore) Create(ctx context.Context, address *models.Address) error {
	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, address)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	address.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update replaces the address fields, scoped to the owning user.
func (s *AddressStore) Update(ctx context.Context, address *models.Address) error {
	address.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":       address.Name,
		"type":       address.Type,
		"street":     address.Street,
		"city":       address.City,
		"state":      address.State,
		"pincode":    address.Pincode,
		"is_default": address.IsDefault,
		"updated_at": address.UpdatedAt,
	}}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": address.ID, "user_id": address.UserID}, update)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the address, scoped to the owning user.
func (s *AddressStore) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearDefault demotes every default address of the user except the
// one named by exceptID. Runs inside the same transaction as the write
// that promotes the new default.
func (s *AddressStore) ClearDefault(ctx context.Context, userID, exceptID primitive.ObjectID) error {
	filter := bson.M{"user_id": userID, "is_default": true, "_id": bson.M{"$ne": exceptID}}
	_, err := s.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_default": false}})
	if err != nil {
		return fmt.Errorf("clear default addresses: %w", err)
	}
	return nil
}

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

// ProductStore persists catalog items.
type ProductStore struct {
	col *mongo.Collection
}

// NewProductStore returns a ProductStore bound to the products collection.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{col: db.db.Collection("products")}
}

// Find returns all products, optionally filtered by category.
func (s *ProductStore) Find(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// FindByID returns the product with the given id.
func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// Create inserts a new product.
func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update replaces the mutable fields of a product.
func (s *ProductStore) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"category":    product.Category,
		"images":      product.Images,
		"videos":      product.Videos,
		"stock":       product.Stock,
		"featured":    product.Featured,
		"updated_at":  product.UpdatedAt,
	}}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product from the catalog.
func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

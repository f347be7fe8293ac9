// Package store implements MongoDB persistence for the storefront.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// DB wraps the Mongo client and database handle shared by the stores.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, verifies the connection and creates the
// indexes the engines rely on.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	d := &DB{client: client, db: client.Database(database)}
	if err := d.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Close disconnects the underlying client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a Mongo transaction. The checkout
// path uses it to make order creation and cart clearing a single
// logical write; the address book uses it for default reassignment.
func (d *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := d.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: unique},
		},
		"carts": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		"wishlists": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		"orders": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"addresses": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		"sessions": {
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
	}

	for name, models := range indexes {
		if _, err := d.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}

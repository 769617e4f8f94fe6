package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a record with the given key does not exist.
var ErrNotFound = errors.New("record not found")

// Connect connects to MongoDB at the given URI and verifies the connection
// with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Collections bundles the record-store collections the service reads and
// writes.
type Collections struct {
	Drivers DriverCollection
	Routes  RouteCollection
	Orders  OrderCollection
	Users   UserCollection
}

// NewCollections wires the Mongo implementations against a database.
func NewCollections(database *mongo.Database) *Collections {
	return &Collections{
		Drivers: &MongoDriverCollection{Collection: database.Collection("drivers")},
		Routes:  &MongoRouteCollection{Collection: database.Collection("routes")},
		Orders:  &MongoOrderCollection{Collection: database.Collection("orders")},
		Users:   &MongoUserCollection{Collection: database.Collection("users")},
	}
}

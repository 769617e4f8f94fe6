package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greencart/logistics/internal/models"
)

// RouteCollection defines the interface for route record operations.
type RouteCollection interface {
	Insert(ctx context.Context, route models.Route) (*models.Route, error)
	List(ctx context.Context) ([]models.Route, error)
	FindByID(ctx context.Context, id string) (*models.Route, error)
	Update(ctx context.Context, id string, route models.Route) (*models.Route, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, routes []models.Route) error
}

// MongoRouteCollection implements RouteCollection for MongoDB.
type MongoRouteCollection struct {
	Collection *mongo.Collection
}

// Insert inserts a new route record and returns it with its assigned ID.
func (c *MongoRouteCollection) Insert(ctx context.Context, route models.Route) (*models.Route, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	route.ID = primitive.NewObjectID()
	if _, err := c.Collection.InsertOne(ctx, route); err != nil {
		return nil, err
	}
	return &route, nil
}

// List returns all route records.
func (c *MongoRouteCollection) List(ctx context.Context) ([]models.Route, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	routes := []models.Route{}
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// FindByID finds a route by its hex ObjectID.
func (c *MongoRouteCollection) FindByID(ctx context.Context, id string) (*models.Route, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var route models.Route
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

// Update replaces a route record by its hex ObjectID.
func (c *MongoRouteCollection) Update(ctx context.Context, id string, route models.Route) (*models.Route, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	route.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, route)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &route, nil
}

// Delete removes a route record by its hex ObjectID.
func (c *MongoRouteCollection) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll wipes the collection and loads a fresh set of records.
func (c *MongoRouteCollection) ReplaceAll(ctx context.Context, routes []models.Route) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if _, err := c.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(routes) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(routes))
	for _, r := range routes {
		if r.ID.IsZero() {
			r.ID = primitive.NewObjectID()
		}
		docs = append(docs, r)
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}

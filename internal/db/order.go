package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greencart/logistics/internal/models"
)

// OrderCollection defines the interface for order record operations.
type OrderCollection interface {
	Insert(ctx context.Context, order models.Order) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, id string, order models.Order) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, orders []models.Order) error
}

// MongoOrderCollection implements OrderCollection for MongoDB.
type MongoOrderCollection struct {
	Collection *mongo.Collection
}

// Insert inserts a new order record and returns it with its assigned ID.
func (c *MongoOrderCollection) Insert(ctx context.Context, order models.Order) (*models.Order, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	order.ID = primitive.NewObjectID()
	if _, err := c.Collection.InsertOne(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all order records.
func (c *MongoOrderCollection) List(ctx context.Context) ([]models.Order, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByID finds an order by its hex ObjectID.
func (c *MongoOrderCollection) FindByID(ctx context.Context, id string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var order models.Order
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Update replaces an order record by its hex ObjectID.
func (c *MongoOrderCollection) Update(ctx context.Context, id string, order models.Order) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	order.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, order)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &order, nil
}

// Delete removes an order record by its hex ObjectID.
func (c *MongoOrderCollection) Delete(ctx context.Context, id string) error {
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
func (c *MongoOrderCollection) ReplaceAll(ctx context.Context, orders []models.Order) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if _, err := c.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(orders))
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		docs = append(docs, o)
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}

package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greencart/logistics/internal/models"
)

// DriverCollection defines the interface for driver record operations.
type DriverCollection interface {
	Insert(ctx context.Context, driver models.Driver) (*models.Driver, error)
	List(ctx context.Context) ([]models.Driver, error)
	FindByID(ctx context.Context, id string) (*models.Driver, error)
	Update(ctx context.Context, id string, driver models.Driver) (*models.Driver, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, drivers []models.Driver) error
}

// MongoDriverCollection implements DriverCollection for MongoDB.
type MongoDriverCollection struct {
	Collection *mongo.Collection
}

// Insert inserts a new driver record and returns it with its assigned ID.
func (c *MongoDriverCollection) Insert(ctx context.Context, driver models.Driver) (*models.Driver, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	driver.ID = primitive.NewObjectID()
	if _, err := c.Collection.InsertOne(ctx, driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// List returns all driver records.
func (c *MongoDriverCollection) List(ctx context.Context) ([]models.Driver, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	drivers := []models.Driver{}
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// FindByID finds a driver by its hex ObjectID.
func (c *MongoDriverCollection) FindByID(ctx context.Context, id string) (*models.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var driver models.Driver
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// Update replaces a driver record by its hex ObjectID.
func (c *MongoDriverCollection) Update(ctx context.Context, id string, driver models.Driver) (*models.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	driver.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, driver)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &driver, nil
}

// Delete removes a driver record by its hex ObjectID.
func (c *MongoDriverCollection) Delete(ctx context.Context, id string) error {
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

// ReplaceAll wipes the collection and loads a fresh set of records. Used by
// the CSV seeder.
func (c *MongoDriverCollection) ReplaceAll(ctx context.Context, drivers []models.Driver) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if _, err := c.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(drivers) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(drivers))
	for _, d := range drivers {
		if d.ID.IsZero() {
			d.ID = primitive.NewObjectID()
		}
		docs = append(docs, d)
	}
	_, err := c.Collection.InsertMany(ctx, docs)
	return err
}

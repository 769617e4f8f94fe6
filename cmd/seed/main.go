package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/greencart/logistics/internal/config"
	"github.com/greencart/logistics/internal/db"
	"github.com/greencart/logistics/internal/importer"
)

// seed loads the CSV fixtures (drivers.csv, routes.csv, orders.csv) from the
// data directory and replaces the stored records with them.
func main() {
	dataDir := flag.String("data", "", "directory containing the CSV files (overrides SEED_DATA_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	dir := cfg.Seed.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	collections := db.NewCollections(client.Database(cfg.Mongo.Database))

	if err := importer.Seed(ctx, collections, dir); err != nil {
		logrus.WithError(err).Fatal("Seeding failed")
	}
	logrus.WithField("dataDir", dir).Info("Seeding completed")
}

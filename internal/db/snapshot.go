package db

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/greencart/logistics/internal/models"
)

// Snapshot is a point-in-time read of the record store consumed by the
// simulation engine. The engine never touches the store itself.
type Snapshot struct {
	Drivers []models.Driver
	Routes  []models.Route
	Orders  []models.Order
}

// LoadSnapshot reads the drivers, routes, and orders collections
// concurrently. Any single failure aborts the whole load.
func LoadSnapshot(ctx context.Context, collections *Collections) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		drivers, err := collections.Drivers.List(ctx)
		if err != nil {
			return err
		}
		snap.Drivers = drivers
		return nil
	})
	g.Go(func() error {
		routes, err := collections.Routes.List(ctx)
		if err != nil {
			return err
		}
		snap.Routes = routes
		return nil
	})
	g.Go(func() error {
		orders, err := collections.Orders.List(ctx)
		if err != nil {
			return err
		}
		snap.Orders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Package importer loads driver, route, and order records from CSV files
// into the record store.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/greencart/logistics/internal/db"
	"github.com/greencart/logistics/internal/models"
)

// readRows reads a header-addressed CSV into one map per row.
func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, field := range record {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(field)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseFloat(row map[string]string, key string) (float64, error) {
	raw, ok := row[key]
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing column %q", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", key, err)
	}
	return v, nil
}

// parseHours accepts either a plain number or a pipe-separated list of
// per-day hours ("6|8|7"), which is summed. The source exports use the
// latter for past7DaysHours.
func parseHours(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	var total float64
	for _, part := range strings.Split(raw, "|") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

// ParseDrivers parses driver records from CSV with columns
// name,currentShiftHours,past7DaysHours.
func ParseDrivers(r io.Reader) ([]models.Driver, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	drivers := make([]models.Driver, 0, len(rows))
	for i, row := range rows {
		shift, err := parseFloat(row, "currentShiftHours")
		if err != nil {
			return nil, fmt.Errorf("drivers row %d: %w", i+1, err)
		}
		past, err := parseHours(row["past7DaysHours"])
		if err != nil {
			return nil, fmt.Errorf("drivers row %d: past7DaysHours: %w", i+1, err)
		}
		driver := models.Driver{
			Name:              row["name"],
			CurrentShiftHours: shift,
			Past7DaysHours:    past,
		}
		if err := driver.Validate(); err != nil {
			return nil, fmt.Errorf("drivers row %d: %w", i+1, err)
		}
		drivers = append(drivers, driver)
	}
	return drivers, nil
}

// ParseRoutes parses route records from CSV with columns
// routeId,distanceKm,trafficLevel,baseTimeMin.
func ParseRoutes(r io.Reader) ([]models.Route, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	routes := make([]models.Route, 0, len(rows))
	for i, row := range rows {
		distance, err := parseFloat(row, "distanceKm")
		if err != nil {
			return nil, fmt.Errorf("routes row %d: %w", i+1, err)
		}
		baseTime, err := parseFloat(row, "baseTimeMin")
		if err != nil {
			return nil, fmt.Errorf("routes row %d: %w", i+1, err)
		}
		route := models.Route{
			RouteID:      row["routeId"],
			DistanceKm:   distance,
			TrafficLevel: models.TrafficLevel(row["trafficLevel"]),
			BaseTimeMin:  baseTime,
		}
		if err := route.Validate(); err != nil {
			return nil, fmt.Errorf("routes row %d: %w", i+1, err)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// ParseOrders parses order records from CSV with columns
// orderId,valueRs,assignedRoute,deliveryTimestamp.
func ParseOrders(r io.Reader) ([]models.Order, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(rows))
	for i, row := range rows {
		value, err := parseFloat(row, "valueRs")
		if err != nil {
			return nil, fmt.Errorf("orders row %d: %w", i+1, err)
		}
		order := models.Order{
			OrderID:           row["orderId"],
			ValueRs:           value,
			AssignedRoute:     row["assignedRoute"],
			DeliveryTimestamp: row["deliveryTimestamp"],
		}
		if err := order.Validate(); err != nil {
			return nil, fmt.Errorf("orders row %d: %w", i+1, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Seed reads drivers.csv, routes.csv, and orders.csv from dataDir and
// replaces the contents of the corresponding collections. Each load is
// tagged with a batch ID in the logs.
func Seed(ctx context.Context, collections *db.Collections, dataDir string) error {
	batchID := uuid.NewString()
	logger := log.WithField("batch_id", batchID)

	drivers, err := parseFile(filepath.Join(dataDir, "drivers.csv"), ParseDrivers)
	if err != nil {
		return err
	}
	routes, err := parseFile(filepath.Join(dataDir, "routes.csv"), ParseRoutes)
	if err != nil {
		return err
	}
	orders, err := parseFile(filepath.Join(dataDir, "orders.csv"), ParseOrders)
	if err != nil {
		return err
	}

	if err := collections.Drivers.ReplaceAll(ctx, drivers); err != nil {
		return fmt.Errorf("load drivers: %w", err)
	}
	if err := collections.Routes.ReplaceAll(ctx, routes); err != nil {
		return fmt.Errorf("load routes: %w", err)
	}
	if err := collections.Orders.ReplaceAll(ctx, orders); err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	logger.WithFields(log.Fields{
		"drivers": len(drivers),
		"routes":  len(routes),
		"orders":  len(orders),
	}).Info("initial CSV data loaded")
	return nil
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}

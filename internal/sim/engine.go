// Package sim implements the delivery simulation and KPI scoring engine.
//
// The engine is pure: it never mutates its inputs, keeps no state between
// invocations, and is safe to call concurrently. Data acquisition is the
// caller's responsibility.
package sim

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/greencart/logistics/internal/models"
)

// ValidationError reports a malformed or out-of-range simulation parameter.
// The HTTP layer maps it to a client error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Config holds the scoring tunables. All business constants live here so the
// engine carries no embedded policy or fixture data.
type Config struct {
	FatigueThresholdHours float64 // shift hours above which a driver is fatigued
	FatigueSpeedFactor    float64 // speed multiplier applied when fatigued
	GraceMinutes          float64 // allowance on top of a route's base time
	LatePenaltyRs         float64 // flat penalty for a late delivery
	BonusThresholdRs      float64 // order value above which a bonus applies
	BonusRate             float64 // bonus fraction of order value
	FuelCostPerKm         float64
	HighTrafficFuelPerKm  float64 // surcharge per km on High traffic routes
	MediumTrafficDelayMin float64
	HighTrafficDelayMin   float64
}

// DefaultConfig returns the standard company policy constants.
func DefaultConfig() Config {
	return Config{
		FatigueThresholdHours: 8,
		FatigueSpeedFactor:    0.7,
		GraceMinutes:          10,
		LatePenaltyRs:         50,
		BonusThresholdRs:      1000,
		BonusRate:             0.1,
		FuelCostPerKm:         5,
		HighTrafficFuelPerKm:  2,
		MediumTrafficDelayMin: 10,
		HighTrafficDelayMin:   20,
	}
}

// Engine scores delivery orders against drivers and routes.
type Engine struct {
	cfg Config
}

// New creates an engine with the given scoring configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// outcome is the scored result for a single order.
type outcome struct {
	isLate   bool
	penalty  float64
	bonus    float64
	fuelCost float64
}

// scoreOrder applies the shared scoring rules: lateness against the allowed
// minute threshold, penalty, value bonus (voided by lateness), and fuel cost
// with the High-traffic surcharge. Both the forward simulation and the
// historical KPI path go through here.
func (e *Engine) scoreOrder(route models.Route, valueRs, deliveredAtMin, allowedUntilMin float64) outcome {
	out := outcome{isLate: deliveredAtMin > allowedUntilMin}
	if out.isLate {
		out.penalty = e.cfg.LatePenaltyRs
	} else if valueRs > e.cfg.BonusThresholdRs {
		out.bonus = e.cfg.BonusRate * valueRs
	}
	out.fuelCost = e.cfg.FuelCostPerKm * route.DistanceKm
	if route.TrafficLevel == models.TrafficHigh {
		out.fuelCost += e.cfg.HighTrafficFuelPerKm * route.DistanceKm
	}
	return out
}

func (e *Engine) trafficDelay(level models.TrafficLevel) float64 {
	switch level {
	case models.TrafficHigh:
		return e.cfg.HighTrafficDelayMin
	case models.TrafficMedium:
		return e.cfg.MediumTrafficDelayMin
	default:
		return 0
	}
}

// Run executes a forward simulation: the first NumberOfDrivers drivers form
// the pool, retained orders are assigned round-robin over it in input order,
// and each retained order is scored. Orders whose assigned route is absent
// from the route set are excluded from every figure except SkippedOrders.
func (e *Engine) Run(drivers []models.Driver, routes []models.Route, orders []models.Order, req models.SimulationRequest) (*models.SimulationResult, error) {
	if req.NumberOfDrivers < 1 {
		return nil, &ValidationError{Reason: "numberOfDrivers must be at least 1"}
	}
	if req.NumberOfDrivers > len(drivers) {
		return nil, &ValidationError{Reason: fmt.Sprintf("numberOfDrivers exceeds available drivers (%d)", len(drivers))}
	}
	if req.MaxHoursPerDriver < 1 || req.MaxHoursPerDriver > 24 {
		return nil, &ValidationError{Reason: "maxHoursPerDriver must be between 1 and 24"}
	}
	startMin, err := parseClock(req.RouteStartTime)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("routeStartTime: %v", err)}
	}

	pool := drivers[:req.NumberOfDrivers]
	routesByID := indexRoutes(routes)

	res := &models.SimulationResult{
		FuelCostBreakdown: map[models.TrafficLevel]int{},
		Orders:            []models.OrderResult{},
	}
	fuelByTraffic := map[models.TrafficLevel]float64{}
	var totalProfit float64
	driverIndex := 0

	for _, order := range orders {
		route, ok := routesByID[order.AssignedRoute]
		if !ok {
			res.SkippedOrders++
			continue
		}
		driver := pool[driverIndex]
		driverIndex = (driverIndex + 1) % req.NumberOfDrivers

		// Fatigue is judged from the shift snapshot; driver state is never
		// updated mid-run.
		speedFactor := 1.0
		if driver.CurrentShiftHours > e.cfg.FatigueThresholdHours {
			speedFactor = e.cfg.FatigueSpeedFactor
		}
		duration := route.BaseTimeMin / speedFactor
		deliveredAt := startMin + duration + e.trafficDelay(route.TrafficLevel)
		allowedUntil := startMin + route.BaseTimeMin + e.cfg.GraceMinutes

		out := e.scoreOrder(route, order.ValueRs, deliveredAt, allowedUntil)

		res.Orders = append(res.Orders, models.OrderResult{
			OrderID:      order.OrderID,
			ValueRs:      order.ValueRs,
			DriverName:   driver.Name,
			DeliveryTime: formatClock(deliveredAt),
			TrafficLevel: route.TrafficLevel,
			IsLate:       out.isLate,
			Penalty:      out.penalty,
			Bonus:        out.bonus,
			FuelCost:     out.fuelCost,
		})

		totalProfit += order.ValueRs + out.bonus - out.penalty - out.fuelCost
		fuelByTraffic[route.TrafficLevel] += out.fuelCost
		if out.isLate {
			res.LateDeliveries++
		} else {
			res.OnTimeDeliveries++
		}
	}

	res.TotalProfit = int(math.Round(totalProfit))
	res.Efficiency = efficiencyPct(res.OnTimeDeliveries, res.LateDeliveries)
	for _, level := range models.TrafficLevels {
		res.FuelCostBreakdown[level] = int(math.Round(fuelByTraffic[level]))
	}
	return res, nil
}

// HistoricalKPIs scores already-recorded deliveries: lateness is judged by
// comparing each order's recorded delivery timestamp against the route's
// base time plus the grace period, as minutes of day. No fatigue applies
// since there is no shift-start context, and no drivers are assigned.
func (e *Engine) HistoricalKPIs(routes []models.Route, orders []models.Order) (*models.KPIReport, error) {
	routesByID := indexRoutes(routes)

	rep := &models.KPIReport{
		FuelCostBreakdown: map[models.TrafficLevel]int{},
	}
	fuelByTraffic := map[models.TrafficLevel]float64{}
	var totalProfit float64

	for _, order := range orders {
		route, ok := routesByID[order.AssignedRoute]
		if !ok {
			rep.SkippedOrders++
			continue
		}
		deliveredAt, err := parseClock(order.DeliveryTimestamp)
		if err != nil {
			return nil, fmt.Errorf("order %s: deliveryTimestamp: %w", order.OrderID, err)
		}
		out := e.scoreOrder(route, order.ValueRs, deliveredAt, route.BaseTimeMin+e.cfg.GraceMinutes)

		totalProfit += order.ValueRs + out.bonus - out.penalty - out.fuelCost
		fuelByTraffic[route.TrafficLevel] += out.fuelCost
		if out.isLate {
			rep.LateDeliveries++
		} else {
			rep.OnTimeDeliveries++
		}
	}

	rep.TotalProfit = int(math.Round(totalProfit))
	rep.Efficiency = efficiencyPct(rep.OnTimeDeliveries, rep.LateDeliveries)
	for _, level := range models.TrafficLevels {
		rep.FuelCostBreakdown[level] = int(math.Round(fuelByTraffic[level]))
	}
	return rep, nil
}

func indexRoutes(routes []models.Route) map[string]models.Route {
	byID := make(map[string]models.Route, len(routes))
	for _, r := range routes {
		byID[r.RouteID] = r
	}
	return byID
}

func efficiencyPct(onTime, late int) int {
	total := onTime + late
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(onTime) / float64(total) * 100))
}

// parseClock converts an HH:MM 24-hour time of day to minutes since midnight.
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return float64(hour*60 + minute), nil
}

// formatClock renders minutes since midnight as HH:MM, wrapping past 24h.
func formatClock(minutes float64) string {
	m := int(minutes) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

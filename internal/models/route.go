package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrafficLevel is an ordinal route attribute driving both a fixed delivery
// delay and a fuel surcharge.
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "Low"
	TrafficMedium TrafficLevel = "Medium"
	TrafficHigh   TrafficLevel = "High"
)

// TrafficLevels lists all levels in ascending order of severity.
var TrafficLevels = []TrafficLevel{TrafficLow, TrafficMedium, TrafficHigh}

// IsValidTrafficLevel checks if a traffic level is one of Low/Medium/High.
func IsValidTrafficLevel(level TrafficLevel) bool {
	switch level {
	case TrafficLow, TrafficMedium, TrafficHigh:
		return true
	default:
		return false
	}
}

// Route represents a delivery route. Orders reference it by RouteID.
type Route struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RouteID      string             `bson:"routeId" json:"routeId"`
	DistanceKm   float64            `bson:"distanceKm" json:"distanceKm"`
	TrafficLevel TrafficLevel       `bson:"trafficLevel" json:"trafficLevel"`
	BaseTimeMin  float64            `bson:"baseTimeMin" json:"baseTimeMin"`
}

// Validate checks required fields and numeric ranges.
func (r *Route) Validate() error {
	if r.RouteID == "" {
		return errors.New("routeId is required")
	}
	if r.DistanceKm < 0 {
		return errors.New("distanceKm must be non-negative")
	}
	if !IsValidTrafficLevel(r.TrafficLevel) {
		return errors.New("trafficLevel must be one of Low, Medium, High")
	}
	if r.BaseTimeMin < 0 {
		return errors.New("baseTimeMin must be non-negative")
	}
	return nil
}

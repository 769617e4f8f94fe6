package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order represents a delivery order. AssignedRoute references Route.RouteID
// by value. DeliveryTimestamp (HH:MM) is the recorded delivery time used by
// the historical KPI path; the forward simulation synthesizes its own
// delivery time from the route start instead.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID           string             `bson:"orderId" json:"orderId"`
	ValueRs           float64            `bson:"valueRs" json:"valueRs"`
	AssignedRoute     string             `bson:"assignedRoute" json:"assignedRoute"`
	DeliveryTimestamp string             `bson:"deliveryTimestamp" json:"deliveryTimestamp"`
}

// Validate checks required fields and numeric ranges.
func (o *Order) Validate() error {
	if o.OrderID == "" {
		return errors.New("orderId is required")
	}
	if o.ValueRs < 0 {
		return errors.New("valueRs must be non-negative")
	}
	if o.AssignedRoute == "" {
		return errors.New("assignedRoute is required")
	}
	return nil
}

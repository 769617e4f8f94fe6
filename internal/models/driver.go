package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver represents a delivery driver. CurrentShiftHours drives the fatigue
// rule; Past7DaysHours is tracked for compliance reporting and is not used
// by the scoring logic yet.
type Driver struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	CurrentShiftHours float64            `bson:"currentShiftHours" json:"currentShiftHours"`
	Past7DaysHours    float64            `bson:"past7DaysHours" json:"past7DaysHours"`
}

// Validate checks required fields and numeric ranges.
func (d *Driver) Validate() error {
	if d.Name == "" {
		return errors.New("driver name is required")
	}
	if d.CurrentShiftHours < 0 {
		return errors.New("currentShiftHours must be non-negative")
	}
	if d.Past7DaysHours < 0 {
		return errors.New("past7DaysHours must be non-negative")
	}
	return nil
}

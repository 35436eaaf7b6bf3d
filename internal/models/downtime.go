package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DowntimeRecord represents a span during which a vehicle was out of
// service. A nil EndTime means the downtime is still ongoing.
type DowntimeRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID string             `json:"vehicle_id" bson:"vehicle_id"`
	StartTime time.Time          `json:"start_time" bson:"start_time"`
	EndTime   *time.Time         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Reason    string             `json:"reason" bson:"reason"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Hours returns the downtime duration in hours, measuring ongoing
// records up to the given instant.
func (d *DowntimeRecord) Hours(now time.Time) float64 {
	end := now
	if d.EndTime != nil {
		end = *d.EndTime
	}
	return end.Sub(d.StartTime).Hours()
}

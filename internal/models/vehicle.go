package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStatus represents the operational state of a fleet vehicle.
type VehicleStatus string

const (
	StatusInService      VehicleStatus = "in_service"
	StatusNeedsAttention VehicleStatus = "needs_attention"
	StatusOutForRepair   VehicleStatus = "out_for_repair"
	StatusRetired        VehicleStatus = "retired"
)

// IsValidStatus checks if a vehicle status is valid
func IsValidStatus(status VehicleStatus) bool {
	switch status {
	case StatusInService, StatusNeedsAttention, StatusOutForRepair, StatusRetired:
		return true
	default:
		return false
	}
}

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nickname  string             `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Make      string             `bson:"make" json:"make"`
	Model     string             `bson:"model" json:"model"`
	Year      int                `bson:"year" json:"year"`
	Odometer  int                `bson:"odometer" json:"odometer"` // in miles
	Status    VehicleStatus      `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// DisplayName returns the vehicle's nickname, or make+model when no
// nickname is set.
func (v *Vehicle) DisplayName() string {
	if v.Nickname != "" {
		return v.Nickname
	}
	name := strings.TrimSpace(v.Make + " " + v.Model)
	if name == "" {
		return v.ID.Hex()
	}
	return name
}

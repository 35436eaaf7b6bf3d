package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceType is the closed set of service categories. The
// preventive/reactive classification below is the single source of truth
// for the reliability scorer; add new types here, not in the scoring code.
type MaintenanceType string

const (
	TypeOilChange             MaintenanceType = "oil_change"
	TypeTireRotation          MaintenanceType = "tire_rotation"
	TypeTireReplacement       MaintenanceType = "tire_replacement"
	TypeBrakeInspection       MaintenanceType = "brake_inspection"
	TypeDOTInspection         MaintenanceType = "dot_inspection"
	TypePreventiveMaintenance MaintenanceType = "preventive_maintenance"
	TypeEmergencyRepair       MaintenanceType = "emergency_repair"
	TypeEngineService         MaintenanceType = "engine_service"
	TypeTransmissionService   MaintenanceType = "transmission_service"
	TypeOther                 MaintenanceType = "other"
)

// IsValidMaintenanceType checks if a maintenance type is valid
func IsValidMaintenanceType(t MaintenanceType) bool {
	switch t {
	case TypeOilChange, TypeTireRotation, TypeTireReplacement, TypeBrakeInspection,
		TypeDOTInspection, TypePreventiveMaintenance, TypeEmergencyRepair,
		TypeEngineService, TypeTransmissionService, TypeOther:
		return true
	default:
		return false
	}
}

// IsPreventive reports whether the type counts as scheduled upkeep.
func (t MaintenanceType) IsPreventive() bool {
	switch t {
	case TypeOilChange, TypeDOTInspection, TypePreventiveMaintenance,
		TypeBrakeInspection, TypeTireReplacement:
		return true
	default:
		return false
	}
}

// IsReactive reports whether the type counts as unplanned repair work.
func (t MaintenanceType) IsReactive() bool {
	switch t {
	case TypeEmergencyRepair, TypeEngineService, TypeTransmissionService:
		return true
	default:
		return false
	}
}

// MaintenanceRecord represents one service performed on a vehicle.
// Records are immutable once read by the analytics engine.
type MaintenanceRecord struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID   string             `json:"vehicle_id" bson:"vehicle_id"`
	ServiceType MaintenanceType    `json:"service_type" bson:"service_type"`
	ServiceDate time.Time          `json:"service_date" bson:"service_date"`
	Cost        float64            `json:"cost" bson:"cost"` // in USD, 0 when unknown
	Notes       string             `json:"notes" bson:"notes"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

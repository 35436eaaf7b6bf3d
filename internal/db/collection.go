package db

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Cursor defines the subset of mongo cursor operations the handlers use.
type Cursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	FindVehicles(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
}

// MaintenanceCollection defines the interface for maintenance record operations.
type MaintenanceCollection interface {
	InsertMaintenance(ctx context.Context, record models.MaintenanceRecord) (string, error)
	FindMaintenance(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error)
	FindMaintenanceByID(ctx context.Context, id string) (*models.MaintenanceRecord, error)
	UpdateMaintenance(ctx context.Context, id string, record models.MaintenanceRecord) error
	DeleteMaintenance(ctx context.Context, id string) error
	ListMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error)
	ListMaintenanceByVehicle(ctx context.Context, vehicleID string) ([]models.MaintenanceRecord, error)
}

// DowntimeCollection defines the interface for downtime record operations.
type DowntimeCollection interface {
	InsertDowntime(ctx context.Context, record models.DowntimeRecord) (string, error)
	FindDowntimeByID(ctx context.Context, id string) (*models.DowntimeRecord, error)
	UpdateDowntime(ctx context.Context, id string, record models.DowntimeRecord) error
	DeleteDowntime(ctx context.Context, id string) error
	ListDowntime(ctx context.Context) ([]models.DowntimeRecord, error)
	ListDowntimeByVehicle(ctx context.Context, vehicleID string) ([]models.DowntimeRecord, error)
}

// FleetReader is the read-only view the analytics path needs: one snapshot
// of each collection, no write access.
type FleetReader interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	ListMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error)
	ListDowntime(ctx context.Context) ([]models.DowntimeRecord, error)
}

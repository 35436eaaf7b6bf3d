package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCursor wraps a MongoDB cursor.
type mongoCursor struct {
	cursor *mongo.Cursor
}

func (m *mongoCursor) All(ctx context.Context, out interface{}) error {
	return m.cursor.All(ctx, out)
}

func (m *mongoCursor) Close(ctx context.Context) error {
	return m.cursor.Close(ctx)
}

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record into the collection.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		return "", err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex(), nil
	}
	return "", nil
}

// FindVehicles queries vehicle records from the collection.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return &mongoCursor{cursor: cursor}, nil
}

// FindVehicleByID finds a vehicle by its ID.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}
	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle updates a vehicle by its ID.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}
	vehicle.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": vehicle})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// DeleteVehicle deletes a vehicle by its ID.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// ListVehicles returns every vehicle in the collection.
func (c *MongoVehicleCollection) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	cursor, err := c.FindVehicles(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	vehicles := make([]models.Vehicle, 0)
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// MongoMaintenanceCollection implements MaintenanceCollection for MongoDB.
type MongoMaintenanceCollection struct {
	Collection *mongo.Collection
}

// InsertMaintenance inserts a maintenance record into the collection.
func (c *MongoMaintenanceCollection) InsertMaintenance(ctx context.Context, record models.MaintenanceRecord) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex(), nil
	}
	return "", nil
}

// FindMaintenance queries maintenance records from the collection.
func (c *MongoMaintenanceCollection) FindMaintenance(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (Cursor, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return &mongoCursor{cursor: cursor}, nil
}

// FindMaintenanceByID finds a maintenance record by its ID.
func (c *MongoMaintenanceCollection) FindMaintenanceByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance ID: %w", err)
	}
	var record models.MaintenanceRecord
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("maintenance record not found")
		}
		return nil, err
	}
	return &record, nil
}

// UpdateMaintenance updates a maintenance record by its ID.
func (c *MongoMaintenanceCollection) UpdateMaintenance(ctx context.Context, id string, record models.MaintenanceRecord) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid maintenance ID: %w", err)
	}
	record.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": record})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("maintenance record not found")
	}
	return nil
}

// DeleteMaintenance deletes a maintenance record by its ID.
func (c *MongoMaintenanceCollection) DeleteMaintenance(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid maintenance ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("maintenance record not found")
	}
	return nil
}

// ListMaintenance returns every maintenance record in the collection.
func (c *MongoMaintenanceCollection) ListMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error) {
	return c.listMaintenance(ctx, bson.M{})
}

// ListMaintenanceByVehicle returns the full history for one vehicle.
func (c *MongoMaintenanceCollection) ListMaintenanceByVehicle(ctx context.Context, vehicleID string) ([]models.MaintenanceRecord, error) {
	return c.listMaintenance(ctx, bson.M{"vehicle_id": vehicleID})
}

func (c *MongoMaintenanceCollection) listMaintenance(ctx context.Context, filter bson.M) ([]models.MaintenanceRecord, error) {
	cursor, err := c.FindMaintenance(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	records := make([]models.MaintenanceRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MongoDowntimeCollection implements DowntimeCollection for MongoDB.
type MongoDowntimeCollection struct {
	Collection *mongo.Collection
}

// InsertDowntime inserts a downtime record into the collection.
func (c *MongoDowntimeCollection) InsertDowntime(ctx context.Context, record models.DowntimeRecord) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex(), nil
	}
	return "", nil
}

// FindDowntimeByID finds a downtime record by its ID.
func (c *MongoDowntimeCollection) FindDowntimeByID(ctx context.Context, id string) (*models.DowntimeRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid downtime ID: %w", err)
	}
	var record models.DowntimeRecord
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("downtime record not found")
		}
		return nil, err
	}
	return &record, nil
}

// UpdateDowntime updates a downtime record by its ID.
func (c *MongoDowntimeCollection) UpdateDowntime(ctx context.Context, id string, record models.DowntimeRecord) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid downtime ID: %w", err)
	}
	record.UpdatedAt = time.Now()
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": record})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("downtime record not found")
	}
	return nil
}

// DeleteDowntime deletes a downtime record by its ID.
func (c *MongoDowntimeCollection) DeleteDowntime(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid downtime ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("downtime record not found")
	}
	return nil
}

// ListDowntime returns every downtime record in the collection.
func (c *MongoDowntimeCollection) ListDowntime(ctx context.Context) ([]models.DowntimeRecord, error) {
	return c.listDowntime(ctx, bson.M{})
}

// ListDowntimeByVehicle returns the downtime history for one vehicle.
func (c *MongoDowntimeCollection) ListDowntimeByVehicle(ctx context.Context, vehicleID string) ([]models.DowntimeRecord, error) {
	return c.listDowntime(ctx, bson.M{"vehicle_id": vehicleID})
}

func (c *MongoDowntimeCollection) listDowntime(ctx context.Context, filter bson.M) ([]models.DowntimeRecord, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	records := make([]models.DowntimeRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FleetStore bundles the three collections behind the read-only view the
// analytics path consumes.
type FleetStore struct {
	Vehicles    VehicleCollection
	Maintenance MaintenanceCollection
	Downtime    DowntimeCollection
}

// NewFleetStore wires the standard collection names from one database.
func NewFleetStore(database *mongo.Database) *FleetStore {
	return &FleetStore{
		Vehicles:    &MongoVehicleCollection{Collection: database.Collection("vehicles")},
		Maintenance: &MongoMaintenanceCollection{Collection: database.Collection("maintenance")},
		Downtime:    &MongoDowntimeCollection{Collection: database.Collection("downtime")},
	}
}

// ListVehicles implements FleetReader.
func (s *FleetStore) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.Vehicles.ListVehicles(ctx)
}

// ListMaintenance implements FleetReader.
func (s *FleetStore) ListMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error) {
	return s.Maintenance.ListMaintenance(ctx)
}

// ListDowntime implements FleetReader.
func (s *FleetStore) ListDowntime(ctx context.Context) ([]models.DowntimeRecord, error) {
	return s.Downtime.ListDowntime(ctx)
}

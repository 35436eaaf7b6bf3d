package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// In-memory fakes for the collection interfaces.

type fakeVehicles struct {
	items map[string]models.Vehicle
}

func newFakeVehicles() *fakeVehicles {
	return &fakeVehicles{items: make(map[string]models.Vehicle)}
}

func (f *fakeVehicles) InsertVehicle(_ context.Context, vehicle models.Vehicle) (string, error) {
	vehicle.ID = primitive.NewObjectID()
	id := vehicle.ID.Hex()
	f.items[id] = vehicle
	return id, nil
}

func (f *fakeVehicles) FindVehicles(context.Context, interface{}, ...*options.FindOptions) (db.Cursor, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeVehicles) FindVehicleByID(_ context.Context, id string) (*models.Vehicle, error) {
	v, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("vehicle not found")
	}
	return &v, nil
}

func (f *fakeVehicles) UpdateVehicle(_ context.Context, id string, vehicle models.Vehicle) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("vehicle not found")
	}
	f.items[id] = vehicle
	return nil
}

func (f *fakeVehicles) DeleteVehicle(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("vehicle not found")
	}
	delete(f.items, id)
	return nil
}

func (f *fakeVehicles) ListVehicles(context.Context) ([]models.Vehicle, error) {
	out := make([]models.Vehicle, 0, len(f.items))
	for _, v := range f.items {
		out = append(out, v)
	}
	return out, nil
}

type fakeMaintenance struct {
	items map[string]models.MaintenanceRecord
	next  int
}

func newFakeMaintenance() *fakeMaintenance {
	return &fakeMaintenance{items: make(map[string]models.MaintenanceRecord)}
}

func (f *fakeMaintenance) InsertMaintenance(_ context.Context, record models.MaintenanceRecord) (string, error) {
	f.next++
	id := fmt.Sprintf("maintenance-%d", f.next)
	f.items[id] = record
	return id, nil
}

func (f *fakeMaintenance) FindMaintenance(context.Context, interface{}, ...*options.FindOptions) (db.Cursor, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeMaintenance) FindMaintenanceByID(_ context.Context, id string) (*models.MaintenanceRecord, error) {
	rec, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("maintenance record not found")
	}
	return &rec, nil
}

func (f *fakeMaintenance) UpdateMaintenance(_ context.Context, id string, record models.MaintenanceRecord) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("maintenance record not found")
	}
	f.items[id] = record
	return nil
}

func (f *fakeMaintenance) DeleteMaintenance(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("maintenance record not found")
	}
	delete(f.items, id)
	return nil
}

func (f *fakeMaintenance) ListMaintenance(context.Context) ([]models.MaintenanceRecord, error) {
	out := make([]models.MaintenanceRecord, 0, len(f.items))
	for _, rec := range f.items {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeMaintenance) ListMaintenanceByVehicle(_ context.Context, vehicleID string) ([]models.MaintenanceRecord, error) {
	out := make([]models.MaintenanceRecord, 0)
	for _, rec := range f.items {
		if rec.VehicleID == vehicleID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeDowntime struct {
	items map[string]models.DowntimeRecord
	next  int
}

func newFakeDowntime() *fakeDowntime {
	return &fakeDowntime{items: make(map[string]models.DowntimeRecord)}
}

func (f *fakeDowntime) InsertDowntime(_ context.Context, record models.DowntimeRecord) (string, error) {
	f.next++
	id := fmt.Sprintf("downtime-%d", f.next)
	f.items[id] = record
	return id, nil
}

func (f *fakeDowntime) FindDowntimeByID(_ context.Context, id string) (*models.DowntimeRecord, error) {
	rec, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("downtime record not found")
	}
	return &rec, nil
}

func (f *fakeDowntime) UpdateDowntime(_ context.Context, id string, record models.DowntimeRecord) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("downtime record not found")
	}
	f.items[id] = record
	return nil
}

func (f *fakeDowntime) DeleteDowntime(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("downtime record not found")
	}
	delete(f.items, id)
	return nil
}

func (f *fakeDowntime) ListDowntime(context.Context) ([]models.DowntimeRecord, error) {
	out := make([]models.DowntimeRecord, 0, len(f.items))
	for _, rec := range f.items {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeDowntime) ListDowntimeByVehicle(_ context.Context, vehicleID string) ([]models.DowntimeRecord, error) {
	out := make([]models.DowntimeRecord, 0)
	for _, rec := range f.items {
		if rec.VehicleID == vehicleID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) RecordsChanged(collection, action string) {
	f.events = append(f.events, collection+":"+action)
}

func newTestFleetHandler() (*FleetHandler, *fakeVehicles, *fakeMaintenance, *fakeNotifier) {
	vehicles := newFakeVehicles()
	maintenance := newFakeMaintenance()
	notifier := &fakeNotifier{}
	h := NewFleetHandler(vehicles, maintenance, newFakeDowntime(), notifier)
	return h, vehicles, maintenance, notifier
}

func TestFleetHandler_CreateVehicle(t *testing.T) {
	h, vehicles, _, notifier := newTestFleetHandler()

	body, _ := json.Marshal(models.Vehicle{Make: "Ford", Model: "Transit", Year: 2021, Odometer: 12000, Status: models.StatusInService})
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Vehicles(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, vehicles.items, 1)
	assert.Equal(t, []string{"vehicles:create"}, notifier.events)
}

func TestFleetHandler_CreateVehicle_DefaultsStatus(t *testing.T) {
	h, vehicles, _, _ := newTestFleetHandler()

	body, _ := json.Marshal(models.Vehicle{Make: "Ford", Model: "F-150"})
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Vehicles(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	for _, v := range vehicles.items {
		assert.Equal(t, models.StatusInService, v.Status)
	}
}

func TestFleetHandler_CreateVehicle_RejectsBadStatus(t *testing.T) {
	h, vehicles, _, notifier := newTestFleetHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/vehicles",
		bytes.NewReader([]byte(`{"make":"Ford","status":"flying"}`)))
	w := httptest.NewRecorder()

	h.Vehicles(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, vehicles.items)
	assert.Empty(t, notifier.events)
}

func TestFleetHandler_CreateMaintenance_RejectsInvalidType(t *testing.T) {
	h, _, maintenance, _ := newTestFleetHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/maintenance",
		bytes.NewReader([]byte(`{"vehicle_id":"v1","service_type":"wheel_polish"}`)))
	w := httptest.NewRecorder()

	h.Maintenance(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, maintenance.items)
}

func TestFleetHandler_CreateMaintenance_RejectsNegativeCost(t *testing.T) {
	h, _, _, _ := newTestFleetHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/maintenance",
		bytes.NewReader([]byte(`{"vehicle_id":"v1","service_type":"oil_change","cost":-5}`)))
	w := httptest.NewRecorder()

	h.Maintenance(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFleetHandler_CreateMaintenance_NotifiesOnSuccess(t *testing.T) {
	h, _, maintenance, notifier := newTestFleetHandler()

	record := models.MaintenanceRecord{
		VehicleID:   "v1",
		ServiceType: models.TypeOilChange,
		ServiceDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		Cost:        89.99,
	}
	body, _ := json.Marshal(record)
	req := httptest.NewRequest(http.MethodPost, "/api/maintenance", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Maintenance(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, maintenance.items, 1)
	assert.Equal(t, []string{"maintenance:create"}, notifier.events)
}

func TestFleetHandler_GetVehicleByID(t *testing.T) {
	h, vehicles, _, _ := newTestFleetHandler()
	id, _ := vehicles.InsertVehicle(context.Background(), models.Vehicle{Make: "Mack", Status: models.StatusInService})

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles/"+id, nil)
	w := httptest.NewRecorder()

	h.VehicleByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Vehicle
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Mack", got.Make)
}

func TestFleetHandler_DeleteVehicle_NotFound(t *testing.T) {
	h, _, _, notifier := newTestFleetHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/vehicles/missing", nil)
	w := httptest.NewRecorder()

	h.VehicleByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, notifier.events)
}

func TestFleetHandler_CreateDowntime_RejectsEndBeforeStart(t *testing.T) {
	h, _, _, _ := newTestFleetHandler()

	start := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	body, _ := json.Marshal(models.DowntimeRecord{VehicleID: "v1", StartTime: start, EndTime: &end})
	req := httptest.NewRequest(http.MethodPost, "/api/downtime", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.Downtime(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFleetHandler_MethodNotAllowed(t *testing.T) {
	h, _, _, _ := newTestFleetHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/vehicles", nil)
	w := httptest.NewRecorder()

	h.Vehicles(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

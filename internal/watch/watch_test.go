package watch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/fleet-maintenance/internal/analytics"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

type fakeReader struct {
	vehicles []models.Vehicle
	records  []models.MaintenanceRecord
	downtime []models.DowntimeRecord
	err      error
}

func (f *fakeReader) ListVehicles(context.Context) ([]models.Vehicle, error) {
	return f.vehicles, f.err
}

func (f *fakeReader) ListMaintenance(context.Context) ([]models.MaintenanceRecord, error) {
	return f.records, f.err
}

func (f *fakeReader) ListDowntime(context.Context) ([]models.DowntimeRecord, error) {
	return f.downtime, f.err
}

func TestWatcher_RecomputePublishesSnapshot(t *testing.T) {
	reader := &fakeReader{
		vehicles: []models.Vehicle{
			{Status: models.StatusInService, Year: 2022, Odometer: 50000},
		},
		records: []models.MaintenanceRecord{
			{VehicleID: "v1", ServiceType: models.TypeOilChange, ServiceDate: time.Now().Add(-24 * time.Hour), Cost: 120},
		},
	}

	var gotTopic string
	var gotPayload []byte
	w := &Watcher{
		reader: reader,
		engine: analytics.NewEngine(),
		publish: func(topic string, payload []byte) {
			gotTopic = topic
			gotPayload = payload
		},
	}

	err := w.Recompute(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, snapshotTopic, gotTopic)

	var snap models.AnalyticsSnapshot
	assert.NoError(t, json.Unmarshal(gotPayload, &snap))
	assert.Equal(t, 100.0, snap.FleetUtilization)
	assert.Equal(t, 120.0, snap.TotalMaintenanceCost)
}

func TestWatcher_RecomputeReaderError(t *testing.T) {
	published := false
	w := &Watcher{
		reader: &fakeReader{err: errors.New("mongo down")},
		engine: analytics.NewEngine(),
		publish: func(string, []byte) {
			published = true
		},
	}

	err := w.Recompute(context.Background())
	assert.Error(t, err)
	assert.False(t, published)
}

func TestChangeEvent_RoundTrip(t *testing.T) {
	event := ChangeEvent{Collection: "maintenance", Action: "create", At: time.Now().UTC()}
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	var decoded ChangeEvent
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "maintenance", decoded.Collection)
	assert.Equal(t, "create", decoded.Action)
}

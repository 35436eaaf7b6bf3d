package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestPlausibleDate(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected bool
	}{
		{"normal date", time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), true},
		{"zero time", time.Time{}, false},
		{"year 1899", time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC), false},
		{"year 1900", time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"ten years ahead", time.Date(2035, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"eleven years ahead", time.Date(2036, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"year 9999", time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, plausibleDate(tt.date, now))
		})
	}
}

func TestSanitizeByDate(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := []models.MaintenanceRecord{
		{VehicleID: "a", ServiceDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{VehicleID: "b"}, // zero date
		{VehicleID: "c", ServiceDate: time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{VehicleID: "d", ServiceDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)},
	}

	kept, dropped := sanitizeByDate(records, now)
	assert.Equal(t, 2, dropped)
	assert.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].VehicleID)
	assert.Equal(t, "d", kept[1].VehicleID)
}

func TestSanitizeByDate_EmptyInput(t *testing.T) {
	kept, dropped := sanitizeByDate(nil, time.Now())
	assert.NotNil(t, kept)
	assert.Empty(t, kept)
	assert.Equal(t, 0, dropped)
}

func TestSanitizeByDate_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	records := []models.MaintenanceRecord{
		{VehicleID: "a", ServiceDate: now},
		{VehicleID: "b"},
	}
	_, _ = sanitizeByDate(records, now)
	assert.Len(t, records, 2)
	assert.Equal(t, "b", records[1].VehicleID)
}

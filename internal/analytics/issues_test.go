package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestRankIssues(t *testing.T) {
	date := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []models.MaintenanceRecord{
		rec("a", models.TypeOilChange, date, 50),
		rec("a", models.TypeOilChange, date, 50),
		rec("b", models.TypeEngineService, date, 800),
		rec("b", models.TypeOilChange, date, 50),
		rec("c", "", date, 10), // missing category is excluded, not "other"
	}

	ranked := rankIssues(records)

	assert.Len(t, ranked, 2)
	assert.Equal(t, models.TypeOilChange, ranked[0].Category)
	assert.Equal(t, 3, ranked[0].Count)
	assert.Equal(t, models.TypeEngineService, ranked[1].Category)
	assert.Equal(t, 1, ranked[1].Count)
}

func TestRankIssues_TiesAlphabetical(t *testing.T) {
	date := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	var records []models.MaintenanceRecord
	for i := 0; i < 3; i++ {
		records = append(records, rec("a", models.TypeOilChange, date, 50))
		records = append(records, rec("a", models.TypeBrakeInspection, date, 80))
	}

	ranked := rankIssues(records)

	assert.Len(t, ranked, 2)
	assert.Equal(t, models.TypeBrakeInspection, ranked[0].Category)
	assert.Equal(t, models.TypeOilChange, ranked[1].Category)
	assert.Equal(t, 3, ranked[0].Count)
	assert.Equal(t, 3, ranked[1].Count)
}

func TestRankIssues_Empty(t *testing.T) {
	ranked := rankIssues(nil)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

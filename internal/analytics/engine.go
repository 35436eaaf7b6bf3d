package analytics

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// recentWindow is how far back the maintenance-cadence score looks when
// comparing actual service count against the expected yearly cadence.
const recentWindow = 365 * 24 * time.Hour

// Engine computes analytics snapshots from in-memory record collections.
// It holds no state between runs; the clock is a field so tests can pin
// "now" for downtime math and timestamp plausibility checks.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Compute derives a full analytics snapshot from the given collections.
// It is a pure function of its inputs and the clock: inputs are never
// mutated, nothing is persisted, and recomputing on unchanged inputs
// yields an identical snapshot.
func (e *Engine) Compute(vehicles []models.Vehicle, records []models.MaintenanceRecord, downtime []models.DowntimeRecord) models.AnalyticsSnapshot {
	snapshot, _ := e.ComputeWithStats(vehicles, records, downtime)
	return snapshot
}

// ComputeWithStats is Compute plus the number of records the sanitizer
// excluded, for callers that track data quality.
func (e *Engine) ComputeWithStats(vehicles []models.Vehicle, records []models.MaintenanceRecord, downtime []models.DowntimeRecord) (models.AnalyticsSnapshot, int) {
	now := e.now()

	sanitized, dropped := sanitizeByDate(records, now)
	if dropped > 0 {
		log.WithFields(log.Fields{
			"dropped": dropped,
			"kept":    len(sanitized),
		}).Debug("excluded maintenance records with implausible dates")
	}

	totalCost := 0.0
	for _, r := range sanitized {
		totalCost += safeCost(r.Cost)
	}

	avgCost := 0.0
	if len(vehicles) > 0 {
		avgCost = totalCost / float64(len(vehicles))
	}

	snapshot := models.AnalyticsSnapshot{
		FleetUtilization:      fleetUtilization(vehicles),
		TotalMaintenanceCost:  totalCost,
		AverageCostPerVehicle: avgCost,
		CostBreakdown:         costByCategory(sanitized, totalCost),
		MaintenanceTrends:     costByMonth(sanitized),
		MostCommonIssues:      rankIssues(sanitized),
		VehicleReliability:    scoreReliability(vehicles, records, downtime, now),
		VehiclePerformance:    rankPerformance(vehicles, records),
	}
	return snapshot, dropped
}

// Compute runs a one-off computation against the wall clock.
func Compute(vehicles []models.Vehicle, records []models.MaintenanceRecord, downtime []models.DowntimeRecord) models.AnalyticsSnapshot {
	return NewEngine().Compute(vehicles, records, downtime)
}

// fleetUtilization returns the percentage of vehicles currently in service.
func fleetUtilization(vehicles []models.Vehicle) float64 {
	if len(vehicles) == 0 {
		return 0
	}
	inService := 0
	for _, v := range vehicles {
		if v.Status == models.StatusInService {
			inService++
		}
	}
	return round1(float64(inService) / float64(len(vehicles)) * 100)
}

// safeCost treats NaN, infinite and negative cost values as zero so a
// single corrupt record cannot poison a sum.
func safeCost(c float64) float64 {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return 0
	}
	return c
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

const (
	statusScoreInService      = 100.0
	statusScoreNeedsAttention = 70.0
	statusScoreOutForRepair   = 30.0
	statusScoreDefault        = 50.0

	milesPerExpectedService = 15000
	minExpectedPerYear      = 4

	emergencyPenaltyPerRepair = 10.0
	agePenaltyPerYear         = 2.0
	agePenaltyCap             = 20.0
	mileagePenaltyStep        = 50000
	mileagePenaltyPerStep     = 3.0
	mileagePenaltyCap         = 15.0
	preventiveBonusMax        = 15.0

	// Assumed preventive ratio for vehicles with no classified history.
	defaultPreventiveRatio = 0.8
)

func statusScore(status models.VehicleStatus) float64 {
	switch status {
	case models.StatusInService:
		return statusScoreInService
	case models.StatusNeedsAttention:
		return statusScoreNeedsAttention
	case models.StatusOutForRepair:
		return statusScoreOutForRepair
	default:
		// Retired and anything unrecognized land in the middle bucket.
		return statusScoreDefault
	}
}

// isEmergency flags a record as an emergency repair either by its type or
// by a technician noting "emergency" in the free text.
func isEmergency(r models.MaintenanceRecord) bool {
	return r.ServiceType == models.TypeEmergencyRepair ||
		strings.Contains(strings.ToLower(r.Notes), "emergency")
}

// scoreReliability computes the composite 0-100 health score for every
// vehicle. Scoring uses the full all-time history; only the cadence
// component looks at the recent window. Results are ordered best first,
// with vehicle ID breaking score ties so the ranking is deterministic.
func scoreReliability(vehicles []models.Vehicle, records []models.MaintenanceRecord, downtime []models.DowntimeRecord, now time.Time) []models.VehicleReliability {
	recentSince := now.Add(-recentWindow)

	byVehicle := make(map[string][]models.MaintenanceRecord)
	for _, r := range records {
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r)
	}
	downtimeByVehicle := make(map[string][]models.DowntimeRecord)
	for _, d := range downtime {
		downtimeByVehicle[d.VehicleID] = append(downtimeByVehicle[d.VehicleID], d)
	}

	results := make([]models.VehicleReliability, 0, len(vehicles))
	for _, v := range vehicles {
		id := v.ID.Hex()
		history := byVehicle[id]

		recentCount := 0
		emergencies := 0
		preventive := 0
		reactive := 0
		for _, r := range history {
			// Recent means within the trailing window: future-dated
			// records (corrupt entry years) must not inflate cadence.
			if !r.ServiceDate.Before(recentSince) && !r.ServiceDate.After(now) {
				recentCount++
			}
			if isEmergency(r) {
				emergencies++
			}
			if r.ServiceType.IsPreventive() {
				preventive++
			}
			if r.ServiceType.IsReactive() {
				reactive++
			}
		}

		expectedPerYear := v.Odometer / milesPerExpectedService
		if expectedPerYear < minExpectedPerYear {
			expectedPerYear = minExpectedPerYear
		}
		maintenanceScore := 100 - float64(recentCount)/float64(expectedPerYear)*30
		if maintenanceScore < 0 {
			maintenanceScore = 0
		}

		ageYears := now.Year() - v.Year
		agePenalty := float64(ageYears) * agePenaltyPerYear
		if agePenalty > agePenaltyCap {
			agePenalty = agePenaltyCap
		}

		mileagePenalty := float64(v.Odometer/mileagePenaltyStep) * mileagePenaltyPerStep
		if mileagePenalty > mileagePenaltyCap {
			mileagePenalty = mileagePenaltyCap
		}

		// Emergency penalty is deliberately uncapped: a vehicle with
		// repeated emergency repairs should bottom out at zero.
		emergencyPenalty := float64(emergencies) * emergencyPenaltyPerRepair

		preventiveRatio := defaultPreventiveRatio
		if preventive+reactive > 0 {
			preventiveRatio = float64(preventive) / float64(preventive+reactive)
		}
		preventiveBonus := preventiveRatio * preventiveBonusMax

		breakdown := models.ScoreBreakdown{
			StatusScore:      statusScore(v.Status),
			MaintenanceScore: maintenanceScore,
			EmergencyPenalty: emergencyPenalty,
			AgePenalty:       agePenalty,
			MileagePenalty:   mileagePenalty,
			PreventiveBonus:  preventiveBonus,
		}

		raw := (breakdown.StatusScore+breakdown.MaintenanceScore)/2 -
			emergencyPenalty - agePenalty - mileagePenalty + preventiveBonus

		hours := 0.0
		for _, d := range downtimeByVehicle[id] {
			hours += d.Hours(now)
		}

		results = append(results, models.VehicleReliability{
			VehicleID:     id,
			Name:          v.DisplayName(),
			Score:         round1(clamp(raw, 0, 100)),
			DowntimeHours: round1(hours),
			Breakdown:     breakdown,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].VehicleID < results[j].VehicleID
	})
	return results
}

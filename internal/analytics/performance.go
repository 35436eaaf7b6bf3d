package analytics

import (
	"sort"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// rankPerformance computes all-time maintenance spend per mile for every
// vehicle and orders the fleet cheapest first. A vehicle with a zero
// odometer reads as 0.0000 regardless of spend and therefore ranks as
// "free"; that skew is long-standing dashboard behavior and changing it
// needs product sign-off. Ties order by vehicle ID.
func rankPerformance(vehicles []models.Vehicle, records []models.MaintenanceRecord) []models.VehiclePerformance {
	type tally struct {
		cost  float64
		count int
	}
	byVehicle := make(map[string]*tally)
	for _, r := range records {
		t, ok := byVehicle[r.VehicleID]
		if !ok {
			t = &tally{}
			byVehicle[r.VehicleID] = t
		}
		t.cost += safeCost(r.Cost)
		t.count++
	}

	results := make([]models.VehiclePerformance, 0, len(vehicles))
	for _, v := range vehicles {
		id := v.ID.Hex()
		totalCost := 0.0
		count := 0
		if t, ok := byVehicle[id]; ok {
			totalCost = t.cost
			count = t.count
		}
		costPerMile := 0.0
		if v.Odometer > 0 {
			costPerMile = round4(totalCost / float64(v.Odometer))
		}
		results = append(results, models.VehiclePerformance{
			VehicleID:   id,
			Name:        v.DisplayName(),
			CostPerMile: costPerMile,
			TotalCost:   totalCost,
			RecordCount: count,
			Status:      v.Status,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CostPerMile != results[j].CostPerMile {
			return results[i].CostPerMile < results[j].CostPerMile
		}
		return results[i].VehicleID < results[j].VehicleID
	})
	return results
}

package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// costByCategory sums sanitized maintenance cost per service type.
// Categories that only ever appear with zero or missing cost are left out
// of the breakdown. Rows are ordered by amount descending; equal amounts
// fall back to category name so recomputation is deterministic.
func costByCategory(records []models.MaintenanceRecord, totalCost float64) []models.CategoryCost {
	sums := make(map[models.MaintenanceType]float64)
	for _, r := range records {
		sums[r.ServiceType] += safeCost(r.Cost)
	}

	breakdown := make([]models.CategoryCost, 0, len(sums))
	for category, amount := range sums {
		if amount <= 0 {
			continue
		}
		pct := 0.0
		if totalCost > 0 {
			pct = math.Round(amount / totalCost * 100)
		}
		breakdown = append(breakdown, models.CategoryCost{
			Category:   category,
			Amount:     amount,
			Percentage: pct,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// costByMonth buckets sanitized records by calendar month. Buckets are
// ordered by the month itself, not the label, since "Jan 25" sorts before
// "Dec 24" as a string.
func costByMonth(records []models.MaintenanceRecord) []models.MonthlyTrend {
	type bucket struct {
		firstOfMonth time.Time
		cost         float64
		count        int
	}

	buckets := make(map[int]*bucket)
	for _, r := range records {
		key := r.ServiceDate.Year()*12 + int(r.ServiceDate.Month()) - 1
		b, ok := buckets[key]
		if !ok {
			b = &bucket{firstOfMonth: time.Date(r.ServiceDate.Year(), r.ServiceDate.Month(), 1, 0, 0, 0, 0, time.UTC)}
			buckets[key] = b
		}
		b.cost += safeCost(r.Cost)
		b.count++
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].firstOfMonth.Before(ordered[j].firstOfMonth)
	})

	trends := make([]models.MonthlyTrend, 0, len(ordered))
	for _, b := range ordered {
		trends = append(trends, models.MonthlyTrend{
			Month:       b.firstOfMonth.Format("Jan 06"),
			TotalCost:   b.cost,
			RecordCount: b.count,
		})
	}
	return trends
}

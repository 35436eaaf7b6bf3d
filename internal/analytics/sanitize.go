package analytics

import (
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

const minPlausibleYear = 1900

// plausibleDate reports whether a timestamp is a real, believable service
// date: set, and within [1900, currentYear+10]. The zero time also covers
// dates that failed to parse upstream, since decoding leaves the field at
// its zero value.
func plausibleDate(t time.Time, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	year := t.Year()
	return year >= minPlausibleYear && year <= now.Year()+10
}

// sanitizeByDate filters records down to those with a plausible service
// date and reports how many were dropped. It never fails: bad records are
// excluded so one corrupt row cannot skew or crash the aggregations that
// run over the remainder.
func sanitizeByDate(records []models.MaintenanceRecord, now time.Time) ([]models.MaintenanceRecord, int) {
	kept := make([]models.MaintenanceRecord, 0, len(records))
	for _, r := range records {
		if plausibleDate(r.ServiceDate, now) {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}

package analytics

import (
	"sort"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// rankIssues counts sanitized records per service type and ranks the
// types by occurrence. Records with an empty type are excluded rather
// than lumped into a catch-all. Equal counts order alphabetically by
// category so the ranking is total and stable across runs.
func rankIssues(records []models.MaintenanceRecord) []models.IssueCount {
	counts := make(map[models.MaintenanceType]int)
	for _, r := range records {
		if r.ServiceType == "" {
			continue
		}
		counts[r.ServiceType]++
	}

	ranked := make([]models.IssueCount, 0, len(counts))
	for category, count := range counts {
		ranked = append(ranked, models.IssueCount{Category: category, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	return ranked
}

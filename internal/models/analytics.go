package models

// CategoryCost is one row of the per-category cost breakdown.
type CategoryCost struct {
	Category   MaintenanceType `json:"category"`
	Amount     float64         `json:"amount"`
	Percentage float64         `json:"percentage"` // whole percent of total cost
}

// MonthlyTrend is one calendar-month bucket of maintenance activity.
type MonthlyTrend struct {
	Month       string  `json:"month"` // "Jan 06" style label
	TotalCost   float64 `json:"total_cost"`
	RecordCount int     `json:"record_count"`
}

// IssueCount is one row of the most-common-issues ranking.
type IssueCount struct {
	Category MaintenanceType `json:"category"`
	Count    int             `json:"count"`
}

// ScoreBreakdown exposes the components behind a reliability score so the
// dashboard can explain why a vehicle scored the way it did.
type ScoreBreakdown struct {
	StatusScore      float64 `json:"status_score"`
	MaintenanceScore float64 `json:"maintenance_score"`
	EmergencyPenalty float64 `json:"emergency_penalty"`
	AgePenalty       float64 `json:"age_penalty"`
	MileagePenalty   float64 `json:"mileage_penalty"`
	PreventiveBonus  float64 `json:"preventive_bonus"`
}

// VehicleReliability is one vehicle's composite health result.
type VehicleReliability struct {
	VehicleID     string         `json:"vehicle_id"`
	Name          string         `json:"name"`
	Score         float64        `json:"score"` // 0-100, one decimal
	DowntimeHours float64        `json:"downtime_hours"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
}

// VehiclePerformance is one vehicle's cost-efficiency result.
type VehiclePerformance struct {
	VehicleID   string        `json:"vehicle_id"`
	Name        string        `json:"name"`
	CostPerMile float64       `json:"cost_per_mile"` // four decimals
	TotalCost   float64       `json:"total_cost"`
	RecordCount int           `json:"record_count"`
	Status      VehicleStatus `json:"status"`
}

// AnalyticsSnapshot is the fully-derived analytics result for one point in
// time. It is recomputed from scratch on every data change and never
// persisted; slices are always non-nil so an empty fleet still serializes
// to a structurally complete document.
type AnalyticsSnapshot struct {
	FleetUtilization      float64              `json:"fleet_utilization"` // percent of vehicles in service
	TotalMaintenanceCost  float64              `json:"total_maintenance_cost"`
	AverageCostPerVehicle float64              `json:"average_cost_per_vehicle"`
	CostBreakdown         []CategoryCost       `json:"cost_breakdown"`
	MaintenanceTrends     []MonthlyTrend       `json:"maintenance_trends"`
	MostCommonIssues      []IssueCount         `json:"most_common_issues"`
	VehicleReliability    []VehicleReliability `json:"vehicle_reliability"`
	VehiclePerformance    []VehiclePerformance `json:"vehicle_performance"`
}

package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/analytics"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/metrics"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// AnalyticsHandler serves the derived fleet analytics. Every request
// recomputes the snapshot from a fresh read of the collections; this is
// the only computation path, so the JSON and CSV views can never drift
// apart.
type AnalyticsHandler struct {
	reader db.FleetReader
	engine *analytics.Engine
}

// NewAnalyticsHandler creates the analytics handler.
func NewAnalyticsHandler(reader db.FleetReader) *AnalyticsHandler {
	return &AnalyticsHandler{
		reader: reader,
		engine: analytics.NewEngine(),
	}
}

func (h *AnalyticsHandler) computeSnapshot(r *http.Request) (models.AnalyticsSnapshot, error) {
	start := time.Now()

	vehicles, err := h.reader.ListVehicles(r.Context())
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("list vehicles: %w", err)
	}
	records, err := h.reader.ListMaintenance(r.Context())
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("list maintenance: %w", err)
	}
	downtime, err := h.reader.ListDowntime(r.Context())
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("list downtime: %w", err)
	}

	snapshot, dropped := h.engine.ComputeWithStats(vehicles, records, downtime)

	metrics.SnapshotsComputedTotal.Inc()
	metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	metrics.RecordsDroppedTotal.Add(float64(dropped))
	return snapshot, nil
}

// GetAnalytics handles GET /api/analytics.
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := h.computeSnapshot(r)
	if err != nil {
		log.WithError(err).Error("analytics computation failed")
		http.Error(w, "Failed to compute analytics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// ExportAnalytics handles GET /api/analytics/export, rendering the same
// snapshot as CSV for spreadsheet users.
func (h *AnalyticsHandler) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := h.computeSnapshot(r)
	if err != nil {
		log.WithError(err).Error("analytics computation failed")
		http.Error(w, "Failed to compute analytics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fleet-analytics.csv"`)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"Fleet Utilization (%)", "Total Maintenance Cost", "Average Cost Per Vehicle"})
	cw.Write([]string{
		fmt.Sprintf("%.1f", snapshot.FleetUtilization),
		fmt.Sprintf("%.2f", snapshot.TotalMaintenanceCost),
		fmt.Sprintf("%.2f", snapshot.AverageCostPerVehicle),
	})

	cw.Write(nil)
	cw.Write([]string{"Category", "Amount", "Percentage"})
	for _, row := range snapshot.CostBreakdown {
		cw.Write([]string{string(row.Category), fmt.Sprintf("%.2f", row.Amount), fmt.Sprintf("%.0f", row.Percentage)})
	}

	cw.Write(nil)
	cw.Write([]string{"Month", "Total Cost", "Record Count"})
	for _, row := range snapshot.MaintenanceTrends {
		cw.Write([]string{row.Month, fmt.Sprintf("%.2f", row.TotalCost), fmt.Sprintf("%d", row.RecordCount)})
	}

	cw.Write(nil)
	cw.Write([]string{"Issue", "Count"})
	for _, row := range snapshot.MostCommonIssues {
		cw.Write([]string{string(row.Category), fmt.Sprintf("%d", row.Count)})
	}

	cw.Write(nil)
	cw.Write([]string{"Vehicle", "Reliability Score", "Downtime Hours"})
	for _, row := range snapshot.VehicleReliability {
		cw.Write([]string{row.Name, fmt.Sprintf("%.1f", row.Score), fmt.Sprintf("%.1f", row.DowntimeHours)})
	}

	cw.Write(nil)
	cw.Write([]string{"Vehicle", "Cost Per Mile", "Total Cost", "Record Count", "Status"})
	for _, row := range snapshot.VehiclePerformance {
		cw.Write([]string{
			row.Name,
			fmt.Sprintf("%.4f", row.CostPerMile),
			fmt.Sprintf("%.2f", row.TotalCost),
			fmt.Sprintf("%d", row.RecordCount),
			string(row.Status),
		})
	}
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

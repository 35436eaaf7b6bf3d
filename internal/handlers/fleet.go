package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ChangeNotifier is told about successful record writes so the analytics
// snapshot can be recomputed reactively. A nil notifier is allowed.
type ChangeNotifier interface {
	RecordsChanged(collection, action string)
}

// FleetHandler handles vehicle, maintenance and downtime CRUD requests.
// Business invariants are enforced here, at the write boundary; the
// analytics engine downstream assumes identifiers are present and only
// defends against dirty values (dates, costs) that slip past.
type FleetHandler struct {
	vehicles    db.VehicleCollection
	maintenance db.MaintenanceCollection
	downtime    db.DowntimeCollection
	notifier    ChangeNotifier
}

// NewFleetHandler creates the fleet CRUD handler.
func NewFleetHandler(vehicles db.VehicleCollection, maintenance db.MaintenanceCollection, downtime db.DowntimeCollection, notifier ChangeNotifier) *FleetHandler {
	return &FleetHandler{
		vehicles:    vehicles,
		maintenance: maintenance,
		downtime:    downtime,
		notifier:    notifier,
	}
}

func (h *FleetHandler) notify(collection, action string) {
	if h.notifier != nil {
		h.notifier.RecordsChanged(collection, action)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func decodeBody(r *http.Request, out interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// pathID extracts the trailing ID segment from e.g. /api/vehicles/<id>.
func pathID(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}

// Vehicles handles /api/vehicles (list, create).
func (h *FleetHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		vehicles, err := h.vehicles.ListVehicles(r.Context())
		if err != nil {
			http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, vehicles)
	case http.MethodPost:
		var vehicle models.Vehicle
		if err := decodeBody(r, &vehicle); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if vehicle.Status == "" {
			vehicle.Status = models.StatusInService
		}
		if !models.IsValidStatus(vehicle.Status) {
			http.Error(w, "Invalid vehicle status", http.StatusBadRequest)
			return
		}
		if vehicle.Odometer < 0 {
			http.Error(w, "Odometer must be non-negative", http.StatusBadRequest)
			return
		}
		id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
		if err != nil {
			http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
			return
		}
		h.notify("vehicles", "create")
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// VehicleByID handles /api/vehicles/{id} (get, update, delete).
func (h *FleetHandler) VehicleByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/vehicles")
	if id == "" {
		http.Error(w, "Vehicle ID required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		vehicle, err := h.vehicles.FindVehicleByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)
	case http.MethodPut:
		var vehicle models.Vehicle
		if err := decodeBody(r, &vehicle); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if !models.IsValidStatus(vehicle.Status) {
			http.Error(w, "Invalid vehicle status", http.StatusBadRequest)
			return
		}
		if vehicle.Odometer < 0 {
			http.Error(w, "Odometer must be non-negative", http.StatusBadRequest)
			return
		}
		if err := h.vehicles.UpdateVehicle(r.Context(), id, vehicle); err != nil {
			http.Error(w, "Failed to update vehicle", http.StatusNotFound)
			return
		}
		h.notify("vehicles", "update")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated"})
	case http.MethodDelete:
		if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete vehicle", http.StatusNotFound)
			return
		}
		h.notify("vehicles", "delete")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func validateMaintenance(record *models.MaintenanceRecord) (string, bool) {
	if record.VehicleID == "" {
		return "Vehicle ID is required", false
	}
	if !models.IsValidMaintenanceType(record.ServiceType) {
		return "Invalid service type", false
	}
	if record.Cost < 0 {
		return "Cost must be non-negative", false
	}
	return "", true
}

// Maintenance handles /api/maintenance (list, create) with an optional
// vehicle_id query filter on list.
func (h *FleetHandler) Maintenance(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var (
			records []models.MaintenanceRecord
			err     error
		)
		if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
			records, err = h.maintenance.ListMaintenanceByVehicle(r.Context(), vehicleID)
		} else {
			records, err = h.maintenance.ListMaintenance(r.Context())
		}
		if err != nil {
			http.Error(w, "Failed to list maintenance records", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var record models.MaintenanceRecord
		if err := decodeBody(r, &record); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if msg, ok := validateMaintenance(&record); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if record.ServiceDate.IsZero() {
			// Accepted, but the analytics sanitizer will exclude it.
			log.WithField("vehicle_id", record.VehicleID).Warn("maintenance record created without service date")
		}
		id, err := h.maintenance.InsertMaintenance(r.Context(), record)
		if err != nil {
			http.Error(w, "Failed to create maintenance record", http.StatusInternalServerError)
			return
		}
		h.notify("maintenance", "create")
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// MaintenanceByID handles /api/maintenance/{id} (get, update, delete).
func (h *FleetHandler) MaintenanceByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/maintenance")
	if id == "" {
		http.Error(w, "Maintenance ID required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, err := h.maintenance.FindMaintenanceByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Maintenance record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodPut:
		var record models.MaintenanceRecord
		if err := decodeBody(r, &record); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if msg, ok := validateMaintenance(&record); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if err := h.maintenance.UpdateMaintenance(r.Context(), id, record); err != nil {
			http.Error(w, "Failed to update maintenance record", http.StatusNotFound)
			return
		}
		h.notify("maintenance", "update")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Maintenance record updated"})
	case http.MethodDelete:
		if err := h.maintenance.DeleteMaintenance(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete maintenance record", http.StatusNotFound)
			return
		}
		h.notify("maintenance", "delete")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Maintenance record deleted"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func validateDowntime(record *models.DowntimeRecord) (string, bool) {
	if record.VehicleID == "" {
		return "Vehicle ID is required", false
	}
	if record.StartTime.IsZero() {
		return "Start time is required", false
	}
	if record.EndTime != nil && record.EndTime.Before(record.StartTime) {
		return "End time must not precede start time", false
	}
	return "", true
}

// Downtime handles /api/downtime (list, create) with an optional
// vehicle_id query filter on list.
func (h *FleetHandler) Downtime(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var (
			records []models.DowntimeRecord
			err     error
		)
		if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
			records, err = h.downtime.ListDowntimeByVehicle(r.Context(), vehicleID)
		} else {
			records, err = h.downtime.ListDowntime(r.Context())
		}
		if err != nil {
			http.Error(w, "Failed to list downtime records", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var record models.DowntimeRecord
		if err := decodeBody(r, &record); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if msg, ok := validateDowntime(&record); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		id, err := h.downtime.InsertDowntime(r.Context(), record)
		if err != nil {
			http.Error(w, "Failed to create downtime record", http.StatusInternalServerError)
			return
		}
		h.notify("downtime", "create")
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// DowntimeByID handles /api/downtime/{id} (get, update, delete).
func (h *FleetHandler) DowntimeByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/downtime")
	if id == "" {
		http.Error(w, "Downtime ID required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, err := h.downtime.FindDowntimeByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Downtime record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodPut:
		var record models.DowntimeRecord
		if err := decodeBody(r, &record); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if msg, ok := validateDowntime(&record); !ok {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if err := h.downtime.UpdateDowntime(r.Context(), id, record); err != nil {
			http.Error(w, "Failed to update downtime record", http.StatusNotFound)
			return
		}
		h.notify("downtime", "update")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Downtime record updated"})
	case http.MethodDelete:
		if err := h.downtime.DeleteDowntime(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete downtime record", http.StatusNotFound)
			return
		}
		h.notify("downtime", "delete")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Downtime record deleted"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

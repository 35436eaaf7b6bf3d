package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Vehicle mirrors the API's vehicle payload.
type Vehicle struct {
	Nickname string `json:"nickname,omitempty"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Odometer int    `json:"odometer"`
	Status   string `json:"status"`
}

// MaintenanceRecord mirrors the API's maintenance payload.
type MaintenanceRecord struct {
	VehicleID   string    `json:"vehicle_id"`
	ServiceType string    `json:"service_type"`
	ServiceDate time.Time `json:"service_date"`
	Cost        float64   `json:"cost"`
	Notes       string    `json:"notes"`
}

// DowntimeRecord mirrors the API's downtime payload.
type DowntimeRecord struct {
	VehicleID string     `json:"vehicle_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Reason    string     `json:"reason"`
}

var statuses = []string{"in_service", "in_service", "in_service", "needs_attention", "out_for_repair", "retired"}

var serviceTypes = []string{
	"oil_change", "oil_change", "oil_change",
	"tire_rotation", "tire_replacement", "brake_inspection",
	"dot_inspection", "preventive_maintenance",
	"emergency_repair", "engine_service", "transmission_service", "other",
}

var makes = map[string][]string{
	"Ford":          {"F-150", "F-650", "Transit"},
	"Chevrolet":     {"Silverado", "Express"},
	"Freightliner":  {"M2 106", "Cascadia"},
	"Mack":          {"Granite", "Anthem"},
	"International": {"MV", "HX"},
}

var authToken string

func authorizedRequest(method, url string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func postJSON(url string, payload interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := authorizedRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode, string(body))
	}
	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// login registers the demo admin (ignoring conflicts on reruns) and
// captures a token.
func login(apiURL string) error {
	register := map[string]string{
		"username":   "simulator",
		"email":      "simulator@example.com",
		"password":   "simulator-pass-123",
		"first_name": "Fleet",
		"last_name":  "Simulator",
		"role":       "admin",
	}
	if out, err := postJSON(apiURL+"/api/auth/register", register); err == nil {
		authToken, _ = out["token"].(string)
		return nil
	}

	out, err := postJSON(apiURL+"/api/auth/login", map[string]string{
		"username": register["username"],
		"password": register["password"],
	})
	if err != nil {
		return err
	}
	authToken, _ = out["token"].(string)
	return nil
}

func randomVehicle() Vehicle {
	makeNames := make([]string, 0, len(makes))
	for m := range makes {
		makeNames = append(makeNames, m)
	}
	mk := makeNames[rand.Intn(len(makeNames))]
	return Vehicle{
		Make:     mk,
		Model:    makes[mk][rand.Intn(len(makes[mk]))],
		Year:     2008 + rand.Intn(17),
		Odometer: rand.Intn(350000),
		Status:   statuses[rand.Intn(len(statuses))],
	}
}

// randomServiceDate usually produces a date in the last three years, but
// a slice of records get deliberately broken dates so the sanitizer has
// something to chew on.
func randomServiceDate(dirtyRate float64) time.Time {
	if rand.Float64() < dirtyRate {
		if rand.Intn(2) == 0 {
			return time.Time{}
		}
		return time.Date(9999, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	daysAgo := rand.Intn(3 * 365)
	return time.Now().UTC().AddDate(0, 0, -daysAgo)
}

func randomMaintenance(vehicleID string, dirtyRate float64) MaintenanceRecord {
	serviceType := serviceTypes[rand.Intn(len(serviceTypes))]
	cost := float64(rand.Intn(300000)) / 100
	if rand.Float64() < dirtyRate {
		cost = 0 // invoice never arrived
	}
	notes := ""
	if serviceType == "emergency_repair" || rand.Float64() < 0.05 {
		notes = "Emergency roadside callout"
	}
	return MaintenanceRecord{
		VehicleID:   vehicleID,
		ServiceType: serviceType,
		ServiceDate: randomServiceDate(dirtyRate),
		Cost:        cost,
		Notes:       notes,
	}
}

func randomDowntime(vehicleID string) DowntimeRecord {
	start := time.Now().UTC().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)
	record := DowntimeRecord{
		VehicleID: vehicleID,
		StartTime: start,
		Reason:    "awaiting parts",
	}
	// Most downtime is closed; leave some ongoing.
	if rand.Float64() < 0.8 {
		end := start.Add(time.Duration(1+rand.Intn(72)) * time.Hour)
		record.EndTime = &end
	}
	return record
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	vehicleCount := envInt("VEHICLE_COUNT", 8)
	dirtyRate := envFloat("DIRTY_RATE", 0.1)

	if err := login(apiURL); err != nil {
		log.Fatalf("failed to authenticate: %v", err)
	}
	log.WithField("api", apiURL).Info("seeding fleet data")

	for i := 0; i < vehicleCount; i++ {
		out, err := postJSON(apiURL+"/api/vehicles", randomVehicle())
		if err != nil {
			log.WithError(err).Error("failed to create vehicle")
			continue
		}
		vehicleID, _ := out["id"].(string)

		recordCount := 5 + rand.Intn(20)
		for j := 0; j < recordCount; j++ {
			if _, err := postJSON(apiURL+"/api/maintenance", randomMaintenance(vehicleID, dirtyRate)); err != nil {
				log.WithError(err).Warn("failed to create maintenance record")
			}
		}

		downtimeCount := rand.Intn(4)
		for j := 0; j < downtimeCount; j++ {
			if _, err := postJSON(apiURL+"/api/downtime", randomDowntime(vehicleID)); err != nil {
				log.WithError(err).Warn("failed to create downtime record")
			}
		}

		log.WithFields(log.Fields{
			"vehicle_id":  vehicleID,
			"maintenance": recordCount,
			"downtime":    downtimeCount,
		}).Info("seeded vehicle")
	}

	resp, err := authorizedRequest(http.MethodGet, apiURL+"/api/analytics", nil)
	if err != nil {
		log.Fatalf("failed to fetch analytics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.WithField("bytes", len(body)).Info("analytics snapshot fetched")
	fmt.Println(string(body))
}

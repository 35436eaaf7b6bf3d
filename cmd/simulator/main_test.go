package main

import (
	"testing"
	"time"
)

func TestRandomVehicle(t *testing.T) {
	v := randomVehicle()

	if v.Make == "" || v.Model == "" {
		t.Errorf("expected make and model to be set, got %q %q", v.Make, v.Model)
	}
	if v.Year < 2008 || v.Year > 2024 {
		t.Errorf("year out of expected range: %d", v.Year)
	}
	if v.Odometer < 0 || v.Odometer >= 350000 {
		t.Errorf("odometer out of expected range: %d", v.Odometer)
	}
	valid := map[string]bool{"in_service": true, "needs_attention": true, "out_for_repair": true, "retired": true}
	if !valid[v.Status] {
		t.Errorf("invalid status: %s", v.Status)
	}
}

func TestRandomServiceDate_CleanRate(t *testing.T) {
	// dirtyRate 0 must always yield a plausible recent date.
	for i := 0; i < 100; i++ {
		d := randomServiceDate(0)
		if d.IsZero() {
			t.Fatal("clean date generator produced a zero date")
		}
		if d.After(time.Now().Add(time.Hour)) {
			t.Fatalf("clean date generator produced a future date: %v", d)
		}
	}
}

func TestRandomServiceDate_DirtyRate(t *testing.T) {
	// dirtyRate 1 must always yield a broken date.
	for i := 0; i < 100; i++ {
		d := randomServiceDate(1)
		if !d.IsZero() && d.Year() != 9999 {
			t.Fatalf("dirty date generator produced a plausible date: %v", d)
		}
	}
}

func TestRandomMaintenance(t *testing.T) {
	rec := randomMaintenance("vehicle-1", 0)

	if rec.VehicleID != "vehicle-1" {
		t.Errorf("expected vehicle ID 'vehicle-1', got %s", rec.VehicleID)
	}
	if rec.ServiceType == "" {
		t.Error("expected service type to be set")
	}
	if rec.Cost < 0 {
		t.Errorf("cost must be non-negative, got %f", rec.Cost)
	}
}

func TestRandomDowntime(t *testing.T) {
	rec := randomDowntime("vehicle-1")

	if rec.VehicleID != "vehicle-1" {
		t.Errorf("expected vehicle ID 'vehicle-1', got %s", rec.VehicleID)
	}
	if rec.StartTime.IsZero() {
		t.Error("expected start time to be set")
	}
	if rec.EndTime != nil && rec.EndTime.Before(rec.StartTime) {
		t.Error("end time must not precede start time")
	}
}

package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/handlers"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/watch"
)

// newRouter assembles the full HTTP surface: open auth endpoints behind a
// rate limit, permission-gated CRUD and analytics routes, and the
// unauthenticated health and metrics endpoints.
func newRouter(authHandler *handlers.AuthHandler, fleetHandler *handlers.FleetHandler, analyticsHandler *handlers.AnalyticsHandler, authMiddleware *middleware.AuthMiddleware) http.Handler {
	rateLimiter := middleware.NewRateLimitMiddleware()
	openLimit := rateLimiter.RateLimit(20, 60)

	vehiclePerms := middleware.RoutePermissions{
		http.MethodGet:    "view_vehicles",
		http.MethodPost:   "create_vehicle",
		http.MethodPut:    "update_vehicle",
		http.MethodDelete: "delete_vehicle",
	}
	maintenancePerms := middleware.RoutePermissions{
		http.MethodGet:    "view_maintenance",
		http.MethodPost:   "create_maintenance",
		http.MethodPut:    "update_maintenance",
		http.MethodDelete: "delete_maintenance",
	}
	downtimePerms := middleware.RoutePermissions{
		http.MethodGet:    "view_downtime",
		http.MethodPost:   "create_downtime",
		http.MethodPut:    "update_downtime",
		http.MethodDelete: "delete_downtime",
	}
	gate := authMiddleware.RequirePermissions

	mux := http.NewServeMux()
	mux.Handle("/api/auth/login", openLimit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("/api/auth/register", openLimit(http.HandlerFunc(authHandler.Register)))
	mux.HandleFunc("/api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("/api/auth/password", authHandler.ChangePassword)
	mux.Handle("/api/auth/users", authMiddleware.RequirePermission("manage_users")(http.HandlerFunc(authHandler.Users)))

	mux.Handle("/api/vehicles", gate(vehiclePerms)(http.HandlerFunc(fleetHandler.Vehicles)))
	mux.Handle("/api/vehicles/", gate(vehiclePerms)(http.HandlerFunc(fleetHandler.VehicleByID)))
	mux.Handle("/api/maintenance", gate(maintenancePerms)(http.HandlerFunc(fleetHandler.Maintenance)))
	mux.Handle("/api/maintenance/", gate(maintenancePerms)(http.HandlerFunc(fleetHandler.MaintenanceByID)))
	mux.Handle("/api/downtime", gate(downtimePerms)(http.HandlerFunc(fleetHandler.Downtime)))
	mux.Handle("/api/downtime/", gate(downtimePerms)(http.HandlerFunc(fleetHandler.DowntimeByID)))

	mux.Handle("/api/analytics", authMiddleware.RequirePermission("view_analytics")(http.HandlerFunc(analyticsHandler.GetAnalytics)))
	mux.Handle("/api/analytics/export", authMiddleware.RequirePermission("view_analytics")(http.HandlerFunc(analyticsHandler.ExportAnalytics)))

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(authMiddleware.Authenticate(mux))
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	database := db.Database(client)
	store := db.NewFleetStore(database)
	userCollection := &db.MongoUserCollection{Collection: database.Collection("users")}

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Optional reactive recompute path: with a broker configured, record
	// writes trigger a fresh snapshot published to subscribers.
	var notifier handlers.ChangeNotifier
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		mqttClient, err := watch.Connect(broker, "fleet-maintenance-api")
		if err != nil {
			log.Fatalf("Failed to connect to MQTT broker: %v", err)
		}
		notifier = watch.NewPublisher(mqttClient)

		watcher := watch.NewWatcher(mqttClient, store)
		if err := watcher.Start(); err != nil {
			log.Fatalf("Failed to start analytics watcher: %v", err)
		}
		defer watcher.Stop()
	}

	authHandler := handlers.NewAuthHandler(authService, userCollection)
	fleetHandler := handlers.NewFleetHandler(store.Vehicles, store.Maintenance, store.Downtime, notifier)
	analyticsHandler := handlers.NewAnalyticsHandler(store)

	handler := newRouter(authHandler, fleetHandler, analyticsHandler, authMiddleware)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

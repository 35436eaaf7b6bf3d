package db

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestUserCollection_NilCollection(t *testing.T) {
	coll := &MongoUserCollection{Collection: nil}
	ctx := context.Background()

	if err := coll.InsertUser(ctx, models.User{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := coll.FindUserByUsername(ctx, "anyone"); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := coll.ListUsers(ctx); err == nil {
		t.Error("expected error when collection is nil")
	}
	if err := coll.UpdateLastLogin(ctx, "65a000000000000000000001"); err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestUserCollection_InvalidID(t *testing.T) {
	coll := &MongoUserCollection{Collection: nil}
	ctx := context.Background()

	if _, err := coll.FindUserByID(ctx, "not-a-hex-id"); err == nil {
		t.Error("expected error for malformed object ID")
	}
	if err := coll.UpdateUser(ctx, "not-a-hex-id", models.User{}); err == nil {
		t.Error("expected error for malformed object ID")
	}
	if err := coll.DeleteUser(ctx, "not-a-hex-id"); err == nil {
		t.Error("expected error for malformed object ID")
	}
}

// Integration test (requires running MongoDB)
func TestUserCollection_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "mongodb://bad:uri" {
		t.Skip("MONGO_URI not set or invalid, skipping integration test")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
		return
	}
	coll := &MongoUserCollection{Collection: Database(client).Collection("users")}

	user := models.User{
		Username:     "integration-mechanic",
		Email:        "integration-mechanic@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         models.RoleMechanic,
	}
	if err := coll.InsertUser(ctx, user); err != nil {
		t.Fatalf("expected insert to succeed, got error: %v", err)
	}

	found, err := coll.FindUserByUsername(ctx, "integration-mechanic")
	if err != nil {
		t.Fatalf("expected find to succeed, got error: %v", err)
	}
	if !found.IsActive {
		t.Error("expected inserted account to start active")
	}

	if err := coll.UpdateLastLogin(ctx, found.ID.Hex()); err != nil {
		t.Errorf("expected last-login update to succeed, got error: %v", err)
	}

	if err := coll.DeleteUser(ctx, found.ID.Hex()); err != nil {
		t.Errorf("expected delete to succeed, got error: %v", err)
	}
	if err := coll.DeleteUser(ctx, found.ID.Hex()); err == nil {
		t.Error("expected error deleting an already-deleted account")
	}
}

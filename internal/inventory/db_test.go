package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
)

func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return client
}

func newTestService(t *testing.T, threshold float64) (Service, *db.Client) {
	t.Helper()

	client := newTestClient(t)
	svc, err := NewService(NewRepository(client.DB()), client, threshold)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, client
}

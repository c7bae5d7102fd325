package testutil

import (
	"context"
	"testing"
	"time"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestPostgres starts a disposable Postgres container and returns a gorm
// handle to it. The container is terminated via t.Cleanup. Tests are skipped
// when no container runtime is available.
func SetupTestPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("tsh_test"),
		tcpostgres.WithUsername("tsh"),
		tcpostgres.WithPassword("tsh"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = ctr.Terminate(context.Background())
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	var db *gorm.DB
	deadline := time.Now().Add(30 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("open gorm: %v", err)
		}
		time.Sleep(time.Second)
	}

	return db
}

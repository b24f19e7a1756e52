package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	qt "github.com/frankban/quicktest"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Http:    &config.HTTPConfig{Port: "0", CORSOrigins: []string{"*"}, MaxBodyBytes: 1 << 20},
		Storage: &config.StorageCfg{Driver: config.DriverMemory},
		Kafka:   &config.KafkaCfg{},
		Auth:    &config.AuthCfg{UserID: "1", UserName: "John Doe", UserEmail: "john.doe@example.com"},
	}
}

func testLogger() logger.Logger {
	return logger.NewSlogLoggerWithWriter(io.Discard, slog.LevelError)
}

func TestNewAppMemory(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	application, err := NewApp(ctx, memoryConfig(), testLogger())
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { _ = application.Close(ctx) })

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
}

func TestNewAppUnknownDriver(t *testing.T) {
	c := qt.New(t)

	cfg := memoryConfig()
	cfg.Storage.Driver = "sqlite"

	_, err := NewApp(context.Background(), cfg, testLogger())
	c.Assert(err, qt.ErrorIs, e.ErrUnknownStorageDriver)
}

func TestSeed(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	cfg := memoryConfig()
	application, err := NewApp(ctx, cfg, testLogger())
	c.Assert(err, qt.IsNil)

	created, err := Seed(ctx, application.ProductUC(), Actor(cfg.Auth), 15)
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.HasLen, 15)
	c.Assert(created[0].CreatedBy, qt.Equals, "John Doe")

	page, err := application.ProductUC().ListProducts(ctx, usecase.NewListProductsReq(1, 10))
	c.Assert(err, qt.IsNil)
	c.Assert(page, qt.HasLen, 10)
}

func TestMigrateRequiresPostgres(t *testing.T) {
	c := qt.New(t)

	err := Migrate(context.Background(), memoryConfig(), testLogger(), "up")
	c.Assert(err, qt.ErrorIs, e.ErrUnknownStorageDriver)
}

func TestSeedStorageRejectsMemoryDriver(t *testing.T) {
	c := qt.New(t)

	n, err := SeedStorage(context.Background(), memoryConfig(), testLogger(), 15)
	c.Assert(err, qt.ErrorIs, e.ErrEphemeralStorage)
	c.Assert(n, qt.Equals, 0)
}

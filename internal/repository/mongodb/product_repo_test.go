package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/repository"
	"github.com/DRSN-tech/catalog-service/internal/repository/mongodb/converter"
	"github.com/DRSN-tech/catalog-service/internal/repository/repotest"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/clients"
	qt "github.com/frankban/quicktest"
)

// Для запуска нужен MongoDB, например TEST_MONGO_URI=mongodb://localhost:27017
func TestProductRepo_Behaviour(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI is not set")
	}

	repotest.Run(qt.New(t), func(c *qt.C) usecase.ProductRepository {
		return newTestRepo(c, uri)
	})
}

// newTestRepo использует отдельную базу и удаляет её после теста.
func newTestRepo(c *qt.C, uri string) *ProductRepo {
	ctx := context.Background()

	client, err := clients.NewMongoClient(ctx, &cfg.MongoCfg{
		URI:        uri,
		Database:   "catalog_test_" + repository.NewID(),
		Collection: "products",
		Timeout:    10 * time.Second,
	})
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() {
		_ = client.Collection().Database().Drop(ctx)
		_ = client.Close(ctx)
	})
	c.Assert(client.Ping(ctx), qt.IsNil)

	repo := NewProductRepo(client.Collection(), converter.NewProductConverter())
	c.Assert(repo.EnsureIndexes(ctx), qt.IsNil)

	return repo
}

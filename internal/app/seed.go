package app

import (
	"context"
	"fmt"

	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/jimlawless/whereami"
)

var seedCategories = []string{"Electronics", "Home", "Books", "Sports", "Toys"}

// Seed создаёт count демонстрационных товаров через сервисный слой.
func Seed(ctx context.Context, productUC usecase.ProductUC, actor domain.Actor, count int) ([]domain.Product, error) {
	created := make([]domain.Product, 0, count)
	for i := 1; i <= count; i++ {
		req := usecase.NewCreateProductReq(
			fmt.Sprintf("Product %d", i),
			fmt.Sprintf("Description of product %d", i),
			seedCategories[(i-1)%len(seedCategories)],
		)

		product, err := productUC.CreateProduct(ctx, req, actor)
		if err != nil {
			return created, e.Wrap(whereami.WhereAmI(), err)
		}
		created = append(created, *product)
	}

	return created, nil
}

// SeedStorage подключается к настроенному хранилищу и создаёт count товаров.
// Хранилище в памяти процесса отклоняется: созданные товары пропали бы при выходе.
func SeedStorage(ctx context.Context, cfg *config.Config, log logger.Logger, count int) (int, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		return 0, e.Wrap("seed requires STORAGE_DRIVER=postgres, mongo or redis", e.ErrEphemeralStorage)
	}

	application, err := NewApp(ctx, cfg, log)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer application.Close(context.Background())

	created, err := Seed(ctx, application.ProductUC(), Actor(cfg.Auth), count)
	return len(created), err
}

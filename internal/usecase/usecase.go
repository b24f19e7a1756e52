package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type ProductUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductReq, actor domain.Actor) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq, actor domain.Actor) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string, actor domain.Actor) (*domain.Product, error)
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// ProductRepository — хранилище товаров. Все изменения выполняются одной атомарной
// операцией «найти активную запись и изменить», при отсутствии активной записи возвращается e.ErrNotFound.
type ProductRepository interface {
	// IsValidID проверяет формат идентификатора без обращения к хранилищу.
	IsValidID(id string) bool
	List(ctx context.Context, offset, limit int) ([]domain.Product, error)
	GetActive(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateActive(ctx context.Context, id string, patch domain.ProductPatch, stamp domain.AuditStamp) (*domain.Product, error)
	SoftDeleteActive(ctx context.Context, id string, stamp domain.AuditStamp) (*domain.Product, error)
}

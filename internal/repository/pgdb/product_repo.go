package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, name, description, category, created_by, created_at, updated_by, updated_at, deleted_at, deleted_by`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) IsValidID(id string) bool {
	return repository.IsValidID(id)
}

// List возвращает страницу активных товаров. seq сохраняет порядок вставки при равных created_at.
func (p *ProductRepo) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, seq ASC
		OFFSET $1
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.ProductModel])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) GetActive(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`

	return p.queryOne(ctx, query, id)
}

// Create сохраняет новый товар и назначает ему идентификатор.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	model.ID = repository.NewID()

	query := `
		INSERT INTO products (id, name, description, category, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	return p.queryOne(ctx, query,
		model.ID, model.Name, model.Description, model.Category,
		model.CreatedBy, model.CreatedAt, model.UpdatedBy, model.UpdatedAt,
	)
}

// UpdateActive изменяет переданные поля одним условным UPDATE.
// updated_at сдвигается минимум на миллисекунду относительно прежнего значения.
func (p *ProductRepo) UpdateActive(ctx context.Context, id string, patch domain.ProductPatch, stamp domain.AuditStamp) (*domain.Product, error) {
	query := `
		UPDATE products SET
			name        = COALESCE($2::text, name),
			description = COALESCE($3::text, description),
			category    = COALESCE($4::text, category),
			updated_by  = $5,
			updated_at  = GREATEST($6::timestamptz, updated_at + INTERVAL '1 millisecond')
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + productColumns

	return p.queryOne(ctx, query, id, patch.Name, patch.Description, patch.Category, stamp.By, stamp.At)
}

// SoftDeleteActive помечает активный товар удалённым. deleted_at совпадает с updated_at.
func (p *ProductRepo) SoftDeleteActive(ctx context.Context, id string, stamp domain.AuditStamp) (*domain.Product, error) {
	query := `
		UPDATE products SET
			updated_by = $2,
			deleted_by = $2,
			updated_at = GREATEST($3::timestamptz, updated_at + INTERVAL '1 millisecond'),
			deleted_at = GREATEST($3::timestamptz, updated_at + INTERVAL '1 millisecond')
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + productColumns

	return p.queryOne(ctx, query, id, stamp.By, stamp.At)
}

func (p *ProductRepo) queryOne(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.ProductModel])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

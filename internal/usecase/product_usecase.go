package usecase

import (
	"context"
	"math"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/google/uuid"
)

// ProductUseCase реализует бизнес-правила каталога товаров: пагинацию,
// мягкое удаление, проверку идентификаторов и аудит изменений.
type ProductUseCase struct {
	productRepo ProductRepository
	publisher   EventPublisher
	logger      logger.Logger
	clock       func() time.Time
}

type Option func(*ProductUseCase)

// WithClock подменяет источник времени.
func WithClock(clock func() time.Time) Option {
	return func(p *ProductUseCase) {
		p.clock = clock
	}
}

func NewProductUC(
	productRepo ProductRepository,
	publisher EventPublisher,
	logger logger.Logger,
	opts ...Option,
) *ProductUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}

	p := &ProductUseCase{
		productRepo: productRepo,
		publisher:   publisher,
		logger:      logger,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ListProducts возвращает страницу активных товаров, новые первыми.
func (p *ProductUseCase) ListProducts(ctx context.Context, req *ListProductsReq) ([]domain.Product, error) {
	const op = "ProductUseCase.ListProducts"

	if req.Page < 1 || req.Limit < 1 {
		return nil, e.Wrap(op, e.ErrInvalidPagination)
	}

	// смещение не помещается в int, таких записей заведомо нет
	if req.Page-1 > math.MaxInt/req.Limit {
		return []domain.Product{}, nil
	}
	offset := (req.Page - 1) * req.Limit

	products, err := p.productRepo.List(ctx, offset, req.Limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// GetProduct возвращает активный товар по идентификатору.
func (p *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	if err := p.validateID(id); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.productRepo.GetActive(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// CreateProduct создаёт товар от имени actor. Идентификатор назначает хранилище.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq, actor domain.Actor) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := validateStruct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	stamp := p.stamp(actor)
	created, err := p.productRepo.Create(ctx, domain.NewProduct(req.toFields(), stamp))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.publish(ctx, domain.ProductCreated, created, stamp)

	return created, nil
}

// UpdateProduct изменяет переданные поля активного товара.
// Удалённые товары не изменяются и не восстанавливаются.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq, actor domain.Actor) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if err := p.validateID(req.ID); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := validateStruct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	stamp := p.stamp(actor)
	updated, err := p.productRepo.UpdateActive(ctx, req.ID, req.toPatch(), stamp)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.publish(ctx, domain.ProductUpdated, updated, stamp)

	return updated, nil
}

// DeleteProduct помечает активный товар удалённым. Повторное удаление возвращает e.ErrNotFound.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id string, actor domain.Actor) (*domain.Product, error) {
	const op = "ProductUseCase.DeleteProduct"

	if err := p.validateID(id); err != nil {
		return nil, e.Wrap(op, err)
	}

	stamp := p.stamp(actor)
	deleted, err := p.productRepo.SoftDeleteActive(ctx, id, stamp)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.publish(ctx, domain.ProductDeleted, deleted, stamp)

	return deleted, nil
}

func (p *ProductUseCase) validateID(id string) error {
	if !p.productRepo.IsValidID(id) {
		return e.ErrInvalidID
	}

	return nil
}

// stamp фиксирует автора и момент изменения. Время округляется до миллисекунд,
// чтобы значение одинаково сохранялось во всех хранилищах.
func (p *ProductUseCase) stamp(actor domain.Actor) domain.AuditStamp {
	by := actor.Name
	if by == "" {
		by = actor.ID
	}

	return domain.AuditStamp{
		By: by,
		At: p.clock().UTC().Truncate(time.Millisecond),
	}
}

// publish отправляет событие об изменении. Ошибка публикации не отменяет изменение.
// Время события совпадает с сохранённым updatedAt, который может быть позже stamp.At.
func (p *ProductUseCase) publish(ctx context.Context, eventType domain.ProductEventType, product *domain.Product, stamp domain.AuditStamp) {
	event := domain.NewProductEvent(uuid.NewString(), eventType, product, stamp.By, product.UpdatedAt)
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.logger.Warnf("failed to publish %s event for product %s: %v", eventType, product.ID, err)
	}
}

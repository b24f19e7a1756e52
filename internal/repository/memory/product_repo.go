package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository"
	"github.com/DRSN-tech/catalog-service/pkg/e"
)

// ProductRepo хранит товары в памяти процесса. Используется для локального запуска и тестов.
type ProductRepo struct {
	mu       sync.RWMutex
	products []*domain.Product // в порядке вставки
	byID     map[string]*domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		byID: make(map[string]*domain.Product),
	}
}

func (r *ProductRepo) IsValidID(id string) bool {
	return repository.IsValidID(id)
}

// List возвращает активные товары по убыванию createdAt; при равенстве в порядке вставки.
func (r *ProductRepo) List(_ context.Context, offset, limit int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	if offset >= len(active) {
		return []domain.Product{}, nil
	}
	end := len(active)
	if limit < end-offset {
		end = offset + limit
	}

	result := make([]domain.Product, 0, end-offset)
	for _, p := range active[offset:end] {
		result = append(result, *clone(p))
	}

	return result, nil
}

func (r *ProductRepo) GetActive(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || !p.IsActive() {
		return nil, e.ErrNotFound
	}

	return clone(p), nil
}

func (r *ProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	stored := clone(product)
	stored.ID = repository.NewID()

	r.mu.Lock()
	r.products = append(r.products, stored)
	r.byID[stored.ID] = stored
	r.mu.Unlock()

	return clone(stored), nil
}

// UpdateActive проверяет активность и изменяет запись под одной блокировкой.
func (r *ProductRepo) UpdateActive(_ context.Context, id string, patch domain.ProductPatch, stamp domain.AuditStamp) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || !p.IsActive() {
		return nil, e.ErrNotFound
	}

	patch.Apply(p)
	p.UpdatedBy = stamp.By
	p.UpdatedAt = repository.NextUpdatedAt(p.UpdatedAt, stamp.At)

	return clone(p), nil
}

func (r *ProductRepo) SoftDeleteActive(_ context.Context, id string, stamp domain.AuditStamp) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || !p.IsActive() {
		return nil, e.ErrNotFound
	}

	at := repository.NextUpdatedAt(p.UpdatedAt, stamp.At)
	by := stamp.By
	p.UpdatedBy = by
	p.UpdatedAt = at
	p.DeletedAt = &at
	p.DeletedBy = &by

	return clone(p), nil
}

// Raw возвращает запись вместе с удалёнными, для проверок в тестах.
func (r *ProductRepo) Raw(id string) (*domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, false
	}

	return clone(p), true
}

func clone(p *domain.Product) *domain.Product {
	c := *p
	if p.DeletedAt != nil {
		at := *p.DeletedAt
		c.DeletedAt = &at
	}
	if p.DeletedBy != nil {
		by := *p.DeletedBy
		c.DeletedBy = &by
	}

	return &c
}

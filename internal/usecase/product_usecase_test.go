package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository/memory"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

var actor = domain.Actor{ID: "1", Name: "John Doe", Email: "john.doe@example.com"}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.ProductEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event *domain.ProductEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingPublisher) types() []domain.ProductEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]domain.ProductEventType, 0, len(r.events))
	for _, ev := range r.events {
		types = append(types, ev.Type)
	}
	return types
}

// failingRepo отвечает ошибкой на любой запрос к хранилищу.
type failingRepo struct {
	*memory.ProductRepo
	err   error
	calls int
}

func (f *failingRepo) List(context.Context, int, int) ([]domain.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingRepo) GetActive(context.Context, string) (*domain.Product, error) {
	f.calls++
	return nil, f.err
}

type fixture struct {
	repo      *memory.ProductRepo
	publisher *recordingPublisher
	uc        *usecase.ProductUseCase
	logs      *bytes.Buffer
}

func newFixture(opts ...usecase.Option) *fixture {
	var buf bytes.Buffer
	repo := memory.NewProductRepo()
	pub := &recordingPublisher{}
	log := logger.NewSlogLoggerWithWriter(&buf, slog.LevelDebug)

	return &fixture{
		repo:      repo,
		publisher: pub,
		uc:        usecase.NewProductUC(repo, pub, log, opts...),
		logs:      &buf,
	}
}

// seedProducts создаёт count товаров; i-й создан на i секунд раньше «сейчас».
func seedProducts(c *qt.C, repo *memory.ProductRepo, count int) []*domain.Product {
	now := time.Now().UTC().Truncate(time.Millisecond)
	products := make([]*domain.Product, 0, count)
	for i := 0; i < count; i++ {
		at := now.Add(-time.Duration(i) * time.Second)
		p, err := repo.Create(context.Background(), domain.NewProduct(
			domain.ProductFields{
				Name:        "Test " + string(rune('A'+i)),
				Description: "Desc",
				Category:    "Cat",
			},
			domain.AuditStamp{By: "System", At: at},
		))
		c.Assert(err, qt.IsNil)
		products = append(products, p)
	}
	return products
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func ptrIDs(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestListProducts_DefaultPage(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 20)

	got, err := f.uc.ListProducts(context.Background(), usecase.NewListProductsReq(usecase.DefaultPage, usecase.DefaultLimit))
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 10)
	c.Assert(ids(got), qt.DeepEquals, ptrIDs(seeded[:10]))
}

func TestListProducts_Pagination(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 20)

	got, err := f.uc.ListProducts(context.Background(), usecase.NewListProductsReq(2, 5))
	c.Assert(err, qt.IsNil)
	c.Assert(ids(got), qt.DeepEquals, ptrIDs(seeded[5:10]))
}

func TestListProducts_OrderedNewestFirst(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seedProducts(c, f.repo, 5)

	got, err := f.uc.ListProducts(context.Background(), usecase.NewListProductsReq(1, 10))
	c.Assert(err, qt.IsNil)
	for i := 1; i < len(got); i++ {
		c.Assert(got[i-1].CreatedAt.After(got[i].CreatedAt), qt.IsTrue, qt.Commentf("index %d", i))
	}
}

func TestListProducts_Empty(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	got, err := f.uc.ListProducts(context.Background(), usecase.NewListProductsReq(1, 10))
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.IsNotNil)
	c.Assert(got, qt.HasLen, 0)

	seedProducts(c, f.repo, 3)
	got, err = f.uc.ListProducts(context.Background(), usecase.NewListProductsReq(4, 1))
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 0)
}

func TestListProducts_HugePageDoesNotOverflow(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seedProducts(c, f.repo, 3)

	got, err := f.uc.ListProducts(context.Background(), usecase.NewListProductsReq(int(^uint(0)>>1), 1000))
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.HasLen, 0)
}

func TestListProducts_SkipsDeleted(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 5)

	_, err := f.uc.DeleteProduct(context.Background(), seeded[0].ID, actor)
	c.Assert(err, qt.IsNil)

	got, err := f.uc.ListProducts(context.Background(), usecase.NewListProductsReq(1, 10))
	c.Assert(err, qt.IsNil)
	c.Assert(ids(got), qt.DeepEquals, ptrIDs(seeded[1:]))
}

func TestListProducts_InvalidArguments(t *testing.T) {
	c := qt.New(t)

	for _, tc := range []struct {
		name        string
		page, limit int
	}{
		{"negative page", -1, 10},
		{"zero page", 0, 10},
		{"negative limit", 1, -1},
		{"zero limit", 1, 0},
		{"both invalid", 0, -1},
	} {
		c.Run(tc.name, func(c *qt.C) {
			repo := &failingRepo{ProductRepo: memory.NewProductRepo(), err: errors.New("must not be called")}
			uc := usecase.NewProductUC(repo, nil, logger.NewSlogLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo))

			_, err := uc.ListProducts(context.Background(), usecase.NewListProductsReq(tc.page, tc.limit))
			c.Assert(err, qt.ErrorIs, e.ErrInvalidArgument)
			c.Assert(err, qt.ErrorIs, e.ErrInvalidPagination)
			c.Assert(repo.calls, qt.Equals, 0)
		})
	}
}

func TestGetProduct(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 1)[0]

	got, err := f.uc.GetProduct(context.Background(), seeded.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, seeded)
}

func TestGetProduct_NotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	_, err := f.uc.GetProduct(context.Background(), "65a1b2c3d4e5f60718293a4b")
	c.Assert(err, qt.ErrorIs, e.ErrNotFound)
	c.Assert(errors.Is(err, e.ErrInvalidArgument), qt.IsFalse)
}

func TestGetProduct_InvalidID(t *testing.T) {
	c := qt.New(t)
	repo := &failingRepo{ProductRepo: memory.NewProductRepo(), err: errors.New("must not be called")}
	uc := usecase.NewProductUC(repo, nil, logger.NewSlogLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo))

	_, err := uc.GetProduct(context.Background(), "invalid-id")
	c.Assert(err, qt.ErrorIs, e.ErrInvalidID)
	c.Assert(errors.Is(err, e.ErrNotFound), qt.IsFalse)
	c.Assert(repo.calls, qt.Equals, 0)
}

func TestGetProduct_StorageErrorPropagates(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("connection refused")
	repo := &failingRepo{ProductRepo: memory.NewProductRepo(), err: boom}
	uc := usecase.NewProductUC(repo, nil, logger.NewSlogLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo))

	_, err := uc.GetProduct(context.Background(), "65a1b2c3d4e5f60718293a4b")
	c.Assert(err, qt.ErrorIs, boom)
}

func TestCreateProduct_StampsAudit(t *testing.T) {
	c := qt.New(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	f := newFixture(usecase.WithClock(func() time.Time { return now }))

	created, err := f.uc.CreateProduct(context.Background(), usecase.NewCreateProductReq("New Product", "Desc", "Cat"), actor)
	c.Assert(err, qt.IsNil)
	c.Assert(f.repo.IsValidID(created.ID), qt.IsTrue)
	c.Assert(created.Name, qt.Equals, "New Product")
	c.Assert(created.Description, qt.Equals, "Desc")
	c.Assert(created.Category, qt.Equals, "Cat")
	c.Assert(created.CreatedBy, qt.Equals, "John Doe")
	c.Assert(created.UpdatedBy, qt.Equals, "John Doe")
	c.Assert(created.CreatedAt.Equal(now.Truncate(time.Millisecond)), qt.IsTrue)
	c.Assert(created.UpdatedAt.Equal(created.CreatedAt), qt.IsTrue)
	c.Assert(created.DeletedAt, qt.IsNil)
	c.Assert(f.publisher.types(), qt.DeepEquals, []domain.ProductEventType{domain.ProductCreated})
}

func TestCreateProduct_ActorWithoutNameFallsBackToID(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	created, err := f.uc.CreateProduct(context.Background(), usecase.NewCreateProductReq("N", "D", "C"), domain.Actor{ID: "42"})
	c.Assert(err, qt.IsNil)
	c.Assert(created.CreatedBy, qt.Equals, "42")
}

func TestCreateProduct_Validation(t *testing.T) {
	c := qt.New(t)

	for _, tc := range []struct {
		name   string
		req    *usecase.CreateProductReq
		fields []string
	}{
		{"all missing", usecase.NewCreateProductReq("", "", ""), []string{"name", "description", "category"}},
		{"blank name", usecase.NewCreateProductReq("   ", "Desc", "Cat"), []string{"name"}},
		{"missing category", usecase.NewCreateProductReq("Name", "Desc", ""), []string{"category"}},
	} {
		c.Run(tc.name, func(c *qt.C) {
			f := newFixture()

			_, err := f.uc.CreateProduct(context.Background(), tc.req, actor)
			c.Assert(err, qt.ErrorIs, e.ErrValidation)

			var verr *usecase.ValidationError
			c.Assert(errors.As(err, &verr), qt.IsTrue)
			fields := make([]string, 0, len(verr.Fields))
			for _, fe := range verr.Fields {
				fields = append(fields, fe.Field)
			}
			c.Assert(fields, qt.DeepEquals, tc.fields)
			c.Assert(f.publisher.types(), qt.HasLen, 0)
		})
	}
}

func TestUpdateProduct_ChangesOnlyProvidedFields(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 1)[0]

	updated, err := f.uc.UpdateProduct(context.Background(),
		usecase.NewUpdateProductReq(seeded.ID, strPtr("Updated Product"), nil, nil), actor)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Name, qt.Equals, "Updated Product")
	c.Assert(updated.Description, qt.Equals, seeded.Description)
	c.Assert(updated.Category, qt.Equals, seeded.Category)
	c.Assert(updated.CreatedAt, qt.Equals, seeded.CreatedAt)
	c.Assert(updated.CreatedBy, qt.Equals, "System")
	c.Assert(updated.UpdatedBy, qt.Equals, "John Doe")
	c.Assert(updated.UpdatedAt.After(seeded.UpdatedAt), qt.IsTrue)
	c.Assert(f.publisher.types(), qt.DeepEquals, []domain.ProductEventType{domain.ProductUpdated})
}

func TestUpdateProduct_AdvancesUpdatedAtWithFrozenClock(t *testing.T) {
	c := qt.New(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(usecase.WithClock(func() time.Time { return now }))

	created, err := f.uc.CreateProduct(context.Background(), usecase.NewCreateProductReq("N", "D", "C"), actor)
	c.Assert(err, qt.IsNil)

	first, err := f.uc.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(created.ID, nil, strPtr("D2"), nil), actor)
	c.Assert(err, qt.IsNil)
	second, err := f.uc.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(created.ID, nil, strPtr("D3"), nil), actor)
	c.Assert(err, qt.IsNil)

	c.Assert(first.UpdatedAt.After(created.UpdatedAt), qt.IsTrue)
	c.Assert(second.UpdatedAt.After(first.UpdatedAt), qt.IsTrue)
	c.Assert(second.CreatedAt, qt.Equals, created.CreatedAt)
}

func TestEventTimeMatchesStoredUpdatedAt(t *testing.T) {
	c := qt.New(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(usecase.WithClock(func() time.Time { return now }))

	created, err := f.uc.CreateProduct(context.Background(), usecase.NewCreateProductReq("N", "D", "C"), actor)
	c.Assert(err, qt.IsNil)
	updated, err := f.uc.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(created.ID, strPtr("N2"), nil, nil), actor)
	c.Assert(err, qt.IsNil)
	deleted, err := f.uc.DeleteProduct(context.Background(), created.ID, actor)
	c.Assert(err, qt.IsNil)

	// часы стоят, поэтому updatedAt сдвигается на 1 мс при каждом изменении
	c.Assert(updated.UpdatedAt.Equal(now.Add(time.Millisecond)), qt.IsTrue)
	c.Assert(deleted.UpdatedAt.Equal(now.Add(2*time.Millisecond)), qt.IsTrue)

	f.publisher.mu.Lock()
	defer f.publisher.mu.Unlock()
	c.Assert(f.publisher.events, qt.HasLen, 3)
	c.Assert(f.publisher.events[0].OccurredAt.Equal(created.UpdatedAt), qt.IsTrue)
	c.Assert(f.publisher.events[1].OccurredAt.Equal(updated.UpdatedAt), qt.IsTrue)
	c.Assert(f.publisher.events[2].OccurredAt.Equal(*deleted.DeletedAt), qt.IsTrue)
}

func TestUpdateProduct_BlankFieldRejected(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 1)[0]

	_, err := f.uc.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(seeded.ID, strPtr(""), nil, nil), actor)
	c.Assert(err, qt.ErrorIs, e.ErrValidation)

	got, err := f.uc.GetProduct(context.Background(), seeded.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, seeded.Name)
}

func TestUpdateProduct_DeletedIsNotFound(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 1)[0]

	_, err := f.uc.DeleteProduct(context.Background(), seeded.ID, actor)
	c.Assert(err, qt.IsNil)

	_, err = f.uc.UpdateProduct(context.Background(), usecase.NewUpdateProductReq(seeded.ID, strPtr("Zombie"), nil, nil), actor)
	c.Assert(err, qt.ErrorIs, e.ErrNotFound)

	raw, ok := f.repo.Raw(seeded.ID)
	c.Assert(ok, qt.IsTrue)
	c.Assert(raw.Name, qt.Equals, seeded.Name)
	c.Assert(raw.DeletedAt, qt.IsNotNil)
}

func TestUpdateProduct_InvalidID(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	_, err := f.uc.UpdateProduct(context.Background(), usecase.NewUpdateProductReq("nope", strPtr("x"), nil, nil), actor)
	c.Assert(err, qt.ErrorIs, e.ErrInvalidID)
}

func TestDeleteProduct_Idempotent(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	seeded := seedProducts(c, f.repo, 1)[0]

	deleted, err := f.uc.DeleteProduct(context.Background(), seeded.ID, actor)
	c.Assert(err, qt.IsNil)
	c.Assert(deleted.DeletedAt, qt.IsNotNil)
	c.Assert(*deleted.DeletedBy, qt.Equals, "John Doe")
	c.Assert(deleted.UpdatedBy, qt.Equals, "John Doe")
	c.Assert(deleted.UpdatedAt.Equal(*deleted.DeletedAt), qt.IsTrue)
	c.Assert(deleted.CreatedAt, qt.Equals, seeded.CreatedAt)

	_, err = f.uc.DeleteProduct(context.Background(), seeded.ID, domain.Actor{ID: "2", Name: "Jane Roe"})
	c.Assert(err, qt.ErrorIs, e.ErrNotFound)

	raw, _ := f.repo.Raw(seeded.ID)
	c.Assert(raw.DeletedAt.Equal(*deleted.DeletedAt), qt.IsTrue)
	c.Assert(*raw.DeletedBy, qt.Equals, "John Doe")

	_, err = f.uc.GetProduct(context.Background(), seeded.ID)
	c.Assert(err, qt.ErrorIs, e.ErrNotFound)

	c.Assert(f.publisher.types(), qt.DeepEquals, []domain.ProductEventType{domain.ProductDeleted})
}

func TestDeleteProduct_InvalidID(t *testing.T) {
	c := qt.New(t)
	f := newFixture()

	_, err := f.uc.DeleteProduct(context.Background(), "123", actor)
	c.Assert(err, qt.ErrorIs, e.ErrInvalidArgument)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	c := qt.New(t)
	f := newFixture()
	f.publisher.err = errors.New("broker not available")

	created, err := f.uc.CreateProduct(context.Background(), usecase.NewCreateProductReq("N", "D", "C"), actor)
	c.Assert(err, qt.IsNil)
	c.Assert(created.ID, qt.Not(qt.Equals), "")
	c.Assert(strings.Contains(f.logs.String(), "failed to publish product.created event"), qt.IsTrue)
}

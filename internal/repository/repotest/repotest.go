// Package repotest содержит общий набор проверок для драйверов хранилища товаров.
package repotest

import (
	"context"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	qt "github.com/frankban/quicktest"
)

// Factory возвращает пустое хранилище. Каждый подтест получает своё.
type Factory func(c *qt.C) usecase.ProductRepository

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// Run проверяет поведение драйвера: порядок выборки, условное изменение активной записи,
// строгий рост updatedAt и мягкое удаление.
func Run(c *qt.C, newRepo Factory) {
	c.Run("list order and ties", func(c *qt.C) {
		repo := newRepo(c)
		a := create(c, repo, "A", base)
		b := create(c, repo, "B", base)
		cc := create(c, repo, "C", base)
		d := create(c, repo, "D", base.Add(time.Second))

		got, err := repo.List(context.Background(), 0, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(ids(got), qt.DeepEquals, []string{d.ID, a.ID, b.ID, cc.ID})

		got, err = repo.List(context.Background(), 1, 2)
		c.Assert(err, qt.IsNil)
		c.Assert(ids(got), qt.DeepEquals, []string{a.ID, b.ID})

		got, err = repo.List(context.Background(), 10, 5)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.HasLen, 0)
	})

	c.Run("create and get", func(c *qt.C) {
		repo := newRepo(c)
		created := create(c, repo, "Lamp", base)
		c.Assert(repo.IsValidID(created.ID), qt.IsTrue)
		c.Assert(repo.IsValidID("not-an-id"), qt.IsFalse)

		got, err := repo.GetActive(context.Background(), created.ID)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Name, qt.Equals, "Lamp")
		c.Assert(got.Description, qt.Equals, "Lamp description")
		c.Assert(got.Category, qt.Equals, "Home")
		c.Assert(got.CreatedBy, qt.Equals, "John Doe")
		c.Assert(got.CreatedAt.Equal(base), qt.IsTrue)
		c.Assert(got.UpdatedAt.Equal(base), qt.IsTrue)
		c.Assert(got.DeletedAt, qt.IsNil)
	})

	c.Run("update changes only given fields", func(c *qt.C) {
		repo := newRepo(c)
		created := create(c, repo, "Lamp", base)

		name := "Desk lamp"
		updated, err := repo.UpdateActive(context.Background(), created.ID,
			domain.ProductPatch{Name: &name}, domain.AuditStamp{By: "Jane Roe", At: base})
		c.Assert(err, qt.IsNil)
		c.Assert(updated.Name, qt.Equals, "Desk lamp")
		c.Assert(updated.Description, qt.Equals, created.Description)
		c.Assert(updated.Category, qt.Equals, created.Category)
		c.Assert(updated.CreatedBy, qt.Equals, "John Doe")
		c.Assert(updated.UpdatedBy, qt.Equals, "Jane Roe")
		c.Assert(updated.CreatedAt.Equal(base), qt.IsTrue)

		got, err := repo.GetActive(context.Background(), created.ID)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Name, qt.Equals, "Desk lamp")
	})

	c.Run("updatedAt strictly increases", func(c *qt.C) {
		repo := newRepo(c)
		created := create(c, repo, "Lamp", base)

		first, err := repo.UpdateActive(context.Background(), created.ID, domain.ProductPatch{}, domain.AuditStamp{By: "x", At: base})
		c.Assert(err, qt.IsNil)
		c.Assert(first.UpdatedAt.Equal(base.Add(time.Millisecond)), qt.IsTrue, qt.Commentf("got %v", first.UpdatedAt))

		second, err := repo.UpdateActive(context.Background(), created.ID, domain.ProductPatch{}, domain.AuditStamp{By: "x", At: base})
		c.Assert(err, qt.IsNil)
		c.Assert(second.UpdatedAt.Equal(base.Add(2*time.Millisecond)), qt.IsTrue, qt.Commentf("got %v", second.UpdatedAt))

		later := base.Add(time.Hour)
		third, err := repo.UpdateActive(context.Background(), created.ID, domain.ProductPatch{}, domain.AuditStamp{By: "x", At: later})
		c.Assert(err, qt.IsNil)
		c.Assert(third.UpdatedAt.Equal(later), qt.IsTrue, qt.Commentf("got %v", third.UpdatedAt))
	})

	c.Run("soft delete", func(c *qt.C) {
		repo := newRepo(c)
		a := create(c, repo, "A", base)
		b := create(c, repo, "B", base)

		deleted, err := repo.SoftDeleteActive(context.Background(), a.ID, domain.AuditStamp{By: "Jane Roe", At: base})
		c.Assert(err, qt.IsNil)
		c.Assert(deleted.DeletedAt, qt.IsNotNil)
		c.Assert(deleted.DeletedAt.Equal(deleted.UpdatedAt), qt.IsTrue)
		c.Assert(deleted.UpdatedAt.Equal(base.Add(time.Millisecond)), qt.IsTrue, qt.Commentf("got %v", deleted.UpdatedAt))
		c.Assert(*deleted.DeletedBy, qt.Equals, "Jane Roe")
		c.Assert(deleted.UpdatedBy, qt.Equals, "Jane Roe")
		c.Assert(deleted.Name, qt.Equals, "A")

		_, err = repo.SoftDeleteActive(context.Background(), a.ID, domain.AuditStamp{By: "x", At: base.Add(time.Hour)})
		c.Assert(err, qt.ErrorIs, e.ErrNotFound)

		_, err = repo.GetActive(context.Background(), a.ID)
		c.Assert(err, qt.ErrorIs, e.ErrNotFound)

		name := "revived"
		_, err = repo.UpdateActive(context.Background(), a.ID, domain.ProductPatch{Name: &name}, domain.AuditStamp{By: "x", At: base})
		c.Assert(err, qt.ErrorIs, e.ErrNotFound)

		got, err := repo.List(context.Background(), 0, 10)
		c.Assert(err, qt.IsNil)
		c.Assert(ids(got), qt.DeepEquals, []string{b.ID})
	})

	c.Run("absent id", func(c *qt.C) {
		repo := newRepo(c)
		id := repository.NewID()

		_, err := repo.GetActive(context.Background(), id)
		c.Assert(err, qt.ErrorIs, e.ErrNotFound)

		_, err = repo.UpdateActive(context.Background(), id, domain.ProductPatch{}, domain.AuditStamp{By: "x", At: base})
		c.Assert(err, qt.ErrorIs, e.ErrNotFound)

		_, err = repo.SoftDeleteActive(context.Background(), id, domain.AuditStamp{By: "x", At: base})
		c.Assert(err, qt.ErrorIs, e.ErrNotFound)
	})
}

func create(c *qt.C, repo usecase.ProductRepository, name string, at time.Time) *domain.Product {
	p, err := repo.Create(context.Background(), domain.NewProduct(
		domain.ProductFields{Name: name, Description: name + " description", Category: "Home"},
		domain.AuditStamp{By: "John Doe", At: at},
	))
	c.Assert(err, qt.IsNil)
	c.Assert(p.ID, qt.Not(qt.Equals), "")

	return p
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}

	return out
}

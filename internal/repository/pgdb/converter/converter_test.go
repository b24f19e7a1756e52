package converter

import (
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	qt "github.com/frankban/quicktest"
)

func TestProductConverter(t *testing.T) {
	c := qt.New(t)
	conv := NewProductConverter()

	moscow := time.FixedZone("MSK", 3*60*60)
	created := time.Date(2024, 5, 1, 15, 0, 0, 0, moscow)
	deleted := created.Add(time.Hour)
	by := "John Doe"

	model := &ProductModel{
		ID:          "65f1c0a1b2c3d4e5f6a7b8c9",
		Name:        "Lamp",
		Description: "Desk lamp",
		Category:    "Home",
		CreatedBy:   by,
		CreatedAt:   created,
		UpdatedBy:   by,
		UpdatedAt:   deleted,
		DeletedAt:   &deleted,
		DeletedBy:   &by,
	}

	c.Run("to entity normalizes to UTC", func(c *qt.C) {
		entity := conv.ToEntity(model)
		c.Assert(entity.CreatedAt.Location(), qt.Equals, time.UTC)
		c.Assert(entity.CreatedAt.Equal(created), qt.IsTrue)
		c.Assert(entity.DeletedAt.Location(), qt.Equals, time.UTC)
		c.Assert(*entity.DeletedBy, qt.Equals, by)
		c.Assert(entity.IsActive(), qt.IsFalse)
	})

	c.Run("pointer fields are copied", func(c *qt.C) {
		entity := conv.ToEntity(model)
		*entity.DeletedBy = "someone else"
		c.Assert(*model.DeletedBy, qt.Equals, by)
	})

	c.Run("active product keeps nil deletion", func(c *qt.C) {
		entity := &domain.Product{ID: "x", Name: "Lamp", CreatedAt: created}
		back := conv.ToModel(entity)
		c.Assert(back.DeletedAt, qt.IsNil)
		c.Assert(back.DeletedBy, qt.IsNil)
	})

	c.Run("nil in nil out", func(c *qt.C) {
		c.Assert(conv.ToEntity(nil), qt.IsNil)
		c.Assert(conv.ToModel(nil), qt.IsNil)
	})

	c.Run("array keeps order", func(c *qt.C) {
		second := *model
		second.ID = "65f1c0a1b2c3d4e5f6a7b8ca"
		got := conv.ToArrEntity([]ProductModel{*model, second})
		c.Assert(got, qt.HasLen, 2)
		c.Assert(got[0].ID, qt.Equals, model.ID)
		c.Assert(got[1].ID, qt.Equals, second.ID)
	})
}

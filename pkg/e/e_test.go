package e_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/DRSN-tech/catalog-service/pkg/e"
)

func TestWrap(t *testing.T) {
	c := qt.New(t)

	err := e.Wrap("ProductUseCase.GetProduct", e.ErrNotFound)
	c.Assert(err, qt.ErrorIs, e.ErrNotFound)
	c.Assert(err.Error(), qt.Equals, "ProductUseCase.GetProduct: product not found")
}

func TestInvalidArgumentFamily(t *testing.T) {
	c := qt.New(t)

	c.Assert(errors.Is(e.ErrInvalidID, e.ErrInvalidArgument), qt.IsTrue)
	c.Assert(errors.Is(e.ErrInvalidPagination, e.ErrInvalidArgument), qt.IsTrue)
	c.Assert(errors.Is(e.ErrNotFound, e.ErrInvalidArgument), qt.IsFalse)
	c.Assert(errors.Is(e.ErrValidation, e.ErrInvalidArgument), qt.IsFalse)
}

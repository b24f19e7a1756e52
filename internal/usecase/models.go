package usecase

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListProductsReq — запрос страницы активных товаров.
type ListProductsReq struct {
	Page  int
	Limit int
}

// CreateProductReq — запрос на создание товара.
type CreateProductReq struct {
	Name        string `validate:"required,notblank"`
	Description string `validate:"required,notblank"`
	Category    string `validate:"required,notblank"`
}

// UpdateProductReq — частичное обновление товара, nil-поля не меняются.
type UpdateProductReq struct {
	ID          string
	Name        *string `validate:"omitnil,notblank"`
	Description *string `validate:"omitnil,notblank"`
	Category    *string `validate:"omitnil,notblank"`
}

// FieldError описывает одно нарушение правил валидации.
type FieldError struct {
	Field string
	Tag   string
}

// ValidationError — ошибка валидации полей товара, совместима с errors.Is(err, e.ErrValidation).
type ValidationError struct {
	Fields []FieldError
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, fmt.Sprintf("%s is %s", f.Field, describeTag(f.Tag)))
	}

	return fmt.Sprintf("%s: %s", e.ErrValidation.Error(), strings.Join(parts, ", "))
}

func (v *ValidationError) Unwrap() error {
	return e.ErrValidation
}

func describeTag(tag string) string {
	switch tag {
	case "required", "notblank":
		return "required"
	default:
		return "invalid"
	}
}

// MAPPERS

func NewListProductsReq(page, limit int) *ListProductsReq {
	return &ListProductsReq{Page: page, Limit: limit}
}

func NewCreateProductReq(name, description, category string) *CreateProductReq {
	return &CreateProductReq{
		Name:        name,
		Description: description,
		Category:    category,
	}
}

func NewUpdateProductReq(id string, name, description, category *string) *UpdateProductReq {
	return &UpdateProductReq{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
	}
}

func (r *CreateProductReq) toFields() domain.ProductFields {
	return domain.ProductFields{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
	}
}

func (r *UpdateProductReq) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
	}
}

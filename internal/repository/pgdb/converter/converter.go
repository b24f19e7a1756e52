package converter

import (
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

func (ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Category:    entity.Category,
		CreatedBy:   entity.CreatedBy,
		CreatedAt:   ConvertTime(entity.CreatedAt),
		UpdatedBy:   entity.UpdatedBy,
		UpdatedAt:   ConvertTime(entity.UpdatedAt),
		DeletedAt:   ConvertPointerTime(entity.DeletedAt),
		DeletedBy:   ConvertPointerString(entity.DeletedBy),
	}
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Category:    model.Category,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   ConvertTime(model.CreatedAt),
		UpdatedBy:   model.UpdatedBy,
		UpdatedAt:   ConvertTime(model.UpdatedAt),
		DeletedAt:   ConvertPointerTime(model.DeletedAt),
		DeletedBy:   ConvertPointerString(model.DeletedBy),
	}
}

func (c ProductConverter) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// ConvertTime приводит время к UTC: pgx возвращает timestamptz в локальной зоне.
func ConvertTime(t time.Time) time.Time {
	return t.UTC()
}

func ConvertPointerTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func ConvertPointerString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

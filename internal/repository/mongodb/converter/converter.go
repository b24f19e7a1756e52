package converter

import (
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductConverter преобразует сущности Product между domain и документом MongoDB.
type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

// ToModel возвращает ошибку, если идентификатор не является ObjectID.
// Пустой идентификатор допустим: его назначит драйвер при вставке.
func (ProductConverter) ToModel(entity *domain.Product) (*ProductModel, error) {
	var id primitive.ObjectID
	if entity.ID != "" {
		oid, err := primitive.ObjectIDFromHex(entity.ID)
		if err != nil {
			return nil, err
		}
		id = oid
	}

	return &ProductModel{
		ID:          id,
		Name:        entity.Name,
		Description: entity.Description,
		Category:    entity.Category,
		CreatedBy:   entity.CreatedBy,
		CreatedAt:   entity.CreatedAt,
		UpdatedBy:   entity.UpdatedBy,
		UpdatedAt:   entity.UpdatedAt,
		DeletedAt:   entity.DeletedAt,
		DeletedBy:   entity.DeletedBy,
	}, nil
}

func (ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	product := &domain.Product{
		ID:          model.ID.Hex(),
		Name:        model.Name,
		Description: model.Description,
		Category:    model.Category,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt.UTC(),
		UpdatedBy:   model.UpdatedBy,
		UpdatedAt:   model.UpdatedAt.UTC(),
	}
	if model.DeletedAt != nil {
		deletedAt := model.DeletedAt.UTC()
		product.DeletedAt = &deletedAt
	}
	if model.DeletedBy != nil {
		deletedBy := *model.DeletedBy
		product.DeletedBy = &deletedBy
	}

	return product
}

func (c ProductConverter) ToArrEntity(models []ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for i := range models {
		result = append(result, *c.ToEntity(&models[i]))
	}

	return result
}

// Millis усекает время до точности BSON datetime.
func Millis(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

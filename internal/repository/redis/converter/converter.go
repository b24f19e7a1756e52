package converter

import (
	"fmt"
	"math"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type ProductConverter struct{}

func NewProductConverter() ProductConverter {
	return ProductConverter{}
}

// ToRedisModel заполняет модель для новой записи с порядковым номером seq.
func (ProductConverter) ToRedisModel(entity *domain.Product, seq int64) *ProductRedisModel {
	return &ProductRedisModel{
		ID:          entity.ID,
		Seq:         seq,
		Member:      Member(seq, entity.ID),
		Name:        entity.Name,
		Description: entity.Description,
		Category:    entity.Category,
		CreatedBy:   entity.CreatedBy,
		CreatedAt:   entity.CreatedAt.UnixMilli(),
		UpdatedBy:   entity.UpdatedBy,
		UpdatedAt:   entity.UpdatedAt.UnixMilli(),
		DeletedAt:   ConvertPointerTime(entity.DeletedAt),
		DeletedBy:   entity.DeletedBy,
	}
}

func (ProductConverter) ToEntity(model *ProductRedisModel) *domain.Product {
	product := &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Category:    model.Category,
		CreatedBy:   model.CreatedBy,
		CreatedAt:   ConvertTime(model.CreatedAt),
		UpdatedBy:   model.UpdatedBy,
		UpdatedAt:   ConvertTime(model.UpdatedAt),
		DeletedBy:   model.DeletedBy,
	}
	if model.DeletedAt != nil {
		deletedAt := ConvertTime(*model.DeletedAt)
		product.DeletedAt = &deletedAt
	}

	return product
}

func (ProductConverter) ToPatchModel(patch domain.ProductPatch) PatchRedisModel {
	return PatchRedisModel{
		Name:        patch.Name,
		Description: patch.Description,
		Category:    patch.Category,
	}
}

// Member — элемент sorted set активных товаров. ZREVRANGE при равном score
// сортирует элементы по убыванию строки, поэтому номер вставки инвертирован:
// более ранний товар идёт первым.
func Member(seq int64, id string) string {
	return fmt.Sprintf("%019d:%s", math.MaxInt64-seq, id)
}

func ConvertTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func ConvertPointerTime(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

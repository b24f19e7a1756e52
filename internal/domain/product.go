package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedBy   string
	UpdatedAt   time.Time
	DeletedAt   *time.Time // nil, пока товар активен
	DeletedBy   *string
}

// IsActive сообщает, что товар не удалён.
func (p *Product) IsActive() bool {
	return p.DeletedAt == nil
}

// ProductFields — изменяемые поля товара.
type ProductFields struct {
	Name        string
	Description string
	Category    string
}

// ProductPatch описывает частичное обновление, nil означает «поле не передано».
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
}

// IsEmpty сообщает, что в патче нет ни одного поля.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil
}

// Apply применяет переданные поля к товару.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
}

// AuditStamp — кто и когда изменил запись.
type AuditStamp struct {
	By string
	At time.Time
}

// NewProduct создаёт активный товар с одинаковыми отметками создания и изменения.
func NewProduct(fields ProductFields, stamp AuditStamp) *Product {
	return &Product{
		Name:        fields.Name,
		Description: fields.Description,
		Category:    fields.Category,
		CreatedBy:   stamp.By,
		CreatedAt:   stamp.At,
		UpdatedBy:   stamp.By,
		UpdatedAt:   stamp.At,
	}
}

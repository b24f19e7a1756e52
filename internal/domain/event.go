package domain

import "time"

type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent — событие изменения товара для внешних подписчиков.
type ProductEvent struct {
	EventID    string
	Type       ProductEventType
	ProductID  string
	Actor      string
	OccurredAt time.Time
	Product    Product
}

func NewProductEvent(eventID string, eventType ProductEventType, product *Product, actor string, occurredAt time.Time) *ProductEvent {
	return &ProductEvent{
		EventID:    eventID,
		Type:       eventType,
		ProductID:  product.ID,
		Actor:      actor,
		OccurredAt: occurredAt,
		Product:    *product,
	}
}

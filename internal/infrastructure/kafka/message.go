package kafka

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

// ProductEventMessage — тело сообщения об изменении товара.
type ProductEventMessage struct {
	EventID    string         `json:"eventId"`
	Type       string         `json:"type"`
	ProductID  string         `json:"productId"`
	Actor      string         `json:"actor"`
	OccurredAt time.Time      `json:"occurredAt"`
	Product    ProductPayload `json:"product"`
}

type ProductPayload struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedBy   string     `json:"updatedBy"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedBy   *string    `json:"deletedBy,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func NewMessage(event *domain.ProductEvent) (kafka.Message, error) {
	body := ProductEventMessage{
		EventID:    event.EventID,
		Type:       string(event.Type),
		ProductID:  event.ProductID,
		Actor:      event.Actor,
		OccurredAt: event.OccurredAt,
		Product: ProductPayload{
			ID:          event.Product.ID,
			Name:        event.Product.Name,
			Description: event.Product.Description,
			Category:    event.Product.Category,
			CreatedBy:   event.Product.CreatedBy,
			CreatedAt:   event.Product.CreatedAt,
			UpdatedBy:   event.Product.UpdatedBy,
			UpdatedAt:   event.Product.UpdatedAt,
			DeletedBy:   event.Product.DeletedBy,
			DeletedAt:   event.Product.DeletedAt,
		},
	}

	value, err := json.Marshal(body)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}, nil
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// EventPublisher публикует события изменения товаров.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.ProductEvent) error
}

// NoopPublisher используется, когда брокер сообщений не настроен.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *domain.ProductEvent) error {
	return nil
}

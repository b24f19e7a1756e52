// Package identity определяет, от имени какого пользователя выполняется запрос.
package identity

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// Resolver извлекает пользователя из входящего запроса.
// Реальная аутентификация подключается заменой реализации без изменения сервисного слоя.
type Resolver interface {
	Resolve(r *http.Request) (domain.Actor, error)
}

// ResolverFunc позволяет использовать функцию как Resolver.
type ResolverFunc func(r *http.Request) (domain.Actor, error)

func (f ResolverFunc) Resolve(r *http.Request) (domain.Actor, error) {
	return f(r)
}

// StaticResolver всегда возвращает одного и того же пользователя.
type StaticResolver struct {
	actor domain.Actor
}

func NewStaticResolver(actor domain.Actor) *StaticResolver {
	return &StaticResolver{actor: actor}
}

func (s *StaticResolver) Resolve(*http.Request) (domain.Actor, error) {
	return s.actor, nil
}

type ctxKey struct{}

// WithActor сохраняет пользователя в контексте запроса.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFromCtx возвращает пользователя, сохранённого WithActor.
func ActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(domain.Actor)
	return actor, ok
}

package http

import (
	"net/http"

	_ "github.com/DRSN-tech/catalog-service/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/identity"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const corsMaxAge = 300 // секунд

type Router struct {
	router   *chi.Mux
	logger   logger.Logger
	cfg      *cfg.HTTPConfig
	resolver identity.Resolver
}

func NewRouter(router *chi.Mux, logger logger.Logger, cfg *cfg.HTTPConfig, resolver identity.Resolver) *Router {
	return &Router{router: router, logger: logger, cfg: cfg, resolver: resolver}
}

func (r *Router) Init(prUC usecase.ProductUC) {
	r.router.Use(
		requestIDSeed,
		middleware.RequestID,
		middleware.RealIP,
		accessLog(r.logger),
		middleware.Recoverer,
		cors.Handler(corsOptions(r.cfg.CORSOrigins)),
	)

	r.router.Get("/health", health)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"), // относительно /swagger/
	))

	prHandler := NewProductHandler(prUC, r.logger, r.cfg.MaxBodyBytes)
	r.router.Group(func(api chi.Router) {
		api.Use(withActor(r.resolver, r.logger))
		registerProductRoutes(api, prHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Put("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)
	})
}

// corsOptions разрешает методы API и отдаёт клиенту X-Request-Id.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         corsMaxAge,
	}
}

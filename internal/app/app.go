package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-service/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/identity"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure/kafka"
	"github.com/DRSN-tech/catalog-service/internal/repository/memory"
	"github.com/DRSN-tech/catalog-service/internal/repository/mongodb"
	mongoConv "github.com/DRSN-tech/catalog-service/internal/repository/mongodb/converter"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/internal/repository/redis"
	redisConv "github.com/DRSN-tech/catalog-service/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/clients"
	"github.com/DRSN-tech/catalog-service/pkg/closer"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/DRSN-tech/catalog-service/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout    = 10 * time.Second
	forcedCloseTimeout = 3 * time.Second
	connectTimeout     = 10 * time.Second
	ensureTopicTimeout = 10 * time.Second
)

// App собирает зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg       *config.Config
	logger    logger.Logger
	closer    *closer.Closer
	productUC *usecase.ProductUseCase
	handler   http.Handler
}

// NewApp подключает хранилище, выбранное в конфигурации, и собирает HTTP-обработчик.
// При ошибке уже открытые ресурсы закрываются.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(forcedCloseTimeout)

	repo, err := initStorage(ctx, cfg, log, cl)
	if err != nil {
		_ = cl.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	publisher := initPublisher(cfg.Kafka, log, cl)

	productUC := usecase.NewProductUC(repo, publisher, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log, cfg.Http, identity.NewStaticResolver(Actor(cfg.Auth)))
	router.Init(productUC)

	return &App{
		cfg:       cfg,
		logger:    log,
		closer:    cl,
		productUC: productUC,
		handler:   r,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) ProductUC() *usecase.ProductUseCase {
	return a.productUC
}

// Close освобождает ресурсы в порядке, обратном открытию.
func (a *App) Close(ctx context.Context) error {
	return a.closer.Close(ctx)
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки или ошибки сервера.
func (a *App) Run() error {
	httpSrv := v1Http.NewServer(a.handler, a.cfg.Http)
	a.closer.Add("http server", httpSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s (storage: %s)", a.cfg.Http.Port, a.cfg.Storage.Driver)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown completed with errors")
		return errors.Join(appErr, err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// Actor строит пользователя, от имени которого выполняются запросы.
func Actor(cfg *config.AuthCfg) domain.Actor {
	return domain.Actor{
		ID:    cfg.UserID,
		Name:  cfg.UserName,
		Email: cfg.UserEmail,
	}
}

func initStorage(ctx context.Context, cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.ProductRepository, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warnf("using in-memory storage: data is lost on restart")
		return memory.NewProductRepo(), nil

	case config.DriverPostgres:
		db, err := initPGDB(ctx, log, cfg.Db, postgres.MigrateUp)
		if err != nil {
			return nil, err
		}
		cl.Add("postgres", db.Close)
		return pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter()), nil

	case config.DriverMongo:
		return initMongo(ctx, cfg.Mongo, cl)

	case config.DriverRedis:
		redisClient := clients.NewRedisClient(cfg.Redis)
		cl.Add("redis", redisClient.Close)

		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := redisClient.Ping(pingCtx); err != nil {
			log.Errorf(err, "failed to connect to redis")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		return redis.NewProductRepo(redisClient, redisConv.NewProductConverter(), cfg.Redis, log), nil

	default:
		return nil, e.Wrap(cfg.Storage.Driver, e.ErrUnknownStorageDriver)
	}
}

func initMongo(ctx context.Context, cfg *config.MongoCfg, cl *closer.Closer) (usecase.ProductRepository, error) {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := clients.NewMongoClient(connCtx, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("mongo", client.Close)

	if err := client.Ping(connCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	repo := mongodb.NewProductRepo(client.Collection(), mongoConv.NewProductConverter())
	if err := repo.EnsureIndexes(connCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return repo, nil
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.PGDBCfg, direction string) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger, direction); err != nil {
		logger.Errorf(err, "failed to run migrations")
		_ = db.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// initPublisher возвращает Kafka-продюсер или заглушку, если брокеры не заданы.
// Недоступность брокера при старте не мешает запуску: события лишь логируются как недоставленные.
func initPublisher(cfg *config.KafkaCfg, log logger.Logger, cl *closer.Closer) usecase.EventPublisher {
	if cfg == nil || !cfg.Enabled() {
		log.Infof("kafka brokers not configured, product events are not published")
		return usecase.NoopPublisher{}
	}

	producer := kafka.NewProducer(log, cfg)
	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		log.Warnf("failed to ensure kafka topic %s: %v", cfg.Topic, err)
	}
	cl.Add("kafka producer", producer.Close)

	return producer
}

// Migrate применяет или откатывает миграции PostgreSQL.
func Migrate(ctx context.Context, cfg *config.Config, log logger.Logger, direction string) error {
	if cfg.Storage.Driver != config.DriverPostgres || cfg.Db == nil {
		return e.Wrap("migrations require STORAGE_DRIVER=postgres", e.ErrUnknownStorageDriver)
	}

	db, err := initPGDB(ctx, log, cfg.Db, direction)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return db.Close(ctx)
}

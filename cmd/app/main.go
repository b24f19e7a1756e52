package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DRSN-tech/catalog-service/internal/app"
	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/DRSN-tech/catalog-service/pkg/postgres"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	directionFlag = "direction"
	countFlag     = "count"

	defaultSeedCount = 15
)

var migrateFlags = map[string]cobraflags.Flag{
	directionFlag: &cobraflags.StringFlag{
		Name:  directionFlag,
		Value: postgres.MigrateUp,
		Usage: "Migration direction (up, down)",
	},
}

var seedFlags = map[string]cobraflags.Flag{
	countFlag: &cobraflags.IntFlag{
		Name:  countFlag,
		Value: defaultSeedCount,
		Usage: "Number of products to create",
	},
}

func main() {
	log := logger.NewSlogLogger()

	if err := newRootCommand(log).Execute(); err != nil {
		log.Errorf(err, "command failed")
		os.Exit(1)
	}
}

func newRootCommand(log logger.Logger) *cobra.Command {
	serveCmd := newServeCommand(log)

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Product catalog service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE, // serve по умолчанию
	}

	root.AddCommand(serveCmd, newMigrateCommand(log), newSeedCommand(log))
	return root
}

func newServeCommand(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(log)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			application, err := app.NewApp(cmd.Context(), cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			return application.Run()
		},
	}
}

func newMigrateCommand(log logger.Logger) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back PostgreSQL migrations",
		Long: `Apply or roll back PostgreSQL migrations from MIGRATIONS_URL.

Requires STORAGE_DRIVER=postgres and the POSTGRES_* variables.

Examples:
  catalog migrate                    # apply pending migrations
  catalog migrate --direction down   # roll back all migrations`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(log)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			return app.Migrate(cmd.Context(), cfg, log, migrateFlags[directionFlag].GetString())
		},
	}

	cobraflags.RegisterMap(migrateCmd, migrateFlags)
	return migrateCmd
}

func newSeedCommand(log logger.Logger) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo products into the configured storage",
		Long: `Insert demo products through the service layer.

Requires a persistent STORAGE_DRIVER (postgres, mongo or redis).

Examples:
  catalog seed              # create 15 products
  catalog seed --count 100  # create 100 products`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(log)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, err := app.SeedStorage(ctx, cfg, log, seedFlags[countFlag].GetInt())
			log.Infof("seeded %d products", n)
			return err
		},
	}

	cobraflags.RegisterMap(seedCmd, seedFlags)
	return seedCmd
}

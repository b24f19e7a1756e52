package cfg

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	qt "github.com/frankban/quicktest"
)

func testLogger() logger.Logger {
	return logger.NewSlogLoggerWithWriter(io.Discard, slog.LevelError)
}

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)
	c.Setenv("STORAGE_DRIVER", "")
	c.Setenv("KAFKA_BROKERS", "")

	config, err := Load(testLogger())
	c.Assert(err, qt.IsNil)

	c.Assert(config.Storage.Driver, qt.Equals, DriverMemory)
	c.Assert(config.Http.Port, qt.Equals, "3000")
	c.Assert(config.Http.CORSOrigins, qt.DeepEquals, []string{"*"})
	c.Assert(config.Http.MaxBodyBytes, qt.Equals, int64(1<<20))
	c.Assert(config.Auth, qt.DeepEquals, &AuthCfg{
		UserID:    "1",
		UserName:  "John Doe",
		UserEmail: "john.doe@example.com",
	})
	c.Assert(config.Kafka.Enabled(), qt.IsFalse)
	c.Assert(config.Db, qt.IsNil)
	c.Assert(config.Mongo, qt.IsNil)
	c.Assert(config.Redis, qt.IsNil)
}

func TestLoadDrivers(t *testing.T) {
	c := qt.New(t)

	c.Run("postgres requires credentials", func(c *qt.C) {
		c.Setenv("STORAGE_DRIVER", "postgres")
		c.Setenv("POSTGRES_USER", "")

		_, err := Load(testLogger())
		c.Assert(err, qt.ErrorMatches, ".*POSTGRES_USER is required")
	})

	c.Run("postgres", func(c *qt.C) {
		c.Setenv("STORAGE_DRIVER", "POSTGRES")
		c.Setenv("POSTGRES_USER", "catalog")
		c.Setenv("POSTGRES_PASSWORD", "secret")
		c.Setenv("POSTGRES_DB", "products")

		config, err := Load(testLogger())
		c.Assert(err, qt.IsNil)
		c.Assert(config.Db.Host, qt.Equals, "localhost")
		c.Assert(config.Db.MigrationsURL, qt.Equals, "file://db/migrations")
	})

	c.Run("mongo", func(c *qt.C) {
		c.Setenv("STORAGE_DRIVER", "mongo")
		c.Setenv("MONGO_TIMEOUT", "2s")

		config, err := Load(testLogger())
		c.Assert(err, qt.IsNil)
		c.Assert(config.Mongo.Collection, qt.Equals, "products")
		c.Assert(config.Mongo.Timeout, qt.Equals, 2*time.Second)
	})

	c.Run("redis", func(c *qt.C) {
		c.Setenv("STORAGE_DRIVER", "redis")
		c.Setenv("READ_TIMEOUT", "1s")
		c.Setenv("WRITE_TIMEOUT", "4s")

		config, err := Load(testLogger())
		c.Assert(err, qt.IsNil)
		c.Assert(config.Redis.Timeout, qt.Equals, 4*time.Second)
		c.Assert(config.Redis.KeyPrefix, qt.Equals, "catalog")
	})

	c.Run("unknown driver", func(c *qt.C) {
		c.Setenv("STORAGE_DRIVER", "sqlite")

		_, err := Load(testLogger())
		c.Assert(err, qt.ErrorIs, e.ErrUnknownStorageDriver)
	})
}

func TestLoadInvalidValues(t *testing.T) {
	c := qt.New(t)
	c.Setenv("STORAGE_DRIVER", "")

	c.Run("duration", func(c *qt.C) {
		c.Setenv("HTTP_READ_TIMEOUT", "soon")
		_, err := Load(testLogger())
		c.Assert(err, qt.IsNotNil)
	})

	c.Run("integer", func(c *qt.C) {
		c.Setenv("KAFKA_PARTITIONS", "many")
		_, err := Load(testLogger())
		c.Assert(err, qt.ErrorIs, e.ErrIncorrectEnvVariable)
	})
}

func TestKafkaBrokers(t *testing.T) {
	c := qt.New(t)
	c.Setenv("STORAGE_DRIVER", "")
	c.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")

	config, err := Load(testLogger())
	c.Assert(err, qt.IsNil)
	c.Assert(config.Kafka.Brokers, qt.DeepEquals, []string{"kafka-1:9092", "kafka-2:9092"})
	c.Assert(config.Kafka.Enabled(), qt.IsTrue)
}

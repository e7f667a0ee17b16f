package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-tracker/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("Should apply defaults and parse values", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

		type Config struct {
			HTTP  config.HTTP
			JWT   config.JWT
			Log   config.Log
			Kafka config.Kafka
			Redis config.Redis
		}

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, uint32(3000), cfg.HTTP.Port)
		assert.Equal(t, "s3cret", cfg.JWT.Secret)
		assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.True(t, cfg.Kafka.Enabled())
		assert.False(t, cfg.Redis.Enabled())
	})

	t.Run("Should fail when a required variable is missing", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.New[config.JWT]()
		assert.Error(t, err)
	})

	t.Run("Should reject unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		_, err := config.New[config.Log]()
		assert.Error(t, err)
	})
}

func TestPostgresDSN(t *testing.T) {
	p := config.Postgres{Host: "db", Port: 5432, User: "u", Password: "p", DB: "inv", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=inv port=5432 sslmode=disable TimeZone=UTC", p.DSN())

	p.URL = "postgres://u:p@db:5432/inv"
	assert.Equal(t, "postgres://u:p@db:5432/inv", p.DSN())
}

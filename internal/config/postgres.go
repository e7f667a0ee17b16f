package config

import (
	"fmt"
	"time"
)

type Postgres struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	DB       string `env:"DB_NAME" envDefault:"inventory"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`

	// LogLevel is the GORM logger level: silent, error, warn or info.
	LogLevel string `env:"DB_LOG_LEVEL" envDefault:"warn"`
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value DSN built from
// the individual fields.
func (p Postgres) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		p.Host, p.User, p.Password, p.DB, p.Port, p.SSLMode)
}

package config

import "time"

// Redis is optional. An empty Addr disables the dashboard stats cache.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	StatsTTL time.Duration `env:"REDIS_STATS_TTL" envDefault:"30s"`
}

func (r Redis) Enabled() bool { return r.Addr != "" }

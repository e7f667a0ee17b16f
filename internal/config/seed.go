package config

type Seed struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"admin123"`
	AdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Master Administrator"`
	SampleData    bool   `env:"SEED_SAMPLE_DATA" envDefault:"false"`
}

package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"3000"`
	AppName string `env:"HTTP_APP_NAME" envDefault:"Inventory Tracker v1.0"`
}

package config

// Kafka is optional. No brokers means stock events are not streamed.
type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"inventory.stock-events"`
}

func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

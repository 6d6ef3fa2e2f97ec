package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Telegram TelegramConfig `envPrefix:"TELEGRAM_"`
	LiqPay   LiqPayConfig   `envPrefix:"LIQPAY_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Session  SessionConfig  `envPrefix:"SESSION_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type DatabaseConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"shopbot"`
}

type TelegramConfig struct {
	Token         string `env:"TOKEN,required"`
	BaseURL       string `env:"BASE_URL" envDefault:"https://api.telegram.org"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	PageSize      int    `env:"PAGE_SIZE" envDefault:"5"`
}

type LiqPayConfig struct {
	PublicKey  string `env:"PUBLIC_KEY,required"`
	PrivateKey string `env:"PRIVATE_KEY,required"`
	Currency   string `env:"CURRENCY" envDefault:"UAH"`
	Sandbox    bool   `env:"SANDBOX" envDefault:"true"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"shop-bot.orders"`
}

type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"30m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

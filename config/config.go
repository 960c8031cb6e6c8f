package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string   `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel string   `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTP     HTTP     `yaml:"http"`
	Postgres Postgres `yaml:"postgres"`
	Auth     Auth     `yaml:"auth"`
	RabbitMQ RabbitMQ `yaml:"rabbitmq"`
	Cart     Cart     `yaml:"cart"`
}

type HTTP struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
}

type Postgres struct {
	URL      string `yaml:"url" env:"DATABASE_URL"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"ecommerce"`
}

type Auth struct {
	AdminAPIKey string `yaml:"admin_api_key" env:"ADMIN_API_KEY"`
	JWTSecret   string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type RabbitMQ struct {
	URL             string `yaml:"url" env:"RABBITMQ_URL"`
	Queue           string `yaml:"queue" env:"RABBITMQ_QUEUE" env-default:"order_events"`
	ChannelPoolSize int    `yaml:"channel_pool_size" env:"RABBITMQ_CHANNEL_POOL_SIZE" env-default:"4"`
}

type Cart struct {
	IdleTTL       time.Duration `yaml:"idle_ttl" env:"CART_IDLE_TTL" env-default:"24h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"CART_SWEEP_INTERVAL" env-default:"10m"`
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from
// the individual DB_* settings.
func (p Postgres) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		p.Host, p.User, p.Password, p.Name, p.Port,
	)
}

// Addr turns a bare port ("5000") into a listen address (":5000").
func (h HTTP) Addr() string {
	if strings.HasPrefix(h.Port, ":") {
		return h.Port
	}
	return ":" + h.Port
}

// Load reads .env (if present), then the YAML file at CONFIG_PATH (if set),
// then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading env config: %w", err)
	}
	return &cfg, nil
}

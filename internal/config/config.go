// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvLocal локальное окружение разработчика.
	EnvLocal = "local"
	// EnvDev тестовый стенд.
	EnvDev = "dev"
	// EnvProd продакшн.
	EnvProd = "prod"

	minSecretLen = 32
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Hashing                 `yaml:"password_hashing"`
	Admin                   `yaml:"admin"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	News                    `yaml:"news"`
	AuthService             `yaml:"auth_service"`
	RateLimit               `yaml:"rate_limit"`
	CORS                    `yaml:"cors"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP    string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP    time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"15s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"30m"`
	Issuer       string        `yaml:"issuer" env-default:"foundation-backend"`
}

// Hashing параметры хэширования паролей.
type Hashing struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"12"`
}

// Admin учётные данные администратора, создаваемого при первом запуске.
type Admin struct {
	AdminEmail     string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@hiphopfoundation.org"`
	AdminPassword  string `yaml:"password" env:"ADMIN_PASSWORD"`
	AdminFullName  string `yaml:"full_name" env-default:"Admin User"`
	SeedSampleData bool   `yaml:"seed_sample_data" env:"SEED_SAMPLE_DATA" env-default:"true"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой AddressRedis отключает кэширование.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"foundation.events"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// FeedSource описывает один RSS-источник новостей.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// News настройки агрегатора новостей.
type News struct {
	Sources      []FeedSource  `yaml:"sources"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env-default:"10s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"10m"`
}

// AuthService адрес gRPC-сервиса аутентификации.
// Для cmd/auth-service это адрес прослушивания, для API адрес удалённого сервиса
// (пустой адрес означает проверку токенов внутри процесса).
type AuthService struct {
	GRPCAuthAddress string `yaml:"grpc_auth_address" env:"GRPC_AUTH_ADDRESS"`
}

// RateLimit ограничение частоты запросов к /auth.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// CORS настройки кросс-доменных запросов фронтенда.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// SMTP почтовый сервер для уведомлений о пожертвованиях и сообщениях.
// Пустой NotifyTo означает адрес администратора из Admin.
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"password" env:"SMTP_PASSWORD"`
	NotifyTo string `yaml:"notify_to" env:"NOTIFY_TO"`
}

// DefaultFeedSources источники новостей, используемые если в конфиге список пуст.
func DefaultFeedSources() []FeedSource {
	return []FeedSource{
		{Name: "hip_hop_wired", URL: "https://feeds.feedburner.com/hhwx"},
		{Name: "the_source", URL: "https://thesource.com/feed/"},
	}
}

// MustLoad функция для загрузки конфига, завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load(fetchConfigPath())
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла path (если он задан) и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultFeedSources()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами cleanenv.
func (c *Config) Validate() error {
	if c.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if c.Env != EnvLocal && len(c.JWTSecretKey) < minSecretLen {
		return fmt.Errorf("jwt_secret_key must be at least %d bytes outside of %q env", minSecretLen, EnvLocal)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be in [4, 31], got %d", c.BcryptCost)
	}
	return nil
}

// fetchConfigPath берёт путь к конфигу из флага -config или переменной CONFIG_PATH.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}

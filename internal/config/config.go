// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
//
// Конфиг читается из YAML-файла по пути CONFIG_PATH; если путь не задан,
// все значения берутся из переменных окружения. Отсутствие опциональных
// ключей деградирует функциональность (демо-вход, пропуск подтверждения
// оплаты), а не валит старт сервиса.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	BaseURL                 string `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
	StaticDir               string `yaml:"static_dir" env:"STATIC_DIR" env-default:"./public"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RabbitURL               string `yaml:"rabbit_url" env:"RABBIT_URL"`
	DemoLogin               bool   `yaml:"demo_login" env:"DEMO_LOGIN"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	SessionConfig           `yaml:"session"`
	Kakao                   `yaml:"kakao"`
	Toss                    `yaml:"toss"`
	Orders                  `yaml:"orders"`

	// Flags — режимы работы, вычисленные один раз при загрузке.
	Flags Flags `yaml:"-"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"ADDRESS_HTTP" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"TIMEOUT_HTTP" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес означает, что сессии живут в памяти процесса.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"ADDRESS_REDIS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT"`
}

// SessionConfig структура для настройки сессий.
type SessionConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"SESSION_SECRET" env-default:"dev_secret"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"24h"`
}

// Kakao структура для настройки Kakao OAuth.
type Kakao struct {
	RESTAPIKey  string `yaml:"rest_api_key" env:"KAKAO_REST_API_KEY"`
	RedirectURI string `yaml:"redirect_uri" env:"KAKAO_REDIRECT_URI"`
}

// Toss структура для настройки Toss Payments.
type Toss struct {
	ClientKey   string        `yaml:"client_key" env:"TOSS_CLIENT_KEY"`
	SecretKey   string        `yaml:"secret_key" env:"TOSS_SECRET_KEY"`
	ConfirmURL  string        `yaml:"confirm_url" env:"TOSS_CONFIRM_URL" env-default:"https://api.tosspayments.com/v1/payments/confirm"`
	TossTimeout time.Duration `yaml:"timeout" env:"TOSS_TIMEOUT" env-default:"10s"`
}

// Orders структура для настройки реестра заказов.
type Orders struct {
	OrderTTL time.Duration `yaml:"order_ttl" env:"ORDER_TTL" env-default:"30m"`
}

// Flags — явные режимы работы вместо разбросанных по обработчикам
// проверок наличия ключей.
type Flags struct {
	KakaoLogin  bool // Kakao OAuth включён (есть REST API key)
	TossConfirm bool // Подтверждение оплаты через Toss включено (есть secret key)
	DemoLogin   bool // Вход без OAuth разрешён (только при выключенном Kakao)
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load загружает конфиг из файла CONFIG_PATH либо из окружения
// и вычисляет производные режимы.
func Load() (*Config, error) {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Kakao.RedirectURI == "" {
		cfg.Kakao.RedirectURI = cfg.BaseURL + "/auth/kakao/callback"
	}

	cfg.Flags = Flags{
		KakaoLogin:  cfg.Kakao.RESTAPIKey != "",
		TossConfirm: cfg.Toss.SecretKey != "",
		DemoLogin:   cfg.DemoLogin && cfg.Kakao.RESTAPIKey == "",
	}
	return &cfg, nil
}

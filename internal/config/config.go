package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // зоны доступны и в минимальных образах

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Бэкенды хранилища
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

// Config конфигурация сервиса
type Config struct {
	App       AppConfig       `toml:"app"`
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Admin     AdminConfig     `toml:"admin"`
	SMTP      SMTPConfig      `toml:"smtp"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

type AppConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
	BaseURL     string `toml:"base_url"`
	Timezone    string `toml:"timezone"`
}

// Location зона, в которой интерпретируются даты и время присутствий
func (a AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

// IsProduction true для окружения production
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Backend string `toml:"backend"`

	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	DBName         string `toml:"dbname"`
	SSLMode        string `toml:"sslmode"`
	ReaderUser     string `toml:"reader_user"`
	ReaderPassword string `toml:"reader_password"`
	WriterUser     string `toml:"writer_user"`
	WriterPassword string `toml:"writer_password"`

	SQLitePath string `toml:"sqlite_path"`

	MaxOpenConns    int  `toml:"max_open_conns"`
	MaxIdleConns    int  `toml:"max_idle_conns"`
	ConnMaxLifetime int  `toml:"conn_max_lifetime"`
	Migrate         bool `toml:"migrate"`
}

// ReaderDSN строка подключения ограниченной учетной записи (только чтение)
func (d DatabaseConfig) ReaderDSN() string {
	return d.dsn(d.ReaderUser, d.ReaderPassword)
}

// WriterDSN строка подключения учетной записи с правами на запись
func (d DatabaseConfig) WriterDSN() string {
	return d.dsn(d.WriterUser, d.WriterPassword)
}

// HasReader true, если задана отдельная учетная запись для чтения
func (d DatabaseConfig) HasReader() bool {
	return d.ReaderUser != ""
}

// HasWriter true, если задана учетная запись для записи
func (d DatabaseConfig) HasWriter() bool {
	return d.WriterUser != ""
}

func (d DatabaseConfig) dsn(user, password string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type AdminConfig struct {
	Password      string `toml:"password"`
	PasswordHash  string `toml:"password_hash"`
	SessionSecret string `toml:"session_secret"`
	SessionTTL    int    `toml:"session_ttl_hours"`
	CookieName    string `toml:"cookie_name"`
}

// PasswordConfigured true, если задан пароль или его хеш
func (a AdminConfig) PasswordConfigured() bool {
	return a.Password != "" || a.PasswordHash != ""
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	Timeout  int    `toml:"timeout"`
}

// Enabled true, если SMTP настроен. Иначе письма только логируются.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Enabled bool `toml:"enabled"`
	// TrustedProxies число обратных прокси перед сервисом, чьим записям в X-Forwarded-For можно верить
	TrustedProxies int         `toml:"trusted_proxies"`
	General        LimitConfig `toml:"general"`
	Reservation    LimitConfig `toml:"reservation"`
	Login          LimitConfig `toml:"login"`
}

// LimitConfig не более Requests запросов за WindowSeconds секунд
type LimitConfig struct {
	Requests      int `toml:"requests"`
	WindowSeconds int `toml:"window_seconds"`
}

// Window окно лимита
func (l LimitConfig) Window() time.Duration {
	return time.Duration(l.WindowSeconds) * time.Second
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфигурацию: значения по умолчанию, затем TOML файл (если есть),
// затем .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "juice-reservations",
			Environment: "development",
			BaseURL:     "http://localhost:8080",
			Timezone:    "Europe/Brussels",
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Backend:         BackendSQLite,
			Host:            "localhost",
			Port:            5432,
			DBName:          "juice",
			SSLMode:         "disable",
			SQLitePath:      "data/reservations.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			Migrate:         true,
		},
		Admin: AdminConfig{
			SessionTTL: 24,
			CookieName: "admin_session",
		},
		SMTP: SMTPConfig{
			Port:     587,
			FromName: "Jus de pomme des pionniers d'Ecaussinnes",
			Timeout:  10,
		},
		RateLimit: RateLimitConfig{
			Enabled:     true,
			General:     LimitConfig{Requests: 100, WindowSeconds: 15 * 60},
			Reservation: LimitConfig{Requests: 5, WindowSeconds: 5 * 60},
			Login:       LimitConfig{Requests: 5, WindowSeconds: 15 * 60},
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "juice_reservations",
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendPostgres:
		if !c.Database.HasReader() && !c.Database.HasWriter() {
			return fmt.Errorf("%w: postgres backend needs reader_user or writer_user", ErrInvalidConfig)
		}
	case BackendSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite backend needs sqlite_path", ErrInvalidConfig)
		}
	case BackendMemory, BackendNone:
	default:
		return fmt.Errorf("%w: unknown database backend %q", ErrInvalidConfig, c.Database.Backend)
	}

	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.App.Timezone, err)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.RateLimit.TrustedProxies < 0 {
		return fmt.Errorf("%w: trusted_proxies must not be negative", ErrInvalidConfig)
	}

	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("%w: session_ttl_hours must be positive", ErrInvalidConfig)
	}

	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.App.BaseURL, "BASE_URL")
	setString(&c.App.Environment, "APP_ENV")
	setString(&c.App.Timezone, "APP_TIMEZONE")

	if err := setInt(&c.Server.HTTPPort, "PORT"); err != nil {
		return err
	}

	setString(&c.Database.Backend, "DB_BACKEND")
	setString(&c.Database.Host, "POSTGRES_HOST")
	if err := setInt(&c.Database.Port, "POSTGRES_PORT"); err != nil {
		return err
	}
	setString(&c.Database.DBName, "POSTGRES_DB")
	setString(&c.Database.ReaderUser, "POSTGRES_READER_USER")
	setString(&c.Database.ReaderPassword, "POSTGRES_READER_PASSWORD")
	setString(&c.Database.WriterUser, "POSTGRES_WRITER_USER")
	setString(&c.Database.WriterPassword, "POSTGRES_WRITER_PASSWORD")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")

	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setString(&c.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&c.Admin.SessionSecret, "SESSION_SECRET")

	setString(&c.SMTP.Host, "SMTP_HOST")
	if err := setInt(&c.SMTP.Port, "SMTP_PORT"); err != nil {
		return err
	}
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.From, "SMTP_FROM")

	if err := setInt(&c.RateLimit.TrustedProxies, "TRUSTED_PROXIES"); err != nil {
		return err
	}

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		c.CORS.AllowedOrigins = splitList(v)
	}

	setString(&c.Logs.Level, "LOG_LEVEL")

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// SeasonTieBreak политика выбора сезона при пересекающихся диапазонах
const (
	SeasonTieBreakStartDate = "start_date" // раньше начинающийся сезон выигрывает
	SeasonTieBreakNewest    = "newest"     // последний созданный сезон выигрывает
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	MailService MailServiceConfig `toml:"mail_service"`
	Booking     BookingConfig     `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	AdminToken      string `toml:"admin_token"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// MailServiceConfig настройки внешнего почтового сервиса
type MailServiceConfig struct {
	URL        string `toml:"url"`
	Timeout    int    `toml:"timeout"`
	OwnerEmail string `toml:"owner_email"`
}

// BookingConfig бизнес-настройки движка бронирования
type BookingConfig struct {
	// HoldTTLHours время жизни публичного холда в часах.
	// Просроченный холд перестает блокировать ночь без фоновой очистки.
	HoldTTLHours int `toml:"hold_ttl_hours"`

	// SeasonTieBreak политика "первый подходящий" для пересекающихся
	// сезонов: start_date или newest
	SeasonTieBreak string `toml:"season_tie_break"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "fewo-booking-service",
		},
		MailService: MailServiceConfig{
			Timeout: 10,
		},
		Booking: BookingConfig{
			HoldTTLHours:   72,
			SeasonTieBreak: SeasonTieBreakStartDate,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Server.AdminToken == "" {
		return errors.New("config: server.admin_token is required")
	}
	if c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("config: database.user and database.dbname are required")
	}
	if c.Booking.HoldTTLHours <= 0 {
		return fmt.Errorf("config: booking.hold_ttl_hours must be positive, got %d", c.Booking.HoldTTLHours)
	}
	switch c.Booking.SeasonTieBreak {
	case SeasonTieBreakStartDate, SeasonTieBreakNewest:
	default:
		return fmt.Errorf("config: unknown booking.season_tie_break %q", c.Booking.SeasonTieBreak)
	}
	return nil
}

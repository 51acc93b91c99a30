package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	ResPage   ResPageConfig   `toml:"respage"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulerConfig настройки планировщика обработки заданий
type SchedulerConfig struct {
	IntervalMinutes       int `toml:"interval_minutes"`        // период обработки заданий
	HealthIntervalMinutes int `toml:"health_interval_minutes"` // период health-лога
}

// ResPageConfig настройки клиента ResPage API
type ResPageConfig struct {
	BaseURL        string `toml:"base_url"`
	CampaignID     string `toml:"campaign_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Timezone       string `toml:"timezone"` // фиксированная таймзона площадки

	// Подставные данные для фоновых проверок (см. RequestIdentity)
	PlaceholderEmail      string `toml:"placeholder_email"`
	PlaceholderUnitNumber string `toml:"placeholder_unit_number"`
	PlaceholderLastName   string `toml:"placeholder_last_name"`
}

// Load читает и парсит конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults подставляет безопасные значения для незаполненных полей
func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Scheduler.IntervalMinutes == 0 {
		cfg.Scheduler.IntervalMinutes = 15
	}
	if cfg.Scheduler.HealthIntervalMinutes == 0 {
		cfg.Scheduler.HealthIntervalMinutes = 60
	}
	if cfg.ResPage.TimeoutSeconds == 0 {
		cfg.ResPage.TimeoutSeconds = 30
	}
	if cfg.ResPage.Timezone == "" {
		cfg.ResPage.Timezone = "America/Los_Angeles"
	}
	if cfg.ResPage.PlaceholderEmail == "" {
		cfg.ResPage.PlaceholderEmail = "placeholder@tempmail.org"
	}
	if cfg.ResPage.PlaceholderUnitNumber == "" {
		cfg.ResPage.PlaceholderUnitNumber = "999"
	}
	if cfg.ResPage.PlaceholderLastName == "" {
		cfg.ResPage.PlaceholderLastName = "Smith"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "booking-agent"
	}
}

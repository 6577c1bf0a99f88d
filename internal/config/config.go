package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Pricing  PricingConfig  `toml:"pricing"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PricingConfig тарифные параметры расчета стоимости бронирования.
// Вынесены в конфигурацию, чтобы менять ставки без правки кода расчета.
type PricingConfig struct {
	// FeeRate сервисный сбор, доля от базовой стоимости (0.10 = 10%)
	FeeRate float64 `toml:"fee_rate"`
	// DepositShare доля депозита от стоимости с учетом сбора (0.30 = 30%)
	DepositShare float64 `toml:"deposit_share"`
	// ChairsPerTable количество стульев на один стол
	ChairsPerTable int `toml:"chairs_per_table"`
}

// BookingConfig политика сроков бронирования
type BookingConfig struct {
	// MinLeadTimeDays минимальное количество дней от "сегодня" до даты мероприятия
	MinLeadTimeDays int `toml:"min_lead_time_days"`
	// EditFreezeDays за сколько дней до мероприятия запрещены изменения
	EditFreezeDays int `toml:"edit_freeze_days"`
	// ScheduleWindowStartDays начало окна календаря занятости (дней от "сегодня")
	ScheduleWindowStartDays int `toml:"schedule_window_start_days"`
	// ScheduleWindowEndDays конец окна календаря занятости (включительно)
	ScheduleWindowEndDays int `toml:"schedule_window_end_days"`
}

// Load загружает конфигурацию из toml файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "vh-booking-service"
	}
	if cfg.Pricing.FeeRate == 0 {
		cfg.Pricing.FeeRate = 0.10
	}
	if cfg.Pricing.DepositShare == 0 {
		cfg.Pricing.DepositShare = 0.30
	}
	if cfg.Pricing.ChairsPerTable == 0 {
		cfg.Pricing.ChairsPerTable = 10
	}
	if cfg.Booking.MinLeadTimeDays == 0 {
		cfg.Booking.MinLeadTimeDays = 7
	}
	if cfg.Booking.EditFreezeDays == 0 {
		cfg.Booking.EditFreezeDays = 3
	}
	if cfg.Booking.ScheduleWindowStartDays == 0 {
		cfg.Booking.ScheduleWindowStartDays = 7
	}
	if cfg.Booking.ScheduleWindowEndDays == 0 {
		cfg.Booking.ScheduleWindowEndDays = 21
	}
}

func validate(cfg *Config) error {
	if cfg.Pricing.FeeRate < 0 || cfg.Pricing.FeeRate >= 1 {
		return fmt.Errorf("config: pricing.fee_rate must be in [0, 1), got %v", cfg.Pricing.FeeRate)
	}
	if cfg.Pricing.DepositShare <= 0 || cfg.Pricing.DepositShare >= 1 {
		return fmt.Errorf("config: pricing.deposit_share must be in (0, 1), got %v", cfg.Pricing.DepositShare)
	}
	if cfg.Booking.ScheduleWindowEndDays < cfg.Booking.ScheduleWindowStartDays {
		return fmt.Errorf("config: booking schedule window end (%d) before start (%d)",
			cfg.Booking.ScheduleWindowEndDays, cfg.Booking.ScheduleWindowStartDays)
	}
	return nil
}

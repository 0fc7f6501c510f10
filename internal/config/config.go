package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	"github.com/m04kA/SMC-PetSittingService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig                 `toml:"server"`
	Database      DatabaseConfig               `toml:"database"`
	Logs          LogsConfig                   `toml:"logs"`
	Metrics       MetricsConfig                `toml:"metrics"`
	Booking       BookingConfig                `toml:"booking"`
	BusinessHours map[string]BusinessDayConfig `toml:"business_hours"`
	Cache         CacheConfig                  `toml:"cache"`
	Events        EventsConfig                 `toml:"events"`
	Retention     RetentionConfig              `toml:"retention"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

// BookingConfig политика бронирования
type BookingConfig struct {
	Timezone           string `toml:"timezone"`
	RetentionYears     int    `toml:"retention_years"`
	DefaultStepMinutes int    `toml:"default_step_minutes"`
	PerServiceCapacity bool   `toml:"per_service_capacity"`
}

// BusinessDayConfig расписание одного дня недели
type BusinessDayConfig struct {
	Closed    bool   `toml:"closed"`
	OpenTime  string `toml:"open_time"`
	CloseTime string `toml:"close_time"`
}

// CacheConfig кэш календаря в redis
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
	KeyPrefix  string `toml:"key_prefix"`
}

// TTL время жизни записи кэша
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// EventsConfig публикация событий бронирований в kafka
type EventsConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// RetentionConfig запуск очистки старых данных
type RetentionConfig struct {
	Enabled                 bool   `toml:"enabled"`
	Schedule                string `toml:"schedule"`
	CleanupUnavailabilities bool   `toml:"cleanup_unavailabilities"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load читает конфигурацию из toml файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return finalize(&cfg)
}

// Parse читает конфигурацию из строки (используется в тестах)
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.TxMaxRetries == 0 {
		c.Database.TxMaxRetries = 3
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "petsitting"
	}

	if c.Booking.Timezone == "" {
		c.Booking.Timezone = domain.DefaultTimezone
	}
	if c.Booking.RetentionYears == 0 {
		c.Booking.RetentionYears = domain.DefaultRetentionYears
	}
	if c.Booking.DefaultStepMinutes == 0 {
		c.Booking.DefaultStepMinutes = domain.DefaultStepMinutes
	}

	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 60
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "petsitting:availability"
	}

	if c.Events.Topic == "" {
		c.Events.Topic = "petsitting.bookings"
	}
	if c.Events.WriteTimeout == 0 {
		c.Events.WriteTimeout = 5
	}

	if c.Retention.Schedule == "" {
		c.Retention.Schedule = "0 3 * * *"
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.RetentionYears < 1 {
		return fmt.Errorf("%w: booking.retention_years must be >= 1", ErrInvalidConfig)
	}
	if c.Booking.DefaultStepMinutes < 1 {
		return fmt.Errorf("%w: booking.default_step_minutes must be >= 1", ErrInvalidConfig)
	}
	if _, err := c.businessHours(); err != nil {
		return err
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("%w: events.brokers is required when events are enabled", ErrInvalidConfig)
	}
	if c.Retention.Enabled {
		if _, err := cron.ParseStandard(c.Retention.Schedule); err != nil {
			return fmt.Errorf("%w: retention.schedule %q: %v", ErrInvalidConfig, c.Retention.Schedule, err)
		}
	}
	return nil
}

// Settings собирает неизменяемые настройки домена
func (c *Config) Settings() (domain.Settings, error) {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	hours, err := c.businessHours()
	if err != nil {
		return domain.Settings{}, err
	}

	return domain.Settings{
		Location:           loc,
		RetentionYears:     c.Booking.RetentionYears,
		DefaultStepMinutes: c.Booking.DefaultStepMinutes,
		BusinessHours:      hours,
		PerServiceCapacity: c.Booking.PerServiceCapacity,
	}, nil
}

func (c *Config) businessHours() (domain.BusinessHours, error) {
	if len(c.BusinessHours) == 0 {
		return nil, nil
	}

	hours := make(domain.BusinessHours, len(c.BusinessHours))
	for name, day := range c.BusinessHours {
		weekday, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: business_hours: unknown weekday %q", ErrInvalidConfig, name)
		}
		if day.Closed {
			hours[weekday] = domain.DayHours{Closed: true}
			continue
		}

		open, err := types.NewTimeStringFromString(day.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: business_hours.%s.open_time: %v", ErrInvalidConfig, name, err)
		}
		closeTime, err := types.NewTimeStringFromString(day.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: business_hours.%s.close_time: %v", ErrInvalidConfig, name, err)
		}
		if !open.IsBefore(closeTime) {
			return nil, fmt.Errorf("%w: business_hours.%s: open_time must be before close_time", ErrInvalidConfig, name)
		}
		hours[weekday] = domain.DayHours{OpenTime: open, CloseTime: closeTime}
	}
	return hours, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/notifications"
	"github.com/m04kA/SMC-CarWashBooking/pkg/types"
)

const envPrefix = "CARWASH"

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Транспорт уведомлений
const (
	TransportInline   = "inline"
	TransportRabbitMQ = "rabbitmq"
)

// Config конфигурация сервиса (config.toml + секреты из окружения)
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Business      BusinessConfig      `toml:"business"`
	Admin         AdminConfig         `toml:"admin"`
	Notifications NotificationsConfig `toml:"notifications"`
	Catalog       []ServiceConfig     `toml:"catalog"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"` // секунды
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	BaseURL         string `toml:"base_url"` // для ссылок отмены в письмах
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxMaxAttempts   int    `toml:"tx_max_attempts"`
	TxBackoffMs     int    `toml:"tx_backoff_ms"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled       bool   `toml:"enabled"`
	ServiceName   string `toml:"service_name"`
	Path          string `toml:"path"`
	StatsInterval int    `toml:"stats_interval"` // секунды
}

type BusinessConfig struct {
	OpenTime  types.TimeString `toml:"open_time"`
	CloseTime types.TimeString `toml:"close_time"`
	Timezone  string           `toml:"timezone"`

	SlotStepMinutes int `toml:"slot_step_minutes"`
}

// Location загружает часовой пояс мойки
func (b BusinessConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: business.timezone %q: %v", ErrInvalidConfig, b.Timezone, err)
	}
	return loc, nil
}

// Hours возвращает рабочие часы в часовом поясе мойки
func (b BusinessConfig) Hours() (domain.BusinessHours, error) {
	loc, err := b.Location()
	if err != nil {
		return domain.BusinessHours{}, err
	}
	return domain.BusinessHours{Open: b.OpenTime, Close: b.CloseTime, Location: loc}, nil
}

type AdminConfig struct {
	Username        string `toml:"username"`
	PasswordHash    string `toml:"password_hash"` // bcrypt, см. -hash-password
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

type NotificationsConfig struct {
	Enabled     bool           `toml:"enabled"`
	Transport   string         `toml:"transport"`
	Workers     int            `toml:"workers"`
	QueueSize   int            `toml:"queue_size"`
	SendTimeout int            `toml:"send_timeout"` // секунды
	Email       EmailConfig    `toml:"email"`
	WhatsApp    WhatsAppConfig `toml:"whatsapp"`
	RabbitMQ    RabbitMQConfig `toml:"rabbitmq"`
}

type EmailConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	AdminTo  string `toml:"admin_to"`
}

type WhatsAppConfig struct {
	Enabled    bool   `toml:"enabled"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	From       string `toml:"from"`
	AdminTo    string `toml:"admin_to"`
}

type RabbitMQConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
	Queue    string `toml:"queue"`
	Prefetch int    `toml:"prefetch"`
}

// ServiceConfig услуга каталога
type ServiceConfig struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Price       float64 `toml:"price"`
	Duration    int     `toml:"duration"` // минуты
	Description string  `toml:"description"`
}

// secrets переопределения из окружения: CARWASH_DB_PASSWORD, CARWASH_JWT_SECRET, ...
type secrets struct {
	DBPassword        string `envconfig:"DB_PASSWORD"`
	AdminUsername     string `envconfig:"ADMIN_USERNAME"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `envconfig:"JWT_SECRET"`
	SMTPPassword      string `envconfig:"SMTP_PASSWORD"`
	TwilioAccountSID  string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `envconfig:"TWILIO_AUTH_TOKEN"`
	RabbitMQURL       string `envconfig:"RABBITMQ_URL"`
}

// Load читает config.toml, подгружает .env (если есть) и накладывает секреты из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 10)
	setInt(&c.Server.WriteTimeout, 10)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 15)
	setString(&c.Server.BaseURL, "http://localhost:8080")

	setString(&c.Database.Driver, DriverPostgres)
	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)
	setInt(&c.Database.TxMaxAttempts, 3)
	setInt(&c.Database.TxBackoffMs, 20)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.ServiceName, "carwash-booking")
	setString(&c.Metrics.Path, "/metrics")
	setInt(&c.Metrics.StatsInterval, 15)

	if c.Business.OpenTime.IsZero() {
		c.Business.OpenTime = domain.DefaultOpenTime
	}
	if c.Business.CloseTime.IsZero() {
		c.Business.CloseTime = domain.DefaultCloseTime
	}
	setString(&c.Business.Timezone, domain.DefaultTimezone)
	if c.Business.SlotStepMinutes == 0 {
		c.Business.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}

	setString(&c.Admin.Username, "admin")
	setInt(&c.Admin.TokenTTLMinutes, 720)

	setString(&c.Notifications.Transport, TransportInline)
	setInt(&c.Notifications.Workers, 2)
	setInt(&c.Notifications.QueueSize, 100)
	setInt(&c.Notifications.SendTimeout, 10)
	setInt(&c.Notifications.Email.Port, 587)
	setString(&c.Notifications.RabbitMQ.Exchange, "carwash.events")
	setString(&c.Notifications.RabbitMQ.Queue, "carwash.notifications")
	setInt(&c.Notifications.RabbitMQ.Prefetch, 10)
}

func (c *Config) applyEnv() error {
	var s secrets
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return fmt.Errorf("config: read environment: %w", err)
	}

	override(&c.Database.Password, s.DBPassword)
	override(&c.Admin.Username, s.AdminUsername)
	override(&c.Admin.PasswordHash, s.AdminPasswordHash)
	override(&c.Admin.JWTSecret, s.JWTSecret)
	override(&c.Notifications.Email.Password, s.SMTPPassword)
	override(&c.Notifications.WhatsApp.AccountSID, s.TwilioAccountSID)
	override(&c.Notifications.WhatsApp.AuthToken, s.TwilioAuthToken)
	override(&c.Notifications.RabbitMQ.URL, s.RabbitMQURL)
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required for postgres", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if err := c.Business.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: business.open_time: %v", ErrInvalidConfig, err)
	}
	if err := c.Business.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: business.close_time: %v", ErrInvalidConfig, err)
	}
	if !c.Business.OpenTime.IsBefore(c.Business.CloseTime) {
		return fmt.Errorf("%w: business.open_time must be before close_time", ErrInvalidConfig)
	}
	if _, err := c.Business.Location(); err != nil {
		return err
	}
	if c.Business.SlotStepMinutes < 0 {
		return fmt.Errorf("%w: business.slot_step_minutes must be positive", ErrInvalidConfig)
	}

	if len(c.Catalog) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrInvalidConfig)
	}
	if _, err := catalog.New(c.Services()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Admin.JWTSecret == "" || c.Admin.PasswordHash == "" {
		return fmt.Errorf("%w: admin.jwt_secret and admin.password_hash are required", ErrInvalidConfig)
	}

	switch c.Notifications.Transport {
	case TransportInline:
	case TransportRabbitMQ:
		if c.Notifications.Enabled && c.Notifications.RabbitMQ.URL == "" {
			return fmt.Errorf("%w: notifications.rabbitmq.url is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifications.transport %q", ErrInvalidConfig, c.Notifications.Transport)
	}

	return nil
}

// Services конвертирует секцию [[catalog]] в определения услуг
func (c *Config) Services() []domain.ServiceDefinition {
	defs := make([]domain.ServiceDefinition, 0, len(c.Catalog))
	for _, s := range c.Catalog {
		defs = append(defs, domain.ServiceDefinition{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.Duration,
			Description:     s.Description,
		})
	}
	return defs
}

// NotificationChannels возвращает включённые каналы доставки уведомлений
func (c *Config) NotificationChannels() notifications.Channels {
	var ch notifications.Channels

	if e := c.Notifications.Email; e.Enabled {
		ch.Email = &notifications.EmailConfig{
			Host:     e.Host,
			Port:     e.Port,
			Username: e.Username,
			Password: e.Password,
			From:     e.From,
			AdminTo:  e.AdminTo,
			BaseURL:  c.Server.BaseURL,
		}
	}

	if w := c.Notifications.WhatsApp; w.Enabled {
		ch.WhatsApp = &notifications.WhatsAppConfig{
			AccountSID: w.AccountSID,
			AuthToken:  w.AuthToken,
			From:       w.From,
			AdminTo:    w.AdminTo,
		}
	}

	return ch
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func override(v *string, env string) {
	if env != "" {
		*v = env
	}
}

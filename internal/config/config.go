package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	List     ListConfig     `mapstructure:"list"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	HTTPPort       int      `mapstructure:"http_port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MongoConfig holds the document store configuration
type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds the relational store configuration (mysql or postgres)
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	Charset      string `mapstructure:"charset"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN returns the data source name for the configured driver
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name, c.Charset)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Addr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// NotifyConfig holds the side-effect dispatcher configuration
type NotifyConfig struct {
	QueueSize       int           `mapstructure:"queue_size"`
	WorkerNum       int           `mapstructure:"worker_num"`
	TaskTimeout     time.Duration `mapstructure:"task_timeout"`
	PushRelayURL    string        `mapstructure:"push_relay_url"`
	BrevoAPIKey     string        `mapstructure:"brevo_api_key"`
	BrevoURL        string        `mapstructure:"brevo_url"`
	SenderEmail     string        `mapstructure:"sender_email"`
	SenderName      string        `mapstructure:"sender_name"`
	FrontendURL     string        `mapstructure:"frontend_url"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
}

// Status match modes for list filters
const (
	StatusMatchExact = "exact"
	StatusMatchFuzzy = "fuzzy"
)

// ListConfig holds list endpoint defaults
type ListConfig struct {
	DefaultLimit int64  `mapstructure:"default_limit"`
	MaxLimit     int64  `mapstructure:"max_limit"`
	StatusMatch  string `mapstructure:"status_match"`
}

// JobsConfig holds cron job schedules
type JobsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	StatusUpdateSpec     string `mapstructure:"status_update_spec"`
	ReminderDailySpec    string `mapstructure:"reminder_daily_spec"`
	ReminderIntervalSpec string `mapstructure:"reminder_interval_spec"`
}

// Global config instance
var GlobalConfig *Config

// Load loads configuration from file, .env and REALTY_* environment variables
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("realty")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("jobs.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "realty"
	}
	if cfg.Mongo.Timeout == 0 {
		cfg.Mongo.Timeout = 10 * time.Second
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 100
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "realty:"
	}
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 168 // 7 days
	}
	if cfg.Notify.QueueSize == 0 {
		cfg.Notify.QueueSize = 1024
	}
	if cfg.Notify.WorkerNum == 0 {
		cfg.Notify.WorkerNum = 4
	}
	if cfg.Notify.TaskTimeout == 0 {
		cfg.Notify.TaskTimeout = 10 * time.Second
	}
	if cfg.Notify.BrevoURL == "" {
		cfg.Notify.BrevoURL = "https://api.brevo.com/v3/smtp/email"
	}
	if cfg.Notify.SenderName == "" {
		cfg.Notify.SenderName = "Realty"
	}
	if cfg.Notify.NotificationTTL == 0 {
		cfg.Notify.NotificationTTL = 30 * 24 * time.Hour
	}
	if cfg.List.DefaultLimit == 0 {
		cfg.List.DefaultLimit = 10
	}
	if cfg.List.MaxLimit == 0 {
		cfg.List.MaxLimit = 100
	}
	if cfg.List.StatusMatch == "" {
		cfg.List.StatusMatch = StatusMatchExact
	}
	if cfg.Jobs.StatusUpdateSpec == "" {
		cfg.Jobs.StatusUpdateSpec = "*/15 * * * *"
	}
	if cfg.Jobs.ReminderDailySpec == "" {
		cfg.Jobs.ReminderDailySpec = "0 10 * * *"
	}
	if cfg.Jobs.ReminderIntervalSpec == "" {
		cfg.Jobs.ReminderIntervalSpec = "*/10 * * * *"
	}
}

func (cfg *Config) validate() error {
	switch cfg.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	switch cfg.List.StatusMatch {
	case StatusMatchExact, StatusMatchFuzzy:
	default:
		return fmt.Errorf("unsupported list.status_match: %s", cfg.List.StatusMatch)
	}
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Monitoring    MonitoringConfig
	Notifications NotificationsConfig
	NATS          NATSConfig
	Redis         RedisConfig
	CloudWatch    CloudWatchConfig
	Security      SecurityConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// MonitoringConfig задает расписание движка мониторинга
type MonitoringConfig struct {
	TickInterval  time.Duration // интервал цикла collect -> evaluate -> notify
	SweepInterval time.Duration // интервал retention sweep
	RetentionDays int
	RulesFile     string // YAML файл с правилами алертов и списком сервисов
	Hostname      string // идентификатор источника метрик
}

// NotificationsConfig описывает каналы доставки уведомлений
type NotificationsConfig struct {
	Console ConsoleChannelConfig
	Email   EmailChannelConfig
	Webhook WebhookChannelConfig
}

type ConsoleChannelConfig struct {
	Enabled bool
}

type EmailChannelConfig struct {
	Enabled    bool
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	Recipients []string
	Timeout    time.Duration
}

type WebhookChannelConfig struct {
	Enabled bool
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

type NATSConfig struct {
	Enabled bool
	URL     string
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	TTL          time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CloudWatchConfig struct {
	MetricsEnabled           bool
	LogsEnabled              bool
	Region                   string
	Endpoint                 string
	AccessKeyID              string
	SecretAccessKey          string
	MetricsNamespace         string
	MetricsBufferSize        int
	MetricsFlushInterval     time.Duration
	MetricsStorageResolution int32
	LogGroupName             string
	LogStreamName            string
	LogsBufferSize           int
	LogsFlushInterval        time.Duration
}

type SecurityConfig struct {
	AllowedOrigins []string
	AuthEnabled    bool
	AuthToken      string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	tickInterval, err := time.ParseDuration(getEnv("MONITORING_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITORING_INTERVAL: %w", err)
	}

	sweepInterval, err := time.ParseDuration(getEnv("RETENTION_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_SWEEP_INTERVAL: %w", err)
	}

	retentionDays, err := strconv.Atoi(getEnv("RETENTION_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_DAYS: %w", err)
	}

	emailTimeout, err := time.ParseDuration(getEnv("EMAIL_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_TIMEOUT: %w", err)
	}

	webhookTimeout, err := time.ParseDuration(getEnv("WEBHOOK_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnv("REDIS_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_CACHE_TTL: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	hostname := getEnv("MONITOR_HOSTNAME", "")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	if hostname == "" {
		hostname = "unknown-host"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "monitoring"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 10 * time.Minute,
		},
		Monitoring: MonitoringConfig{
			TickInterval:  tickInterval,
			SweepInterval: sweepInterval,
			RetentionDays: retentionDays,
			RulesFile:     getEnv("RULES_FILE", "configs/rules.yaml"),
			Hostname:      hostname,
		},
		Notifications: NotificationsConfig{
			Console: ConsoleChannelConfig{
				Enabled: getEnvBool("NOTIFY_CONSOLE_ENABLED", true),
			},
			Email: EmailChannelConfig{
				Enabled:    getEnvBool("NOTIFY_EMAIL_ENABLED", false),
				Host:       getEnv("SMTP_HOST", "localhost"),
				Port:       getEnv("SMTP_PORT", "587"),
				Username:   getEnv("SMTP_USERNAME", ""),
				Password:   getEnv("SMTP_PASSWORD", ""),
				From:       getEnv("SMTP_FROM", "monitoring@localhost"),
				Recipients: splitCSV(getEnv("SMTP_RECIPIENTS", "")),
				Timeout:    emailTimeout,
			},
			Webhook: WebhookChannelConfig{
				Enabled: getEnvBool("NOTIFY_WEBHOOK_ENABLED", false),
				URL:     getEnv("WEBHOOK_URL", ""),
				Headers: splitKV(getEnv("WEBHOOK_HEADERS", "")),
				Timeout: webhookTimeout,
			},
		},
		NATS: NATSConfig{
			Enabled: getEnvBool("NATS_ENABLED", false),
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Redis: RedisConfig{
			Enabled:      getEnvBool("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           redisDB,
			TTL:          redisTTL,
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		CloudWatch: CloudWatchConfig{
			MetricsEnabled:           getEnvBool("CLOUDWATCH_METRICS_ENABLED", false),
			LogsEnabled:              getEnvBool("CLOUDWATCH_LOGS_ENABLED", false),
			Region:                   getEnv("CLOUDWATCH_REGION", "us-east-1"),
			Endpoint:                 getEnv("CLOUDWATCH_ENDPOINT", ""),
			AccessKeyID:              getEnv("CLOUDWATCH_ACCESS_KEY_ID", ""),
			SecretAccessKey:          getEnv("CLOUDWATCH_SECRET_ACCESS_KEY", ""),
			MetricsNamespace:         getEnv("CLOUDWATCH_METRICS_NAMESPACE", "MonitoringEngine/System"),
			MetricsBufferSize:        100,
			MetricsFlushInterval:     10 * time.Second,
			MetricsStorageResolution: 60,
			LogGroupName:             getEnv("CLOUDWATCH_LOG_GROUP", "/monitoring-engine/app"),
			LogStreamName:            getEnv("CLOUDWATCH_LOG_STREAM", hostname),
			LogsBufferSize:           50,
			LogsFlushInterval:        5 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")),
			AuthEnabled:    getEnvBool("AUTH_ENABLED", false),
			AuthToken:      getEnv("AUTH_BEARER_TOKEN", ""),
		},
	}

	if cfg.Security.AuthEnabled && cfg.Security.AuthToken == "" {
		return nil, fmt.Errorf("AUTH_BEARER_TOKEN is required when AUTH_ENABLED=true")
	}

	if cfg.Notifications.Webhook.Enabled && cfg.Notifications.Webhook.URL == "" {
		return nil, fmt.Errorf("WEBHOOK_URL is required when NOTIFY_WEBHOOK_ENABLED=true")
	}

	if cfg.Notifications.Email.Enabled && len(cfg.Notifications.Email.Recipients) == 0 {
		return nil, fmt.Errorf("SMTP_RECIPIENTS is required when NOTIFY_EMAIL_ENABLED=true")
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func splitCSV(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// splitKV разбирает строку вида "Key1=Val1,Key2=Val2" в map
func splitKV(raw string) map[string]string {
	out := make(map[string]string)
	for _, part := range splitCSV(raw) {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

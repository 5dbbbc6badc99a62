package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Notify    NotifyConfig
	Outbox    OutboxConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig verifies tokens issued by the identity provider.
// Exactly one of Secret (HS256) or PublicKeyPEM (RS256) must be set.
type JWTConfig struct {
	Secret       string        `envconfig:"JWT_SECRET"`
	PublicKeyPEM string        `envconfig:"JWT_PUBLIC_KEY_PEM"`
	Issuer       string        `envconfig:"JWT_ISSUER"`
	Audiences    []string      `envconfig:"JWT_AUDIENCES"`
	RolesClient  string        `envconfig:"JWT_ROLES_CLIENT" default:"account"`
	Leeway       time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

type RedisConfig struct {
	URL          string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	StreamPrefix string `envconfig:"REDIS_STREAM_PREFIX" default:"notify:"`
	StreamMaxLen int64  `envconfig:"REDIS_STREAM_MAX_LEN" default:"10000"`
}

const (
	NotifyBackendRedis  = "redis"
	NotifyBackendOutbox = "outbox"
	NotifyBackendLog    = "log"
)

type NotifyConfig struct {
	Backend             string        `envconfig:"NOTIFY_BACKEND" default:"outbox"`
	ConversationChannel string        `envconfig:"NOTIFY_CONVERSATION_CHANNEL" default:"conversation-creation"`
	AuditChannel        string        `envconfig:"NOTIFY_AUDIT_CHANNEL" default:"audit"`
	SendTimeout         time.Duration `envconfig:"NOTIFY_SEND_TIMEOUT" default:"3s"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"1s"`
	BatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"8"`
	RetryBase    time.Duration `envconfig:"OUTBOX_RETRY_BASE" default:"2s"`
}

type TelemetryConfig struct {
	Enabled     bool   `envconfig:"OTEL_ENABLED" default:"false"`
	Endpoint    string `envconfig:"OTEL_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"request-hub"`
}

var (
	ErrJWTKeyMissing   = errors.New("one of JWT_SECRET or JWT_PUBLIC_KEY_PEM is required")
	ErrJWTKeyAmbiguous = errors.New("JWT_SECRET and JWT_PUBLIC_KEY_PEM are mutually exclusive")
	ErrUnknownBackend  = errors.New("NOTIFY_BACKEND must be one of redis, outbox, log")
)

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch {
	case c.JWT.Secret == "" && c.JWT.PublicKeyPEM == "":
		return ErrJWTKeyMissing
	case c.JWT.Secret != "" && c.JWT.PublicKeyPEM != "":
		return ErrJWTKeyAmbiguous
	}
	switch c.Notify.Backend {
	case NotifyBackendRedis, NotifyBackendOutbox, NotifyBackendLog:
	default:
		return ErrUnknownBackend
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:      "test-secret-key-for-signing-tokens",
			RolesClient: "account",
			Leeway:      time.Second,
		},
		Redis: RedisConfig{
			URL:          "redis://localhost:6379/0",
			StreamPrefix: "notify:",
			StreamMaxLen: 1000,
		},
		Notify: NotifyConfig{
			Backend:             NotifyBackendRedis,
			ConversationChannel: "conversation-creation",
			AuditChannel:        "audit",
			SendTimeout:         time.Second,
		},
		Outbox: OutboxConfig{
			PollInterval: 50 * time.Millisecond,
			BatchSize:    10,
			MaxAttempts:  3,
			RetryBase:    10 * time.Millisecond,
		},
	}
}

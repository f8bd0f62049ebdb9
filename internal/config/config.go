package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Events   EventsConfig
	Log      LogConfig
	Worker   WorkerConfig
	Metrics  MetricsConfig
	Tracing  TracingConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Host             string
	Port             int
	Env              string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// EventsConfig - publishing of change events to Redis Streams
type EventsConfig struct {
	Enabled bool
	Stream  string
}

type LogConfig struct {
	Level  string
	Format string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	ConsumerName      string
	BatchSize         int64
	StreamReadTimeout time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// TracingConfig - OpenTelemetry export. Provider is one of "none", "stdout"
// or "otlp" (OTLP over HTTP to Endpoint).
type TracingConfig struct {
	Provider    string
	Endpoint    string
	Insecure    bool
	SampleRatio float64
	ServiceName string
}

func (t TracingConfig) Enabled() bool {
	return t.Provider != "" && t.Provider != "none"
}

type SecurityConfig struct {
	BcryptCost int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_READ_TIMEOUT", 15)
	v.SetDefault("API_WRITE_TIMEOUT", 15)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "rutea")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("EVENTS_ENABLED", false)
	v.SetDefault("EVENTS_STREAM", "stream:rutea:changes")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "rutea-activity-workers")
	v.SetDefault("WORKER_CONSUMER_NAME", "")
	v.SetDefault("WORKER_BATCH_SIZE", 50)
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("METRICS_ENABLED", true)

	v.SetDefault("TRACING_PROVIDER", "none")
	v.SetDefault("TRACING_ENDPOINT", "localhost:4318")
	v.SetDefault("TRACING_INSECURE", true)
	v.SetDefault("TRACING_SAMPLE_RATIO", 1.0)
	v.SetDefault("TRACING_SERVICE_NAME", "rutea-api")

	v.SetDefault("BCRYPT_COST", 10)
}

// Load reads an optional .env file from the working directory, then
// environment variables, which take precedence.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:             v.GetString("API_HOST"),
			Port:             v.GetInt("API_PORT"),
			Env:              v.GetString("API_ENV"),
			ReadTimeout:      time.Duration(v.GetInt("API_READ_TIMEOUT")) * time.Second,
			WriteTimeout:     time.Duration(v.GetInt("API_WRITE_TIMEOUT")) * time.Second,
			CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Events: EventsConfig{
			Enabled: v.GetBool("EVENTS_ENABLED"),
			Stream:  v.GetString("EVENTS_STREAM"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			ConsumerName:      v.GetString("WORKER_CONSUMER_NAME"),
			BatchSize:         v.GetInt64("WORKER_BATCH_SIZE"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Tracing: TracingConfig{
			Provider:    strings.ToLower(v.GetString("TRACING_PROVIDER")),
			Endpoint:    v.GetString("TRACING_ENDPOINT"),
			Insecure:    v.GetBool("TRACING_INSECURE"),
			SampleRatio: v.GetFloat64("TRACING_SAMPLE_RATIO"),
			ServiceName: v.GetString("TRACING_SERVICE_NAME"),
		},
		Security: SecurityConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the services cannot start with.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("API_PORT %d out of range", c.Server.Port))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "DB_HOST and DB_NAME are required")
	}
	if c.Events.Stream == "" {
		problems = append(problems, "EVENTS_STREAM must not be empty")
	}
	if c.Worker.BatchSize <= 0 {
		problems = append(problems, "WORKER_BATCH_SIZE must be positive")
	}
	switch c.Tracing.Provider {
	case "", "none", "stdout", "otlp":
	default:
		problems = append(problems, fmt.Sprintf("TRACING_PROVIDER %q unknown", c.Tracing.Provider))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, fmt.Sprintf("TRACING_SAMPLE_RATIO %v out of range 0..1", c.Tracing.SampleRatio))
	}
	// bcrypt accepts 4..31
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		problems = append(problems, fmt.Sprintf("BCRYPT_COST %d out of range 4..31", c.Security.BcryptCost))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// GetDatabaseURL returns the DSN in URL form, as golang-migrate expects it.
func (c *Config) GetDatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.DBName,
		RawQuery: url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

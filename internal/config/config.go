package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, backing stores,
// the reputation provider, classifier tuning and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// Zero disables it, which the settings event stream relies on.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"0s" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes limits the size of request bodies
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"10485760" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// EnableRiverUI mounts the job dashboard under /riverui/
		EnableRiverUI bool `env:"HTTP_ENABLE_RIVER_UI" env-default:"true" yaml:"enableRiverUI"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"webguard" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Redis backs the daily quota counters and the settings event channel
	Redis struct {
		Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379" yaml:"addr"`
		Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`
		DB       int    `env:"REDIS_DB" env-default:"0" yaml:"db"`
	} `yaml:"redis"`

	// Reputation configures the threat lookup provider
	Reputation struct {
		// APIKey is never compiled in; set it through REPUTATION_API_KEY
		APIKey        string        `env:"REPUTATION_API_KEY" yaml:"apiKey"`
		Endpoint      string        `env:"REPUTATION_ENDPOINT" env-default:"https://safebrowsing.googleapis.com/v4/threatMatches:find" yaml:"endpoint"` //nolint: lll
		ClientID      string        `env:"REPUTATION_CLIENT_ID" env-default:"secure-website-scanner" yaml:"clientId"`
		ClientVersion string        `env:"REPUTATION_CLIENT_VERSION" env-default:"1.0.0" yaml:"clientVersion"`
		Timeout       time.Duration `env:"REPUTATION_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"reputation"`

	Quota struct {
		// DailyLimit is the number of URL checks per user and UTC day; zero or less disables the limit
		DailyLimit int `env:"QUOTA_DAILY_LIMIT" env-default:"10" yaml:"dailyLimit"`
	} `yaml:"quota"`

	// JWT holds the RS256 key pair used to verify and issue bearer tokens
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	CORS struct {
		// AllowedOrigins are glob patterns such as chrome-extension://*
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"chrome-extension://*,moz-extension://*,http://localhost:*" yaml:"allowedOrigins"` //nolint: lll
	} `yaml:"cors"`

	// Classifier tunes the page classifiers; empty lists use the built-in defaults
	Classifier struct {
		AllowKeywords    []string `env:"CLASSIFIER_ALLOW_KEYWORDS" yaml:"allowKeywords"`
		BlockKeywords    []string `env:"CLASSIFIER_BLOCK_KEYWORDS" yaml:"blockKeywords"`
		ShortenerDomains []string `env:"CLASSIFIER_SHORTENER_DOMAINS" yaml:"shortenerDomains"`
		// WholeWords matches keywords on word boundaries instead of as substrings
		WholeWords bool `env:"CLASSIFIER_WHOLE_WORDS" env-default:"false" yaml:"wholeWords"`
	} `yaml:"classifier"`

	Inspector struct {
		// BatchConcurrency bounds the parallel lookups of a batch URL check
		BatchConcurrency int `env:"INSPECTOR_BATCH_CONCURRENCY" env-default:"4" yaml:"batchConcurrency"`
		// MaxBatchSize is the largest number of URLs accepted in one batch
		MaxBatchSize int `env:"INSPECTOR_MAX_BATCH_SIZE" env-default:"20" yaml:"maxBatchSize"`
	} `yaml:"inspector"`

	Worker struct {
		// MaxWorkers is the number of concurrent settings event jobs
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
	} `yaml:"worker"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// An empty path reads the configuration from the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	var err error
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

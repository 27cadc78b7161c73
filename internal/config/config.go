package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	Vision     VisionConfig
	Forex      ForexConfig
	Redis      RedisConfig
	Extraction ExtractionConfig
	Policy     PolicyConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds document blob storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// VisionConfig holds settings for the multimodal extraction service.
type VisionConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ForexConfig holds exchange-rate provider settings. The provider is a
// courtesy external service, so calls carry a short timeout and results are
// cached for a window.
type ForexConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	TimeoutSecs  int           `mapstructure:"timeout_secs"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	FallbackRate string        `mapstructure:"fallback_rate"`
	BaseDefault  string        `mapstructure:"base_default"`
	QuoteDefault string        `mapstructure:"quote_default"`
}

// RedisConfig holds cache settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ExtractionConfig holds strategy-chain dispatch settings.
type ExtractionConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// PolicyConfig holds workflow policy toggles.
type PolicyConfig struct {
	// LockFieldsAfterReview, when true, blocks broker field edits once an
	// entry has left PENDING. Off by default to match the observed behavior
	// of broker screens staying editable.
	LockFieldsAfterReview bool `mapstructure:"lock_fields_after_review"`
}

// Load reads configuration from environment variables with the DECLARA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DECLARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "declara")
	v.SetDefault("db.password", "declara_secret")
	v.SetDefault("db.name", "declara_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-1")
	v.SetDefault("s3.bucket", "declara-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Vision defaults
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.model", "gemini-2.0-flash")
	v.SetDefault("vision.endpoint", "")
	v.SetDefault("vision.timeout_secs", 120)

	// Forex defaults
	v.SetDefault("forex.endpoint", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("forex.timeout_secs", 5)
	v.SetDefault("forex.cache_ttl", "1h")
	v.SetDefault("forex.fallback_rate", "58.50")
	v.SetDefault("forex.base_default", "USD")
	v.SetDefault("forex.quote_default", "PHP")

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Extraction defaults
	v.SetDefault("extraction.concurrency", 4)

	// Policy defaults
	v.SetDefault("policy.lock_fields_after_review", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "DECLARA_SERVER_PORT",
		"server.read_timeout":             "DECLARA_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "DECLARA_SERVER_WRITE_TIMEOUT",
		"server.environment":              "DECLARA_SERVER_ENVIRONMENT",
		"db.host":                         "DECLARA_DB_HOST",
		"db.port":                         "DECLARA_DB_PORT",
		"db.user":                         "DECLARA_DB_USER",
		"db.password":                     "DECLARA_DB_PASSWORD",
		"db.name":                         "DECLARA_DB_NAME",
		"db.sslmode":                      "DECLARA_DB_SSLMODE",
		"db.max_open":                     "DECLARA_DB_MAX_OPEN",
		"db.max_idle":                     "DECLARA_DB_MAX_IDLE",
		"s3.region":                       "DECLARA_S3_REGION",
		"s3.bucket":                       "DECLARA_S3_BUCKET",
		"s3.endpoint":                     "DECLARA_S3_ENDPOINT",
		"s3.access_key":                   "DECLARA_S3_ACCESS_KEY",
		"s3.secret_key":                   "DECLARA_S3_SECRET_KEY",
		"s3.max_file_size_mb":             "DECLARA_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":               "DECLARA_S3_PRESIGN_EXPIRY",
		"log.level":                       "DECLARA_LOG_LEVEL",
		"log.format":                      "DECLARA_LOG_FORMAT",
		"vision.api_key":                  "DECLARA_VISION_API_KEY",
		"vision.model":                    "DECLARA_VISION_MODEL",
		"vision.endpoint":                 "DECLARA_VISION_ENDPOINT",
		"vision.timeout_secs":             "DECLARA_VISION_TIMEOUT_SECS",
		"forex.endpoint":                  "DECLARA_FOREX_ENDPOINT",
		"forex.timeout_secs":              "DECLARA_FOREX_TIMEOUT_SECS",
		"forex.cache_ttl":                 "DECLARA_FOREX_CACHE_TTL",
		"forex.fallback_rate":             "DECLARA_FOREX_FALLBACK_RATE",
		"forex.base_default":              "DECLARA_FOREX_BASE_DEFAULT",
		"forex.quote_default":             "DECLARA_FOREX_QUOTE_DEFAULT",
		"redis.addr":                      "DECLARA_REDIS_ADDR",
		"redis.password":                  "DECLARA_REDIS_PASSWORD",
		"redis.db":                        "DECLARA_REDIS_DB",
		"extraction.concurrency":          "DECLARA_EXTRACTION_CONCURRENCY",
		"policy.lock_fields_after_review": "DECLARA_POLICY_LOCK_FIELDS_AFTER_REVIEW",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DECLARA_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DECLARA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Vision = VisionConfig{
		APIKey:      v.GetString("vision.api_key"),
		Model:       v.GetString("vision.model"),
		Endpoint:    v.GetString("vision.endpoint"),
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
	}
	cfg.Forex = ForexConfig{
		Endpoint:     v.GetString("forex.endpoint"),
		TimeoutSecs:  v.GetInt("forex.timeout_secs"),
		CacheTTL:     v.GetDuration("forex.cache_ttl"),
		FallbackRate: v.GetString("forex.fallback_rate"),
		BaseDefault:  v.GetString("forex.base_default"),
		QuoteDefault: v.GetString("forex.quote_default"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.Extraction = ExtractionConfig{
		Concurrency: v.GetInt("extraction.concurrency"),
	}
	cfg.Policy = PolicyConfig{
		LockFieldsAfterReview: v.GetBool("policy.lock_fields_after_review"),
	}

	return cfg, nil
}

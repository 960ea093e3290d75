package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/eventpage/guestbook/internal/storage"
)

// Supported guestbook backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMinIO  = "minio"
	BackendBolt   = "bolt"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Guestbook GuestbookConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	MinIO     storage.MinIOConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	CORSAllowOrigin string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// GuestbookConfig selects and parameterizes the Store backend.
type GuestbookConfig struct {
	Backend         string
	DataFile        string
	SerializeWrites bool
	MongoCollection string
	DocumentID      string
	RedisKey        string
	ObjectKey       string
	BoltPath        string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port.
func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and an optional
// .env file and validates it.
func LoadConfig() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration without validating it, so callers can apply
// overrides first.
func Load() *Config {
	envFile := os.Getenv("GUESTBOOK_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5020")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("CORS_ALLOW_ORIGIN", "*")
	viper.SetDefault("GUESTBOOK_BACKEND", BackendFile)
	viper.SetDefault("GUESTBOOK_DATA_FILE", "data/messages.json")
	viper.SetDefault("GUESTBOOK_SERIALIZE_WRITES", true)
	viper.SetDefault("GUESTBOOK_MONGO_COLLECTION", "guestbook")
	viper.SetDefault("GUESTBOOK_DOCUMENT_ID", "guestbook")
	viper.SetDefault("GUESTBOOK_REDIS_KEY", "guestbook:document")
	viper.SetDefault("GUESTBOOK_OBJECT_KEY", "guestbook/messages.json")
	viper.SetDefault("GUESTBOOK_BOLT_PATH", "data/guestbook.bolt")
	viper.SetDefault("MONGODB_DATABASE", "guestbook")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("MINIO_BUCKET", "guestbook")
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:            viper.GetString("SERVER_PORT"),
			Host:            viper.GetString("SERVER_HOST"),
			Environment:     viper.GetString("SERVER_ENVIRONMENT"),
			CORSAllowOrigin: viper.GetString("CORS_ALLOW_ORIGIN"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
		},
		Guestbook: GuestbookConfig{
			Backend:         strings.ToLower(strings.TrimSpace(viper.GetString("GUESTBOOK_BACKEND"))),
			DataFile:        viper.GetString("GUESTBOOK_DATA_FILE"),
			SerializeWrites: viper.GetBool("GUESTBOOK_SERIALIZE_WRITES"),
			MongoCollection: viper.GetString("GUESTBOOK_MONGO_COLLECTION"),
			DocumentID:      viper.GetString("GUESTBOOK_DOCUMENT_ID"),
			RedisKey:        viper.GetString("GUESTBOOK_REDIS_KEY"),
			ObjectKey:       viper.GetString("GUESTBOOK_OBJECT_KEY"),
			BoltPath:        viper.GetString("GUESTBOOK_BOLT_PATH"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		MinIO: storage.MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	return cfg
}

// Validate checks that the selected backend has what it needs to connect.
func (c *Config) Validate() error {
	switch c.Guestbook.Backend {
	case BackendFile:
		if c.Guestbook.DataFile == "" {
			return fmt.Errorf("GUESTBOOK_DATA_FILE is required for the %s backend", BackendFile)
		}
	case BackendMemory:
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI is required for the %s backend", BackendMongo)
		}
	case BackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the %s backend", BackendRedis)
		}
	case BackendMinIO:
		if !c.MinIO.Configured() {
			return fmt.Errorf("MINIO_ENDPOINT is required for the %s backend", BackendMinIO)
		}
	case BackendBolt:
		if c.Guestbook.BoltPath == "" {
			return fmt.Errorf("GUESTBOOK_BOLT_PATH is required for the %s backend", BackendBolt)
		}
	default:
		return fmt.Errorf("unknown GUESTBOOK_BACKEND %q", c.Guestbook.Backend)
	}
	if c.RateLimit.Enabled && c.RateLimit.UseRedis && c.Redis.Host == "" {
		return fmt.Errorf("RATE_LIMIT_USE_REDIS requires REDIS_HOST")
	}
	return nil
}

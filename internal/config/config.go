package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendFilesystem = "filesystem"
	BackendMemory     = "memory"
	BackendPostgres   = "postgres"
	BackendMongo      = "mongo"
	BackendMinio      = "minio"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Drafts  DraftConfig
	Render  RenderConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	MaxBodySize int64
}

type StoreConfig struct {
	Backend       string
	Dir           string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	Minio         MinioConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type DraftConfig struct {
	RedisURL string
	TTL      time.Duration
}

type RenderConfig struct {
	ChromePath string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func (s ServerConfig) Addr() string { return s.Host + ":" + s.Port }

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("MAX_BODY_SIZE", "5MB")
	v.SetDefault("STORE_BACKEND", BackendFilesystem)
	v.SetDefault("STORE_DIR", "data/cv")
	v.SetDefault("MONGODB_DATABASE", "cv_generator")
	v.SetDefault("MINIO_BUCKET", "cv-generator")
	v.SetDefault("DRAFT_TTL", "720h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	maxBody, err := units.FromHumanSize(v.GetString("MAX_BODY_SIZE"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_BODY_SIZE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			MaxBodySize: maxBody,
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(v.GetString("STORE_BACKEND")),
			Dir:           v.GetString("STORE_DIR"),
			DatabaseURL:   v.GetString("DATABASE_URL"),
			MongoURI:      v.GetString("MONGODB_URI"),
			MongoDatabase: v.GetString("MONGODB_DATABASE"),
			Minio: MinioConfig{
				Endpoint:  v.GetString("MINIO_ENDPOINT"),
				AccessKey: v.GetString("MINIO_ACCESS_KEY"),
				SecretKey: os.Getenv("MINIO_SECRET_KEY"),
				UseSSL:    v.GetBool("MINIO_USE_SSL"),
				Bucket:    v.GetString("MINIO_BUCKET"),
			},
		},
		Drafts: DraftConfig{
			RedisURL: v.GetString("REDIS_URL"),
			TTL:      v.GetDuration("DRAFT_TTL"),
		},
		Render: RenderConfig{
			ChromePath: v.GetString("CHROME_PATH"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.MaxBodySize <= 0 {
		return fmt.Errorf("MAX_BODY_SIZE must be positive")
	}
	switch c.Store.Backend {
	case BackendFilesystem:
		if c.Store.Dir == "" {
			return fmt.Errorf("STORE_DIR is required for the filesystem backend")
		}
	case BackendMemory:
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo backend")
		}
	case BackendMinio:
		if c.Store.Minio.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required for the minio backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

// NewLogger builds the process logger from the logging settings.
func (c LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Level)}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

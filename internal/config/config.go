package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"

	BackendFile   = "file"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Driver string
		Path   string
	}
	Storage struct {
		Backend  string
		Bucket   string
		Key      string
		Region   string
		Endpoint string
	}
	AWS struct {
		Profile string
	}
	Auth struct {
		BcryptCost int
	}
	Log struct {
		Level  string
		Format string
	}
	Metrics struct {
		Enabled bool
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env, never overrides the environment

	v := viper.New()
	v.SetEnvPrefix("NOTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("database.driver", DriverJSON)
	v.SetDefault("database.path", "data/db.json")
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.key", "notes/db.json")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("auth.bcryptcost", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.enabled", false)

	// DB_PATH is the historical name of the document location.
	if err := v.BindEnv("database.path", "NOTES_DATABASE_PATH", "DB_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind database path env: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))

	switch c.Database.Driver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendS3:
		if strings.TrimSpace(c.Storage.Bucket) == "" {
			return fmt.Errorf("storage bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

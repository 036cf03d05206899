package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	IPLookup  IPLookupConfig  `mapstructure:"ip_lookup"`
	Branding  BrandingConfig  `mapstructure:"branding"`
	Reaper    ReaperConfig    `mapstructure:"reaper"`

	// Runtime flags, set from the command line rather than the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// IPLookupConfig points at the public IP-echo endpoint used to stamp a
// best-effort client address on assessments.
type IPLookupConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	TimeoutSeconds time.Duration `mapstructure:"timeout_seconds"`
}

// BrandingConfig supplies white-label defaults used until an active
// client_branding row exists.
type BrandingConfig struct {
	CompanyName     string   `mapstructure:"company_name"`
	Tagline         string   `mapstructure:"tagline"`
	PrimaryColor    string   `mapstructure:"primary_color"`
	SecondaryColor  string   `mapstructure:"secondary_color"`
	AccentColor     string   `mapstructure:"accent_color"`
	HeroTitle       string   `mapstructure:"hero_title"`
	HeroSubtitle    string   `mapstructure:"hero_subtitle"`
	EnabledFeatures []string `mapstructure:"enabled_features"`
}

// ReaperConfig controls the sweep that moves stale in_progress assessments to
// abandoned.
type ReaperConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	StaleAfter   time.Duration `mapstructure:"stale_after_hours"`
	SweepMinutes time.Duration `mapstructure:"sweep_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("QUESTNOS")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// White-label defaults
	viper.BindEnv("branding.company_name", "BRANDING_COMPANY_NAME")
	viper.BindEnv("branding.primary_color", "BRANDING_PRIMARY_COLOR")
	viper.BindEnv("branding.hero_title", "BRANDING_HERO_TITLE")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.IPLookup.TimeoutSeconds = cfg.IPLookup.TimeoutSeconds * time.Second
	cfg.Reaper.StaleAfter = cfg.Reaper.StaleAfter * time.Hour
	cfg.Reaper.SweepMinutes = cfg.Reaper.SweepMinutes * time.Minute

	// Missing store credentials are fatal for the whole application.
	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("database credentials are incomplete (host=%q user=%q dbname=%q)",
			cfg.Database.Host, cfg.Database.User, cfg.Database.DBName)
	}

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

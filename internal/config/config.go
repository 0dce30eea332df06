package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/joho/godotenv"
)

const (
	StorageKindLocal = "local"
	StorageKindS3    = "s3"
)

// Config holds the speech service configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	Retention RetentionConfig `json:"retention" yaml:"retention"`
	Logger    logger.Config   `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr        string `json:"addr" yaml:"addr"`
	CORSOrigins string `json:"cors_origins" yaml:"cors_origins"`
	BaseURL     string `json:"base_url" yaml:"base_url"`
}

type StorageConfig struct {
	// Kind selects the backend: "local" or "s3".
	Kind     string   `json:"kind" yaml:"kind"`
	LocalDir string   `json:"local_dir" yaml:"local_dir"`
	S3       S3Config `json:"s3" yaml:"s3"`
}

type S3Config struct {
	Bucket    string `json:"bucket" yaml:"bucket"`
	Region    string `json:"region" yaml:"region"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	Prefix    string `json:"prefix" yaml:"prefix"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
}

type RetentionConfig struct {
	// MaxAgeSeconds is the retention window for persisted files.
	MaxAgeSeconds int `json:"max_age_seconds" yaml:"max_age_seconds"`
	// SweepIntervalSeconds is the pause between sweep cycles.
	SweepIntervalSeconds int `json:"sweep_interval_seconds" yaml:"sweep_interval_seconds"`
	// TempMaxAgeSeconds is the grace period for temp_ artifacts.
	TempMaxAgeSeconds int `json:"temp_max_age_seconds" yaml:"temp_max_age_seconds"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":5000",
			CORSOrigins: "http://localhost:5000,http://127.0.0.1:5000",
		},
		Storage: StorageConfig{
			Kind:     StorageKindLocal,
			LocalDir: "./audio_output",
			S3: S3Config{
				Region:   "us-east-1",
				Endpoint: "s3.amazonaws.com",
				Prefix:   "audio/",
				UseSSL:   true,
			},
		},
		Retention: RetentionConfig{
			MaxAgeSeconds:        3600,
			SweepIntervalSeconds: 300,
			TempMaxAgeSeconds:    300,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from .env, an optional YAML file and process
// environment overrides, in that order.
func Load(path string) (*Config, error) {
	// Missing .env is fine; env vars may come from the process environment.
	_ = godotenv.Load()

	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		parsedCfg = cfg
	}

	applyEnv(parsedCfg)
	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// applyEnv maps the environment contract onto the config. Env wins over the
// YAML file so deployments can switch backends without editing files.
func applyEnv(cfg *Config) {
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		cfg.Storage.Kind = strings.ToLower(v)
	}
	if v := os.Getenv("LOCAL_STORAGE_DIR"); v != "" {
		cfg.Storage.LocalDir = v
	}
	if v := os.Getenv("S3_BUCKET_NAME"); v != "" {
		cfg.Storage.S3.Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.Storage.S3.Region = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.Storage.S3.Endpoint = v
	}
	if v := os.Getenv("S3_PREFIX"); v != "" {
		cfg.Storage.S3.Prefix = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.S3.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Storage.S3.SecretKey = v
	}
	if v := os.Getenv("FILE_MAX_AGE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retention.MaxAgeSeconds = n
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Server.BaseURL = strings.TrimRight(v, "/")
	}
}

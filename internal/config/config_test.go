package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.Kind != StorageKindLocal {
		t.Fatalf("default storage kind = %s", cfg.Storage.Kind)
	}
	if cfg.Retention.MaxAgeSeconds != 3600 {
		t.Fatalf("default retention = %d", cfg.Retention.MaxAgeSeconds)
	}
	if cfg.Retention.SweepIntervalSeconds != 300 {
		t.Fatalf("default sweep interval = %d", cfg.Retention.SweepIntervalSeconds)
	}
	if cfg.Retention.TempMaxAgeSeconds != 300 {
		t.Fatalf("default temp max age = %d", cfg.Retention.TempMaxAgeSeconds)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "S3")
	t.Setenv("S3_BUCKET_NAME", "my-audio")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("FILE_MAX_AGE_SECONDS", "7200")
	t.Setenv("BASE_URL", "https://lab.example/")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Kind != StorageKindS3 {
		t.Fatalf("storage kind = %s", cfg.Storage.Kind)
	}
	if cfg.Storage.S3.Bucket != "my-audio" {
		t.Fatalf("bucket = %s", cfg.Storage.S3.Bucket)
	}
	if cfg.Storage.S3.Region != "eu-west-1" {
		t.Fatalf("region = %s", cfg.Storage.S3.Region)
	}
	if cfg.Retention.MaxAgeSeconds != 7200 {
		t.Fatalf("retention = %d", cfg.Retention.MaxAgeSeconds)
	}
	if cfg.Server.BaseURL != "https://lab.example" {
		t.Fatalf("base url = %s", cfg.Server.BaseURL)
	}
}

func TestBadEnvNumbersIgnored(t *testing.T) {
	t.Setenv("FILE_MAX_AGE_SECONDS", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Retention.MaxAgeSeconds != 3600 {
		t.Fatalf("retention = %d, want default", cfg.Retention.MaxAgeSeconds)
	}
}

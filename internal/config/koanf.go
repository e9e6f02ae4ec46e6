// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/studio/config.yaml",
	"/etc/studio/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with sensible defaults. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20, // 10MB
		},
		Database: DatabaseConfig{
			DSN:            "",
			MaxConns:       0,
			MigrateOnStart: true,
		},
		Storage: StorageConfig{
			Region:    "us-east-1",
			KeyPrefix: "soft-halo-studio",
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			TokenTTL:          168 * time.Hour, // 7 days
			AdminUsername:     "",
			AdminPasswordHash: "",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Analytics: AnalyticsConfig{
			Timeout:  15 * time.Second,
			CacheTTL: 10 * time.Minute,
		},
		SMTP: SMTPConfig{
			Port:       587,
			Encryption: "starttls",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from layered sources:
//  1. Defaults (built-in)
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
//
// The returned Config has passed Validate.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when they arrive via environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env var strings into slices
// for known slice fields. YAML values arrive as slices already and are
// left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables map to the empty string and are skipped, so unrelated
// environment noise never pollutes the configuration.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		"HTTP_HOST":        "server.host",
		"HTTP_PORT":        "server.port",
		"READ_TIMEOUT":     "server.read_timeout",
		"WRITE_TIMEOUT":    "server.write_timeout",
		"SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
		"MAX_UPLOAD_BYTES": "server.max_upload_bytes",

		"DATABASE_URL":     "database.dsn",
		"DATABASE_DSN":     "database.dsn",
		"DB_MAX_CONNS":     "database.max_conns",
		"MIGRATE_ON_START": "database.migrate_on_start",

		"STORAGE_BUCKET":          "storage.bucket",
		"STORAGE_REGION":          "storage.region",
		"STORAGE_ACCESS_KEY":      "storage.access_key",
		"STORAGE_SECRET_KEY":      "storage.secret_key",
		"STORAGE_ENDPOINT":        "storage.endpoint",
		"STORAGE_PUBLIC_BASE_URL": "storage.public_base_url",
		"STORAGE_KEY_PREFIX":      "storage.key_prefix",

		"JWT_SECRET":          "security.jwt_secret",
		"TOKEN_TTL":           "security.token_ttl",
		"ADMIN_USERNAME":      "security.admin_username",
		"ADMIN_PASSWORD_HASH": "security.admin_password_hash",
		"RATE_LIMIT_REQUESTS": "security.rate_limit_reqs",
		"RATE_LIMIT_WINDOW":   "security.rate_limit_window",
		"DISABLE_RATE_LIMIT":  "security.rate_limit_disabled",
		"CORS_ORIGINS":        "security.cors_origins",

		"GA_PROPERTY_ID":      "analytics.property_id",
		"GA_ACCESS_TOKEN":     "analytics.access_token",
		"ANALYTICS_TIMEOUT":   "analytics.timeout",
		"ANALYTICS_CACHE_TTL": "analytics.cache_ttl",

		"REDIS_ADDR":     "cache.addr",
		"REDIS_PASSWORD": "cache.password",
		"REDIS_DB":       "cache.db",

		"SMTP_HOST":        "smtp.host",
		"SMTP_PORT":        "smtp.port",
		"SMTP_USERNAME":    "smtp.username",
		"SMTP_PASSWORD":    "smtp.password",
		"SMTP_FROM":        "smtp.from",
		"SMTP_NOTIFY_ADDR": "smtp.notify_addr",
		"SMTP_ENCRYPTION":  "smtp.encryption",

		"LOG_LEVEL":  "logging.level",
		"LOG_FORMAT": "logging.format",
		"LOG_CALLER": "logging.caller",
	}

	if mapped, ok := mappings[strings.ToUpper(key)]; ok {
		return mapped
	}
	return ""
}

// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// PipelineConfig provides settings for the pipeline engine.
type PipelineConfig interface {
	GetStagesFile() string
	GetDefaultActor() string
	GetDefaultRegion() string
	GetSeedDemoData() bool
}

// IntegrationConfig provides settings for the integration-availability checker.
type IntegrationConfig interface {
	GetVoIPProbeURL() string
	GetWhatsAppProbeURL() string
	GetCalendarProbeURL() string
	GetIntegrationCacheTTL() time.Duration
	IsEmailIntegrationEnabled() bool
}

// SMTPConfig provides settings for outbound email.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// RedisConfig provides settings for the Redis-backed components.
type RedisConfig interface {
	GetRedisURL() string
}

// MirrorConfig provides settings for the persistence mirror.
type MirrorConfig interface {
	RedisConfig
	GetDatabaseURL() string
	GetMirrorQueueName() string
	GetMirrorConcurrency() int
	IsMirrorEnabled() bool
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	StagesFile          string
	DefaultActor        string
	DefaultRegion       string
	SeedDemoData        bool
	VoIPProbeURL        string
	WhatsAppProbeURL    string
	CalendarProbeURL    string
	IntegrationCacheTTL time.Duration
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	RedisURL            string
	DatabaseURL         string
	MirrorQueueName     string
	MirrorConcurrency   int
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// PipelineConfig implementation
func (c *Config) GetStagesFile() string    { return c.StagesFile }
func (c *Config) GetDefaultActor() string  { return c.DefaultActor }
func (c *Config) GetDefaultRegion() string { return c.DefaultRegion }
func (c *Config) GetSeedDemoData() bool    { return c.SeedDemoData }

// IntegrationConfig implementation
func (c *Config) GetVoIPProbeURL() string               { return c.VoIPProbeURL }
func (c *Config) GetWhatsAppProbeURL() string           { return c.WhatsAppProbeURL }
func (c *Config) GetCalendarProbeURL() string           { return c.CalendarProbeURL }
func (c *Config) GetIntegrationCacheTTL() time.Duration { return c.IntegrationCacheTTL }
func (c *Config) IsEmailIntegrationEnabled() bool {
	return c.SMTPHost != "" && c.EmailFromAddress != ""
}

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// RedisConfig / MirrorConfig / DatabaseConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetDatabaseURL() string     { return c.DatabaseURL }
func (c *Config) GetMirrorQueueName() string { return c.MirrorQueueName }
func (c *Config) GetMirrorConcurrency() int  { return c.MirrorConcurrency }
func (c *Config) IsMirrorEnabled() bool {
	return c.RedisURL != "" && c.DatabaseURL != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		StagesFile:          getEnv("PIPELINE_STAGES_FILE", ""),
		DefaultActor:        getEnv("PIPELINE_DEFAULT_ACTOR", "System"),
		DefaultRegion:       getEnv("PHONE_DEFAULT_REGION", "US"),
		SeedDemoData:        strings.EqualFold(getEnv("PIPELINE_SEED_DEMO_DATA", "true"), "true"),
		VoIPProbeURL:        getEnv("VOIP_PROBE_URL", ""),
		WhatsAppProbeURL:    getEnv("WHATSAPP_PROBE_URL", ""),
		CalendarProbeURL:    getEnv("CALENDAR_PROBE_URL", ""),
		IntegrationCacheTTL: mustDuration(getEnv("INTEGRATION_CACHE_TTL", "5m")),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Pipeline"),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		MirrorQueueName:     getEnv("MIRROR_QUEUE_NAME", "mirror"),
		MirrorConcurrency:   mustInt(getEnv("MIRROR_CONCURRENCY", "10")),
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.SMTPHost != "" && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when SMTP_HOST is set")
	}
	if cfg.IntegrationCacheTTL <= 0 {
		cfg.IntegrationCacheTTL = 5 * time.Minute
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

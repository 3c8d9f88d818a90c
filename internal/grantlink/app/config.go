package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Dev-only fallbacks. Refusing to start without them makes local iteration
// painful; using them outside dev is a startup error.
const (
	devSigningSecret = "grantlink-dev-signing-secret-not-for-production"
	devIssuerAPIKey  = "grantlink-dev-issuer-key"

	minSigningSecretLen = 32
)

type Config struct {
	Addr      string // HTTP listen address (default: :8080)
	PublicURL string // Base URL for tokenised links (default: http://localhost:8080)

	SigningSecret string // HS256 secret; >= 32 bytes outside dev
	IssuerAPIKey  string // Issuing API key: plaintext or argon2id PHC string

	TokenParam      string        // Extraction parameter name (default: rt)
	DefaultMaxUses  int           // Use ceiling when callers omit max_uses (default: 10)
	SessionTokenTTL time.Duration // Forced expiry window for SESSION-mode tokens (default: 10m)
	SessionTTL      time.Duration // Established session lifetime (default: 24h)

	AuditEnabled    bool          // Log successful uses (default: true)
	AuditRejections bool          // Log rejection events (default: true)
	AuditRetention  time.Duration // Prune audit entries older than this; 0 keeps forever (default: 90 days)

	DBDriver string // sqlite or postgres (default: sqlite)
	DBDSN    string // Driver DSN

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: text)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping ticker period (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Addr:      getEnvOrDefault("GRANTLINK_ADDR", ":8080"),
		PublicURL: getEnvOrDefault("GRANTLINK_PUBLIC_URL", "http://localhost:8080"),

		SigningSecret: getEnvOrDefault("GRANTLINK_SIGNING_SECRET", devSigningSecret),
		IssuerAPIKey:  getEnvOrDefault("GRANTLINK_ISSUER_API_KEY", devIssuerAPIKey),

		TokenParam:      getEnvOrDefault("GRANTLINK_TOKEN_PARAM", "rt"),
		DefaultMaxUses:  getEnvIntOrDefault("GRANTLINK_DEFAULT_MAX_USES", 10),
		SessionTokenTTL: getEnvDurationOrDefault("GRANTLINK_SESSION_TOKEN_TTL", 10*time.Minute),
		SessionTTL:      getEnvDurationOrDefault("GRANTLINK_SESSION_TTL", 24*time.Hour),

		AuditEnabled:    getEnvBoolOrDefault("GRANTLINK_AUDIT_ENABLED", true),
		AuditRejections: getEnvBoolOrDefault("GRANTLINK_AUDIT_REJECTIONS", true),
		AuditRetention:  getEnvDurationOrDefault("GRANTLINK_AUDIT_RETENTION", 90*24*time.Hour),

		DBDriver: getEnvOrDefault("GRANTLINK_DB_DRIVER", "sqlite"),
		DBDSN: getEnvOrDefault(
			"GRANTLINK_DB_DSN",
			"file:grantlink.db?_busy_timeout=5000&_journal_mode=WAL",
		),

		Env:                  getEnvOrDefault("GRANTLINK_ENV", "dev"),
		LogLevel:             getEnvOrDefault("GRANTLINK_LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("GRANTLINK_LOG_FORMAT", "text"),
		ShutdownGracePeriod:  getEnvDurationOrDefault("GRANTLINK_SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("GRANTLINK_HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects configurations that must not reach a real deployment.
// The dev environment is exempt so the service starts with no env at all.
func (c Config) Validate() error {
	if c.DBDriver != "sqlite" && c.DBDriver != "postgres" {
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if c.DefaultMaxUses < 0 {
		return errors.New("default max uses must not be negative")
	}
	if c.TokenParam == "" {
		return errors.New("token parameter name must not be empty")
	}

	if c.Env == "dev" {
		return nil
	}

	if c.SigningSecret == devSigningSecret {
		return errors.New("GRANTLINK_SIGNING_SECRET must be set outside dev")
	}
	if len(c.SigningSecret) < minSigningSecretLen {
		return fmt.Errorf("signing secret must be at least %d bytes", minSigningSecretLen)
	}
	if c.IssuerAPIKey == devIssuerAPIKey {
		return errors.New("GRANTLINK_ISSUER_API_KEY must be set outside dev")
	}
	return nil
}

// usingDevSecrets reports whether any dev fallback secret is in effect, for
// a startup warning.
func (c Config) usingDevSecrets() bool {
	return c.SigningSecret == devSigningSecret || c.IssuerAPIKey == devIssuerAPIKey
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}

package config

import (
	"os"
	"strconv"
)

const (
	environmentProduction = "production"

	authModeGateway = "gateway"
	authModeJWT     = "jwt"
)

// Config holds the application configuration.
// The service is stateless: no database, sessions or user store.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN        string // Sentry DSN for error tracking
	MetricsEnabled   bool   // CloudWatch custom metrics (production only)
	MetricsNamespace string // CloudWatch namespace

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the game gateway
	// - "jwt": Verify HS256 bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Engine behaviour
	StrictNoteMath     bool // Reject malformed note-math steps instead of skipping them
	DrillQuestionCount int  // Default number of questions per drill
	MIDITempo          int  // Tempo (BPM) of exported MIDI files
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		MetricsEnabled:     getEnv("METRICS_ENABLED", "false") == "true",
		MetricsNamespace:   getEnv("METRICS_NAMESPACE", "MusicTheory/API"),
		AuthMode:           getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		JWTSecret:          getEnv("JWT_SECRET", ""),
		StrictNoteMath:     getEnv("STRICT_NOTE_MATH", "false") == "true",
		DrillQuestionCount: getEnvInt("DRILL_QUESTION_COUNT", 10),
		MIDITempo:          getEnvInt("MIDI_TEMPO", 120),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// IsGatewayMode returns true if running behind the gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == authModeGateway
}

// IsJWTMode returns true if bearer tokens are verified locally
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == authModeJWT
}

func (c *Config) IsProduction() bool {
	return c.Environment == environmentProduction
}

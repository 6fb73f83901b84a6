package bootstrap

import (
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/eleven-am/video-rooms/internal/events"
	"github.com/eleven-am/video-rooms/internal/provider"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	Provider string

	TwilioAccountSID string
	TwilioAPIKey     string
	TwilioAPISecret  string

	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	TokenTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	EventsChannel string
}

// ConfigError lists every environment variable that stops the service from
// starting.
type ConfigError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required environment variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid environment variables: "+strings.Join(e.Invalid, ", "))
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":4000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Provider: strings.ToLower(getEnv("VIDEO_PROVIDER", provider.NameTwilio)),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAPIKey:     getEnv("TWILIO_API_KEY", ""),
		TwilioAPISecret:  getEnv("TWILIO_API_SECRET", ""),

		LiveKitURL:       getEnv("LIVEKIT_URL", ""),
		LiveKitAPIKey:    getEnv("LIVEKIT_API_KEY", ""),
		LiveKitAPISecret: getEnv("LIVEKIT_API_SECRET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		EventsChannel: getEnv("EVENTS_CHANNEL", events.DefaultChannel),
	}

	cfgErr := &ConfigError{}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", provider.DefaultTokenTTL.String()))
	if err != nil || ttl <= 0 {
		cfgErr.Invalid = append(cfgErr.Invalid, "TOKEN_TTL")
	}
	cfg.TokenTTL = ttl

	switch cfg.Provider {
	case provider.NameTwilio:
		cfgErr.Missing = missingEnv(map[string]string{
			"TWILIO_ACCOUNT_SID": cfg.TwilioAccountSID,
			"TWILIO_API_KEY":     cfg.TwilioAPIKey,
			"TWILIO_API_SECRET":  cfg.TwilioAPISecret,
		})
	case provider.NameLiveKit:
		cfgErr.Missing = missingEnv(map[string]string{
			"LIVEKIT_URL":        cfg.LiveKitURL,
			"LIVEKIT_API_KEY":    cfg.LiveKitAPIKey,
			"LIVEKIT_API_SECRET": cfg.LiveKitAPISecret,
		})
	default:
		cfgErr.Invalid = append(cfgErr.Invalid, "VIDEO_PROVIDER")
	}

	if len(cfgErr.Missing) > 0 || len(cfgErr.Invalid) > 0 {
		return nil, cfgErr
	}
	return cfg, nil
}

func (c *Config) ProviderConfig() provider.Config {
	return provider.Config{
		Provider:         c.Provider,
		TwilioAccountSID: c.TwilioAccountSID,
		TwilioAPIKey:     c.TwilioAPIKey,
		TwilioAPISecret:  c.TwilioAPISecret,
		LiveKitURL:       c.LiveKitURL,
		LiveKitAPIKey:    c.LiveKitAPIKey,
		LiveKitAPISecret: c.LiveKitAPISecret,
		TokenTTL:         c.TokenTTL,
	}
}

func missingEnv(values map[string]string) []string {
	var missing []string
	for key, value := range values {
		if value == "" {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

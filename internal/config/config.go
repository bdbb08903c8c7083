package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvAPIKey          = "GEMINI_API_KEY"
	EnvAPIKeyParameter = "GEMINI_API_KEY_PARAMETER"
	EnvModel           = "GEMINI_MODEL"
	EnvBaseURL         = "GEMINI_BASE_URL"
	EnvTimeout         = "GEMINI_TIMEOUT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvPort            = "PORT"
	EnvRegion          = "AWS_REGION"

	DefaultModel   = "gemini-2.5-flash-preview-05-20"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultPort    = "8080"
)

type Config struct {
	Logger *zap.Logger
	level  zap.AtomicLevel

	Gemini GeminiConfig
	Port   string
	Region string
}

type GeminiConfig struct {
	// APIKey may be empty; requests then fail with a configuration error
	// unless APIKeyParameter names an SSM parameter holding the key.
	APIKey          string
	APIKeyParameter string
	Model           string
	BaseURL         string

	// Zero means the client adds no timeout of its own.
	Timeout time.Duration
}

func New() *Config {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	return &Config{
		Logger: NewLogger(level),
		level:  level,
		Gemini: GeminiConfig{
			Model:   DefaultModel,
			BaseURL: DefaultBaseURL,
		},
		Port: DefaultPort,
	}
}

func NewLogger(level zap.AtomicLevel) *zap.Logger {
	logCfg := zap.NewProductionConfig()
	logCfg.Level = level
	logCfg.DisableStacktrace = true
	logger, _ := logCfg.Build()
	return logger
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present, without overriding set variables.
func (c *Config) Load() error {
	_ = godotenv.Load()
	return c.load(viper.New())
}

func (c *Config) load(v *viper.Viper) error {
	v.AutomaticEnv()
	v.SetDefault(EnvModel, DefaultModel)
	v.SetDefault(EnvBaseURL, DefaultBaseURL)
	v.SetDefault(EnvTimeout, "0s")
	v.SetDefault(EnvLogLevel, "info")
	v.SetDefault(EnvPort, DefaultPort)

	if err := c.level.UnmarshalText([]byte(v.GetString(EnvLogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	timeout, err := time.ParseDuration(v.GetString(EnvTimeout))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
	} else if timeout < 0 {
		return fmt.Errorf("negative %s: [%s]", EnvTimeout, timeout)
	}

	c.Gemini = GeminiConfig{
		APIKey:          v.GetString(EnvAPIKey),
		APIKeyParameter: v.GetString(EnvAPIKeyParameter),
		Model:           v.GetString(EnvModel),
		BaseURL:         v.GetString(EnvBaseURL),
		Timeout:         timeout,
	}
	c.Port = v.GetString(EnvPort)
	c.Region = v.GetString(EnvRegion)

	return nil
}

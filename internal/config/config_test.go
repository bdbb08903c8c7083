package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func Test_New(t *testing.T) {
	cfg := New()

	require.NotNil(t, cfg.Logger)
	assert.Equal(t, DefaultModel, cfg.Gemini.Model)
	assert.Equal(t, DefaultBaseURL, cfg.Gemini.BaseURL)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.Gemini.APIKey)
}

func Test_Load(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		expGemini GeminiConfig
		expPort   string
		expLevel  zap.AtomicLevel
		expErr    bool
	}{
		{
			name: "Happy path - Defaults",
			expGemini: GeminiConfig{
				Model:   DefaultModel,
				BaseURL: DefaultBaseURL,
			},
			expPort:  DefaultPort,
			expLevel: zap.NewAtomicLevelAt(zap.InfoLevel),
		},
		{
			name: "Happy path - All set",
			env: map[string]string{
				EnvAPIKey:          "key",
				EnvAPIKeyParameter: "/game/key",
				EnvModel:           "gemini-pro",
				EnvBaseURL:         "http://localhost:9000",
				EnvTimeout:         "45s",
				EnvLogLevel:        "debug",
				EnvPort:            "9090",
			},
			expGemini: GeminiConfig{
				APIKey:          "key",
				APIKeyParameter: "/game/key",
				Model:           "gemini-pro",
				BaseURL:         "http://localhost:9000",
				Timeout:         45 * time.Second,
			},
			expPort:  "9090",
			expLevel: zap.NewAtomicLevelAt(zap.DebugLevel),
		},
		{
			name:   "Sad path - Bad timeout",
			env:    map[string]string{EnvTimeout: "soon"},
			expErr: true,
		},
		{
			name:   "Sad path - Negative timeout",
			env:    map[string]string{EnvTimeout: "-1s"},
			expErr: true,
		},
		{
			name:   "Sad path - Bad log level",
			env:    map[string]string{EnvLogLevel: "loud"},
			expErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{EnvAPIKey, EnvAPIKeyParameter, EnvModel, EnvBaseURL, EnvTimeout, EnvLogLevel, EnvPort} {
				t.Setenv(key, tt.env[key])
			}

			cfg := New()
			err := cfg.load(viper.New())

			if tt.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expGemini, cfg.Gemini)
			assert.Equal(t, tt.expPort, cfg.Port)
			assert.Equal(t, tt.expLevel.Level(), cfg.level.Level())
		})
	}
}

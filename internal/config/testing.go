package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	MockAPIKey = "mock-api-key"
	MockModel  = "mock-model"
)

// NewTestConfig returns a config with a usable key and a development logger.
// Tests point Gemini.BaseURL at their own stub server.
func NewTestConfig() *Config {
	cfg := New()
	cfg.Logger = NewTestLogger()
	cfg.Gemini.APIKey = MockAPIKey
	cfg.Gemini.Model = MockModel
	return cfg
}

func NewTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// NewObservedLogger records every entry at debug level and above.
func NewObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

package main

import (
	"go.uber.org/zap"

	"game-generator/httpserver"
	"game-generator/internal/config"
	"game-generator/internal/generate"
)

func main() {
	cfg := config.New()
	if err := cfg.Load(); err != nil {
		cfg.Logger.Fatal("could not load config", zap.Error(err))
	}
	defer cfg.Logger.Sync()

	s := httpserver.New(cfg, generate.New(cfg))
	if err := s.Run(); err != nil {
		cfg.Logger.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"game-generator/internal/config"
	"game-generator/internal/generate"
)

var handler *generate.Handler

func main() {
	cfg := config.New()
	if err := cfg.Load(); err != nil {
		cfg.Logger.Fatal("could not load config", zap.Error(err))
	}
	defer cfg.Logger.Sync()

	handler = generate.New(cfg)
	lambda.Start(HandleRequest)
}

func HandleRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return handler.Handle(ctx, event), nil
}

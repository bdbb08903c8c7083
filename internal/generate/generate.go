package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"game-generator/internal/config"
	"game-generator/pkg/aws/ssm"
	customError "game-generator/pkg/errors"
	"game-generator/pkg/gemini"
)

const (
	loggerName = "generate-game"

	allowHeader       = "Allow"
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
	textContentType   = "text/plain; charset=utf-8"

	methodNotAllowedFormat = "Method %s Not Allowed"
	upstreamFailedFormat   = "Gemini API failed: %s"
)

var (
	errNoPrompt = customError.NewHTTPError(
		http.StatusBadRequest, "No prompt provided.",
	)
	errKeyNotConfigured = customError.NewHTTPError(
		http.StatusInternalServerError, "API key is not configured on the server.",
	)
	errExtraction = customError.NewHTTPError(
		http.StatusInternalServerError, "Failed to extract game code from Gemini response.",
	)
)

type Handler struct {
	logger *zap.Logger
	cfg    config.GeminiConfig

	geminiClient gemini.ClientIFace

	// Only set when the key is read from Parameter Store
	ssmClient ssm.ClientIFace
}

func New(cfg *config.Config) *Handler {
	h := &Handler{
		logger:       cfg.Logger.Named(loggerName),
		cfg:          cfg.Gemini,
		geminiClient: gemini.New(cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.Timeout),
	}
	if cfg.Gemini.APIKey == "" && cfg.Gemini.APIKeyParameter != "" {
		h.ssmClient = ssm.New(cfg.Region)
	}
	return h
}

// Handle runs one invocation. Every failure is reported once through the
// returned response; nothing is retried.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) (rsp events.APIGatewayV2HTTPResponse) {
	requestId := event.RequestContext.RequestID
	if requestId == "" {
		requestId = uuid.NewString()
	}
	logger := h.logger.With(zap.String("request_id", requestId))

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			logger.Error("server error", zap.Error(err))
			rsp = errorResponse(http.StatusInternalServerError, err.Error())
		}
	}()

	method := event.RequestContext.HTTP.Method
	if method != http.MethodPost {
		return methodNotAllowedResponse(method)
	}

	gameCode, err := h.generate(ctx, logger, event)
	if err != nil {
		var httpErr *customError.HTTPError
		if errors.As(err, &httpErr) {
			return errorResponse(httpErr.StatusCode, httpErr.Message)
		}

		logger.Error("server error", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, err.Error())
	}

	logger.Info("game generated", zap.Int("bytes", len(gameCode)))
	return jsonResponse(http.StatusOK, Response{GameCode: gameCode})
}

func (h *Handler) generate(ctx context.Context, logger *zap.Logger, event events.APIGatewayV2HTTPRequest) (string, error) {
	prompt, ok := parsePrompt(event)
	if !ok {
		return "", errNoPrompt
	}

	apiKey, err := h.loadAPIKey(ctx)
	if err != nil {
		logger.Error("api key is not configured", zap.Error(err))
		return "", errKeyNotConfigured
	}

	payload := gemini.NewTextRequest(ComposePrompt(prompt))
	rsp, err := h.geminiClient.GenerateContent(ctx, apiKey, payload)

	var statusErr *gemini.StatusError
	switch {
	case errors.As(err, &statusErr):
		logger.Error(
			"gemini api error",
			zap.Int("status", statusErr.StatusCode),
			zap.String("body", statusErr.Body),
		)
		return "", customError.NewHTTPError(statusErr.StatusCode, fmt.Sprintf(upstreamFailedFormat, statusErr.StatusText))

	case errors.Is(err, gemini.ErrUnexpectedShape):
		logger.Warn("unexpected gemini response", zap.Error(err))
		return "", errExtraction

	case err != nil:
		return "", err
	}

	gameCode, ok := rsp.FirstText()
	if !ok {
		fields := []zap.Field{zap.Int("candidates", len(rsp.Candidates))}
		if len(rsp.Candidates) > 0 {
			fields = append(fields, zap.String("finish_reason", rsp.Candidates[0].FinishReason))
		}
		if rsp.PromptFeedback != nil && rsp.PromptFeedback.BlockReason != "" {
			fields = append(fields, zap.String("block_reason", rsp.PromptFeedback.BlockReason))
		}
		logger.Warn("no game code in gemini response", fields...)
		return "", errExtraction
	}

	return gameCode, nil
}

// loadAPIKey prefers the configured key. Otherwise it reads the configured
// SSM parameter for this invocation.
func (h *Handler) loadAPIKey(ctx context.Context) (string, error) {
	if h.cfg.APIKey != "" {
		return h.cfg.APIKey, nil
	}
	if h.cfg.APIKeyParameter == "" || h.ssmClient == nil {
		return "", customError.MissingEnvErr{EnvMap: map[string]string{
			config.EnvAPIKey:          h.cfg.APIKey,
			config.EnvAPIKeyParameter: h.cfg.APIKeyParameter,
		}}
	}

	if err := h.ssmClient.Connect(); err != nil {
		return "", err
	}
	apiKey, err := h.ssmClient.GetSecret(ctx, h.cfg.APIKeyParameter)
	if err != nil {
		return "", fmt.Errorf("could not read api key parameter [%s]: %w", h.cfg.APIKeyParameter, err)
	} else if apiKey == "" {
		return "", fmt.Errorf("api key parameter is empty: [%s]", h.cfg.APIKeyParameter)
	}
	return apiKey, nil
}

func methodNotAllowedResponse(method string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusMethodNotAllowed,
		Headers: map[string]string{
			allowHeader:       http.MethodPost,
			contentTypeHeader: textContentType,
		},
		Body: fmt.Sprintf(methodNotAllowedFormat, method),
	}
}

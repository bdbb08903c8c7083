package httpserver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"game-generator/internal/config"
)

const (
	Endpoint = "/api/generate-game"

	loggerName      = "http-server"
	requestIdHeader = "X-Request-ID"
)

// EventHandler is satisfied by the Lambda handler, so the local server runs
// the exact code path deployed behind API Gateway.
type EventHandler interface {
	Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse
}

type EventHandlerFunc func(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse

func (f EventHandlerFunc) Handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	return f(ctx, event)
}

type Server struct {
	mux     *http.ServeMux
	logger  *zap.Logger
	port    string
	handler EventHandler
}

func New(cfg *config.Config, handler EventHandler) *Server {
	s := &Server{
		logger:  cfg.Logger.Named(loggerName),
		port:    cfg.Port,
		handler: handler,
	}

	// Register endpoints
	mux := http.NewServeMux()
	mux.HandleFunc(Endpoint, s.eventHandler)
	s.mux = mux

	return s
}

func (s *Server) Run() error {
	s.logger.Info("listening", zap.String("port", s.port), zap.String("endpoint", Endpoint))

	// Start listening for requests
	err := http.ListenAndServe(fmt.Sprintf(":%s", s.port), s.mux)
	if err != nil && errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) eventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := toEvent(r)
	if err != nil {
		s.logger.Error("could not read request", zap.Error(err))
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	rsp := s.handler.Handle(r.Context(), event)

	// Write response
	for key, val := range rsp.Headers {
		w.Header().Set(key, val)
	}
	w.WriteHeader(rsp.StatusCode)
	if _, err := io.WriteString(w, rsp.Body); err != nil {
		s.logger.Error("could not write response", zap.Error(err))
	}
}

// toEvent converts a request into the API Gateway HTTP API (v2) event shape.
func toEvent(r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, err
	}

	headers := make(map[string]string, len(r.Header))
	for key, vals := range r.Header {
		headers[strings.ToLower(key)] = strings.Join(vals, ",")
	}

	event := events.APIGatewayV2HTTPRequest{
		RawPath:        r.URL.Path,
		RawQueryString: r.URL.RawQuery,
		Headers:        headers,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID: r.Header.Get(requestIdHeader),
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  r.RemoteAddr,
				UserAgent: r.UserAgent(),
			},
		},
	}

	// API Gateway base64-encodes bodies that are not valid text
	if utf8.Valid(body) {
		event.Body = string(body)
	} else {
		event.Body = base64.StdEncoding.EncodeToString(body)
		event.IsBase64Encoded = true
	}

	return event, nil
}

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	generateContentFormat = "%s/models/%s:generateContent"
	keyParam              = "key"
)

// ErrUnexpectedShape is returned when a success body is valid JSON but does
// not match the generateContent response structure.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	GenerateContent(ctx context.Context, apiKey string, req GenerateContentRequest) (*GenerateContentResponse, error)
}

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// New builds a client for one model. A zero timeout leaves the call bounded
// only by the context it is given.
func New(baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini returned %d %s", e.StatusCode, e.StatusText)
}

func (c *Client) GenerateContent(ctx context.Context, apiKey string, payload GenerateContentRequest) (*GenerateContentResponse, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	// Build HTTP request
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(apiKey), bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	// Make HTTP call
	rsp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, redactKey(err, apiKey)
	}
	defer rsp.Body.Close()

	rspBody, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, err
	}

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: rsp.StatusCode,
			StatusText: StatusText(rsp),
			Body:       string(rspBody),
		}
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(rspBody, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) endpoint(apiKey string) string {
	query := url.Values{}
	query.Set(keyParam, apiKey)
	return fmt.Sprintf(generateContentFormat, c.baseURL, url.PathEscape(c.model)) + "?" + query.Encode()
}

// StatusText returns the reason phrase of the response status line, such as
// "Too Many Requests", falling back to the standard text for the code.
func StatusText(rsp *http.Response) string {
	code := strconv.Itoa(rsp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(rsp.Status, code)); text != "" && text != rsp.Status {
		return text
	}
	return http.StatusText(rsp.StatusCode)
}

// redactKey strips the credential from transport errors, which quote the
// full request URL.
func redactKey(err error, apiKey string) error {
	var urlErr *url.Error
	if apiKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: strings.ReplaceAll(urlErr.URL, url.QueryEscape(apiKey), "REDACTED"),
		Err: urlErr.Err,
	}
}

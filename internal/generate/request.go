package generate

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

type request struct {
	Prompt any `json:"prompt"`
}

// Response is the JSON body of every non-405 reply.
type Response struct {
	GameCode string `json:"gameCode,omitempty"`
	Error    string `json:"error,omitempty"`
}

// parsePrompt returns the caller's prompt, or ok=false when it is absent or
// falsy. Bodies that are not JSON objects have no prompt.
func parsePrompt(event events.APIGatewayV2HTTPRequest) (prompt string, ok bool) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return "", false
		}
		body = decoded
	}

	var req request
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return "", false
	}

	switch p := req.Prompt.(type) {
	case nil:
		return "", false
	case string:
		return p, p != ""
	case bool:
		if !p {
			return "", false
		}
		return "true", true
	case json.Number:
		if f, err := p.Float64(); err == nil && f == 0 {
			return "", false
		}
		return p.String(), true
	default:
		// Objects and arrays are truthy; use their JSON text
		raw, err := json.Marshal(p)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
}

func jsonResponse(statusCode int, body Response) events.APIGatewayV2HTTPResponse {
	// Game code is HTML; keep it readable rather than <-escaped
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(body)

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{contentTypeHeader: jsonContentType},
		Body:       strings.TrimSuffix(buf.String(), "\n"),
	}
}

func errorResponse(statusCode int, msg string) events.APIGatewayV2HTTPResponse {
	return jsonResponse(statusCode, Response{Error: msg})
}

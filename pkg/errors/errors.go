package errors

import (
	"fmt"
	"sort"
	"strings"
)

type MissingEnvErr struct {
	EnvMap map[string]string
}

func (e MissingEnvErr) Error() string {
	// Get keys of missing environment variables
	missingKeys := make([]string, 0, len(e.EnvMap))
	for key, val := range e.EnvMap {
		if val == "" {
			missingKeys = append(missingKeys, key)
		}
	}
	sort.Strings(missingKeys)

	if len(missingKeys) > 0 {
		allKeys := strings.Join(missingKeys, ", ")
		return fmt.Sprintf("insufficient env variables: [%s]", allKeys)
	}
	return "insufficient env variables"
}

// HTTPError is a failure that already knows how it should be reported to the
// caller. Message is sent as is, so it must never carry secrets.
type HTTPError struct {
	StatusCode int
	Message    string
}

func NewHTTPError(statusCode int, msg string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: msg}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

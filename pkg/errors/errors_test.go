package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customError "game-generator/pkg/errors"
)

func Test_MissingEnvErr(t *testing.T) {
	tests := []struct {
		name   string
		envMap map[string]string
		expMsg string
	}{
		{
			name:   "Lists missing keys in order",
			envMap: map[string]string{"B_KEY": "", "A_KEY": "", "C_KEY": "set"},
			expMsg: "insufficient env variables: [A_KEY, B_KEY]",
		},
		{
			name:   "No missing keys",
			envMap: map[string]string{"A_KEY": "set"},
			expMsg: "insufficient env variables",
		},
		{
			name:   "Nil map",
			expMsg: "insufficient env variables",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := customError.MissingEnvErr{EnvMap: tt.envMap}
			assert.Equal(t, tt.expMsg, err.Error())
		})
	}
}

func Test_HTTPError_As(t *testing.T) {
	wrapped := fmt.Errorf("validating request: %w", customError.NewHTTPError(http.StatusBadRequest, "bad"))

	var httpErr *customError.HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "bad", httpErr.Message)
	assert.Equal(t, "400: bad", httpErr.Error())
}
